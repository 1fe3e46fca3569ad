package response

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-srv/pkg/discord"
	"restock-srv/pkg/errors"
)

func NewOKResp(data any) Resp {
	return Resp{Message: MessageSuccess, Data: data}
}

// OK replies 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Accepted replies 202 with data.
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, NewOKResp(data))
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(parseError(errors.NewUnauthorizedHTTPError(), c, nil))
}

func parseError(err error, c *gin.Context, d discord.IDiscord) (int, Resp) {
	var (
		vErr   *errors.ValidationError
		vColl  *errors.ValidationErrorCollector
		httpEr *errors.HTTPError
	)
	switch {
	case stderrors.As(err, &vColl):
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Message:   ValidationErrorMsg,
			Errors:    vColl.Errors(),
		}
	case stderrors.As(err, &vErr):
		return http.StatusBadRequest, Resp{ErrorCode: vErr.Code, Message: vErr.Error()}
	case stderrors.As(err, &httpEr):
		return httpEr.StatusCode, Resp{ErrorCode: httpEr.Code, Message: httpEr.Message}
	default:
		if d != nil && err != nil {
			reportAsync(d, buildReport(c, err.Error(), captureStackTrace()))
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Message:   DefaultErrorMessage,
		}
	}
}

// Error replies with the status derived from err. Unknown errors become 500
// and are reported to d when set.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	c.JSON(parseError(err, c, d))
}

// ErrorWithMap translates err through eMap before replying.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping, d discord.IDiscord) {
	for target, httpErr := range eMap {
		if stderrors.Is(err, target) {
			Error(c, httpErr, nil)
			return
		}
	}
	Error(c, err, d)
}

// PanicError replies 500 for a recovered panic value.
func PanicError(c *gin.Context, rec any, d discord.IDiscord) {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	c.AbortWithStatusJSON(parseError(err, c, d))
}
