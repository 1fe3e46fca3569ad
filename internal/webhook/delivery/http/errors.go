package http

import (
	"net/http"

	"restock-srv/internal/webhook"
	"restock-srv/pkg/errors"
	"restock-srv/pkg/response"
)

var (
	errMissingID            = errors.NewHTTPError(120001, "Missing subscription id", http.StatusBadRequest)
	errSubscriptionNotFound = errors.NewHTTPError(120002, "Webhook subscription not found", http.StatusNotFound)
	errWrongBody            = errors.NewHTTPError(120003, "Wrong body", http.StatusBadRequest)
)

const codeInvalidURL = 120004

var errMap = response.ErrorMapping{
	webhook.ErrSubscriptionNotFound: errSubscriptionNotFound,
}
