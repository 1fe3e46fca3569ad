package response

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"restock-srv/pkg/discord"
)

func captureStackTrace() []string {
	var pcs [stackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var trace []string
	for {
		f, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function))
		if !more {
			break
		}
	}
	return trace
}

func reportAsync(d discord.IDiscord, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, chunk := range splitReport(message) {
			if err := d.ReportBug(ctx, chunk); err != nil {
				stdlog.Printf("pkg.response.reportAsync.ReportBug: %v\n", err)
			}
		}
	}()
}

func splitReport(message string) []string {
	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if current.Len()+len(line) > reportChunkMaxLen {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSuffix(current.String(), "\n"))
				current.Reset()
			}
			for len(line) > reportChunkMaxLen {
				chunks = append(chunks, line[:reportChunkMaxLen])
				line = line[reportChunkMaxLen:]
			}
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSuffix(current.String(), "\n"))
	}
	return chunks
}

var redactedHeaders = map[string]bool{
	"Authorization":  true,
	"X-Internal-Key": true,
	"Cookie":         true,
}

func buildReport(c *gin.Context, errString string, backtrace []string) string {
	var sb strings.Builder
	sb.WriteString("=============== RESTOCK SERVICE ERROR ===============\n")
	if c != nil && c.Request != nil {
		sb.WriteString(fmt.Sprintf("Route   : %s\n", c.Request.URL.String()))
		sb.WriteString(fmt.Sprintf("Method  : %s\n", c.Request.Method))
		sb.WriteString("-----------------------------------------------------\n")

		if len(c.Request.Header) > 0 {
			sb.WriteString("Headers :\n")
			for key, values := range c.Request.Header {
				v := strings.Join(values, ", ")
				if redactedHeaders[key] {
					v = "[redacted]"
				}
				sb.WriteString(fmt.Sprintf("    %s: %s\n", key, v))
			}
			sb.WriteString("-----------------------------------------------------\n")
		}

		if c.Request.Body != nil {
			body, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
			if len(body) > 0 {
				var pretty bytes.Buffer
				sb.WriteString("Body    :\n")
				if json.Indent(&pretty, body, "    ", "  ") == nil {
					sb.WriteString("    " + pretty.String() + "\n")
				} else {
					sb.WriteString("    " + string(body) + "\n")
				}
				sb.WriteString("-----------------------------------------------------\n")
			}
		}
	}

	sb.WriteString(fmt.Sprintf("Error   : %s\n", errString))
	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, line))
		}
	}
	sb.WriteString("=====================================================\n")
	return sb.String()
}
