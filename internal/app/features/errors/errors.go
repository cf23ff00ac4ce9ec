// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"github.com/dalemusser/waffle/pantry/requestid"
	"go.uber.org/zap"
)

// ErrorLogger logs failed requests and writes their JSON message body.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger. A nil logger discards output.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err at error level and writes 500 {"message": userMsg}.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	respond.Message(w, http.StatusInternalServerError, userMsg)
}

// LogClientError logs at debug level and writes status {"message": userMsg}.
func (e *ErrorLogger) LogClientError(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	e.Log.Debug(logMsg, append(e.fields(r, err), zap.Int("status", status))...)
	respond.Message(w, status, userMsg)
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestid.Get(r.Context())),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
