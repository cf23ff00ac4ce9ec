// Package respond writes JSON responses and decodes JSON request bodies.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/waffle/httputil"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds every decoded request body.
const MaxBodyBytes = 1 << 20

// MessageBody is the {"message": "..."} shape used by most responses.
type MessageBody struct {
	Message string `json:"message"`
}

// SetLogger routes waffle's JSON encoding failures to logger.
func SetLogger(logger *zap.Logger) {
	httputil.SetJSONLogger(jsonLogger{logger})
}

type jsonLogger struct{ l *zap.Logger }

func (j jsonLogger) Error(msg string, args ...any) {
	j.l.Error(msg, zap.Any("args", args))
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	httputil.WriteJSON(w, status, v)
}

// Message writes {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

// Text writes a plain-text body.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Decode reads a JSON body into v. An empty body leaves v untouched, which
// httputil.BindJSON would reject.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
