// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
)

// NotFound answers unknown paths with 404 {"message":"Not found"}.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers a known path used with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
}
