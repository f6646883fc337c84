package handler

import (
	"errors"
	"net/http"

	"github.com/dvoronin/membergate/internal/model"
)

// handleError maps service errors to HTTP responses. Anything without an
// explicit mapping is an internal fault and stays opaque to the client.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	var missing *model.MissingFieldError
	switch {
	case errors.As(err, &missing):
		http.Error(w, missing.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrUsernameTaken):
		http.Error(w, "username already taken", http.StatusConflict)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
