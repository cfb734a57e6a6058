package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/bugstore/internal/delivery/http/response"
	"github.com/Pesokrava/bugstore/internal/domain"
	"github.com/Pesokrava/bugstore/internal/pkg/logger"
)

// writeError maps domain error kinds to HTTP responses
func writeError(w http.ResponseWriter, log *logger.Logger, scope string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrInvalidFormat):
		response.Errors(w, http.StatusBadRequest, domain.Messages(err))
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, domain.Messages(err)[0])
	case errors.Is(err, domain.ErrConflict):
		response.Error(w, http.StatusConflict, domain.Messages(err)[0])
	default:
		log.Error("Internal error in "+scope+" handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
