package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/aksara-server/internal/model"
)

const (
	msgInternal      = "internal server error"
	msgNotConfigured = "service is not configured"
)

// errMalformedBody marks request bodies that are not valid JSON.
var errMalformedBody = errors.New("malformed JSON body")

func handleError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &validationErr):
		WriteMessage(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &maxBytesErr):
		WriteMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, errMalformedBody):
		WriteMessage(w, http.StatusBadRequest, errMalformedBody.Error())
	case errors.Is(err, model.ErrEmailTaken):
		WriteMessage(w, http.StatusConflict, model.ErrEmailTaken.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteMessage(w, http.StatusUnauthorized, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrNotConfigured):
		WriteMessage(w, http.StatusInternalServerError, msgNotConfigured)
	default:
		WriteMessage(w, http.StatusInternalServerError, msgInternal)
	}
}
