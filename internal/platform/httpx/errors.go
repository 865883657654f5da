package httpx

import (
	"net/http"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsNotFound(err):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case shared.IsConflict(err):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case shared.IsInvalid(err):
		Problem(w, http.StatusUnprocessableEntity, "Invalid Request", err.Error())
	case shared.IsUnauthorized(err):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
