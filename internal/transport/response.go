package transport

import (
	"net/http"

	"barwy-shop/internal/middleware"
	"barwy-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgInvalidID = "Некоректний ідентифікатор"

// StatusFor maps a response kind to its HTTP status code
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindOK:
		return http.StatusOK
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the envelope. successStatus overrides 200 for successful responses.
func respond(w http.ResponseWriter, resp service.Response, successStatus int) {
	status := StatusFor(resp.Kind)
	if resp.IsSuccess && successStatus != 0 {
		status = successStatus
	}
	middleware.RespondWithJSON(w, status, resp)
}

func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
