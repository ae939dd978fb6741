package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ginzalimited/orderdesk/internal/engine"
	"github.com/ginzalimited/orderdesk/internal/order"
)

// respondWithError sends a JSON error payload
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: Failed to marshal JSON response: %v", payload)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Printf("ERROR: Failed to write JSON response: %v", err)
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrCategoryRequired),
		errors.Is(err, order.ErrItemNameRequired),
		errors.Is(err, order.ErrUOMRequired),
		errors.Is(err, order.ErrQuantityInvalid),
		errors.Is(err, order.ErrRateInvalid),
		errors.Is(err, engine.ErrMandatoryDataMissing):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrSubmissionInFlight):
		return http.StatusConflict
	default:
		// Anything unrecognized came back from the downstream sink.
		return http.StatusBadGateway
	}
}
