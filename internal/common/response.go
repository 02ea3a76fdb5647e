package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithDomainError writes err as a structured refusal. Failures that do
// not belong to the domain taxonomy are logged and answered with a generic 500.
func RespondWithDomainError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	}
	RespondWithJSON(w, status, ErrorResponse{Error: PublicMessage(err), Kind: KindFromError(err)})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 10 << 20

// DecodeJSON reads a JSON request body of at most MaxBodyBytes into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return Validationf("request body is required")
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Validationf("request body too large")
		}
		return Validationf("invalid request payload")
	}
	return nil
}
