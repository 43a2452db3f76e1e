package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// MaxRequestBodyBytes bounds JSON request bodies; inline datasets can be large
const MaxRequestBodyBytes = 8 << 20

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req DrawRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Draw group"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request,
// falling back to defaultValue when it is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// sessionIDParam parses the {id} route parameter. On failure the response
// has been written and ok is false.
func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid session id", "id", chi.URLParam(r, "id"))
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return uuid.Nil, false
	}
	return id, true
}

// LogRequestFields logs common request fields at debug level
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
