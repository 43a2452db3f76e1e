package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrUnknownOrExhaustedGroup):
		return http.StatusNotFound, ErrMsgGroupUnavailableError
	case errors.Is(err, domain.ErrInsufficientParticipants):
		return http.StatusConflict, ErrMsgNotEnoughPeopleError
	case errors.Is(err, domain.ErrGroupInProgress):
		return http.StatusConflict, ErrMsgGroupInProgressError
	case errors.Is(err, domain.ErrInvalidDataset):
		// Dataset errors point at the caller's own rows, so the detail is safe to show.
		return http.StatusBadRequest, ErrMsgInvalidDatasetErrorLabel + ": " + datasetDetail(err)
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrRandomSourceFailed):
		return http.StatusInternalServerError, ErrMsgRandomUnavailableError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgRequestTimeoutError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// datasetDetail strips everything before the sentinel so file paths of
// server-side datasets are not echoed back.
func datasetDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrMsgInvalidDataset); i >= 0 {
		msg = msg[i+len(domain.ErrMsgInvalidDataset):]
	}
	msg = strings.TrimLeft(msg, ": ")
	if msg == "" {
		return domain.ErrMsgInvalidDataset
	}
	return msg
}
