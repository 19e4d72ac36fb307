package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/logger"
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

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent by the time an
	// encode failure could surface
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgInvalidID          = "Invalid id"

	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgUsernameTakenError       = "Username is already taken"
	ErrMsgInsufficientBalanceError = "Not enough credits"
	ErrMsgRoundNotFoundError       = "Round not found"
	ErrMsgRoundClosedError         = "Betting is closed for this round"
	ErrMsgRoundAlreadyOpenError    = "A round is already open for this market"
	ErrMsgInvalidAmountError       = "Stake amount must be between 1 and 100000"
	ErrMsgInvalidSideError         = "Invalid side for this market"
	ErrMsgMarketNotFoundError      = "Unknown market"
	ErrMsgInvalidDurationError     = "Duration must be 15, 30 or 60 minutes"
	ErrMsgOracleUnavailableError   = "Price feed is temporarily unavailable. Please try again."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound, ErrMsgRoundNotFoundError
	case errors.Is(err, domain.ErrRoundClosed), errors.Is(err, domain.ErrRoundAlreadyResolved):
		return http.StatusConflict, ErrMsgRoundClosedError
	case errors.Is(err, domain.ErrRoundAlreadyOpen):
		return http.StatusConflict, ErrMsgRoundAlreadyOpenError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidSide):
		return http.StatusBadRequest, ErrMsgInvalidSideError
	case errors.Is(err, domain.ErrMarketNotFound):
		return http.StatusNotFound, ErrMsgMarketNotFoundError
	case errors.Is(err, domain.ErrInvalidDuration):
		return http.StatusBadRequest, ErrMsgInvalidDurationError
	case errors.Is(err, domain.ErrOracleUnavailable):
		return http.StatusServiceUnavailable, ErrMsgOracleUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a service error with operation context and sends
// the mapped user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName, "error", err)
	} else {
		log.Warn(opName, "error", err)
	}
	respondError(w, status, message)
}
