package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/user"
)

// RegisterUserRequest represents the request to register a new participant
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall=\x00\n\r\t "`
}

// HandleRegisterUser creates a new participant with the starting balance
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, err := userService.Register(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterUserFailed, err)
			return
		}

		log.Info("User registered", "user_id", u.ID, "username", u.Username)
		respondJSON(w, http.StatusCreated, u)
	}
}

// HandleGetUser returns a participant by id
func HandleGetUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}

		u, err := userService.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, u)
	}
}

// HandleGetUserByUsername looks up a participant by username query parameter
func HandleGetUserByUsername(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetQueryParam(r, w, "username")
		if !ok {
			return
		}

		u, err := userService.GetUserByUsername(r.Context(), username)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, u)
	}
}

// BalanceResponse is the trimmed balance view of a participant
type BalanceResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Credits int64     `json:"credits"`
}

// HandleGetBalance returns only the participant's credit balance
func HandleGetBalance(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}

		u, err := userService.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetUserFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: u.ID, Credits: u.Credits})
	}
}
