package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/round"
)

// HandleGetCurrentRound returns the open round for a market, opening one on
// demand. Feed unavailability declines the open with a 503 so clients retry.
func HandleGetCurrentRound(roundService round.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		family := chi.URLParam(r, "family")
		marketKey := chi.URLParam(r, "marketKey")

		rnd, err := roundService.GetOrOpenRound(r.Context(), family, marketKey)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetRoundFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, rnd)
	}
}

// HandleGetRound returns a round by id, resolved or not
func HandleGetRound(roundService round.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRoundID)
			return
		}

		rnd, err := roundService.GetRound(r.Context(), roundID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetRoundFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, rnd)
	}
}

// HandleGetRoundHistory lists a market's recently closed rounds
func HandleGetRoundHistory(roundService round.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		family := chi.URLParam(r, "family")
		marketKey := chi.URLParam(r, "marketKey")

		limit, ok := GetLimitParam(r, w, round.DefaultHistoryLimit)
		if !ok {
			return
		}

		rounds, err := roundService.ListRecentRounds(r.Context(), family, marketKey, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgListRoundsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rounds})
	}
}

// CreateCustomRoundRequest represents the request to open a token round
type CreateCustomRoundRequest struct {
	CreatorID       string `json:"creator_id" validate:"required,uuid"`
	TokenAddress    string `json:"token_address" validate:"required,max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,oneof=15 30 60"`
}

// HandleCreateCustomRound opens a user-created token round
func HandleCreateCustomRound(roundService round.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateCustomRoundRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create custom round"); err != nil {
			return
		}

		creatorID, err := uuid.Parse(req.CreatorID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}

		rnd, err := roundService.CreateCustomRound(r.Context(), creatorID, req.TokenAddress, req.DurationMinutes)
		if err != nil {
			respondServiceError(w, r, ErrMsgCreateCustomRoundFailed, err)
			return
		}

		log.Info("Custom round created", "round_id", rnd.ID, "token", rnd.TokenSymbol)
		respondJSON(w, http.StatusCreated, rnd)
	}
}

// HandleListActiveCustomRounds lists open user-created token rounds
func HandleListActiveCustomRounds(roundService round.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rounds, err := roundService.ListActiveCustomRounds(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListRoundsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rounds})
	}
}
