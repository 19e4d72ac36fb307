package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/stake"
)

// PlaceStakeRequest represents the request to place a wager on a round
type PlaceStakeRequest struct {
	RoundID string `json:"round_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,uuid"`
	Side    string `json:"side" validate:"required,side"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
}

// HandlePlaceStake places a wager on an open round
func HandlePlaceStake(stakeService stake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlaceStakeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Place stake"); err != nil {
			return
		}

		roundID, err := uuid.Parse(req.RoundID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRoundID)
			return
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}

		st, err := stakeService.PlaceStake(r.Context(), roundID, userID, domain.Side(req.Side), req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgPlaceStakeFailed, err)
			return
		}

		log.Info("Stake placed", "stake_id", st.ID, "round_id", st.RoundID, "amount", st.Amount)
		respondJSON(w, http.StatusCreated, st)
	}
}

// HandleListRoundStakes returns a round's recent stakes for the live feed
func HandleListRoundStakes(stakeService stake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := uuid.Parse(chi.URLParam(r, "roundID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRoundID)
			return
		}

		limit, ok := GetLimitParam(r, w, stake.DefaultLiveStakesLimit)
		if !ok {
			return
		}

		stakes, err := stakeService.ListLiveStakes(r.Context(), roundID, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgListStakesFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stakes})
	}
}

// HandleListUserStakes returns a participant's stake history
func HandleListUserStakes(stakeService stake.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}

		limit, ok := GetLimitParam(r, w, stake.DefaultLiveStakesLimit)
		if !ok {
			return
		}

		stakes, err := stakeService.ListUserStakes(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgListStakesFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stakes})
	}
}
