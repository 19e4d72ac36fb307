package handler

import (
	"net/http"

	"github.com/pricetide/pricetide/internal/stats"
)

// HandleGetLeaderboard returns the three ranked leaderboard views
func HandleGetLeaderboard(statsService stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := statsService.GetLeaderboard(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetLeaderboardFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, board)
	}
}

// HandleGetRecentWinners returns the most recently settled winning stakes
func HandleGetRecentWinners(statsService stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		winners, err := statsService.GetRecentWinners(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetRecentWinnersFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: winners})
	}
}

// MarketCatalogView exposes the configured market keys per family.
// *market.Catalog satisfies this.
type MarketCatalogView interface {
	MarketKeys() map[string][]string
}

// HandleListMarkets returns the configured market catalog keys per family
func HandleListMarkets(catalog MarketCatalogView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: catalog.MarketKeys()})
	}
}
