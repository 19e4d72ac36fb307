package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
)

func TestHandleGetLeaderboard(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockStatsService{}
		mockSvc.On("GetLeaderboard", mock.Anything).Return(&domain.Leaderboard{
			HighestWinRate: []domain.LeaderboardEntry{
				{UserID: uuid.New(), Username: "sharp", TotalBets: 20, Wins: 16, WinRate: 0.8},
			},
			MostBets:    []domain.LeaderboardEntry{},
			MostCredits: []domain.LeaderboardEntry{},
		}, nil)

		req := httptest.NewRequest("GET", "/stats/leaderboard", nil)
		w := httptest.NewRecorder()
		HandleGetLeaderboard(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"sharp"`)
		assert.Contains(t, w.Body.String(), `"highest_win_rate"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		mockSvc := &MockStatsService{}
		mockSvc.On("GetLeaderboard", mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/stats/leaderboard", nil)
		w := httptest.NewRecorder()
		HandleGetLeaderboard(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleGetRecentWinners(t *testing.T) {
	mockSvc := &MockStatsService{}
	mockSvc.On("GetRecentWinners", mock.Anything).Return([]domain.Winner{
		{Username: "lucky", Family: "crypto", MarketKey: "BTC", Amount: 100, Profit: 100, SettledAt: time.Now()},
	}, nil)

	req := httptest.NewRequest("GET", "/stats/winners", nil)
	w := httptest.NewRecorder()
	HandleGetRecentWinners(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"lucky"`)
	mockSvc.AssertExpectations(t)
}
