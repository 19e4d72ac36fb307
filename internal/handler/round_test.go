package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
)

func openRound(family, marketKey string) *domain.Round {
	open := 100.0
	return &domain.Round{
		ID:        uuid.New(),
		Family:    family,
		MarketKey: marketKey,
		OpenTime:  time.Now().Add(-time.Minute),
		CloseTime: time.Now().Add(4 * time.Minute),
		OpenValue: &open,
	}
}

func TestHandleGetCurrentRound(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("GetOrOpenRound", mock.Anything, "crypto", "BTC").
			Return(openRound("crypto", "BTC"), nil)

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/current", HandleGetCurrentRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/crypto/BTC/current", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"market_key":"BTC"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Unknown Market", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("GetOrOpenRound", mock.Anything, "crypto", "NOPE").
			Return(nil, domain.ErrMarketNotFound)

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/current", HandleGetCurrentRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/crypto/NOPE/current", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgMarketNotFoundError)
	})

	t.Run("Oracle Unavailable", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("GetOrOpenRound", mock.Anything, "stock", "AAPL").
			Return(nil, domain.ErrOracleUnavailable)

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/current", HandleGetCurrentRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/stock/AAPL/current", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgOracleUnavailableError)
	})
}

func TestHandleGetRound(t *testing.T) {
	roundID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rnd := openRound("crypto", "ETH")
		rnd.ID = roundID

		mockSvc := &MockRoundService{}
		mockSvc.On("GetRound", mock.Anything, roundID).Return(rnd, nil)

		router := chi.NewRouter()
		router.Get("/rounds/{roundID}", HandleGetRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/"+roundID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), roundID.String())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		mockSvc := &MockRoundService{}

		router := chi.NewRouter()
		router.Get("/rounds/{roundID}", HandleGetRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/garbage", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRoundID)
		mockSvc.AssertNotCalled(t, "GetRound")
	})

	t.Run("Not Found", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("GetRound", mock.Anything, roundID).Return(nil, domain.ErrRoundNotFound)

		router := chi.NewRouter()
		router.Get("/rounds/{roundID}", HandleGetRound(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/"+roundID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetRoundHistory(t *testing.T) {
	t.Run("Default Limit", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("ListRecentRounds", mock.Anything, "stock", "TSLA", 20).
			Return([]domain.Round{*openRound("stock", "TSLA")}, nil)

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/history", HandleGetRoundHistory(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/stock/TSLA/history", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"market_key":"TSLA"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Explicit Limit", func(t *testing.T) {
		mockSvc := &MockRoundService{}
		mockSvc.On("ListRecentRounds", mock.Anything, "stock", "TSLA", 5).
			Return([]domain.Round{}, nil)

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/history", HandleGetRoundHistory(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/stock/TSLA/history?limit=5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		mockSvc := &MockRoundService{}

		router := chi.NewRouter()
		router.Get("/rounds/{family}/{marketKey}/history", HandleGetRoundHistory(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/stock/TSLA/history?limit=abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
		mockSvc.AssertNotCalled(t, "ListRecentRounds")
	})
}

func TestHandleCreateCustomRound(t *testing.T) {
	InitValidator()

	creatorID := uuid.New()

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockRoundService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: CreateCustomRoundRequest{
				CreatorID:       creatorID.String(),
				TokenAddress:    "0xabc123",
				DurationMinutes: 30,
			},
			setupMock: func(m *MockRoundService) {
				rnd := openRound("custom", "0xabc123")
				rnd.TokenSymbol = "PEPE"
				m.On("CreateCustomRound", mock.Anything, creatorID, "0xabc123", 30).Return(rnd, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"token_symbol":"PEPE"`,
		},
		{
			name: "Invalid Duration",
			requestBody: CreateCustomRoundRequest{
				CreatorID:       creatorID.String(),
				TokenAddress:    "0xabc123",
				DurationMinutes: 45,
			},
			setupMock:      func(m *MockRoundService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name: "Missing Token Address",
			requestBody: CreateCustomRoundRequest{
				CreatorID:       creatorID.String(),
				DurationMinutes: 15,
			},
			setupMock:      func(m *MockRoundService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name: "Token Lookup Fails",
			requestBody: CreateCustomRoundRequest{
				CreatorID:       creatorID.String(),
				TokenAddress:    "0xdead",
				DurationMinutes: 15,
			},
			setupMock: func(m *MockRoundService) {
				m.On("CreateCustomRound", mock.Anything, creatorID, "0xdead", 15).
					Return(nil, domain.ErrMarketNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgMarketNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockRoundService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/rounds/custom", bytes.NewReader(body))
			w := httptest.NewRecorder()

			HandleCreateCustomRound(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleListActiveCustomRounds(t *testing.T) {
	mockSvc := &MockRoundService{}
	mockSvc.On("ListActiveCustomRounds", mock.Anything).
		Return([]domain.Round{*openRound("custom", "0xabc")}, nil)

	req := httptest.NewRequest("GET", "/rounds/custom/active", nil)
	w := httptest.NewRecorder()
	HandleListActiveCustomRounds(mockSvc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"family":"custom"`)
	mockSvc.AssertExpectations(t)
}
