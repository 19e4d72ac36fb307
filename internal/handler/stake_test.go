package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
)

func TestHandlePlaceStake(t *testing.T) {
	InitValidator()

	roundID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockStakeService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "up",
				Amount:  100,
			},
			setupMock: func(m *MockStakeService) {
				m.On("PlaceStake", mock.Anything, roundID, userID, domain.SideUp, int64(100)).
					Return(&domain.Stake{
						ID:      uuid.New(),
						RoundID: roundID,
						UserID:  userID,
						Side:    domain.SideUp,
						Amount:  100,
						Status:  domain.StakeStatusPending,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"pending"`,
		},
		{
			name: "Invalid Side",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "sideways",
				Amount:  100,
			},
			setupMock:      func(m *MockStakeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name: "Zero Amount",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "up",
			},
			setupMock:      func(m *MockStakeService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name: "Insufficient Balance",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "down",
				Amount:  5000,
			},
			setupMock: func(m *MockStakeService) {
				m.On("PlaceStake", mock.Anything, roundID, userID, domain.SideDown, int64(5000)).
					Return(nil, domain.ErrInsufficientBalance)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInsufficientBalanceError,
		},
		{
			name: "Round Closed",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "up",
				Amount:  50,
			},
			setupMock: func(m *MockStakeService) {
				m.On("PlaceStake", mock.Anything, roundID, userID, domain.SideUp, int64(50)).
					Return(nil, domain.ErrRoundClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgRoundClosedError,
		},
		{
			name: "Unknown User",
			requestBody: PlaceStakeRequest{
				RoundID: roundID.String(),
				UserID:  userID.String(),
				Side:    "up",
				Amount:  50,
			},
			setupMock: func(m *MockStakeService) {
				m.On("PlaceStake", mock.Anything, roundID, userID, domain.SideUp, int64(50)).
					Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockStakeService{}
			tt.setupMock(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/stakes", bytes.NewReader(body))
			w := httptest.NewRecorder()

			HandlePlaceStake(mockSvc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleListRoundStakes(t *testing.T) {
	roundID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockStakeService{}
		mockSvc.On("ListLiveStakes", mock.Anything, roundID, 50).
			Return([]domain.Stake{
				{ID: uuid.New(), RoundID: roundID, Side: domain.SideUp, Amount: 10, Username: "alice"},
			}, nil)

		router := chi.NewRouter()
		router.Get("/rounds/{roundID}/stakes", HandleListRoundStakes(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/"+roundID.String()+"/stakes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid Round ID", func(t *testing.T) {
		mockSvc := &MockStakeService{}

		router := chi.NewRouter()
		router.Get("/rounds/{roundID}/stakes", HandleListRoundStakes(mockSvc))

		req := httptest.NewRequest("GET", "/rounds/nope/stakes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "ListLiveStakes")
	})
}

func TestHandleListUserStakes(t *testing.T) {
	userID := uuid.New()

	mockSvc := &MockStakeService{}
	mockSvc.On("ListUserStakes", mock.Anything, userID, 10).
		Return([]domain.Stake{
			{ID: uuid.New(), UserID: userID, Side: domain.SideHigher, Amount: 75, Status: domain.StakeStatusWon, Profit: 75},
		}, nil)

	router := chi.NewRouter()
	router.Get("/users/{userID}/stakes", HandleListUserStakes(mockSvc))

	req := httptest.NewRequest("GET", "/users/"+userID.String()+"/stakes?limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"won"`)
	mockSvc.AssertExpectations(t)
}
