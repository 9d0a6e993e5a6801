package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	wlentity "signalist_backend/internal/feature/watchlist/domain/entity"
	jwtmw "signalist_backend/internal/platform/jwt"
)

// mockSearchUsecase はSearchUsecaseインターフェースのモック実装です。
type mockSearchUsecase struct {
	SearchFunc func(ctx context.Context, userID, query string) ([]wlentity.StockStatus, error)
}

func (m *mockSearchUsecase) Search(ctx context.Context, userID, query string) ([]wlentity.StockStatus, error) {
	return m.SearchFunc(ctx, userID, query)
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		userID         string
		searchFunc     func(ctx context.Context, userID, query string) ([]wlentity.StockStatus, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success: passes caller and query",
			url:    "/stocks/search?q=apple",
			userID: "u-1",
			searchFunc: func(_ context.Context, userID, query string) ([]wlentity.StockStatus, error) {
				assert.Equal(t, "u-1", userID)
				assert.Equal(t, "apple", query)
				return []wlentity.StockStatus{{Stock: mdentity.Stock{Symbol: "AAPL", Name: "APPLE INC", Type: "Common Stock"}, IsInWatchlist: true}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"symbol":"AAPL","name":"APPLE INC","exchange":"","type":"Common Stock","isInWatchlist":true}]`,
		},
		{
			name: "success: empty result is an empty array",
			url:  "/stocks/search",
			searchFunc: func(context.Context, string, string) ([]wlentity.StockStatus, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: vendor error",
			url:  "/stocks/search?q=x",
			searchFunc: func(context.Context, string, string) ([]wlentity.StockStatus, error) {
				return nil, errors.New("finnhub http 500")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"search unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSearchHandler(&mockSearchUsecase{SearchFunc: tt.searchFunc})
			r := gin.New()
			r.GET("/stocks/search", func(c *gin.Context) {
				if tt.userID != "" {
					c.Set(jwtmw.ContextUserID, tt.userID)
				}
			}, h.Search)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
