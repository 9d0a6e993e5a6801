// Package handler はstocksearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"signalist_backend/internal/api"
	"signalist_backend/internal/feature/stocksearch/transport/http/dto"
	wlentity "signalist_backend/internal/feature/watchlist/domain/entity"
	jwtmw "signalist_backend/internal/platform/jwt"
)

// SearchUsecase は銘柄検索のユースケースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SearchUsecase interface {
	Search(ctx context.Context, userID, query string) ([]wlentity.StockStatus, error)
}

// SearchHandler は銘柄検索のHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler は新しい SearchHandler を作成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search は GET /stocks/search?q= を処理します。
// qが空の場合は人気銘柄を返します。外部APIの失敗は502です。
func (h *SearchHandler) Search(c *gin.Context) {
	stocks, err := h.uc.Search(c.Request.Context(), jwtmw.UserID(c), c.Query("q"))
	if err != nil {
		slog.Error("stock search failed", "query", c.Query("q"), "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "search unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.FromStatuses(stocks))
}
