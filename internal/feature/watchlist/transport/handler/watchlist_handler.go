// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	mdentity "signalist_backend/internal/feature/marketdata/domain/entity"
	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/feature/watchlist/transport/http/dto"
	"signalist_backend/internal/feature/watchlist/usecase"
	jwtmw "signalist_backend/internal/platform/jwt"
)

// MembershipUsecase はウォッチリストの追加・削除・照会を行います。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MembershipUsecase interface {
	Add(ctx context.Context, userID, symbol, company string) usecase.Result
	Remove(ctx context.Context, userID, symbol string) usecase.Result
	IsMember(ctx context.Context, userID, symbol string) bool
	EnrichWithStatus(ctx context.Context, userID string, stocks []entity.StockStatus) []entity.StockStatus
}

// EnrichmentUsecase はマーケットデータ付きのウォッチリストを返します。
type EnrichmentUsecase interface {
	GetUserWatchlist(ctx context.Context, userID string) []entity.EnrichedEntry
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	membership MembershipUsecase
	enrichment EnrichmentUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(membership MembershipUsecase, enrichment EnrichmentUsecase) *WatchlistHandler {
	return &WatchlistHandler{membership: membership, enrichment: enrichment}
}

// List は GET /watchlist を処理します。未認証の場合は空配列です。
func (h *WatchlistHandler) List(c *gin.Context) {
	entries := h.enrichment.GetUserWatchlist(c.Request.Context(), jwtmw.UserID(c))
	c.JSON(http.StatusOK, dto.FromEnriched(entries))
}

// Add は POST /watchlist を処理します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ResultResponse{Error: "invalid request body"})
		return
	}
	writeResult(c, h.membership.Add(c.Request.Context(), jwtmw.UserID(c), req.Symbol, req.Company))
}

// Remove は DELETE /watchlist/:symbol を処理します。存在しない銘柄の削除も成功です。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	writeResult(c, h.membership.Remove(c.Request.Context(), jwtmw.UserID(c), c.Param("symbol")))
}

// Status は GET /watchlist/:symbol を処理します。
func (h *WatchlistHandler) Status(c *gin.Context) {
	symbol := usecase.NormalizeSymbol(c.Param("symbol"))
	c.JSON(http.StatusOK, dto.MembershipResponse{
		Symbol:        symbol,
		IsInWatchlist: h.membership.IsMember(c.Request.Context(), jwtmw.UserID(c), symbol),
	})
}

// BulkStatus は POST /watchlist/status を処理します。入力順を保持します。
func (h *WatchlistHandler) BulkStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ResultResponse{Error: "invalid request body"})
		return
	}

	stocks := make([]entity.StockStatus, len(req.Stocks))
	for i, s := range req.Stocks {
		stocks[i] = entity.StockStatus{Stock: mdentity.Stock{Symbol: s.Symbol, Name: s.Name, Exchange: s.Exchange, Type: s.Type}}
	}
	stocks = h.membership.EnrichWithStatus(c.Request.Context(), jwtmw.UserID(c), stocks)

	out := make([]dto.StockStatusItem, len(stocks))
	for i, s := range stocks {
		out[i] = dto.StockStatusItem{
			StockRequest:  dto.StockRequest{Symbol: s.Symbol, Name: s.Name, Exchange: s.Exchange, Type: s.Type},
			IsInWatchlist: s.IsInWatchlist,
		}
	}
	c.JSON(http.StatusOK, out)
}

func writeResult(c *gin.Context, r usecase.Result) {
	c.JSON(statusFor(r), dto.FromResult(r))
}

func statusFor(r usecase.Result) int {
	if r.Success {
		return http.StatusOK
	}
	switch r.Reason {
	case usecase.ReasonUnauthenticated:
		return http.StatusUnauthorized
	case usecase.ReasonInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
