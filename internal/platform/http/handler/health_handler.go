// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Check は依存先(SQL, Mongo, Redis)の疎通確認です。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Readiness は /readyz を処理するハンドラーを返します。
// すべてのチェックが成功すれば200、1つでも失敗すれば503です。
func Readiness(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		results := make([]string, len(checks))
		var g errgroup.Group
		for i, chk := range checks {
			g.Go(func() error {
				if err := chk.Ping(ctx); err != nil {
					slog.Warn("readiness check failed", "check", chk.Name, "error", err)
					results[i] = "down"
					return err
				}
				results[i] = "ok"
				return nil
			})
		}
		err := g.Wait()

		body := gin.H{}
		for i, chk := range checks {
			body[chk.Name] = results[i]
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": body})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": body})
	}
}
