// Package router wires HTTP routes to handlers.
package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "signalist_backend/internal/feature/auth/transport/handler"
	searchhandler "signalist_backend/internal/feature/stocksearch/transport/handler"
	watchlisthandler "signalist_backend/internal/feature/watchlist/transport/handler"
	"signalist_backend/internal/platform/http/handler"
	jwtmw "signalist_backend/internal/platform/jwt"
)

// EnvKeyCORSOrigins はカンマ区切りの許可オリジンです。
const (
	EnvKeyCORSOrigins = "CORS_ALLOWED_ORIGINS"
	defaultCORSOrigin = "http://localhost:3000"
)

func NewRouter(authHandler *authhandler.AuthHandler, watchlist *watchlisthandler.WatchlistHandler,
	search *searchhandler.SearchHandler, checks ...handler.Check) *gin.Engine {
	r := gin.Default()

	corsOrigins := os.Getenv(EnvKeyCORSOrigins)
	if corsOrigins == "" {
		corsOrigins = defaultCORSOrigin
	}
	if origins := allowedOrigins(corsOrigins); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(checks...))
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/logout", authHandler.Logout)
	}

	// 認証任意のルート
	// トークンがなければ匿名ユーザーとして扱う（ユースケース側で未認証を判定）
	opt := r.Group("/")
	opt.Use(jwtmw.OptionalAuth())
	{
		opt.GET("/watchlist", watchlist.List)
		opt.POST("/watchlist", watchlist.Add)
		opt.POST("/watchlist/status", watchlist.BulkStatus)
		opt.GET("/watchlist/:symbol", watchlist.Status)
		opt.DELETE("/watchlist/:symbol", watchlist.Remove)
		opt.GET("/stocks/search", search.Search)
	}

	return r
}

func allowedOrigins(v string) []string {
	var out []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
