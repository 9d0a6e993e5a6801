// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"signalist_backend/internal/api"
	"signalist_backend/internal/feature/auth/usecase"
	jwtmw "signalist_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) error
	Login(ctx context.Context, email, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Logout(ctx context.Context, userID, refreshToken string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

func tokenResponse(p *usecase.TokenPair) api.TokenPairResponse {
	return api.TokenPairResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresIn: p.ExpiresIn}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー、短すぎるパスワードは400
// - ユーザー作成失敗時（メール重複等）は409
// - 成功時は201
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Email:             string(req.Email),
		Password:          req.Password,
		FullName:          req.FullName,
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrWeakPassword) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "password too short"})
			return
		}
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Refresh はリフレッシュトークンをローテーションします。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrSessionRevoked),
			errors.Is(err, usecase.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("refresh error", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, tokenResponse(pair))
}

// Logout は呼び出し元のリフレッシュトークンを失効させます。AuthRequiredの後ろで使用します。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req api.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	userID := jwtmw.UserID(c)
	if err := h.auth.Logout(c.Request.Context(), userID, req.RefreshToken); err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("logout error", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}
