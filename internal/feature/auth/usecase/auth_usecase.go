package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"signalist_backend/internal/feature/auth/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// EventUserCreated is published after a successful signup.
	EventUserCreated = "app/user.created"

	defaultRefreshTTL  = 7 * 24 * time.Hour
	defaultMaxSessions = 5
	publishTimeout     = 5 * time.Second
)

// dummyHash keeps Login's bcrypt cost constant when the email is unknown.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	GenerateToken(userID string, email string) (string, error)
	Expiration() time.Duration
}

// EventPublisher sends domain events to downstream workers.
type EventPublisher interface {
	Publish(ctx context.Context, name string, data any) error
}

// Config holds session policy.
type Config struct {
	RefreshTTL  time.Duration
	MaxSessions int
}

// LoadConfig reads REFRESH_TOKEN_TTL; unset or malformed values fall back to seven days.
func LoadConfig() Config {
	cfg := Config{RefreshTTL: defaultRefreshTTL, MaxSessions: defaultMaxSessions}
	if v := os.Getenv("REFRESH_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RefreshTTL = d
		}
	}
	return cfg
}

// SignupInput carries the credentials and profile collected by the signup form.
type SignupInput struct {
	Email             string
	Password          string
	FullName          string
	Country           string
	InvestmentGoals   string
	RiskTolerance     string
	PreferredIndustry string
}

// UserCreatedEvent is the payload of EventUserCreated.
type UserCreatedEvent struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// SessionMeta describes the client opening a session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until the access token expires
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	events       EventPublisher
	cfg          Config
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, events EventPublisher, cfg Config) *authUsecase {
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		events:       events,
		cfg:          cfg,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、user.createdイベントを非同期で発行します。
// イベント発行の失敗はログに記録するのみで、登録結果には影響しません。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) error {
	if err := validatePassword(in.Password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		Password:          string(hashed),
		Name:              in.FullName,
		Country:           in.Country,
		InvestmentGoals:   in.InvestmentGoals,
		RiskTolerance:     in.RiskTolerance,
		PreferredIndustry: in.PreferredIndustry,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return err
	}

	if u.events != nil {
		evt := UserCreatedEvent{
			Email:             user.Email,
			Name:              user.Name,
			Country:           user.Country,
			InvestmentGoals:   user.InvestmentGoals,
			RiskTolerance:     user.RiskTolerance,
			PreferredIndustry: user.PreferredIndustry,
		}
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		go func() {
			defer cancel()
			if err := u.events.Publish(pubCtx, EventUserCreated, evt); err != nil {
				slog.Warn("failed to publish user.created", "user_id", user.ID, "error", err)
			}
		}()
	}
	return nil
}

// Login はユーザーを認証し、アクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		return nil, ErrInvalidCredentials
	}

	// 同時セッション数の上限を超える場合は最も古いセッションを削除
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= int64(u.cfg.MaxSessions) {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	return u.issue(ctx, user, meta)
}

// Refresh はリフレッシュトークンをローテーションし、新しいトークンペアを返します。
// 失効済みトークンの再利用を検出した場合、そのユーザーの全セッションを失効させます。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.IsRevoked() {
		slog.Warn("revoked refresh token reused", "user_id", session.UserID)
		if err := u.sessions.RevokeAllByUserID(ctx, session.UserID); err != nil {
			slog.Error("failed to revoke sessions", "user_id", session.UserID, "error", err)
		}
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := u.sessions.Revoke(ctx, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issue(ctx, user, meta)
}

// Logout はリフレッシュトークンを失効させます。存在しない・失効済みのトークンでも成功します。
// 他ユーザーのトークンはErrInvalidRefreshTokenになります。
func (u *authUsecase) Logout(ctx context.Context, userID, refreshToken string) error {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return ErrInvalidRefreshToken
	}
	if session.IsRevoked() {
		return nil
	}
	if err := u.sessions.Revoke(ctx, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta SessionMeta) (*TokenPair, error) {
	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.RefreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(u.jwtGenerator.Expiration().Seconds()),
	}, nil
}

// newRefreshToken returns 32 random bytes as 64 hex characters.
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
