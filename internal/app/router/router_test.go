package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "signalist_backend/internal/feature/auth/transport/handler"
	authusecase "signalist_backend/internal/feature/auth/usecase"
	searchhandler "signalist_backend/internal/feature/stocksearch/transport/handler"
	"signalist_backend/internal/feature/watchlist/domain/entity"
	watchlisthandler "signalist_backend/internal/feature/watchlist/transport/handler"
	"signalist_backend/internal/feature/watchlist/usecase"
	jwtmw "signalist_backend/internal/platform/jwt"
)

const testSecret = "router-test-secret"

type stubAuth struct{}

func (stubAuth) Signup(context.Context, authusecase.SignupInput) error { return nil }
func (stubAuth) Login(context.Context, string, string, authusecase.SessionMeta) (*authusecase.TokenPair, error) {
	return &authusecase.TokenPair{}, nil
}
func (stubAuth) Refresh(context.Context, string, authusecase.SessionMeta) (*authusecase.TokenPair, error) {
	return &authusecase.TokenPair{}, nil
}
func (stubAuth) Logout(context.Context, string, string) error { return nil }

// stubMembership records the caller seen by Add.
type stubMembership struct{ lastUser string }

func (s *stubMembership) Add(_ context.Context, userID, _, _ string) usecase.Result {
	s.lastUser = userID
	if userID == "" {
		return usecase.Result{Error: usecase.ErrMsgNotAuth, Reason: usecase.ReasonUnauthenticated}
	}
	return usecase.Result{Success: true, Message: usecase.MsgAdded}
}
func (s *stubMembership) Remove(context.Context, string, string) usecase.Result {
	return usecase.Result{Success: true, Message: usecase.MsgRemoved}
}
func (s *stubMembership) IsMember(context.Context, string, string) bool { return false }
func (s *stubMembership) EnrichWithStatus(_ context.Context, _ string, in []entity.StockStatus) []entity.StockStatus {
	return in
}

type stubEnrichment struct{}

func (stubEnrichment) GetUserWatchlist(context.Context, string) []entity.EnrichedEntry {
	return []entity.EnrichedEntry{}
}

type stubSearch struct{}

func (stubSearch) Search(context.Context, string, string) ([]entity.StockStatus, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubMembership) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(jwtmw.EnvKeyJWTSecret, testSecret)
	m := &stubMembership{}
	r := NewRouter(
		authhandler.NewAuthHandler(stubAuth{}),
		watchlisthandler.NewWatchlistHandler(m, stubEnrichment{}),
		searchhandler.NewSearchHandler(stubSearch{}),
	)
	return r, m
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/watchlist", "/stocks/search"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_LogoutRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_OptionalAuthPassesCaller(t *testing.T) {
	r, m := newTestRouter(t)

	body := `{"symbol":"AAPL","company":"Apple"}`
	req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "u-42"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-42", m.lastUser)

	// 不正なトークンは匿名として扱われ、ユースケースが401を返す
	req = httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, m.lastUser)
}

func TestRouter_CORS(t *testing.T) {
	t.Setenv(EnvKeyCORSOrigins, "https://app.example.com, ")
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowedOrigins(t *testing.T) {
	assert.Nil(t, allowedOrigins(""))
	assert.Equal(t, []string{"https://a.io", "http://localhost:3000"}, allowedOrigins(" https://a.io ,,http://localhost:3000"))
}

func TestRouter_CORSDefaultOrigin(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
