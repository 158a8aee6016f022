package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-admin/storefront-admin/internal/auth"
	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
	"github.com/storefront-admin/storefront-admin/internal/users"
	_ "github.com/storefront-admin/storefront-admin/testing"
)

type stubUsers struct {
	byEmail map[string]users.User
	err     error
}

func (s *stubUsers) GetByEmail(ctx context.Context, email string) (users.User, error) {
	if s.err != nil {
		return users.User{}, s.err
	}
	u, ok := s.byEmail[email]
	if !ok {
		return users.User{}, shared.ErrNotFound
	}
	return u, nil
}

type fixture struct {
	mr      *miniredis.Miniredis
	service *auth.Service
	router  http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	lookup := &stubUsers{byEmail: map[string]users.User{
		"ana@example.com": {ID: 7, Name: "Ana", Email: "ana@example.com", PasswordHash: &hashed, Profile: shared.ProfileAdmin},
		"sso@example.com": {ID: 8, Name: "Sso", Email: "sso@example.com", Profile: shared.ProfileManager},
	}}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	service := auth.NewService(lookup, auth.NewIssuer("test-secret", time.Hour), auth.NewRedisTokenStore(client))

	r := chi.NewRouter()
	r.Route("/manager", func(r chi.Router) {
		auth.NewHandler(nil, service, httpx.NewValidator()).MountRoutes(r)
		r.With(service.Middleware).Get("/eu", func(w http.ResponseWriter, r *http.Request) {
			httpx.JSON(w, http.StatusOK, shared.PrincipalFromContext(r.Context()))
		})
	})
	return &fixture{mr: mr, service: service, router: r}
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	rr := f.do(http.MethodPost, "/manager/entrar", `{"email":"ana@example.com","senha":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var res auth.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestLoginIssuesRegisteredToken(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)
	assert.Len(t, f.mr.Keys(), 1)
	assert.True(t, strings.HasPrefix(f.mr.Keys()[0], "token:"))

	rr := f.do(http.MethodGet, "/manager/eu", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	var principal shared.Principal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &principal))
	assert.Equal(t, int64(7), principal.UserID)
	assert.Equal(t, shared.ProfileAdmin, principal.Profile)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	for _, body := range []string{
		`{"email":"ana@example.com","senha":"wrong"}`,
		`{"email":"nobody@example.com","senha":"secret1"}`,
		`{"email":"sso@example.com","senha":"anything"}`,
	} {
		rr := f.do(http.MethodPost, "/manager/entrar", body, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code, body)
		assert.Contains(t, rr.Body.String(), httpx.CodeInvalidCreds)
	}
	assert.Empty(t, f.mr.Keys())
}

func TestLoginStorageFailureIsNotCredentialsError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	service := auth.NewService(&stubUsers{err: errors.New("pool closed")}, auth.NewIssuer("s", time.Hour), auth.NewRedisTokenStore(client))

	_, err := service.Login(context.Background(), "ana@example.com", "secret1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrInvalidCredentials))
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rr := f.do(http.MethodPost, "/manager/sair", "", token)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, f.mr.Keys())

	rr = f.do(http.MethodGet, "/manager/eu", "", token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareRejectsMissingAndExpiredTokens(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/manager/eu", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), httpx.CodeUnauthorized)

	rr = f.do(http.MethodGet, "/manager/eu", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := f.login(t)
	f.mr.FastForward(2 * time.Hour)
	rr = f.do(http.MethodGet, "/manager/eu", "", token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareLogsTokenStoreFailure(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.service.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	token := f.login(t)
	rr := f.do(http.MethodGet, "/manager/eu", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, buf.String())

	f.mr.SetError("connection reset")
	rr = f.do(http.MethodGet, "/manager/eu", "", token)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "authenticate token")
	assert.Contains(t, buf.String(), "connection reset")
	assert.Contains(t, buf.String(), "/manager/eu")
}

func TestIssuerRejectsForeignSignature(t *testing.T) {
	user := users.User{ID: 1, Name: "A", Email: "a@example.com", Profile: shared.ProfileAdmin}
	token, claims, err := auth.NewIssuer("one", time.Minute).Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	_, err = auth.NewIssuer("two", time.Minute).Parse(token)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))

	parsed, err := auth.NewIssuer("one", time.Minute).Parse(token)
	require.NoError(t, err)
	principal, err := parsed.Principal()
	require.NoError(t, err)
	assert.Equal(t, int64(1), principal.UserID)
	assert.Equal(t, claims.ID, principal.TokenID)
}

func TestIssuerRejectsExpiredToken(t *testing.T) {
	user := users.User{ID: 1, Name: "A", Email: "a@example.com", Profile: shared.ProfileAdmin}
	token, _, err := auth.NewIssuer("one", -time.Minute).Issue(user)
	require.NoError(t, err)

	_, err = auth.NewIssuer("one", time.Minute).Parse(token)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}
