package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store/memstore"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	engine *gin.Engine
	tokens *utils.TokenManager
	admin  *models.User
	member *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctx := context.Background()
	db := memstore.New()

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: "hash", IsAdmin: true}
	member := &models.User{Name: "Jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, db.Users().Create(ctx, admin))
	require.NoError(t, db.Users().Create(ctx, member))

	tokens := utils.NewTokenManager("test-secret", time.Hour)

	engine := gin.New()
	engine.Use(ErrorHandler(false))
	auth := Authenticate(tokens, db.Users())
	engine.GET("/me", auth, func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, user)
	})
	engine.GET("/admin", auth, RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	return &authFixture{engine: engine, tokens: tokens, admin: admin, member: member}
}

func (f *authFixture) do(t *testing.T, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)

	memberToken, err := f.tokens.Generate(f.member.ID)
	require.NoError(t, err)
	otherSecret, err := utils.NewTokenManager("other-secret", time.Hour).Generate(f.member.ID)
	require.NoError(t, err)
	unknownUser, err := f.tokens.Generate("ghost")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantMessage   string
	}{
		{name: "missing header", wantStatus: http.StatusNotFound, wantMessage: "Token not found"},
		{name: "wrong scheme", authorization: "Basic abc", wantStatus: http.StatusNotFound, wantMessage: "Token not found"},
		{name: "garbage token", authorization: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantMessage: "Not authorised, token failed"},
		{name: "wrong secret", authorization: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized, wantMessage: "Not authorised, token failed"},
		{name: "unknown user", authorization: "Bearer " + unknownUser, wantStatus: http.StatusUnauthorized, wantMessage: "Not authorised, token failed"},
		{name: "valid token", authorization: "Bearer " + memberToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, "/me", tt.authorization)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rec).Message)
				return
			}

			var user models.User
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
			assert.Equal(t, f.member.ID, user.ID)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	f := newAuthFixture(t)

	adminToken, err := f.tokens.Generate(f.admin.ID)
	require.NoError(t, err)
	memberToken, err := f.tokens.Generate(f.member.ID)
	require.NoError(t, err)

	rec := f.do(t, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, "/admin", "Bearer "+memberToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorised as an admin", decodeError(t, rec).Message)
}

func errorEngine(production bool, handler gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(Recovery(production), ErrorHandler(production))
	engine.GET("/", handler)
	engine.NoRoute(NotFound())
	return engine
}

func serve(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestErrorHandler(t *testing.T) {
	t.Run("maps kinds to status", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
		}{
			{apperrors.NotFound("Order not found"), http.StatusNotFound},
			{apperrors.Unauthenticated("Invalid credentials"), http.StatusUnauthorized},
			{apperrors.Validation("No order items"), http.StatusBadRequest},
			{apperrors.SignatureMismatch("Invalid request"), http.StatusBadRequest},
			{apperrors.Internal("Failed to fetch orders", errors.New("db down")), http.StatusInternalServerError},
			{errors.New("plain"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			engine := errorEngine(false, func(ctx *gin.Context) { _ = ctx.Error(tt.err) })
			rec := serve(engine, "/")
			assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		}
	})

	t.Run("stack only outside production", func(t *testing.T) {
		handler := func(ctx *gin.Context) {
			_ = ctx.Error(apperrors.Internal("Failed to fetch orders", errors.New("db down")))
		}

		dev := decodeError(t, serve(errorEngine(false, handler), "/"))
		assert.Equal(t, "Failed to fetch orders", dev.Message)
		assert.Contains(t, dev.Stack, "db down")

		prod := decodeError(t, serve(errorEngine(true, handler), "/"))
		assert.Equal(t, "Failed to fetch orders", prod.Message)
		assert.Empty(t, prod.Stack)
	})

	t.Run("gateway body passes through", func(t *testing.T) {
		body := []byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`)
		engine := errorEngine(true, func(ctx *gin.Context) {
			_ = ctx.Error(apperrors.Gateway(http.StatusUnauthorized, body, errors.New("rejected")))
		})

		rec := serve(engine, "/")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, string(body), rec.Body.String())
	})

	t.Run("gateway transport failure is 502", func(t *testing.T) {
		engine := errorEngine(true, func(ctx *gin.Context) {
			_ = ctx.Error(apperrors.Gateway(0, nil, errors.New("connection refused")))
		})
		assert.Equal(t, http.StatusBadGateway, serve(engine, "/").Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(errorEngine(true, func(ctx *gin.Context) {}), "/api/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found - /api/nope", decodeError(t, rec).Message)
	})
}

func TestRecovery(t *testing.T) {
	handler := func(ctx *gin.Context) { panic("boom") }

	rec := serve(errorEngine(false, handler), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "boom", resp.Message)
	assert.NotEmpty(t, resp.Stack)

	rec = serve(errorEngine(true, handler), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, decodeError(t, rec).Stack)
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString("request_id"))
	})

	rec := serve(engine, "/")
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
