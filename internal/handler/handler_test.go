package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/daily-journal/backend-go/internal/api"
	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database"
	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
	"github.com/daily-journal/backend-go/internal/database/service"
	"github.com/daily-journal/backend-go/internal/handler"
	"github.com/daily-journal/backend-go/internal/middleware"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Entry{}))

	cfg := &config.Config{
		JWTAccessSecret:        "test-access-secret",
		JWTRefreshSecret:       "test-refresh-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 604800,
		EntryCacheTTL:          300,
	}
	log := slog.Default()

	mr := miniredis.RunT(t)
	cache := database.NewEntryCacheForTesting(
		redis.NewClient(&redis.Options{Addr: mr.Addr()}), cfg, log)
	t.Cleanup(func() { _ = cache.Close() })

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	tokens := service.NewTokenService(cfg)
	authSvc := service.NewAuthService(userRepo, tokenRepo, tokens, cfg, log)
	userSvc := service.NewUserService(userRepo, log)
	entrySvc := service.NewEntryService(entryRepo, log)

	router := api.SetupRouter(
		handler.NewAuthHandler(authSvc, userSvc, log),
		handler.NewEntryHandler(entrySvc, userSvc, cache, log),
		handler.NewAdminHandler(userSvc, log),
		middleware.NewAuthMiddleware(authSvc, log),
	)

	return &testApp{router: router, db: db}
}

// do performs a request against the router and returns the recorder
func (a *testApp) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns the token pair
func (a *testApp) register(t *testing.T, username, email, userAgent string) (accessToken, refreshToken string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": "pw12345678",
	}, map[string]string{"User-Agent": userAgent})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["access_token"].(string), resp["refresh_token"].(string)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
