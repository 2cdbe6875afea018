//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/handler/middleware"
	"dj-booking-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
	logs   *bytes.Buffer
	logger *slog.Logger
	router *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewJSONHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.router = gin.New()
	s.router.Use(middleware.RequestLogger(s.logger))
	s.router.Use(middleware.CustomRecovery(s.logger))
	s.router.Use(middleware.ErrorHandler(s.logger))
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (s *MiddlewareTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestRequestLogger() {
	s.router.GET("/bookings/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": middleware.GetRequestID(c)})
	})

	s.Run("generates a request ID and echoes it in the header", func() {
		w := s.serve(httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

		id := w.Header().Get(middleware.HeaderRequestID)
		require.NotEmpty(s.T(), id)
		assert.Contains(s.T(), w.Body.String(), id)
	})

	s.Run("keeps an incoming request ID and logs route, actor and resource", func() {
		s.logs.Reset()
		req := httptest.NewRequest(http.MethodGet, "/bookings/b-2", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-123")
		req.Header.Set(middleware.HeaderActorID, "client-9")

		w := s.serve(req)
		assert.Equal(s.T(), "req-123", w.Header().Get(middleware.HeaderRequestID))

		var line map[string]any
		require.NoError(s.T(), json.Unmarshal(s.logs.Bytes(), &line))
		assert.Equal(s.T(), "request completed", line["msg"])
		assert.Equal(s.T(), "req-123", line["request_id"])
		assert.Equal(s.T(), "/bookings/:id", line["route"])
		assert.Equal(s.T(), "client-9", line["actor_id"])
		assert.Equal(s.T(), "b-2", line["resource_id"])
		assert.Equal(s.T(), "INFO", line["level"])
	})
}

func (s *MiddlewareTestSuite) TestErrorHandler() {
	s.Run("client errors keep their body and are not logged as failures", func() {
		s.router.GET("/bad", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusConflict, errors.New("slot taken"), "DJ is not available for this time slot", nil)
		})
		s.logs.Reset()

		w := s.serve(httptest.NewRequest(http.MethodGet, "/bad", nil))

		assert.Equal(s.T(), http.StatusConflict, w.Code)
		assert.Contains(s.T(), w.Body.String(), "DJ is not available")
		assert.NotContains(s.T(), s.logs.String(), "request failed")
		assert.Contains(s.T(), s.logs.String(), `"level":"WARN"`)
	})

	s.Run("server errors are logged with their cause", func() {
		s.router.GET("/boom", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("db down"), "Internal server error", nil)
		})
		s.logs.Reset()

		w := s.serve(httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
		assert.Contains(s.T(), s.logs.String(), "request failed")
		assert.Contains(s.T(), s.logs.String(), "db down")
	})

	s.Run("private errors without a body become a 500", func() {
		s.router.GET("/silent", func(c *gin.Context) {
			_ = c.Error(errors.New("forgot to respond"))
		})

		w := s.serve(httptest.NewRequest(http.MethodGet, "/silent", nil))

		assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
		var resp httperr.Response
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), "Internal server error", resp.Error.Message)
	})
}

func (s *MiddlewareTestSuite) TestCustomRecovery() {
	s.router.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := s.serve(httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.NotEmpty(s.T(), w.Header().Get(middleware.HeaderRequestID))
	assert.Contains(s.T(), s.logs.String(), "recovered from panic")
	assert.Contains(s.T(), s.logs.String(), "kaboom")
}

func TestNewCORSMiddleware_ExposesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{http.MethodGet},
	}, slog.New(slog.DiscardHandler)))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.HeaderRequestID)
}
