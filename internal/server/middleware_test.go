package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/lancerkit/lancer/internal/auth/session"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestServer(t *testing.T) (*Server, *clock.FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := clock.NewFakeClock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	s := &Server{
		clock:    fake,
		sessions: session.NewManager(config.Config{SessionSecret: "test-secret"}),
	}
	return s, fake
}

func authTestRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/whoami", s.AuthRequired(), func(c *gin.Context) {
		userID, _ := usercontext.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return r
}

func TestAuthRequiredRejectsMissingCookie(t *testing.T) {
	s, _ := newAuthTestServer(t)
	r := authTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsSignedCookie(t *testing.T) {
	s, fake := newAuthTestServer(t)
	r := authTestRouter(s)

	token := s.sessions.Signer().Sign(snowflake.ID(42), fake.Now().Add(time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: s.sessions.CookieName(), Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"42"`)
}

func TestAuthRequiredRejectsExpiredCookie(t *testing.T) {
	s, fake := newAuthTestServer(t)
	r := authTestRouter(s)

	token := s.sessions.Signer().Sign(snowflake.ID(42), fake.Now().Add(time.Hour))
	fake.Advance(2 * time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: s.sessions.CookieName(), Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
