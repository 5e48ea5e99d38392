package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/lancerkit/lancer/internal/auth/session"
	"github.com/lancerkit/lancer/internal/usercontext"
)

// AuthRequired verifies the signed session cookie and puts the user
// identity on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := s.sessions.Signer().Verify(token, s.clock.Now())
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), int64(userID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type devLoginRequest struct {
	UserID string `json:"user_id"`
}

// DevLogin mints a session cookie for an arbitrary user id. Only routed
// outside production; real deployments put an identity provider in front.
func (s *Server) DevLogin(c *gin.Context) {
	var req devLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user_id"))
		return
	}

	expiresAt := s.clock.Now().Add(session.DefaultTTL)
	token := s.sessions.Signer().Sign(userID, expiresAt)
	s.sessions.Set(c, token, expiresAt)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user_id":    userID.String(),
		"expires_at": expiresAt,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}
