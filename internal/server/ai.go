package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) AIGenerateProposal(c *gin.Context) {
	content, err := s.aiSvc.GenerateProposal(c.Request.Context(), strings.TrimSpace(c.Param("leadId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"content": content}})
}

func (s *Server) AIGenerateFollowUp(c *gin.Context) {
	content, err := s.aiSvc.GenerateFollowUp(c.Request.Context(), strings.TrimSpace(c.Param("leadId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"content": content}})
}

func (s *Server) AIEnrichLead(c *gin.Context) {
	leadID := strings.TrimSpace(c.Param("leadId"))

	enrichment, err := s.aiSvc.EnrichLead(c.Request.Context(), leadID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.leadSvc.AttachEnrichment(c.Request.Context(), leadID, enrichment)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AISuggestActions(c *gin.Context) {
	suggestions, err := s.aiSvc.SuggestActions(
		c.Request.Context(),
		strings.TrimSpace(c.Param("type")),
		strings.TrimSpace(c.Param("id")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"suggestions": suggestions}})
}

type summarizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) AISummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		AbortWithError(c, newValidationError("text", "invalid_text", "text is required"))
		return
	}

	summary, err := s.aiSvc.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"summary": summary}})
}

type socialContentRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
}

func (s *Server) AIGenerateSocialContent(c *gin.Context) {
	var req socialContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		AbortWithError(c, newValidationError("topic", "invalid_topic", "topic is required"))
		return
	}

	content, err := s.aiSvc.GenerateSocialContent(c.Request.Context(), strings.TrimSpace(req.Topic), strings.TrimSpace(req.Platform))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"content": content}})
}

func (s *Server) AIGeneratePaymentReminder(c *gin.Context) {
	content, err := s.aiSvc.GeneratePaymentReminder(c.Request.Context(), strings.TrimSpace(c.Param("invoiceId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"content": content}})
}

func (s *Server) AIHealth(c *gin.Context) {
	if err := s.aiSvc.Health(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "ok"}})
}
