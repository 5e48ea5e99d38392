package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	proposaldomain "github.com/lancerkit/lancer/internal/proposal/domain"
)

type generateProposalRequest struct {
	Title string `json:"title"`
}

func (s *Server) GenerateProposal(c *gin.Context) {
	var req generateProposalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.proposalSvc.Generate(c.Request.Context(), proposaldomain.GenerateProposalRequest{
		LeadID: strings.TrimSpace(c.Param("id")),
		Title:  strings.TrimSpace(req.Title),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProposalByID(c *gin.Context) {
	resp, err := s.proposalSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadProposal(c *gin.Context) {
	reader, filename, err := s.proposalSvc.Download(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

func (s *Server) SendProposal(c *gin.Context) {
	resp, err := s.proposalSvc.Send(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
