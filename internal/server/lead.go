package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type createLeadRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Notes     string `json:"notes"`
}

func (s *Server) CreateLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.leadSvc.Create(c.Request.Context(), leaddomain.CreateLeadRequest{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Phone:     strings.TrimSpace(req.Phone),
		Source:    strings.TrimSpace(req.Source),
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLeads(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
		Source string `form:"source"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.leadSvc.List(c.Request.Context(), leaddomain.ListLeadRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		Source:    strings.TrimSpace(query.Source),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLeadByID(c *gin.Context) {
	resp, err := s.leadSvc.GetByID(c.Request.Context(), leaddomain.GetLeadRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateLeadRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Company   *string `json:"company"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

func (s *Server) UpdateLead(c *gin.Context) {
	var req updateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.leadSvc.Update(c.Request.Context(), leaddomain.UpdateLeadRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConvertLead(c *gin.Context) {
	resp, err := s.leadSvc.ConvertToClient(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
