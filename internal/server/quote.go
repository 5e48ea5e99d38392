package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"github.com/lancerkit/lancer/internal/refs"
	"github.com/lancerkit/lancer/pkg/db/pagination"
)

// quoteDraftRequest is the wire shape of a quote under composition.
// Client and project references accept either a bare id string or a
// populated object, matching what the editor sends at different stages.
type quoteDraftRequest struct {
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Client      refs.Ref[draft.ClientInfo]  `json:"clientId"`
	Project     refs.Ref[draft.ProjectInfo] `json:"projectId"`
	ClientEmail string                      `json:"clientEmail"`
	ValidUntil  string                      `json:"validUntil"`
	Items       []draft.LineItem            `json:"items"`
	Tax         float64                     `json:"tax"`
	Discount    float64                     `json:"discount"`
	Currency    string                      `json:"currency"`
	Notes       string                      `json:"notes"`
}

func (r quoteDraftRequest) toDraft() *draft.Draft {
	d := &draft.Draft{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Client:      r.Client,
		Project:     r.Project,
		ClientEmail: strings.TrimSpace(r.ClientEmail),
		ValidUntil:  strings.TrimSpace(r.ValidUntil),
		Items:       r.Items,
		Tax:         r.Tax,
		Discount:    r.Discount,
		Currency:    draft.Currency(strings.TrimSpace(r.Currency)),
		Notes:       r.Notes,
	}
	d.Recompute()
	return d
}

func (s *Server) CreateQuote(c *gin.Context) {
	var req quoteDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.Create(c.Request.Context(), quotedomain.CreateQuoteRequest{
		Draft: req.toDraft(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateQuoteRequest struct {
	quoteDraftRequest
	Status *string `json:"status"`
}

// hasDraftFields reports whether the request carries an edited draft, as
// opposed to a status-only patch.
func (r updateQuoteRequest) hasDraftFields() bool {
	return strings.TrimSpace(r.Title) != "" ||
		len(r.Items) > 0 ||
		!r.Client.IsZero() ||
		!r.Project.IsZero() ||
		strings.TrimSpace(r.ClientEmail) != "" ||
		strings.TrimSpace(r.ValidUntil) != ""
}

func (s *Server) UpdateQuote(c *gin.Context) {
	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var edited *draft.Draft
	if req.hasDraftFields() {
		edited = req.toDraft()
	}

	resp, err := s.quoteSvc.Update(c.Request.Context(), quotedomain.UpdateQuoteRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Draft:  edited,
		Status: req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListQuotes(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ClientID  string `form:"client_id"`
		ProjectID string `form:"project_id"`
		Status    string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.List(c.Request.Context(), quotedomain.ListQuoteRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		ClientID:  strings.TrimSpace(query.ClientID),
		ProjectID: strings.TrimSpace(query.ProjectID),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetQuoteByID(c *gin.Context) {
	resp, err := s.quoteSvc.GetByID(c.Request.Context(), quotedomain.GetQuoteRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
