package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/observability/metrics"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Clients  clientdomain.Repository
	Projects projectdomain.Repository
	Audit    auditdomain.Service
	CRM      *config.CRMConfigHolder `optional:"true"`
	Metrics  *metrics.Metrics        `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	clients  clientdomain.Repository
	projects projectdomain.Repository
	audit    auditdomain.Service
	crm      *config.CRMConfigHolder
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("quote.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		clients:  p.Clients,
		projects: p.Projects,
		audit:    p.Audit,
		crm:      p.CRM,
		metrics:  p.Metrics,
	}
}

// Create runs the draft through the assembler, checks the client/project
// relationship against stored rows and persists the quote with the next
// per-owner quote number inside one transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateQuoteRequest) (domain.Quote, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Quote{}, domain.ErrInvalidUser
	}

	payload, err := draft.Assemble(req.Draft)
	if err != nil {
		return domain.Quote{}, err
	}
	if err := s.validateCurrency(payload.Currency); err != nil {
		return domain.Quote{}, err
	}

	clientID, projectID, err := s.resolveRelationship(ctx, ownerID, payload)
	if err != nil {
		return domain.Quote{}, err
	}

	validUntil, _ := draft.ParseDate(payload.ValidUntil)
	now := s.clock.Now()

	quote := domain.Quote{
		ID:             s.genID.Generate(),
		OwnerID:        ownerID,
		Title:          payload.Title,
		Description:    payload.Description,
		ClientID:       clientID,
		ProjectID:      projectID,
		ClientEmail:    payload.ClientEmail,
		Status:         domain.QuoteStatusDraft,
		ValidUntil:     validUntil,
		Tax:            payload.Tax,
		Discount:       payload.Discount,
		Currency:       string(payload.Currency),
		Notes:          payload.Notes,
		Subtotal:       payload.Subtotal,
		TaxAmount:      payload.TaxAmount,
		DiscountAmount: payload.DiscountAmount,
		Total:          payload.Total,
		Metadata:       datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.repo.NextQuoteNumber(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		quote.QuoteNumber = number

		if err := s.repo.Insert(ctx, tx, &quote); err != nil {
			return err
		}
		items := s.buildItems(quote.ID, payload.Items)
		if err := s.repo.InsertItems(ctx, tx, items); err != nil {
			return err
		}
		quote.Items = items
		return nil
	})
	if err != nil {
		return domain.Quote{}, err
	}

	s.metrics.RecordQuoteCreated()
	s.auditLog(ctx, "quote.created", quote.ID, map[string]any{
		"quote_number": quote.QuoteNumber,
		"total":        quote.Total,
	})
	return quote, nil
}

// Update replays the assembler over the edited draft and replaces the
// stored line items wholesale. The quote number never changes.
func (s *Service) Update(ctx context.Context, req domain.UpdateQuoteRequest) (domain.Quote, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Quote{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Quote{}, err
	}
	quote, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return domain.Quote{}, err
	}
	if quote == nil {
		return domain.Quote{}, domain.ErrNotFound
	}

	if req.Status != nil {
		status := domain.QuoteStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return domain.Quote{}, domain.ErrInvalidStatus
		}
		quote.Status = status
	}

	var items []domain.QuoteItem
	if req.Draft != nil {
		payload, err := draft.Assemble(req.Draft)
		if err != nil {
			return domain.Quote{}, err
		}
		if err := s.validateCurrency(payload.Currency); err != nil {
			return domain.Quote{}, err
		}
		clientID, projectID, err := s.resolveRelationship(ctx, ownerID, payload)
		if err != nil {
			return domain.Quote{}, err
		}

		validUntil, _ := draft.ParseDate(payload.ValidUntil)
		quote.Title = payload.Title
		quote.Description = payload.Description
		quote.ClientID = clientID
		quote.ProjectID = projectID
		quote.ClientEmail = payload.ClientEmail
		quote.ValidUntil = validUntil
		quote.Tax = payload.Tax
		quote.Discount = payload.Discount
		quote.Currency = string(payload.Currency)
		quote.Notes = payload.Notes
		quote.Subtotal = payload.Subtotal
		quote.TaxAmount = payload.TaxAmount
		quote.DiscountAmount = payload.DiscountAmount
		quote.Total = payload.Total
		items = s.buildItems(quote.ID, payload.Items)
	}
	quote.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, quote); err != nil {
			return err
		}
		if req.Draft != nil {
			if err := s.repo.DeleteItems(ctx, tx, quote.ID); err != nil {
				return err
			}
			if err := s.repo.InsertItems(ctx, tx, items); err != nil {
				return err
			}
			quote.Items = items
		}
		return nil
	})
	if err != nil {
		return domain.Quote{}, err
	}

	if req.Draft == nil {
		stored, err := s.repo.ListItems(ctx, s.db, quote.ID)
		if err != nil {
			return domain.Quote{}, err
		}
		quote.Items = stored
	}

	s.auditLog(ctx, "quote.updated", quote.ID, nil)
	return *quote, nil
}

func (s *Service) List(ctx context.Context, req domain.ListQuoteRequest) (domain.ListQuoteResponse, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListQuoteResponse{}, domain.ErrInvalidUser
	}

	if status := strings.TrimSpace(req.Status); status != "" && !domain.QuoteStatus(status).Valid() {
		return domain.ListQuoteResponse{}, domain.ErrInvalidStatus
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, ownerID, domain.ListQuoteFilter{
		ClientID:  strings.TrimSpace(req.ClientID),
		ProjectID: strings.TrimSpace(req.ProjectID),
		Status:    strings.TrimSpace(req.Status),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListQuoteResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(quote *domain.Quote) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        quote.ID.String(),
			CreatedAt: quote.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	quotes := make([]domain.Quote, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		quotes = append(quotes, *item)
	}

	resp := domain.ListQuoteResponse{Quotes: quotes}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetQuoteRequest) (domain.Quote, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Quote{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Quote{}, err
	}
	quote, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return domain.Quote{}, err
	}
	if quote == nil {
		return domain.Quote{}, domain.ErrNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, quote.ID)
	if err != nil {
		return domain.Quote{}, err
	}
	quote.Items = items
	return *quote, nil
}

// resolveRelationship checks that both referenced rows exist for this
// owner and that the project actually belongs to the chosen client.
func (s *Service) resolveRelationship(ctx context.Context, ownerID snowflake.ID, payload *draft.Payload) (snowflake.ID, snowflake.ID, error) {
	clientID, err := snowflake.ParseString(payload.ClientID)
	if err != nil || clientID == 0 {
		return 0, 0, domain.ErrInvalidClient
	}
	projectID, err := snowflake.ParseString(payload.ProjectID)
	if err != nil || projectID == 0 {
		return 0, 0, domain.ErrInvalidProject
	}

	client, err := s.clients.FindByID(ctx, s.db, ownerID, clientID)
	if err != nil {
		return 0, 0, err
	}
	if client == nil {
		return 0, 0, domain.ErrInvalidClient
	}

	project, err := s.projects.FindByID(ctx, s.db, ownerID, projectID)
	if err != nil {
		return 0, 0, err
	}
	if project == nil {
		return 0, 0, domain.ErrInvalidProject
	}
	if project.ClientID != clientID {
		return 0, 0, domain.ErrProjectMismatch
	}

	return clientID, projectID, nil
}

func (s *Service) validateCurrency(currency draft.Currency) error {
	allowed := []string{"USD", "EUR", "GBP", "CAD"}
	if s.crm != nil {
		allowed = s.crm.Get().Currencies
	}
	for _, code := range allowed {
		if string(currency) == code {
			return nil
		}
	}
	return domain.ErrInvalidCurrency
}

func (s *Service) buildItems(quoteID snowflake.ID, items []draft.LineItem) []domain.QuoteItem {
	now := s.clock.Now()
	out := make([]domain.QuoteItem, 0, len(items))
	for i, item := range items {
		out = append(out, domain.QuoteItem{
			ID:          s.genID.Generate(),
			QuoteID:     quoteID,
			Position:    i,
			ItemType:    item.ItemType,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Rate:        item.Rate,
			Amount:      item.Amount,
			CreatedAt:   now,
		})
	}
	return out
}

func (s *Service) auditLog(ctx context.Context, action string, quoteID snowflake.ID, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	targetID := quoteID.String()
	if err := s.audit.AuditLog(ctx, nil, action, "quote", &targetID, metadata); err != nil {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
