package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/internal/observability/metrics"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clients clientdomain.Repository
	Audit   auditdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	clients clientdomain.Repository
	audit   auditdomain.Service
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("lead.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		clients: p.Clients,
		audit:   p.Audit,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLeadRequest) (domain.Lead, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Lead{}, domain.ErrInvalidUser
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.Lead{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Lead{}, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	lead := domain.Lead{
		ID:         s.genID.Generate(),
		OwnerID:    ownerID,
		FirstName:  firstName,
		LastName:   strings.TrimSpace(req.LastName),
		Email:      email,
		Company:    strings.TrimSpace(req.Company),
		Phone:      strings.TrimSpace(req.Phone),
		Source:     strings.TrimSpace(req.Source),
		Status:     domain.LeadStatusNew,
		Notes:      strings.TrimSpace(req.Notes),
		Enrichment: datatypes.JSONMap{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &lead); err != nil {
		return domain.Lead{}, err
	}

	s.auditLog(ctx, "lead.created", lead.ID, nil)
	return lead, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLeadRequest) (domain.ListLeadResponse, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListLeadResponse{}, domain.ErrInvalidUser
	}

	if status := strings.TrimSpace(req.Status); status != "" && !domain.LeadStatus(status).Valid() {
		return domain.ListLeadResponse{}, domain.ErrInvalidStatus
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, ownerID, domain.ListLeadFilter{
		Status: strings.TrimSpace(req.Status),
		Source: strings.TrimSpace(req.Source),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListLeadResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(lead *domain.Lead) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        lead.ID.String(),
			CreatedAt: lead.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	leads := make([]domain.Lead, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		leads = append(leads, *item)
	}

	resp := domain.ListLeadResponse{Leads: leads}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetLeadRequest) (domain.Lead, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Lead{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Lead{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return domain.Lead{}, err
	}
	if item == nil {
		return domain.Lead{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLeadRequest) (domain.Lead, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Lead{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return domain.Lead{}, err
	}
	if lead == nil {
		return domain.Lead{}, domain.ErrNotFound
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return domain.Lead{}, domain.ErrInvalidName
		}
		lead.FirstName = name
	}
	if req.LastName != nil {
		lead.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.Lead{}, domain.ErrInvalidEmail
		}
		lead.Email = email
	}
	if req.Company != nil {
		lead.Company = strings.TrimSpace(*req.Company)
	}
	if req.Phone != nil {
		lead.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Status != nil {
		status := domain.LeadStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return domain.Lead{}, domain.ErrInvalidStatus
		}
		lead.Status = status
	}
	if req.Notes != nil {
		lead.Notes = strings.TrimSpace(*req.Notes)
	}
	lead.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, lead); err != nil {
		return domain.Lead{}, err
	}

	s.auditLog(ctx, "lead.updated", lead.ID, nil)
	return *lead, nil
}

// ConvertToClient promotes a lead into a client inside one transaction:
// the client row is created, the lead is linked to it and marked
// converted. Converting an already converted lead fails.
func (s *Service) ConvertToClient(ctx context.Context, rawID string) (domain.ConvertResult, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ConvertResult{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(rawID)
	if err != nil {
		return domain.ConvertResult{}, err
	}

	var result domain.ConvertResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lead, err := s.repo.FindByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if lead == nil {
			return domain.ErrNotFound
		}
		if lead.Status == domain.LeadStatusConverted || lead.ClientID != nil {
			return domain.ErrAlreadyConverted
		}

		now := time.Now().UTC()
		client := clientdomain.Client{
			ID:        s.genID.Generate(),
			OwnerID:   ownerID,
			FirstName: lead.FirstName,
			LastName:  lead.LastName,
			Email:     lead.Email,
			Company:   lead.Company,
			Phone:     lead.Phone,
			Metadata:  datatypes.JSONMap{"converted_from_lead": lead.ID.String()},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.clients.Insert(ctx, tx, &client); err != nil {
			return err
		}

		lead.Status = domain.LeadStatusConverted
		lead.ClientID = &client.ID
		lead.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, lead); err != nil {
			return err
		}

		result = domain.ConvertResult{Lead: *lead, Client: client}
		return nil
	})
	if err != nil {
		return domain.ConvertResult{}, err
	}

	s.metrics.RecordLeadConverted()
	s.auditLog(ctx, "lead.converted", id, map[string]any{
		"client_id": result.Client.ID.String(),
	})
	return result, nil
}

func (s *Service) AttachEnrichment(ctx context.Context, rawID string, enrichment map[string]any) (domain.Lead, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Lead{}, domain.ErrInvalidUser
	}

	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return domain.Lead{}, err
	}
	if lead == nil {
		return domain.Lead{}, domain.ErrNotFound
	}

	if lead.Enrichment == nil {
		lead.Enrichment = datatypes.JSONMap{}
	}
	for key, value := range enrichment {
		if key == "" {
			continue
		}
		lead.Enrichment[key] = value
	}
	lead.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, lead); err != nil {
		return domain.Lead{}, err
	}
	return *lead, nil
}

func (s *Service) auditLog(ctx context.Context, action string, leadID snowflake.ID, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	targetID := leadID.String()
	if err := s.audit.AuditLog(ctx, nil, action, "lead", &targetID, metadata); err != nil {
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
