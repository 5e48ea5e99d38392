package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/ai"
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	"github.com/lancerkit/lancer/internal/clock"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/internal/proposal/domain"
	"github.com/lancerkit/lancer/internal/providers/email"
	"github.com/lancerkit/lancer/internal/providers/pdf"
	"github.com/lancerkit/lancer/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Leads leaddomain.Repository
	AI    ai.Service
	PDF   pdf.Provider
	Email email.Provider
	Audit auditdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	leads leaddomain.Repository
	ai    ai.Service
	pdf   pdf.Provider
	email email.Provider
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("proposal.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		leads: p.Leads,
		ai:    p.AI,
		pdf:   p.PDF,
		email: p.Email,
		audit: p.Audit,
	}
}

// Generate asks the AI gateway for proposal content for the lead and
// persists the result as a draft proposal.
func (s *Service) Generate(ctx context.Context, req domain.GenerateProposalRequest) (domain.Proposal, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Proposal{}, domain.ErrInvalidUser
	}

	leadID, err := s.parseID(req.LeadID)
	if err != nil {
		return domain.Proposal{}, err
	}
	lead, err := s.leads.FindByID(ctx, s.db, ownerID, leadID)
	if err != nil {
		return domain.Proposal{}, err
	}
	if lead == nil {
		return domain.Proposal{}, domain.ErrNotFound
	}

	content, err := s.ai.GenerateProposal(ctx, leadID.String())
	if err != nil {
		return domain.Proposal{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("Proposal for %s %s", lead.FirstName, lead.LastName)
		title = strings.TrimSpace(title)
	}

	now := s.clock.Now()
	proposal := domain.Proposal{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		LeadID:    leadID,
		Title:     title,
		Content:   content,
		Status:    domain.ProposalStatusDraft,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &proposal); err != nil {
		return domain.Proposal{}, err
	}

	s.auditLog(ctx, "proposal.generated", proposal.ID, map[string]any{"lead_id": leadID.String()})
	return proposal, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Proposal, error) {
	_, proposal, err := s.owned(ctx, rawID)
	if err != nil {
		return domain.Proposal{}, err
	}
	return *proposal, nil
}

// Download renders the proposal to PDF and returns the stream plus a
// suggested filename.
func (s *Service) Download(ctx context.Context, rawID string) (io.Reader, string, error) {
	ownerID, proposal, err := s.owned(ctx, rawID)
	if err != nil {
		return nil, "", err
	}

	lead, err := s.leads.FindByID(ctx, s.db, ownerID, proposal.LeadID)
	if err != nil {
		return nil, "", err
	}
	preparedFor := ""
	if lead != nil {
		preparedFor = strings.TrimSpace(lead.FirstName + " " + lead.LastName)
		if lead.Company != "" {
			preparedFor += ", " + lead.Company
		}
	}

	reader, err := s.pdf.GenerateProposal(ctx, pdf.ProposalData{
		Title:       proposal.Title,
		PreparedFor: preparedFor,
		PreparedBy:  ownerID.String(),
		Date:        proposal.CreatedAt.Format("2006-01-02"),
		Content:     proposal.Content,
	})
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("proposal-%s.pdf", proposal.ID.String())
	return reader, filename, nil
}

// Send emails the proposal to the lead and marks it sent. Sending twice
// is rejected.
func (s *Service) Send(ctx context.Context, rawID string) (domain.Proposal, error) {
	ownerID, proposal, err := s.owned(ctx, rawID)
	if err != nil {
		return domain.Proposal{}, err
	}
	if proposal.Status == domain.ProposalStatusSent {
		return domain.Proposal{}, domain.ErrAlreadySent
	}

	lead, err := s.leads.FindByID(ctx, s.db, ownerID, proposal.LeadID)
	if err != nil {
		return domain.Proposal{}, err
	}
	if lead == nil {
		return domain.Proposal{}, domain.ErrNotFound
	}

	body := "<html><body>" + strings.ReplaceAll(proposal.Content, "\n", "<br>") + "</body></html>"
	if err := s.email.Send(ctx, []string{lead.Email}, proposal.Title, body); err != nil {
		return domain.Proposal{}, err
	}

	now := s.clock.Now()
	proposal.Status = domain.ProposalStatusSent
	proposal.SentAt = &now
	proposal.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, proposal); err != nil {
		return domain.Proposal{}, err
	}

	s.auditLog(ctx, "proposal.sent", proposal.ID, map[string]any{"lead_id": lead.ID.String()})
	return *proposal, nil
}

func (s *Service) owned(ctx context.Context, rawID string) (snowflake.ID, *domain.Proposal, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return 0, nil, domain.ErrInvalidUser
	}
	id, err := s.parseID(rawID)
	if err != nil {
		return 0, nil, err
	}
	proposal, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return 0, nil, err
	}
	if proposal == nil {
		return 0, nil, domain.ErrNotFound
	}
	return ownerID, proposal, nil
}

func (s *Service) auditLog(ctx context.Context, action string, proposalID snowflake.ID, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	targetID := proposalID.String()
	if err := s.audit.AuditLog(ctx, nil, action, "proposal", &targetID, metadata); err != nil {
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
