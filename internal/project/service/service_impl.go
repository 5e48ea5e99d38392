package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	auditdomain "github.com/lancerkit/lancer/internal/audit/domain"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	"github.com/lancerkit/lancer/internal/clock"
	"github.com/lancerkit/lancer/internal/config"
	"github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/internal/usercontext"
	"github.com/lancerkit/lancer/pkg/db"
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
	Clock   clock.Clock
	Repo    domain.Repository
	Clients clientdomain.Repository
	Audit   auditdomain.Service
	CRM     *config.CRMConfigHolder `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	clients clientdomain.Repository
	audit   auditdomain.Service
	crm     *config.CRMConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("project.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		clients: p.Clients,
		audit:   p.Audit,
		crm:     p.CRM,
	}
}

// Create inserts the project, retrying on a duplicate name by appending
// a timestamp suffix to the base name. The rename loop is bounded; once
// the retries are spent the collision is surfaced to the caller.
func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Project{}, domain.ErrInvalidUser
	}

	baseName := strings.TrimSpace(req.Name)
	if baseName == "" {
		return domain.Project{}, domain.ErrInvalidName
	}

	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil || clientID == 0 {
		return domain.Project{}, domain.ErrInvalidClient
	}
	client, err := s.clients.FindByID(ctx, s.db, ownerID, clientID)
	if err != nil {
		return domain.Project{}, err
	}
	if client == nil {
		return domain.Project{}, domain.ErrInvalidClient
	}

	retries := domain.MaxNameCollisionRetries
	if s.crm != nil {
		retries = s.crm.Get().NameCollisionRetries
	}

	name := baseName
	for attempt := 0; ; attempt++ {
		now := s.clock.Now()
		project := domain.Project{
			ID:          s.genID.Generate(),
			OwnerID:     ownerID,
			ClientID:    clientID,
			Name:        name,
			Slug:        slug.Make(name),
			Description: strings.TrimSpace(req.Description),
			Status:      domain.ProjectStatusPlanning,
			Budget:      req.Budget,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Metadata:    datatypes.JSONMap{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := s.repo.Insert(ctx, s.db, &project)
		if err == nil {
			if attempt > 0 {
				s.log.Info("project renamed after name collision",
					zap.String("base_name", baseName),
					zap.String("final_name", name),
					zap.Int("attempts", attempt))
			}
			s.auditLog(ctx, "project.created", project.ID, map[string]any{"name": name})
			return project, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Project{}, err
		}
		if attempt >= retries {
			return domain.Project{}, domain.ErrNameAlreadyExists
		}
		name = domain.RenameForCollision(baseName, s.clock.Now())
	}
}

func (s *Service) List(ctx context.Context, req domain.ListProjectRequest) (domain.ListProjectResponse, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListProjectResponse{}, domain.ErrInvalidUser
	}

	if status := strings.TrimSpace(req.Status); status != "" && !domain.ProjectStatus(status).Valid() {
		return domain.ListProjectResponse{}, domain.ErrInvalidStatus
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, ownerID, domain.ListProjectFilter{
		ClientID: strings.TrimSpace(req.ClientID),
		Status:   strings.TrimSpace(req.Status),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListProjectResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(project *domain.Project) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        project.ID.String(),
			CreatedAt: project.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	projects := make([]domain.Project, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		projects = append(projects, *item)
	}

	resp := domain.ListProjectResponse{Projects: projects}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProjectRequest) (domain.Project, error) {
	ownerID, project, err := s.ownedProject(ctx, req.ID)
	if err != nil {
		return domain.Project{}, err
	}
	_ = ownerID
	return *project, nil
}

func (s *Service) CreateTask(ctx context.Context, req domain.CreateTaskRequest) (domain.Task, error) {
	_, project, err := s.ownedProject(ctx, req.ProjectID)
	if err != nil {
		return domain.Task{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, domain.ErrInvalidTitle
	}

	now := s.clock.Now()
	task := domain.Task{
		ID:        s.genID.Generate(),
		ProjectID: project.ID,
		Title:     title,
		Status:    domain.TaskStatusTodo,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertTask(ctx, s.db, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *Service) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	_, project, err := s.ownedProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTasks(ctx, s.db, project.ID)
}

func (s *Service) UpdateTask(ctx context.Context, req domain.UpdateTaskRequest) (domain.Task, error) {
	_, project, err := s.ownedProject(ctx, req.ProjectID)
	if err != nil {
		return domain.Task{}, err
	}

	taskID, err := s.parseID(req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	task, err := s.repo.FindTask(ctx, s.db, project.ID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil {
		return domain.Task{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Task{}, domain.ErrInvalidTitle
		}
		task.Title = title
	}
	if req.Status != nil {
		status := domain.TaskStatus(strings.TrimSpace(*req.Status))
		switch status {
		case domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone:
		default:
			return domain.Task{}, domain.ErrInvalidStatus
		}
		task.Status = status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateTask(ctx, s.db, task); err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (s *Service) DeleteTask(ctx context.Context, projectID, taskID string) error {
	_, project, err := s.ownedProject(ctx, projectID)
	if err != nil {
		return err
	}
	id, err := s.parseID(taskID)
	if err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, s.db, project.ID, id)
}

func (s *Service) CreateMilestone(ctx context.Context, req domain.CreateMilestoneRequest) (domain.Milestone, error) {
	_, project, err := s.ownedProject(ctx, req.ProjectID)
	if err != nil {
		return domain.Milestone{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Milestone{}, domain.ErrInvalidTitle
	}

	now := s.clock.Now()
	milestone := domain.Milestone{
		ID:        s.genID.Generate(),
		ProjectID: project.ID,
		Title:     title,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertMilestone(ctx, s.db, &milestone); err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

func (s *Service) ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	_, project, err := s.ownedProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMilestones(ctx, s.db, project.ID)
}

func (s *Service) UpdateMilestone(ctx context.Context, req domain.UpdateMilestoneRequest) (domain.Milestone, error) {
	_, project, err := s.ownedProject(ctx, req.ProjectID)
	if err != nil {
		return domain.Milestone{}, err
	}

	milestoneID, err := s.parseID(req.MilestoneID)
	if err != nil {
		return domain.Milestone{}, err
	}
	milestone, err := s.repo.FindMilestone(ctx, s.db, project.ID, milestoneID)
	if err != nil {
		return domain.Milestone{}, err
	}
	if milestone == nil {
		return domain.Milestone{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Milestone{}, domain.ErrInvalidTitle
		}
		milestone.Title = title
	}
	if req.Completed != nil {
		milestone.Completed = *req.Completed
	}
	if req.DueDate != nil {
		milestone.DueDate = req.DueDate
	}
	milestone.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateMilestone(ctx, s.db, milestone); err != nil {
		return domain.Milestone{}, err
	}
	return *milestone, nil
}

func (s *Service) CreateNote(ctx context.Context, req domain.CreateNoteRequest) (domain.Note, error) {
	_, project, err := s.ownedProject(ctx, req.ProjectID)
	if err != nil {
		return domain.Note{}, err
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return domain.Note{}, domain.ErrInvalidBody
	}

	now := s.clock.Now()
	note := domain.Note{
		ID:        s.genID.Generate(),
		ProjectID: project.ID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertNote(ctx, s.db, &note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, projectID string) ([]domain.Note, error) {
	_, project, err := s.ownedProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListNotes(ctx, s.db, project.ID)
}

func (s *Service) DeleteNote(ctx context.Context, projectID, noteID string) error {
	_, project, err := s.ownedProject(ctx, projectID)
	if err != nil {
		return err
	}
	id, err := s.parseID(noteID)
	if err != nil {
		return err
	}
	return s.repo.DeleteNote(ctx, s.db, project.ID, id)
}

func (s *Service) ownedProject(ctx context.Context, rawID string) (snowflake.ID, *domain.Project, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return 0, nil, domain.ErrInvalidUser
	}
	id, err := s.parseID(rawID)
	if err != nil {
		return 0, nil, err
	}
	project, err := s.repo.FindByID(ctx, s.db, ownerID, id)
	if err != nil {
		return 0, nil, err
	}
	if project == nil {
		return 0, nil, domain.ErrNotFound
	}
	return ownerID, project, nil
}

func (s *Service) auditLog(ctx context.Context, action string, projectID snowflake.ID, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	targetID := projectID.String()
	if err := s.audit.AuditLog(ctx, nil, action, "project", &targetID, metadata); err != nil {
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
