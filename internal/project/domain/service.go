package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lancerkit/lancer/pkg/db/pagination"
)

type ListProjectRequest struct {
	PageToken string
	PageSize  int
	ClientID  string
	Status    string
}

type ListProjectFilter struct {
	ClientID string
	Status   string
}

type ListProjectResponse struct {
	pagination.PageInfo
	Projects []Project `json:"projects"`
}

type CreateProjectRequest struct {
	ClientID    string
	Name        string
	Description string
	Budget      float64
	StartDate   *time.Time
	EndDate     *time.Time
}

type GetProjectRequest struct {
	ID string
}

type CreateTaskRequest struct {
	ProjectID string
	Title     string
	DueDate   *time.Time
}

type UpdateTaskRequest struct {
	ProjectID string
	TaskID    string
	Title     *string
	Status    *string
	DueDate   *time.Time
}

type CreateMilestoneRequest struct {
	ProjectID string
	Title     string
	DueDate   *time.Time
}

type UpdateMilestoneRequest struct {
	ProjectID   string
	MilestoneID string
	Title       *string
	Completed   *bool
	DueDate     *time.Time
}

type CreateNoteRequest struct {
	ProjectID string
	Body      string
}

type Service interface {
	Create(context.Context, CreateProjectRequest) (Project, error)
	List(context.Context, ListProjectRequest) (ListProjectResponse, error)
	GetByID(context.Context, GetProjectRequest) (Project, error)

	CreateTask(context.Context, CreateTaskRequest) (Task, error)
	ListTasks(ctx context.Context, projectID string) ([]Task, error)
	UpdateTask(context.Context, UpdateTaskRequest) (Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error

	CreateMilestone(context.Context, CreateMilestoneRequest) (Milestone, error)
	ListMilestones(ctx context.Context, projectID string) ([]Milestone, error)
	UpdateMilestone(context.Context, UpdateMilestoneRequest) (Milestone, error)

	CreateNote(context.Context, CreateNoteRequest) (Note, error)
	ListNotes(ctx context.Context, projectID string) ([]Note, error)
	DeleteNote(ctx context.Context, projectID, noteID string) error
}

var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidClient     = errors.New("invalid_client")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTitle      = errors.New("invalid_title")
	ErrInvalidBody       = errors.New("invalid_body")
	ErrNotFound          = errors.New("not_found")
	ErrNameAlreadyExists = errors.New("name_already_exists")
)
