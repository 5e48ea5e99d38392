package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID     snowflake.ID      `gorm:"not null;index;uniqueIndex:idx_projects_owner_name" json:"owner_id"`
	ClientID    snowflake.ID      `gorm:"not null;index" json:"client_id"`
	Name        string            `gorm:"not null;uniqueIndex:idx_projects_owner_name" json:"name"`
	Slug        string            `gorm:"not null;index" json:"slug"`
	Description string            `gorm:"column:description" json:"description,omitempty"`
	Status      ProjectStatus     `gorm:"not null;default:'planning'" json:"status"`
	Budget      float64           `gorm:"column:budget" json:"budget"`
	StartDate   *time.Time        `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate     *time.Time        `gorm:"column:end_date" json:"end_date,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID snowflake.ID `gorm:"not null;index" json:"project_id"`
	Title     string       `gorm:"not null" json:"title"`
	Status    TaskStatus   `gorm:"not null;default:'todo'" json:"status"`
	DueDate   *time.Time   `gorm:"column:due_date" json:"due_date,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Task) TableName() string {
	return "project_tasks"
}

type Milestone struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID snowflake.ID `gorm:"not null;index" json:"project_id"`
	Title     string       `gorm:"not null" json:"title"`
	DueDate   *time.Time   `gorm:"column:due_date" json:"due_date,omitempty"`
	Completed bool         `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Milestone) TableName() string {
	return "project_milestones"
}

type Note struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProjectID snowflake.ID `gorm:"not null;index" json:"project_id"`
	Body      string       `gorm:"not null" json:"body"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Note) TableName() string {
	return "project_notes"
}
