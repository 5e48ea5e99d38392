package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Project, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListProjectFilter, page pagination.Pagination) ([]*Project, error)

	InsertTask(ctx context.Context, db *gorm.DB, task *Task) error
	FindTask(ctx context.Context, db *gorm.DB, projectID, taskID snowflake.ID) (*Task, error)
	UpdateTask(ctx context.Context, db *gorm.DB, task *Task) error
	DeleteTask(ctx context.Context, db *gorm.DB, projectID, taskID snowflake.ID) error
	ListTasks(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]Task, error)

	InsertMilestone(ctx context.Context, db *gorm.DB, milestone *Milestone) error
	FindMilestone(ctx context.Context, db *gorm.DB, projectID, milestoneID snowflake.ID) (*Milestone, error)
	UpdateMilestone(ctx context.Context, db *gorm.DB, milestone *Milestone) error
	ListMilestones(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]Milestone, error)

	InsertNote(ctx context.Context, db *gorm.DB, note *Note) error
	DeleteNote(ctx context.Context, db *gorm.DB, projectID, noteID snowflake.ID) error
	ListNotes(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]Note, error)
}
