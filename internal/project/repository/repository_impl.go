package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/project/domain"
	"github.com/lancerkit/lancer/pkg/db/option"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, project *domain.Project) error {
	return db.WithContext(ctx).Create(project).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Project, error) {
	var project domain.Project
	err := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListProjectFilter, page pagination.Pagination) ([]*domain.Project, error) {
	var projects []*domain.Project
	stmt := db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("owner_id = ?", ownerID)
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repo) InsertTask(ctx context.Context, db *gorm.DB, task *domain.Task) error {
	return db.WithContext(ctx).Create(task).Error
}

func (r *repo) FindTask(ctx context.Context, db *gorm.DB, projectID, taskID snowflake.ID) (*domain.Task, error) {
	var task domain.Task
	err := db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, taskID).
		First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *repo) UpdateTask(ctx context.Context, db *gorm.DB, task *domain.Task) error {
	return db.WithContext(ctx).Save(task).Error
}

func (r *repo) DeleteTask(ctx context.Context, db *gorm.DB, projectID, taskID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, taskID).
		Delete(&domain.Task{}).Error
}

func (r *repo) ListTasks(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at asc, id asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *repo) InsertMilestone(ctx context.Context, db *gorm.DB, milestone *domain.Milestone) error {
	return db.WithContext(ctx).Create(milestone).Error
}

func (r *repo) FindMilestone(ctx context.Context, db *gorm.DB, projectID, milestoneID snowflake.ID) (*domain.Milestone, error) {
	var milestone domain.Milestone
	err := db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, milestoneID).
		First(&milestone).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *repo) UpdateMilestone(ctx context.Context, db *gorm.DB, milestone *domain.Milestone) error {
	return db.WithContext(ctx).Save(milestone).Error
}

func (r *repo) ListMilestones(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("due_date asc, id asc").
		Find(&milestones).Error
	return milestones, err
}

func (r *repo) InsertNote(ctx context.Context, db *gorm.DB, note *domain.Note) error {
	return db.WithContext(ctx).Create(note).Error
}

func (r *repo) DeleteNote(ctx context.Context, db *gorm.DB, projectID, noteID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, noteID).
		Delete(&domain.Note{}).Error
}

func (r *repo) ListNotes(ctx context.Context, db *gorm.DB, projectID snowflake.ID) ([]domain.Note, error) {
	var notes []domain.Note
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc, id desc").
		Find(&notes).Error
	return notes, err
}
