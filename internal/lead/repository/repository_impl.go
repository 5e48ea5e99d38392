package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/lead/domain"
	"github.com/lancerkit/lancer/pkg/db/option"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return db.WithContext(ctx).Create(lead).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Lead, error) {
	return r.findByID(ctx, db, ownerID, id, false)
}

// FindByIDForUpdate locks the lead row for the duration of the caller's
// transaction. Used by conversion to keep concurrent converts from
// creating two clients.
func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Lead, error) {
	return r.findByID(ctx, db, ownerID, id, true)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID, forUpdate bool) (*domain.Lead, error) {
	var lead domain.Lead
	stmt := db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id)
	// sqlite has no row locks; its writes serialize on the file anyway.
	if forUpdate && db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := stmt.First(&lead).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return db.WithContext(ctx).Save(lead).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListLeadFilter, page pagination.Pagination) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	stmt := db.WithContext(ctx).
		Model(&domain.Lead{}).
		Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		stmt = stmt.Where("source = ?", filter.Source)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}
