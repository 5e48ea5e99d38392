package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/proposal/domain"
	"github.com/lancerkit/lancer/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) store(db *gorm.DB) repository.Repository[domain.Proposal] {
	return repository.ProvideStore[domain.Proposal](db)
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, proposal *domain.Proposal) error {
	return r.store(db).Create(ctx, proposal)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, proposal *domain.Proposal) error {
	return db.WithContext(ctx).Save(proposal).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Proposal, error) {
	return r.store(db).FindOne(ctx, &domain.Proposal{ID: id, OwnerID: ownerID})
}
