package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/pkg/db/option"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quote *domain.Quote) error {
	return db.WithContext(ctx).Create(quote).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, quote *domain.Quote) error {
	return db.WithContext(ctx).Save(quote).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Quote, error) {
	var quote domain.Quote
	err := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&quote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListQuoteFilter, page pagination.Pagination) ([]*domain.Quote, error) {
	var quotes []*domain.Quote
	stmt := db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("owner_id = ?", ownerID)
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.ProjectID != "" {
		stmt = stmt.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Delete(&domain.QuoteItem{}).Error
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) ([]domain.QuoteItem, error) {
	var items []domain.QuoteItem
	err := db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("position asc, id asc").
		Find(&items).Error
	return items, err
}

func (r *repo) NextQuoteNumber(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID) (int64, error) {
	var next int64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(quote_number), 0) + 1
		 FROM quotes
		 WHERE owner_id = ?`,
		ownerID,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
