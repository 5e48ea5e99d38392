package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, quote *Quote) error
	Update(ctx context.Context, db *gorm.DB, quote *Quote) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Quote, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListQuoteFilter, page pagination.Pagination) ([]*Quote, error)

	InsertItems(ctx context.Context, db *gorm.DB, items []QuoteItem) error
	DeleteItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) error
	ListItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) ([]QuoteItem, error)

	NextQuoteNumber(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID) (int64, error)
}
