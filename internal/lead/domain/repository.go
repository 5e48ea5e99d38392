package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/lancerkit/lancer/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lead *Lead) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Lead, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Lead, error)
	Update(ctx context.Context, db *gorm.DB, lead *Lead) error
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListLeadFilter, page pagination.Pagination) ([]*Lead, error)
}
