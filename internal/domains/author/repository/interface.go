package repository

import (
	"context"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/shared/pagination"
)

// RepositoryInterface - Định nghĩa data access methods cho authors
type RepositoryInterface interface {
	FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Author], error)
	// FindByNameContaining matches a case-insensitive substring of the name
	FindByNameContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Author], error)
	FindByID(ctx context.Context, id int64) (*model.Author, bool, error)
	// FindByIDs returns the authors that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []int64) ([]model.Author, error)
	FindByEmailIgnoreCase(ctx context.Context, email string) (*model.Author, bool, error)
	Create(ctx context.Context, author *model.Author) (*model.Author, error)
	// Update replaces every field of the author stored under author.ID
	Update(ctx context.Context, author *model.Author) (*model.Author, error)
	DeleteByID(ctx context.Context, id int64) error
}
