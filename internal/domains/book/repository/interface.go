package repository

import (
	"context"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/pagination"
)

// RepositoryInterface - Định nghĩa data access methods cho books.
// Every returned book carries its authors in link order.
type RepositoryInterface interface {
	FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Book], error)
	FindByTitleContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error)
	FindByLanguageContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error)
	FindByPublisherContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error)
	// FindByAuthorName returns books with at least one author whose name contains text
	FindByAuthorName(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error)
	FindByID(ctx context.Context, id int64) (*model.Book, bool, error)
	// FindByISBN is an exact, case-sensitive match
	FindByISBN(ctx context.Context, isbn string) (*model.Book, bool, error)
	// Create and Update write the book row and its author links atomically
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	// DeleteByID removes the book and its author links, never the authors
	DeleteByID(ctx context.Context, id int64) error
}
