package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/pagination"
)

// ServiceInterface - Định nghĩa business logic methods cho books
type ServiceInterface interface {
	FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.BookView], error)
	FindByTitleContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error)
	FindByLanguageContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error)
	FindByPublisherContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error)
	FindByAuthorName(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error)
	FindByID(ctx context.Context, id int64) (*model.BookView, error)
	Save(ctx context.Context, input model.BookInput) (*model.BookView, error)
	UpdateByID(ctx context.Context, id int64, input model.BookInput) (*model.BookView, error)
	DeleteByID(ctx context.Context, id int64) error
	ExportToExcel(ctx context.Context) (*excelize.File, error)
}

// AuthorResolver loads the authors a book refers to.
// Satisfied by the author repository.
type AuthorResolver interface {
	FindByIDs(ctx context.Context, ids []int64) ([]authormodel.Author, error)
}

// CoverServiceInterface manages uploaded cover images
type CoverServiceInterface interface {
	Upload(ctx context.Context, bookID int64, data []byte) (*model.BookView, error)
	Remove(ctx context.Context, bookID int64) (*model.BookView, error)
}

// ObjectStore keeps cover files. Satisfied by storage.MinIOStorage.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageProcessor checks and normalizes an uploaded image
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessCover(data []byte) ([]byte, error)
}
