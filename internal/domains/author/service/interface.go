package service

import (
	"context"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/shared/pagination"
)

// ServiceInterface - Định nghĩa business logic methods cho authors
type ServiceInterface interface {
	FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.AuthorView], error)
	FindByNameContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.AuthorView], error)
	FindByID(ctx context.Context, id int64) (*model.AuthorView, error)
	Save(ctx context.Context, input model.AuthorInput) (*model.AuthorView, error)
	UpdateByID(ctx context.Context, id int64, input model.AuthorInput) (*model.AuthorView, error)
	DeleteByID(ctx context.Context, id int64) error
}
