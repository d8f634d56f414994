package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/pkg/cache"
)

// BookService - Implements ServiceInterface
type BookService struct {
	repo     repository.RepositoryInterface
	authors  AuthorResolver
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService - Constructor with DI
func NewService(
	repo repository.RepositoryInterface,
	authors AuthorResolver,
	cache cache.Cache,
	cacheTTL time.Duration,
) ServiceInterface {
	return &BookService{
		repo:     repo,
		authors:  authors,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

func (s *BookService) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	cacheKey := fmt.Sprintf("%s%d:%d", cache.BookListPrefix, page.Page, page.Size)

	var cached pagination.Page[model.BookView]
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] Cache read failed")
	}
	if found {
		return cached, nil
	}

	// Cache MISS - query database
	books, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return pagination.Page[model.BookView]{}, err
	}

	result := pagination.Map(books, toView)
	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] Cache write failed")
	}

	return result, nil
}

type finder func(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error)

func (s *BookService) search(ctx context.Context, find finder, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	books, err := find(ctx, text, page)
	if err != nil {
		return pagination.Page[model.BookView]{}, err
	}
	return pagination.Map(books, toView), nil
}

func (s *BookService) FindByTitleContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	return s.search(ctx, s.repo.FindByTitleContaining, text, page)
}

func (s *BookService) FindByLanguageContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	return s.search(ctx, s.repo.FindByLanguageContaining, text, page)
}

func (s *BookService) FindByPublisherContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	return s.search(ctx, s.repo.FindByPublisherContaining, text, page)
}

func (s *BookService) FindByAuthorName(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error) {
	return s.search(ctx, s.repo.FindByAuthorName, text, page)
}

func (s *BookService) FindByID(ctx context.Context, id int64) (*model.BookView, error) {
	book, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("book", id)
	}

	view := book.ToView()
	return &view, nil
}

// ════════════════════════════════════════════════════════════════
// WRITES
// ════════════════════════════════════════════════════════════════

func (s *BookService) Save(ctx context.Context, input model.BookInput) (*model.BookView, error) {
	// STEP 1: Validate before touching the store
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// STEP 2: ISBN uniqueness, exact match
	if err := s.ensureISBNAvailable(ctx, strings.TrimSpace(input.ISBN), 0); err != nil {
		return nil, err
	}

	// STEP 3: Build entity; the caller's id is ignored
	book := input.ToBook()
	book.ID = 0
	book.ApplyDefaults()

	// STEP 4: Every author must resolve, or nothing is written
	authors, err := s.resolveAuthors(ctx, input.AuthorIDs())
	if err != nil {
		return nil, err
	}
	book.Authors = authors

	// STEP 5: Persist book + links
	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().
		Int64("book_id", created.ID).
		Ints64("author_ids", created.AuthorIDs()).
		Msg("[BookService] Book created")

	view := created.ToView()
	return &view, nil
}

func (s *BookService) UpdateByID(ctx context.Context, id int64, input model.BookInput) (*model.BookView, error) {
	// STEP 1: Validate
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// STEP 2: Target must exist
	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	} else if !found {
		return nil, apperror.NotFound("book", id)
	}

	// STEP 3: ISBN may only be held by this book
	if err := s.ensureISBNAvailable(ctx, strings.TrimSpace(input.ISBN), id); err != nil {
		return nil, err
	}

	// STEP 4: Resolve the replacement author set
	authors, err := s.resolveAuthors(ctx, input.AuthorIDs())
	if err != nil {
		return nil, err
	}

	// STEP 5: Full replace under the path id
	book := input.ToBook()
	book.ID = id
	book.Authors = authors
	book.ApplyDefaults()

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("book_id", id).Msg("[BookService] Book updated")

	view := updated.ToView()
	return &view, nil
}

// DeleteByID removes the book and its author links; authors stay
func (s *BookService) DeleteByID(ctx context.Context, id int64) error {
	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	} else if !found {
		return apperror.NotFound("book", id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("book_id", id).Msg("[BookService] Book deleted")
	return nil
}

// resolveAuthors loads ids in one batch. The first id, in input order,
// that does not exist fails the whole operation.
func (s *BookService) resolveAuthors(ctx context.Context, ids []int64) ([]authormodel.Author, error) {
	found, err := s.authors.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]authormodel.Author, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	authors := make([]authormodel.Author, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, apperror.AuthorNotFound(id)
		}
		authors = append(authors, a)
	}
	return authors, nil
}

// ensureISBNAvailable fails when another book holds isbn.
// selfID is 0 on create; identifiers are compared by value.
func (s *BookService) ensureISBNAvailable(ctx context.Context, isbn string, selfID int64) error {
	isbn = strings.TrimSpace(isbn)
	existing, found, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if found && existing.ID != selfID {
		return apperror.DuplicateISBN(isbn)
	}
	return nil
}

func (s *BookService) invalidateLists(ctx context.Context) {
	if err := cache.InvalidateLists(ctx, s.cache); err != nil {
		log.Warn().Err(err).Msg("[BookService] Cache invalidation failed")
	}
}

func toView(b model.Book) model.BookView {
	return b.ToView()
}
