package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/pkg/cache"
)

// CoverService - Implements CoverServiceInterface
type CoverService struct {
	repo   repository.RepositoryInterface
	store  ObjectStore
	images ImageProcessor
	cache  cache.Cache
}

func NewCoverService(
	repo repository.RepositoryInterface,
	store ObjectStore,
	images ImageProcessor,
	cache cache.Cache,
) CoverServiceInterface {
	return &CoverService{
		repo:   repo,
		store:  store,
		images: images,
		cache:  cache,
	}
}

func coverPrefix(bookID int64) string {
	return fmt.Sprintf("books/%d/", bookID)
}

// Upload replaces the book's cover with data, resized and stored as JPEG
func (s *CoverService) Upload(ctx context.Context, bookID int64, data []byte) (*model.BookView, error) {
	// STEP 1: Check format + size before touching the store
	if err := s.images.ValidateImage(data); err != nil {
		return nil, apperror.Invalid("file", err.Error())
	}

	// STEP 2: Book must exist
	book, found, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("book", bookID)
	}

	processed, err := s.images.ProcessCover(data)
	if err != nil {
		return nil, apperror.Invalid("file", err.Error())
	}

	// STEP 3: Store the file, then point the book at it
	url, err := s.store.Upload(ctx, coverPrefix(bookID)+"cover.jpg", processed, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("upload cover for book %d: %w", bookID, err)
	}

	book.URLCover = url
	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().
		Int64("book_id", bookID).
		Int("bytes", len(processed)).
		Str("url", url).
		Msg("[CoverService] Cover uploaded")

	view := updated.ToView()
	return &view, nil
}

// Remove deletes stored cover files and restores the default cover
func (s *CoverService) Remove(ctx context.Context, bookID int64) (*model.BookView, error) {
	book, found, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("book", bookID)
	}

	if err := s.store.DeleteByPrefix(ctx, coverPrefix(bookID)); err != nil {
		return nil, fmt.Errorf("remove cover for book %d: %w", bookID, err)
	}

	book.URLCover = ""
	book.ApplyDefaults()
	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("book_id", bookID).Msg("[CoverService] Cover removed")

	view := updated.ToView()
	return &view, nil
}

func (s *CoverService) invalidateLists(ctx context.Context) {
	if err := cache.InvalidateLists(ctx, s.cache); err != nil {
		log.Warn().Err(err).Msg("[CoverService] Cache invalidation failed")
	}
}
