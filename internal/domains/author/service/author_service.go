package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/pkg/cache"
)

type AuthorService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &AuthorService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

// FindAll serves list pages from cache when possible.
// Cache failures are logged and fall through to the store.
func (s *AuthorService) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.AuthorView], error) {
	cacheKey := fmt.Sprintf("%s%d:%d", cache.AuthorListPrefix, page.Page, page.Size)

	var cached pagination.Page[model.AuthorView]
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[AuthorService] Cache read failed")
	}
	if found {
		return cached, nil
	}

	authors, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return pagination.Page[model.AuthorView]{}, err
	}

	result := pagination.Map(authors, toView)
	if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[AuthorService] Cache write failed")
	}

	return result, nil
}

func (s *AuthorService) FindByNameContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.AuthorView], error) {
	authors, err := s.repo.FindByNameContaining(ctx, text, page)
	if err != nil {
		return pagination.Page[model.AuthorView]{}, err
	}
	return pagination.Map(authors, toView), nil
}

func (s *AuthorService) FindByID(ctx context.Context, id int64) (*model.AuthorView, error) {
	author, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("author", id)
	}

	view := author.ToView()
	return &view, nil
}

// ════════════════════════════════════════════════════════════════
// WRITES
// ════════════════════════════════════════════════════════════════

func (s *AuthorService) Save(ctx context.Context, input model.AuthorInput) (*model.AuthorView, error) {
	// STEP 1: Validate before touching the store
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// STEP 2: E-mail uniqueness, case-insensitive
	if err := s.ensureEmailAvailable(ctx, strings.TrimSpace(input.Email), 0); err != nil {
		return nil, err
	}

	// STEP 3: Build entity; the caller's id is ignored
	author := input.ToAuthor()
	author.ID = 0
	author.ApplyDefaults()

	// STEP 4: Persist
	created, err := s.repo.Create(ctx, author)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("author_id", created.ID).Msg("[AuthorService] Author created")

	view := created.ToView()
	return &view, nil
}

func (s *AuthorService) UpdateByID(ctx context.Context, id int64, input model.AuthorInput) (*model.AuthorView, error) {
	// STEP 1: Validate
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// STEP 2: Target must exist
	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	} else if !found {
		return nil, apperror.NotFound("author", id)
	}

	// STEP 3: E-mail may only be held by this author
	if err := s.ensureEmailAvailable(ctx, strings.TrimSpace(input.Email), id); err != nil {
		return nil, err
	}

	// STEP 4: Full replace under the path id
	author := input.ToAuthor()
	author.ID = id
	author.ApplyDefaults()

	updated, err := s.repo.Update(ctx, author)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("author_id", id).Msg("[AuthorService] Author updated")

	view := updated.ToView()
	return &view, nil
}

func (s *AuthorService) DeleteByID(ctx context.Context, id int64) error {
	if _, found, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	} else if !found {
		return apperror.NotFound("author", id)
	}

	// Authors still linked to a book are rejected by the store
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateLists(ctx)
	log.Info().Int64("author_id", id).Msg("[AuthorService] Author deleted")
	return nil
}

// ensureEmailAvailable fails when another author holds email.
// selfID is 0 on create; identifiers are compared by value.
func (s *AuthorService) ensureEmailAvailable(ctx context.Context, email string, selfID int64) error {
	email = strings.TrimSpace(email)
	existing, found, err := s.repo.FindByEmailIgnoreCase(ctx, email)
	if err != nil {
		return err
	}
	if found && existing.ID != selfID {
		return apperror.DuplicateEmail(email)
	}
	return nil
}

func (s *AuthorService) invalidateLists(ctx context.Context) {
	if err := cache.InvalidateLists(ctx, s.cache); err != nil {
		log.Warn().Err(err).Msg("[AuthorService] Cache invalidation failed")
	}
}

func toView(a model.Author) model.AuthorView {
	return a.ToView()
}
