package memstore

import (
	"context"
	"strings"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
)

type AuthorRepository struct {
	store *Store
}

func (r *AuthorRepository) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Author], error) {
	return r.filter(func(model.Author) bool { return true }, page), nil
}

func (r *AuthorRepository) FindByNameContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Author], error) {
	return r.filter(func(a model.Author) bool { return containsFold(a.Name, text) }, page), nil
}

func (r *AuthorRepository) filter(keep func(model.Author) bool, page pagination.PageRequest) pagination.Page[model.Author] {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Author
	for _, id := range sortedIDs(s.authors) {
		if a := s.authors[id]; keep(a) {
			out = append(out, a)
		}
	}
	return paginate(out, page)
}

func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.authors[id]
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

func (r *AuthorRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Author, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Author, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if a, ok := s.authors[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AuthorRepository) FindByEmailIgnoreCase(ctx context.Context, email string) (*model.Author, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.authorByEmail(email); ok {
		return &a, true, nil
	}
	return nil, false, nil
}

func (r *AuthorRepository) Create(ctx context.Context, author *model.Author) (*model.Author, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.authorByEmail(author.Email); taken {
		return nil, apperror.DuplicateEmail(author.Email)
	}

	s.nextAuthorID++
	created := *author
	created.ID = s.nextAuthorID
	s.authors[created.ID] = created

	return &created, nil
}

func (r *AuthorRepository) Update(ctx context.Context, author *model.Author) (*model.Author, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[author.ID]; !ok {
		return nil, apperror.NotFound("author", author.ID)
	}
	if holder, taken := s.authorByEmail(author.Email); taken && holder.ID != author.ID {
		return nil, apperror.DuplicateEmail(author.Email)
	}

	updated := *author
	s.authors[updated.ID] = updated
	return &updated, nil
}

func (r *AuthorRepository) DeleteByID(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[id]; !ok {
		return apperror.NotFound("author", id)
	}
	for _, authorIDs := range s.links {
		for _, linked := range authorIDs {
			if linked == id {
				return apperror.ConflictingReference("author", id, "it is still linked to at least one book")
			}
		}
	}

	delete(s.authors, id)
	return nil
}

// authorByEmail expects the lock to be held
func (s *Store) authorByEmail(email string) (model.Author, bool) {
	for _, a := range s.authors {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return model.Author{}, false
}
