package memstore

import (
	"context"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/utils"
)

type BookRepository struct {
	store *Store
}

func (r *BookRepository) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.filter(func(model.Book) bool { return true }, page), nil
}

func (r *BookRepository) FindByTitleContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.filter(func(b model.Book) bool { return containsFold(b.Title, text) }, page), nil
}

func (r *BookRepository) FindByLanguageContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.filter(func(b model.Book) bool { return containsFold(b.Language, text) }, page), nil
}

func (r *BookRepository) FindByPublisherContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.filter(func(b model.Book) bool {
		return b.Publisher != nil && containsFold(utils.StringOrEmpty(b.Publisher), text)
	}, page), nil
}

func (r *BookRepository) FindByAuthorName(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.filter(func(b model.Book) bool {
		for _, a := range b.Authors {
			if containsFold(a.Name, text) {
				return true
			}
		}
		return false
	}, page), nil
}

func (r *BookRepository) filter(keep func(model.Book) bool, page pagination.PageRequest) pagination.Page[model.Book] {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Book
	for _, id := range sortedIDs(s.books) {
		if b := s.hydrate(s.books[id]); keep(b) {
			out = append(out, b)
		}
	}
	return paginate(out, page)
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (*model.Book, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, false, nil
	}
	b = s.hydrate(b)
	return &b, true, nil
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.bookByISBN(isbn); ok {
		b = s.hydrate(b)
		return &b, true, nil
	}
	return nil, false, nil
}

func (r *BookRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bookByISBN(book.ISBN); taken {
		return nil, apperror.DuplicateISBN(book.ISBN)
	}
	authorIDs := book.AuthorIDs()
	if err := s.checkAuthors(authorIDs); err != nil {
		return nil, err
	}

	s.nextBookID++
	created := *book
	created.ID = s.nextBookID
	created.Authors = nil
	s.books[created.ID] = created
	s.links[created.ID] = authorIDs

	out := s.hydrate(created)
	return &out, nil
}

func (r *BookRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; !ok {
		return nil, apperror.NotFound("book", book.ID)
	}
	if holder, taken := s.bookByISBN(book.ISBN); taken && holder.ID != book.ID {
		return nil, apperror.DuplicateISBN(book.ISBN)
	}
	authorIDs := book.AuthorIDs()
	if err := s.checkAuthors(authorIDs); err != nil {
		return nil, err
	}

	updated := *book
	updated.Authors = nil
	s.books[updated.ID] = updated
	s.links[updated.ID] = authorIDs

	out := s.hydrate(updated)
	return &out, nil
}

func (r *BookRepository) DeleteByID(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return apperror.NotFound("book", id)
	}
	delete(s.books, id)
	delete(s.links, id)
	return nil
}

// The helpers below expect the lock to be held.

func (s *Store) bookByISBN(isbn string) (model.Book, bool) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return b, true
		}
	}
	return model.Book{}, false
}

func (s *Store) checkAuthors(ids []int64) error {
	for _, id := range ids {
		if _, ok := s.authors[id]; !ok {
			return apperror.AuthorNotFound(id)
		}
	}
	return nil
}

func (s *Store) hydrate(b model.Book) model.Book {
	ids := s.links[b.ID]
	b.Authors = make([]authormodel.Author, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.authors[id]; ok {
			b.Authors = append(b.Authors, a)
		}
	}
	return b
}
