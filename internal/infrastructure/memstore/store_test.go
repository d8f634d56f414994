package memstore

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "book-catalog/internal/domains/author/model"
	authorrepo "book-catalog/internal/domains/author/repository"
	bookmodel "book-catalog/internal/domains/book/model"
	bookrepo "book-catalog/internal/domains/book/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
)

var (
	_ authorrepo.RepositoryInterface = (*AuthorRepository)(nil)
	_ bookrepo.RepositoryInterface   = (*BookRepository)(nil)
)

func seedAuthor(t *testing.T, s *Store, name, email string) authormodel.Author {
	t.Helper()
	a, err := s.Authors().Create(context.Background(), &authormodel.Author{
		Name: name, Email: email, Biography: "bio", URLPicture: authormodel.DefaultPictureURL,
	})
	require.NoError(t, err)
	return *a
}

func seedBook(t *testing.T, s *Store, isbn, title string, authors ...authormodel.Author) bookmodel.Book {
	t.Helper()
	b, err := s.Books().Create(context.Background(), &bookmodel.Book{
		ISBN: isbn, Title: title, PrintLength: 100, Language: "English", PublicationYear: "2000",
		URLCover: bookmodel.DefaultCoverURL, Authors: authors,
	})
	require.NoError(t, err)
	return *b
}

func TestAuthorEmailUniqueIgnoresCase(t *testing.T) {
	s := New()
	seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")

	_, err := s.Authors().Create(context.Background(), &authormodel.Author{Name: "Other", Email: "JO@NESBO.NO"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)

	found, ok, err := s.Authors().FindByEmailIgnoreCase(context.Background(), "Jo@Nesbo.No")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Jo Nesbø", found.Name)
}

func TestAuthorUpdateKeepsOwnEmail(t *testing.T) {
	s := New()
	a := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")
	other := seedAuthor(t, s, "Karin Fossum", "karin@fossum.no")

	a.Name = "Jo Nesbo"
	_, err := s.Authors().Update(context.Background(), &a)
	require.NoError(t, err)

	other.Email = "jo@nesbo.no"
	_, err = s.Authors().Update(context.Background(), &other)
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)

	_, err = s.Authors().Update(context.Background(), &authormodel.Author{ID: 99})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAuthorDeleteRestrictedByLinks(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")
	b := seedBook(t, s, "9780099520320", "The Bat", a)

	assert.ErrorIs(t, s.Authors().DeleteByID(ctx, a.ID), apperror.ErrConflictingReference)

	require.NoError(t, s.Books().DeleteByID(ctx, b.ID))
	assert.NoError(t, s.Authors().DeleteByID(ctx, a.ID))
	assert.ErrorIs(t, s.Authors().DeleteByID(ctx, a.ID), apperror.ErrNotFound)
}

func TestBookDeleteLeavesAuthors(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")
	b := seedBook(t, s, "9780099520320", "The Bat", a)

	require.NoError(t, s.Books().DeleteByID(ctx, b.ID))

	_, ok, err := s.Authors().FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBookCreateRejectsUnknownAuthor(t *testing.T) {
	s := New()
	a := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")

	_, err := s.Books().Create(context.Background(), &bookmodel.Book{
		ISBN: "9780099520320", Authors: []authormodel.Author{a, {ID: 999}},
	})
	assert.ErrorIs(t, err, apperror.ErrAuthorNotFound)

	page, err := s.Books().FindAll(context.Background(), pagination.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)
}

func TestBookISBNExact(t *testing.T) {
	s := New()
	a := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")
	seedBook(t, s, "030640615X", "X", a)

	_, ok, err := s.Books().FindByISBN(context.Background(), "030640615x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Books().Create(context.Background(), &bookmodel.Book{ISBN: "030640615X", Authors: []authormodel.Author{a}})
	assert.ErrorIs(t, err, apperror.ErrDuplicateISBN)
}

func TestBookFinders(t *testing.T) {
	s := New()
	ctx := context.Background()
	jo := seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")
	karin := seedAuthor(t, s, "Karin Fossum", "karin@fossum.no")
	seedBook(t, s, "9780099520320", "The Bat", jo)
	seedBook(t, s, "9780306406157", "Don't Look Back", karin)
	seedBook(t, s, "9780099581789", "The Snowman", jo, karin)

	page, err := s.Books().FindByAuthorName(ctx, "NESB", pagination.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	page, err = s.Books().FindByTitleContaining(ctx, "the", pagination.NewPageRequest(0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "The Bat", page.Content[0].Title)

	bat := page.Content[0]
	got, ok, err := s.Books().FindByID(ctx, bat.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Authors, 1)
	assert.Equal(t, jo.ID, got.Authors[0].ID)

	page, err = s.Books().FindByPublisherContaining(ctx, "", pagination.NewPageRequest(0, 10))
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)
}

func TestPaginateBeyondEnd(t *testing.T) {
	s := New()
	seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")

	page, err := s.Authors().FindAll(context.Background(), pagination.NewPageRequest(5, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotNil(t, page.Content)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestPaginateHugePage(t *testing.T) {
	s := New()
	seedAuthor(t, s, "Jo Nesbø", "jo@nesbo.no")

	page, err := s.Authors().FindAll(context.Background(), pagination.NewPageRequest(math.MaxInt64/50, 100))
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(1), page.TotalElements)

	// a hand-built request bypassing the clamp must not panic either
	page, err = s.Authors().FindAll(context.Background(), pagination.PageRequest{Page: math.MaxInt64 / 50, Size: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}
