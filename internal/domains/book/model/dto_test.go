package model

import (
	"encoding/json"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "book-catalog/internal/domains/author/model"
)

func validInput() BookInput {
	genre := GenreCrimeAndDetective
	return BookInput{
		ISBN:            "9780099520320",
		Title:           "The Bat",
		PrintLength:     384,
		Language:        "English",
		PublicationYear: "1997",
		Genre:           &genre,
		Authors:         []AuthorRef{{ID: 1}},
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestBookInputValid(t *testing.T) {
	assert.NoError(t, validInput().Validate())

	in := validInput()
	in.ISBN = "0-306-40615-2"
	assert.NoError(t, in.Validate())
}

func TestBookInputRequiredFields(t *testing.T) {
	errs := fieldErrors(t, BookInput{}.Validate())

	for _, field := range []string{"isbn", "title", "printLength", "language", "publicationYear", "authors"} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, "genre")
	assert.NotContains(t, errs, "urlCover")
}

func TestBookInputRejectsBadValues(t *testing.T) {
	unknown := Genre(99)
	badURL := "cover"

	in := validInput()
	in.ISBN = "9780099520321"
	in.PrintLength = -3
	in.PublicationYear = "97"
	in.Genre = &unknown
	in.URLCover = &badURL

	errs := fieldErrors(t, in.Validate())
	for _, field := range []string{"isbn", "printLength", "publicationYear", "genre", "urlCover"} {
		assert.Contains(t, errs, field)
	}

	in = validInput()
	in.PublicationYear = "19a7"
	assert.Contains(t, fieldErrors(t, in.Validate()), "publicationYear")
}

func TestBookInputBlankFields(t *testing.T) {
	in := validInput()
	in.ISBN = "  "
	in.Title = "   "
	in.Language = "\t"

	errs := fieldErrors(t, in.Validate())
	for _, field := range []string{"isbn", "title", "language"} {
		assert.Contains(t, errs, field)
	}
}

func TestBookInputTrimsBeforeStoring(t *testing.T) {
	in := validInput()
	in.ISBN = " 9780099520320 "
	in.Title = "  The Bat "
	in.Language = " English"
	require.NoError(t, in.Validate())

	b := in.ToBook()
	assert.Equal(t, "9780099520320", b.ISBN)
	assert.Equal(t, "The Bat", b.Title)
	assert.Equal(t, "English", b.Language)
}

func TestBookInputNestedAuthorErrors(t *testing.T) {
	in := validInput()
	in.Authors = []AuthorRef{{ID: 1}, {ID: 0}}

	errs := fieldErrors(t, in.Validate())
	nested, ok := errs["authors"].(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, nested, "1")
}

func TestAuthorIDsCollapsesDuplicates(t *testing.T) {
	in := validInput()
	in.Authors = []AuthorRef{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 2}}

	assert.Equal(t, []int64{3, 1, 2}, in.AuthorIDs())
}

func TestDefaultsAreIdempotent(t *testing.T) {
	b := validInput().ToBook()
	b.Authors = []authormodel.Author{{ID: 1, Name: "Jo Nesbø", Email: "jo@nesbo.no", Biography: "b", URLPicture: authormodel.DefaultPictureURL}}
	b.ApplyDefaults()
	assert.Equal(t, DefaultCoverURL, b.URLCover)

	again := b.ToView().ToInput()
	require.NoError(t, again.Validate())

	b2 := again.ToBook()
	b2.ApplyDefaults()
	assert.Equal(t, b.URLCover, b2.URLCover)
	assert.Equal(t, []int64{1}, again.AuthorIDs())
}

func TestGenreJSONUsesCode(t *testing.T) {
	out, err := json.Marshal(validInput())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"genre":5`)

	var in BookInput
	require.NoError(t, json.Unmarshal([]byte(`{"genre":36}`), &in))
	require.NotNil(t, in.Genre)
	assert.Equal(t, GenrePoetry, *in.Genre)
}

func TestBookInputRespectsColumnLimits(t *testing.T) {
	longPublisher := strings.Repeat("p", 256)

	in := validInput()
	in.ISBN = "9-7-8-0-0-9-9-5-2-0-3-2-0"
	in.Language = strings.Repeat("l", 101)
	in.Publisher = &longPublisher

	errs := fieldErrors(t, in.Validate())
	for _, field := range []string{"isbn", "language", "publisher"} {
		assert.Contains(t, errs, field)
	}

	// limits count characters, not bytes
	atLimit := strings.Repeat("ø", 255)
	in = validInput()
	in.ISBN = "978-0-09-952032-0"
	in.Title = atLimit
	in.Language = strings.Repeat("å", 100)
	in.Publisher = &atLimit
	assert.NoError(t, in.Validate())
}

func TestToBookDropsBlankOptionalText(t *testing.T) {
	blank := "  "
	publisher := "Vintage"

	in := validInput()
	in.Publisher = &blank
	in.Synopsis = &blank
	b := in.ToBook()
	assert.Nil(t, b.Publisher)
	assert.Nil(t, b.Synopsis)

	in.Publisher = &publisher
	b = in.ToBook()
	require.NotNil(t, b.Publisher)
	assert.Equal(t, "Vintage", *b.Publisher)
}
