package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/shared/utils"
)

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

// AuthorRef points a book at an existing author
type AuthorRef struct {
	ID int64 `json:"id"`
}

func (r AuthorRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("author id is required"),
			validation.Min(int64(1)).Error("author id must be positive"),
		),
	)
}

// BookInput is the create/update payload; ID is never trusted
type BookInput struct {
	ID              int64       `json:"id,omitempty"`
	ISBN            string      `json:"isbn"`
	Title           string      `json:"title"`
	PrintLength     int         `json:"printLength"`
	Language        string      `json:"language"`
	PublicationYear string      `json:"publicationYear"`
	Publisher       *string     `json:"publisher,omitempty"`
	URLCover        *string     `json:"urlCover,omitempty"`
	Synopsis        *string     `json:"synopsis,omitempty"`
	Genre           *Genre      `json:"genre,omitempty"`
	Authors         []AuthorRef `json:"authors"`
}

// Validate checks the payload as it will be stored, after trimming
func (r BookInput) Validate() error {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Title = strings.TrimSpace(r.Title)
	r.Language = strings.TrimSpace(r.Language)
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(10, 17).Error("isbn must be between 10 and 17 characters"),
			is.ISBN.Error("what you entered doesn't look like an ISBN"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.PrintLength,
			validation.Required.Error("printLength is required"),
			validation.Min(1).Error("printLength must be positive"),
		),
		validation.Field(&r.Language,
			validation.Required.Error("language is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("publicationYear is required"),
			validation.Match(yearPattern).Error("publicationYear must be exactly 4 digits"),
		),
		validation.Field(&r.Publisher,
			validation.RuneLength(0, 255).Error("publisher must be at most 255 characters"),
		),
		validation.Field(&r.URLCover,
			is.URL.Error("urlCover must be a valid URL"),
		),
		validation.Field(&r.Genre),
		validation.Field(&r.Authors,
			validation.Required.Error("at least one author is required"),
		),
	)
}

// AuthorIDs returns the referenced ids in input order, duplicates collapsed
func (r BookInput) AuthorIDs() []int64 {
	seen := make(map[int64]bool, len(r.Authors))
	ids := make([]int64, 0, len(r.Authors))
	for _, ref := range r.Authors {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		ids = append(ids, ref.ID)
	}
	return ids
}

// ToBook builds the entity without authors; the service resolves them
func (r BookInput) ToBook() *Book {
	b := &Book{
		ISBN:            strings.TrimSpace(r.ISBN),
		Title:           strings.TrimSpace(r.Title),
		PrintLength:     r.PrintLength,
		Language:        strings.TrimSpace(r.Language),
		PublicationYear: r.PublicationYear,
		Publisher:       utils.NilIfBlank(r.Publisher),
		Synopsis:        utils.NilIfBlank(r.Synopsis),
		Genre:           r.Genre,
	}
	if r.URLCover != nil {
		b.URLCover = strings.TrimSpace(*r.URLCover)
	}
	return b
}

// BookView is the outward representation, with authors embedded
type BookView struct {
	ID              int64                    `json:"id"`
	ISBN            string                   `json:"isbn"`
	Title           string                   `json:"title"`
	PrintLength     int                      `json:"printLength"`
	Language        string                   `json:"language"`
	PublicationYear string                   `json:"publicationYear"`
	Publisher       *string                  `json:"publisher,omitempty"`
	URLCover        string                   `json:"urlCover"`
	Synopsis        *string                  `json:"synopsis,omitempty"`
	Genre           *Genre                   `json:"genre,omitempty"`
	Authors         []authormodel.AuthorView `json:"authors"`
}

func (b *Book) ToView() BookView {
	authors := make([]authormodel.AuthorView, len(b.Authors))
	for i := range b.Authors {
		authors[i] = b.Authors[i].ToView()
	}
	return BookView{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		PrintLength:     b.PrintLength,
		Language:        b.Language,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		URLCover:        b.URLCover,
		Synopsis:        b.Synopsis,
		Genre:           b.Genre,
		Authors:         authors,
	}
}

// ToInput turns a view back into a payload, used to resubmit what was read
func (v BookView) ToInput() BookInput {
	cover := v.URLCover
	refs := make([]AuthorRef, len(v.Authors))
	for i, a := range v.Authors {
		refs[i] = AuthorRef{ID: a.ID}
	}
	return BookInput{
		ID:              v.ID,
		ISBN:            v.ISBN,
		Title:           v.Title,
		PrintLength:     v.PrintLength,
		Language:        v.Language,
		PublicationYear: v.PublicationYear,
		Publisher:       v.Publisher,
		URLCover:        &cover,
		Synopsis:        v.Synopsis,
		Genre:           v.Genre,
		Authors:         refs,
	}
}
