package model

import (
	authormodel "book-catalog/internal/domains/author/model"
)

// DefaultCoverURL replaces a missing book cover
const DefaultCoverURL = "https://live.staticflickr.com/65535/51264896706_e66beed079_n.jpg"

type Book struct {
	ID              int64                `json:"id" db:"id"`
	ISBN            string               `json:"isbn" db:"isbn"`
	Title           string               `json:"title" db:"title"`
	PrintLength     int                  `json:"print_length" db:"print_length"`
	Language        string               `json:"language" db:"language"`
	PublicationYear string               `json:"publication_year" db:"publication_year"`
	Publisher       *string              `json:"publisher" db:"publisher"`
	URLCover        string               `json:"url_cover" db:"url_cover"`
	Synopsis        *string              `json:"synopsis" db:"synopsis"`
	Genre           *Genre               `json:"genre" db:"genre"`
	Authors         []authormodel.Author `json:"authors"`
}

// ApplyDefaults fills the cover when none was given.
// Applying it twice changes nothing.
func (b *Book) ApplyDefaults() {
	if b.URLCover == "" {
		b.URLCover = DefaultCoverURL
	}
}

// AuthorIDs returns the linked author ids in link order
func (b *Book) AuthorIDs() []int64 {
	ids := make([]int64, len(b.Authors))
	for i, a := range b.Authors {
		ids[i] = a.ID
	}
	return ids
}
