package model

import "time"

// DefaultPictureURL replaces a missing author picture
const DefaultPictureURL = "https://live.staticflickr.com/65535/51265117593_c76eb4ccb8_n.jpg"

type Author struct {
	ID         int64      `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	BirthDate  *time.Time `json:"birth_date" db:"birth_date"`
	Email      string     `json:"email" db:"email"`
	Phone      *string    `json:"phone" db:"phone"`
	Biography  string     `json:"biography" db:"biography"`
	URLPicture string     `json:"url_picture" db:"url_picture"`
}

// ApplyDefaults fills the picture when none was given.
// Applying it twice changes nothing.
func (a *Author) ApplyDefaults() {
	if a.URLPicture == "" {
		a.URLPicture = DefaultPictureURL
	}
}
