package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"book-catalog/internal/shared/types"
	"book-catalog/internal/shared/utils"
)

// AuthorInput is the create/update payload. ID is accepted on the wire but
// never trusted: the store assigns it on create, the path selects it on update.
type AuthorInput struct {
	ID         int64       `json:"id,omitempty"`
	Name       string      `json:"name"`
	BirthDate  *types.Date `json:"birthDate,omitempty"`
	Email      string      `json:"email"`
	Phone      *string     `json:"phone,omitempty"`
	Biography  string      `json:"biography"`
	URLPicture *string     `json:"urlPicture,omitempty"`
}

// Validate checks the payload as it will be stored, after trimming
func (r AuthorInput) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Biography = strings.TrimSpace(r.Biography)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.BirthDate,
			validation.By(pastDate),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Phone,
			validation.RuneLength(0, 30).Error("phone must be at most 30 characters"),
		),
		validation.Field(&r.Biography,
			validation.Required.Error("biography is required"),
		),
		validation.Field(&r.URLPicture,
			is.URL.Error("urlPicture must be a valid URL"),
		),
	)
}

func pastDate(value interface{}) error {
	d, ok := value.(*types.Date)
	if !ok {
		return validation.NewInternalError(fmt.Errorf("pastDate: unexpected type %T", value))
	}
	if d == nil || d.IsZero() {
		return nil
	}
	if !d.BeforeToday(time.Now()) {
		return validation.NewError("validation_date_past", "birthDate must be in the past")
	}
	return nil
}

// ToAuthor builds the entity; ID is left for the caller to decide
func (r AuthorInput) ToAuthor() *Author {
	a := &Author{
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Phone:     utils.NilIfBlank(r.Phone),
		Biography: strings.TrimSpace(r.Biography),
	}
	if r.BirthDate != nil && !r.BirthDate.IsZero() {
		t := r.BirthDate.Time
		a.BirthDate = &t
	}
	if r.URLPicture != nil {
		a.URLPicture = strings.TrimSpace(*r.URLPicture)
	}
	return a
}

// AuthorView is the outward representation of an author
type AuthorView struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	BirthDate  *types.Date `json:"birthDate,omitempty"`
	Email      string      `json:"email"`
	Phone      *string     `json:"phone,omitempty"`
	Biography  string      `json:"biography"`
	URLPicture string      `json:"urlPicture"`
}

func (a *Author) ToView() AuthorView {
	v := AuthorView{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Biography:  a.Biography,
		URLPicture: a.URLPicture,
	}
	if a.BirthDate != nil {
		d := types.DateOf(*a.BirthDate)
		v.BirthDate = &d
	}
	return v
}

// ToInput turns a view back into a payload, used to resubmit what was read
func (v AuthorView) ToInput() AuthorInput {
	picture := v.URLPicture
	return AuthorInput{
		ID:         v.ID,
		Name:       v.Name,
		BirthDate:  v.BirthDate,
		Email:      v.Email,
		Phone:      v.Phone,
		Biography:  v.Biography,
		URLPicture: &picture,
	}
}
