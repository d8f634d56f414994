package model

import (
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/shared/types"
)

func validInput() AuthorInput {
	birth := types.NewDate(1960, time.March, 29)
	return AuthorInput{
		Name:      "Jo Nesbø",
		BirthDate: &birth,
		Email:     "jo@nesbo.no",
		Biography: "Norwegian writer and musician.",
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestAuthorInputValid(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestAuthorInputRequiredFields(t *testing.T) {
	errs := fieldErrors(t, AuthorInput{}.Validate())

	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "biography")
	assert.NotContains(t, errs, "birthDate")
	assert.NotContains(t, errs, "urlPicture")
}

func TestAuthorInputRejectsBadValues(t *testing.T) {
	future := types.NewDate(2999, time.January, 1)
	badURL := "not a url"
	longPhone := "+47 000 000 000 000 000 000 000 000"

	in := validInput()
	in.BirthDate = &future
	in.Email = "jo-at-nesbo"
	in.URLPicture = &badURL
	in.Phone = &longPhone

	errs := fieldErrors(t, in.Validate())
	assert.Contains(t, errs, "birthDate")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "urlPicture")
	assert.Contains(t, errs, "phone")
}

func TestAuthorInputBlankFields(t *testing.T) {
	in := validInput()
	in.Name = "   "
	in.Email = "\t"
	in.Biography = " \n "

	errs := fieldErrors(t, in.Validate())
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "biography")
}

func TestAuthorInputTrimsBeforeStoring(t *testing.T) {
	in := validInput()
	in.Name = "  Jo Nesbø "
	in.Email = " jo@nesbo.no "
	in.Biography = " Norwegian writer. "
	require.NoError(t, in.Validate())

	a := in.ToAuthor()
	assert.Equal(t, "Jo Nesbø", a.Name)
	assert.Equal(t, "jo@nesbo.no", a.Email)
	assert.Equal(t, "Norwegian writer.", a.Biography)
}

// email checks are syntactic only, so domains without mail records still pass
func TestAuthorInputEmailIsSyntactic(t *testing.T) {
	for _, email := range []string{"jo@x.com", "a@b.com", "someone@example.invalid"} {
		in := validInput()
		in.Email = email
		assert.NoError(t, in.Validate(), email)
	}
}

func TestPastDateRejectsForeignTypes(t *testing.T) {
	err := pastDate("1960-03-29")

	var internal validation.InternalError
	assert.ErrorAs(t, err, &internal)
	assert.NoError(t, pastDate((*types.Date)(nil)))
}

func TestDefaultsAreIdempotent(t *testing.T) {
	a := validInput().ToAuthor()
	a.ApplyDefaults()
	assert.Equal(t, DefaultPictureURL, a.URLPicture)

	again := a.ToView().ToInput()
	require.NoError(t, again.Validate())

	b := again.ToAuthor()
	b.ApplyDefaults()
	assert.Equal(t, a.URLPicture, b.URLPicture)
}

func TestViewRoundTrip(t *testing.T) {
	a := validInput().ToAuthor()
	a.ID = 7
	a.ApplyDefaults()

	v := a.ToView()
	assert.Equal(t, int64(7), v.ID)
	require.NotNil(t, v.BirthDate)
	assert.Equal(t, "1960-03-29", v.BirthDate.String())
}

func TestAuthorInputRespectsColumnLimits(t *testing.T) {
	phone := strings.Repeat("9", 31)

	in := validInput()
	in.Name = strings.Repeat("n", 256)
	in.Email = "jo@" + strings.Repeat("x", 250) + ".no"
	in.Phone = &phone

	errs := fieldErrors(t, in.Validate())
	for _, field := range []string{"name", "email", "phone"} {
		assert.Contains(t, errs, field)
	}

	in = validInput()
	in.Name = strings.Repeat("ø", 255)
	assert.NoError(t, in.Validate())
}

func TestToAuthorDropsBlankPhone(t *testing.T) {
	blank := " \t"
	in := validInput()
	in.Phone = &blank

	assert.Nil(t, in.ToAuthor().Phone)
}
