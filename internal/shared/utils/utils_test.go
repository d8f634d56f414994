package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/shared/apperror"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-1", "1.5"} {
		_, err := ParseID(raw)
		assert.True(t, errors.Is(err, apperror.ErrValidation), raw)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, `%nes\_bo%`, ContainsPattern("nes_bo"))
}

func TestNilIfBlank(t *testing.T) {
	blank := "   "
	value := "Harvill"

	assert.Nil(t, NilIfBlank(nil))
	assert.Nil(t, NilIfBlank(&blank))
	assert.Equal(t, &value, NilIfBlank(&value))
	assert.Equal(t, "", StringOrEmpty(nil))
	assert.Equal(t, "Harvill", StringOrEmpty(&value))
}
