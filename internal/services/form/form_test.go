package form_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/services/form"
)

func TestRequired(t *testing.T) {
	require.NoError(t, form.Required("email", "a@b.co", "password", "x"))

	err := form.Required("email", "a@b.co", "password", "  ")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmail(t *testing.T) {
	assert.NoError(t, form.Email("email", " av@ustat.ai "))
	assert.Error(t, form.Email("email", ""))
	assert.Error(t, form.Email("email", "av@ustat"))
	assert.Error(t, form.Email("email", "a v@ustat.ai"))
}

func TestMatch(t *testing.T) {
	assert.NoError(t, form.Match("confirm", "s3cret", "s3cret"))
	assert.Equal(t, "passwords do not match", domain.UserMessage(form.Match("confirm", "a", "b")))
}
