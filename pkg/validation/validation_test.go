package validation

import (
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostcodeArea(t *testing.T) {
	valid := []string{"M1", "SW1A", "B1", "EC2", "n1", " e17 "}
	for _, area := range valid {
		assert.True(t, IsPostcodeArea(area), area)
	}

	invalid := []string{"", "SW1A 1AA", "123", "TOOLONG", "M-1"}
	for _, area := range invalid {
		assert.False(t, IsPostcodeArea(area), area)
	}
}

func TestIsFullPostcode(t *testing.T) {
	valid := []string{"SW1A 1AA", "M1 2AB", "sw1a1aa", "B33 8TH"}
	for _, postcode := range valid {
		assert.True(t, IsFullPostcode(postcode), postcode)
	}

	invalid := []string{"", "SW1A", "1AA SW1A", "SW1A 1A"}
	for _, postcode := range invalid {
		assert.False(t, IsFullPostcode(postcode), postcode)
	}
}

func TestValidPostcodeAreas(t *testing.T) {
	bad, ok := ValidPostcodeAreas([]string{"M1", "SW1A", "nope!"})
	assert.False(t, ok)
	assert.Equal(t, "nope!", bad)

	_, ok = ValidPostcodeAreas([]string{"M1", "B2"})
	assert.True(t, ok)

	_, ok = ValidPostcodeAreas(nil)
	assert.True(t, ok)
}

func TestStruct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	type payload struct {
		Name string `validate:"required"`
		Area string `validate:"omitempty,uk_postcode_area"`
	}

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, v.Struct(&payload{Name: "x", Area: "SW1A"}))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := v.Struct(&payload{Area: "SW1A"})
		require.Error(t, err)
		assert.Equal(t, 400, httperror.GetStatusCode(err))
	})

	t.Run("custom postcode rule", func(t *testing.T) {
		err := v.Struct(&payload{Name: "x", Area: "not a postcode"})
		require.Error(t, err)
	})
}
