package calculation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/services/calculation"
)

func TestFormatTRY(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{5, "5,00"},
		{1234.5, "1.234,50"},
		{1234567.891, "1.234.567,89"},
		{999.999, "1.000,00"},
		{-42000, "-42.000,00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, calculation.FormatTRY(tc.in), "FormatTRY(%v)", tc.in)
	}
}

func TestMaskTRY(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"1234":        "1.234",
		"1.234.567":   "1.234.567",
		"1234,5":      "1.234,5",
		"1234,567":    "1.234,56",
		"12a34":       "1.234",
		"1234,":       "1.234",
		"₺ 250000,00": "250.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, calculation.MaskTRY(in), "MaskTRY(%q)", in)
	}
}

func TestParseTRY(t *testing.T) {
	cases := map[string]float64{
		"1.234,56":      1234.56,
		"1234,56":       1234.56,
		"1.234.567":     1234567,
		"50.000":        50000,
		"1.234":         1234,
		"1.234,00":      1234,
		"250.000,00 TL": 250000,
		"₺99,9":         99.9,
	}
	for in, want := range cases {
		got, err := calculation.ParseTRY(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	_, err := calculation.ParseTRY("")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = calculation.ParseTRY("abc")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTRY_RoundTripsFormat(t *testing.T) {
	for _, v := range []float64{0.5, 17900, 1234567.89} {
		got, err := calculation.ParseTRY(calculation.FormatTRY(v))
		require.NoError(t, err)
		assert.InDelta(t, v, got, 0.005)
	}
}

func TestParseTRY_ReadsMaskedInput(t *testing.T) {
	for _, typed := range []string{"1234", "50000", "1234,5", "250000,75", "7"} {
		masked := calculation.MaskTRY(typed)
		got, err := calculation.ParseTRY(masked)
		require.NoError(t, err, masked)

		want, err := calculation.ParseTRY(typed)
		require.NoError(t, err, typed)
		assert.InDelta(t, want, got, 1e-9, "ParseTRY(MaskTRY(%q)) = ParseTRY(%q)", typed, masked)
	}
	got, err := calculation.ParseTRY(calculation.MaskTRY("1234"))
	require.NoError(t, err)
	assert.InDelta(t, 1234, got, 1e-9)
}
