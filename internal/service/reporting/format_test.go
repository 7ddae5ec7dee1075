package reporting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{6, "R$ 6,00"},
		{1.2, "R$ 1,20"},
		{999.999, "R$ 1.000,00"},
		{1234.56, "R$ 1.234,56"},
		{123456.7, "R$ 123.456,70"},
		{1234567.891, "R$ 1.234.567,89"},
		{-1234.5, "R$ -1.234,50"},
		{-12, "R$ -12,00"},
		{405, "R$ 405,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.in), "FormatBRL(%v)", tt.in)
	}
}

func TestFormatBRL_NotFinite(t *testing.T) {
	assert.Empty(t, FormatBRL(math.NaN()))
	assert.Empty(t, FormatBRL(math.Inf(1)))
	assert.Empty(t, FormatBRL(math.Inf(-1)))
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "-", formatOptional(models.None(), 2, "", "-"))
	assert.Equal(t, "762 ml", formatOptional(models.Some(761.904), 0, " ml", "-"))
	assert.Equal(t, "1.39", formatOptional(models.Some(25.0/18.0), 2, "", "-"))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1", '.'))
	assert.Equal(t, "123", groupThousands("123", '.'))
	assert.Equal(t, "1.234", groupThousands("1234", '.'))
	assert.Equal(t, "123.456", groupThousands("123456", '.'))
	assert.Equal(t, "12.345.678", groupThousands("12345678", '.'))
}
