package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(85) 99401-5283", "85994015283"},
		{"85 99401 5283", "85994015283"},
		{"+55 85 99401-5283", "5585994015283"},
		{"85994015283", "85994015283"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("85994015283"))

	assert.False(t, IsValid("8599401528"))    // 10 dígitos
	assert.False(t, IsValid("559940152830"))  // 12 dígitos
	assert.False(t, IsValid("(85) 99401-52")) // não normalizado
	assert.False(t, IsValid(""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "(85) 99401-5283", Format("85994015283"))

	// fora do padrão: devolve como veio
	assert.Equal(t, "123", Format("123"))
}

func TestFormatRoundTrip(t *testing.T) {
	// a formatação nunca pode afetar a comparação
	n := "85994015283"
	assert.Equal(t, n, Normalize(Format(n)))
}
