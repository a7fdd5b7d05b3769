package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeSource(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"english prose", "This medication is safe and compatible with breastfeeding", true},
		{"exactly two keywords", "the product", false},
		{"three keywords", "the product is very good", true},
		{"portuguese", "Medicamento compatível com a amamentação", false},
		{"case insensitive", "THE Safe AND", true},
		{"punctuation stays attached", "safe. compatible. likely.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeSource(tt.text))
		})
	}
}
