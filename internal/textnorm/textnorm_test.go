package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Pinus ponderosa 12.5 45.0 1.0 90.0", "Pinus ponderosa 12.5 45.0 1.0 90.0"},
		{"trims", "  Tree \t", "Tree"},
		{"collapses runs", "Larrea   tridentata\t\t3  4 5 6", "Larrea tridentata 3 4 5 6"},
		{"no-break space", "Stand\u00a0Table", "Stand Table"},
		{"ligature", "Arctostaphylos paci\ufb01ca", "Arctostaphylos pacifica"},
		{"full-width digits", "Yucca \uff11\uff12", "Yucca 12"},
		{"blank", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.in))
		})
	}
}

func TestLines(t *testing.T) {
	in := []string{" Tree ", "A  - 6"}
	got := Lines(in)
	assert.Equal(t, []string{"Tree", "A - 6"}, got)
	assert.Equal(t, " Tree ", in[0], "input must not be modified")
}
