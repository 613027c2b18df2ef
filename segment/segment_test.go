package segment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Fields
	}{
		{
			name: "two word name",
			line: "Pinus ponderosa 12.5 45.0 1.0 90.0",
			want: Fields{Species: "Pinus ponderosa", Con: 12.5, Avg: 45, Min: 1, Max: 90},
		},
		{
			name: "one word name",
			line: "Moss 5 0.1 0.1 0.1",
			want: Fields{Species: "Moss", Con: 5, Avg: 0.1, Min: 0.1, Max: 0.1},
		},
		{
			name: "long name with punctuation",
			line: "Ericameria nauseosa var. oreophila 40 2.5 0.5 10",
			want: Fields{Species: "Ericameria nauseosa var. oreophila", Con: 40, Avg: 2.5, Min: 0.5, Max: 10},
		},
		{
			name: "irregular spacing",
			line: "  Larrea   tridentata\t100  12.0 3 25 ",
			want: Fields{Species: "Larrea tridentata", Con: 100, Avg: 12, Min: 3, Max: 25},
		},
		{
			name: "indicator columns ignored",
			line: "Yucca brevifolia 80 3 1 8 X X",
			want: Fields{Species: "Yucca brevifolia", Con: 80, Avg: 3, Min: 1, Max: 8},
		},
		{
			name: "signed token stays in the name",
			line: "Opuntia -sp 10 1 1 1",
			want: Fields{Species: "Opuntia -sp", Con: 10, Avg: 1, Min: 1, Max: 1},
		},
		{
			name: "alphanumeric token stays in the name",
			line: "Agave 2x 5 1 1 1",
			want: Fields{Species: "Agave 2x", Con: 5, Avg: 1, Min: 1, Max: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmentFailures(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    error
		isParse bool
	}{
		{"three tokens", "Foo 1.0 2.0", ErrTooFewTokens, false},
		{"empty", "", ErrTooFewTokens, false},
		{"no numbers", "Joshua Tree National Park Service", ErrNoNumeric, true},
		{"numbers first", "12 13 14 15 16", ErrNoSpecies, true},
		{"truncated tail", "Salvia dorrii var. pilosa 12 4 1", ErrTruncated, true},
		{"decimal comma is not numeric", "Salvia dorrii 1,5 2 3 4", ErrTruncated, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.isParse, errors.Is(err, ErrParse))
		})
	}
}

func TestSegmentNumberError(t *testing.T) {
	tests := []struct {
		line  string
		field string
		token string
	}{
		{"Pinus ponderosa 12.5 X 1.0 90.0", "Avg", "X"},
		{"Pinus ponderosa 12.5 45 1.0 9O.0", "Max", "9O.0"},
		{"Pinus ponderosa 12 0x1F 1 1", "Avg", "0x1F"},
		{"Pinus ponderosa 12 1_000 1 1", "Avg", "1_000"},
		{"Pinus ponderosa 12 1 1e999 1", "Min", "1e999"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Segment(tt.line)
			var numErr *NumberError
			require.ErrorAs(t, err, &numErr)
			assert.Equal(t, tt.field, numErr.Field)
			assert.Equal(t, tt.token, numErr.Token)
			assert.ErrorIs(t, err, ErrParse)
			assert.Contains(t, err.Error(), tt.token)
		})
	}
}

func TestSegmentNonFiniteTokens(t *testing.T) {
	// Later statistics go through strconv and keep its spellings of
	// not-a-number; the aggregator turns them into absent values.
	got, err := Segment("Pinus ponderosa 12 NaN 1 2")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Avg))
}

// TestSegmentRoundTrip builds lines from random non-numeric names and
// numeric strings and checks they segment back to the same parts.
func TestSegmentRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []string{"Pinus", "ponderosa", "var.", "scopulorum", "Atriplex",
		"canescens", "ssp.", "linearis", "Bromus", "rubens", "(Nutt.)", "spp."}

	for i := 0; i < 500; i++ {
		nameLen := 1 + rng.Intn(4)
		parts := make([]string, nameLen)
		for j := range parts {
			parts[j] = words[rng.Intn(len(words))]
		}
		name := strings.Join(parts, " ")

		var nums [StatCount]string
		for j := range nums {
			if rng.Intn(2) == 0 {
				nums[j] = strconv.Itoa(rng.Intn(1000))
			} else {
				nums[j] = fmt.Sprintf("%d.%d", rng.Intn(100), rng.Intn(100))
			}
		}

		line := name + " " + strings.Join(nums[:], " ")
		got, err := Segment(line)
		require.NoError(t, err, line)
		assert.Equal(t, name, got.Species, line)
		for j, v := range got.Values() {
			want, _ := strconv.ParseFloat(nums[j], 64)
			assert.Equal(t, want, v, "%s: %s", line, fieldNames[j])
		}
	}
}

func TestIsNumeric(t *testing.T) {
	for _, tok := range []string{"0", "12", "12.5", "007", "0.25"} {
		assert.True(t, IsNumeric(tok), tok)
	}
	for _, tok := range []string{"", ".5", "5.", "-1", "+1", "1,000", "1e5", "X", "12a"} {
		assert.False(t, IsNumeric(tok), tok)
	}
}

func TestHasNumeric(t *testing.T) {
	assert.True(t, HasNumeric("Foo 1.0 2.0"))
	assert.False(t, HasNumeric("Species Name"))
}
