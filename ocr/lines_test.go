package ocr

import (
	"image"
	"reflect"
	"testing"
)

func TestOrderLines(t *testing.T) {
	boxes := []Box{
		// Footer block reported first.
		{Rect: image.Rect(100, 950, 200, 970), Text: "A - 6\n"},
		// Species-name block.
		{Rect: image.Rect(50, 100, 300, 120), Text: "Tree"},
		{Rect: image.Rect(50, 130, 300, 150), Text: "Pinus ponderosa"},
		// Numbers block for the same row, slightly offset vertically.
		{Rect: image.Rect(400, 132, 700, 151), Text: "12.5 45.0 1.0 90.0"},
		{Rect: image.Rect(50, 10, 300, 30), Text: "Stand Table"},
		{Rect: image.Rect(50, 500, 300, 520), Text: "   "},
	}

	got := OrderLines(boxes)
	want := []string{
		"Stand Table",
		"Tree",
		"Pinus ponderosa 12.5 45.0 1.0 90.0",
		"A - 6",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("OrderLines() = %q, want %q", got, want)
	}
}

func TestOrderLinesJoinsLeftToRight(t *testing.T) {
	boxes := []Box{
		{Rect: image.Rect(400, 100, 700, 120), Text: "1 2 3 4"},
		{Rect: image.Rect(50, 100, 300, 120), Text: "Yucca brevifolia"},
	}

	got := OrderLines(boxes)
	if len(got) != 1 || got[0] != "Yucca brevifolia 1 2 3 4" {
		t.Errorf("OrderLines() = %q", got)
	}
}

func TestOrderLinesEmpty(t *testing.T) {
	if got := OrderLines(nil); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
}
