package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Layer 0", 10, "Layer 0"},
		{"exact", "Layer 0", 7, "Layer 0"},
		{"cut", `visualizations/0 {"layerCount":2}`, 10, "visualiza…"},
		{"zero width", "abc", 0, ""},
		{"one column", "abc", 1, "…"},
		{"wide runes", "日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, VisualWidth(got), max(tt.width, 0))
		})
	}
}

func TestPadRightVisual(t *testing.T) {
	assert.Equal(t, "Size    ", PadRightVisual("Size", 8))
	assert.Equal(t, "Alpha (…", PadRightVisual("Alpha (Visibility)", 8))
	assert.Equal(t, 10, VisualWidth(PadRightVisual("日本", 10)))
}
