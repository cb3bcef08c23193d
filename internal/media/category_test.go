package media_test

import (
	"fmt"
	"testing"

	"github.com/hbomb79/Tubely/internal/media"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		width, height int
		expected      media.Category
	}{
		{1920, 1080, media.Landscape},
		{1280, 720, media.Landscape},
		{1080, 1920, media.Portrait},
		{720, 1280, media.Portrait},
		{1000, 1000, media.Other},
		{640, 480, media.Other},
		{2560, 1080, media.Other},

		// Boundaries are excluded from both ranges
		{1600, 1000, media.Other},
		{1800, 1000, media.Other},
		{500, 1000, media.Other},
		{600, 1000, media.Other},
		{8, 5, media.Other},
		{9, 5, media.Other},
		{1, 2, media.Other},
		{3, 5, media.Other},

		// Just inside the boundaries
		{1601, 1000, media.Landscape},
		{1799, 1000, media.Landscape},
		{501, 1000, media.Portrait},
		{599, 1000, media.Portrait},

		{0, 1080, media.Other},
		{1920, 0, media.Other},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%dx%d", test.width, test.height), func(t *testing.T) {
			assert.Equal(t, test.expected, media.Classify(test.width, test.height))
		})
	}
}

// Sweeps a range of widths against a fixed height to ensure every
// ratio lands in the expected category.
func TestClassify_Sweep(t *testing.T) {
	const height = 10_000
	for width := 1; width <= 3*height; width += 7 {
		ratio := float64(width) / float64(height)
		expected := media.Other
		if ratio > 1.6 && ratio < 1.8 {
			expected = media.Landscape
		} else if ratio > 0.5 && ratio < 0.6 {
			expected = media.Portrait
		}

		assert.Equal(t, expected, media.Classify(width, height), "width=%d height=%d", width, height)
	}
}
