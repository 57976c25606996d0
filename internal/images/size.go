package images

import (
	"fmt"
	"math"
)

// scaledHeight keeps the aspect ratio of w x h at the new width, rounding to
// the nearest pixel and never returning less than one.
func scaledHeight(w, h, width int) int {
	if w <= 0 {
		return 0
	}
	return int(math.Max(1, math.Floor(float64(width)*float64(h)/float64(w)+0.5)))
}

// ThumbnailSize returns the thumbnail dimensions for a w x h source. The width
// is always target; narrower sources are enlarged.
func ThumbnailSize(w, h, target int) (int, int) {
	return target, scaledHeight(w, h, target)
}

// OptimizedSize returns the web rendition dimensions for a w x h source: the
// source size when it already fits within maxWidth, otherwise maxWidth wide.
func OptimizedSize(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	return maxWidth, scaledHeight(w, h, maxWidth)
}

// AspectRatio formats w and h as a CSS aspect-ratio value, e.g. "1600 / 2400".
func AspectRatio(w, h int) string {
	return fmt.Sprintf("%d / %d", w, h)
}
