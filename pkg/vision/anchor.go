package vision

import (
	"fmt"
	"image"
)

// DefaultMinConfidence is the normalized-correlation score below which an
// anchor match is rejected. Tune per deployment via ANCHOR_MIN_CONF.
const DefaultMinConfidence = 0.60

// AnchorLocator finds the reference anchor pattern in a screenshot.
type AnchorLocator struct {
	Matcher       Matcher
	Pattern       image.Image
	MinConfidence float64
}

// Find returns the anchor's location in img and the match confidence.
// A best match below MinConfidence yields ErrAnchorNotFound.
func (a AnchorLocator) Find(img image.Image) (image.Point, float64, error) {
	m := a.Matcher
	if m == nil {
		m = NCCMatcher{}
	}
	pt, conf, err := m.Locate(img, a.Pattern)
	if err != nil {
		return image.Point{}, 0, fmt.Errorf("locate anchor: %w", err)
	}
	if conf < a.MinConfidence {
		return image.Point{}, conf, fmt.Errorf("%w: best score %.3f below threshold %.3f", ErrAnchorNotFound, conf, a.MinConfidence)
	}
	return pt, conf, nil
}
