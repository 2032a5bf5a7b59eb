package vision

import "image"

// Field names of the fixed summary-screen regions.
const (
	FieldGameName          = "game_name"
	FieldChipLevel         = "chip_level"
	FieldGameHandsCount    = "game_hands_count"
	FieldCreatorPlayerName = "creator_player_name"
	FieldStartTime         = "start_time"
	FieldEndTime           = "end_time"
)

// Box is a crop rectangle in pixel coordinates: top-left corner plus size.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Rect converts the box to a stdlib image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

func (b Box) translate(dx, dy int) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
}

// RowLayout describes the repeating per-player row band: where it starts,
// how tall one row is, and the four column widths in on-screen order.
type RowLayout struct {
	Origin     image.Point
	RowHeight  int
	NameWidth  int
	HandsWidth int
	BuyInWidth int
	ScoreWidth int
}

// Layout is the reference geometry of the summary screen: the anchor point
// the template was measured against, the fixed field boxes and the row band.
// Treat it as immutable; Calibrate returns translated copies.
type Layout struct {
	Anchor image.Point
	Fields map[string]Box
	Rows   RowLayout
}

// DefaultLayout returns the reference geometry measured on the template
// screenshot. A fresh copy is built per call so callers can never corrupt
// the reference values.
func DefaultLayout() Layout {
	return Layout{
		Anchor: image.Pt(132, 502),
		Fields: map[string]Box{
			FieldGameName:          {X: 135, Y: 250, W: 580, H: 40},
			FieldChipLevel:         {X: 90, Y: 360, W: 210, H: 30},
			FieldGameHandsCount:    {X: 340, Y: 360, W: 180, H: 30},
			FieldCreatorPlayerName: {X: 530, Y: 360, W: 220, H: 30},
			FieldStartTime:         {X: 300, Y: 425, W: 135, H: 26},
			FieldEndTime:           {X: 453, Y: 425, W: 120, H: 26},
		},
		Rows: RowLayout{
			Origin:     image.Pt(150, 925),
			RowHeight:  75,
			NameWidth:  250,
			HandsWidth: 100,
			BuyInWidth: 125,
			ScoreWidth: 150,
		},
	}
}

// Calibrate translates the whole layout by delta = found - Anchor, where
// found is the anchor location in the screenshot being processed. The
// receiver is left untouched; the returned layout carries fresh copies so
// concurrent calibrations with different anchors never interfere.
func (l Layout) Calibrate(found image.Point) Layout {
	dx := found.X - l.Anchor.X
	dy := found.Y - l.Anchor.Y
	out := Layout{
		Anchor: found,
		Fields: make(map[string]Box, len(l.Fields)),
		Rows:   l.Rows,
	}
	for name, b := range l.Fields {
		out.Fields[name] = b.translate(dx, dy)
	}
	out.Rows.Origin = image.Pt(l.Rows.Origin.X+dx, l.Rows.Origin.Y+dy)
	return out
}
