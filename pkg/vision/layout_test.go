package vision

import (
	"image"
	"testing"
)

func TestCalibrateIdentity(t *testing.T) {
	l := DefaultLayout()
	cal := l.Calibrate(l.Anchor)
	for name, b := range l.Fields {
		if cal.Fields[name] != b {
			t.Fatalf("field %s moved under zero delta: %+v != %+v", name, cal.Fields[name], b)
		}
	}
	if cal.Rows != l.Rows {
		t.Fatalf("row layout moved under zero delta: %+v != %+v", cal.Rows, l.Rows)
	}
}

func TestCalibrateTranslates(t *testing.T) {
	l := DefaultLayout()
	found := image.Pt(l.Anchor.X+10, l.Anchor.Y-7)
	cal := l.Calibrate(found)
	for name, b := range l.Fields {
		want := Box{X: b.X + 10, Y: b.Y - 7, W: b.W, H: b.H}
		if cal.Fields[name] != want {
			t.Fatalf("field %s: got %+v want %+v", name, cal.Fields[name], want)
		}
	}
	if cal.Rows.Origin != image.Pt(l.Rows.Origin.X+10, l.Rows.Origin.Y-7) {
		t.Fatalf("row origin: got %v", cal.Rows.Origin)
	}
	if cal.Rows.RowHeight != l.Rows.RowHeight || cal.Rows.NameWidth != l.Rows.NameWidth {
		t.Fatalf("row dimensions must not change: %+v", cal.Rows)
	}
}

// Consecutive calibrations with different deltas must not leak state into
// each other or into the reference layout.
func TestCalibratePure(t *testing.T) {
	l := DefaultLayout()
	origGameName := l.Fields[FieldGameName]

	first := l.Calibrate(image.Pt(l.Anchor.X+100, l.Anchor.Y+100))
	second := l.Calibrate(image.Pt(l.Anchor.X+1, l.Anchor.Y+1))

	if l.Fields[FieldGameName] != origGameName {
		t.Fatalf("reference layout mutated: %+v", l.Fields[FieldGameName])
	}
	if got := second.Fields[FieldGameName]; got != (Box{X: origGameName.X + 1, Y: origGameName.Y + 1, W: origGameName.W, H: origGameName.H}) {
		t.Fatalf("second calibration depends on the first: %+v", got)
	}
	if first.Fields[FieldGameName] == second.Fields[FieldGameName] {
		t.Fatalf("calibrations with different deltas produced identical boxes")
	}

	// Mutating one result must not reach the reference.
	first.Fields[FieldGameName] = Box{}
	if fresh := DefaultLayout().Fields[FieldGameName]; fresh != origGameName {
		t.Fatalf("default layout corrupted: %+v", fresh)
	}
}

func TestBoxRect(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 30, H: 40}
	r := b.Rect()
	if r != image.Rect(10, 20, 40, 60) {
		t.Fatalf("got %v", r)
	}
}
