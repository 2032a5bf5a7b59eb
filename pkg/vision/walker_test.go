package vision

import (
	"errors"
	"fmt"
	"image"
	"testing"
)

func testRows(y0 int) RowLayout {
	return RowLayout{
		Origin:     image.Pt(150, y0),
		RowHeight:  75,
		NameWidth:  250,
		HandsWidth: 100,
		BuyInWidth: 125,
		ScoreWidth: 150,
	}
}

func drain(w *RowWalker) []RowRecord {
	var out []RowRecord
	for {
		rec, ok := w.Next()
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestWalkerRowCount(t *testing.T) {
	cases := []struct {
		height, y0, want int
	}{
		{1000, 925, 1},  // ceil(75/75)
		{1001, 925, 2},  // ceil(76/75)
		{1600, 925, 9},  // ceil(675/75)
		{925, 925, 0},   // origin at image bottom
		{900, 925, 0},   // origin past image bottom
		{1000, 999, 1},  // partial last row still counts
	}
	for _, c := range cases {
		w := NewRowWalker(testRows(c.y0), c.height, func(Box) (string, error) { return "x", nil })
		if got := len(drain(w)); got != c.want {
			t.Fatalf("height=%d y0=%d: got %d rows want %d", c.height, c.y0, got, c.want)
		}
	}
}

func TestWalkerColumnBoxes(t *testing.T) {
	var boxes []Box
	w := NewRowWalker(testRows(925), 1000, func(b Box) (string, error) {
		boxes = append(boxes, b)
		return fmt.Sprintf("cell%d", len(boxes)), nil
	})
	recs := drain(w)
	if len(recs) != 1 || len(boxes) != 4 {
		t.Fatalf("got %d rows, %d cells", len(recs), len(boxes))
	}
	want := []Box{
		{X: 150, Y: 925, W: 250, H: 75},
		{X: 400, Y: 925, W: 100, H: 75},
		{X: 500, Y: 925, W: 125, H: 75},
		{X: 625, Y: 925, W: 150, H: 75},
	}
	for i, b := range boxes {
		if b != want[i] {
			t.Fatalf("cell %d: got %+v want %+v", i, b, want[i])
		}
	}
	if recs[0].PlayerName != "cell1" {
		t.Fatalf("player name from wrong cell: %q", recs[0].PlayerName)
	}
}

func TestWalkerRecoversCellErrors(t *testing.T) {
	calls := 0
	w := NewRowWalker(testRows(925), 1000, func(Box) (string, error) {
		calls++
		if calls == 3 {
			return "", errors.New("ocr timeout")
		}
		return "7", nil
	})
	recs := drain(w)
	if len(recs) != 1 {
		t.Fatalf("row should survive a cell failure, got %d rows", len(recs))
	}
	if recs[0].BuyInCount.Parsed || recs[0].BuyInCount.Raw != "" {
		t.Fatalf("failed cell should degrade to empty: %+v", recs[0].BuyInCount)
	}
	if !recs[0].Score.Parsed || recs[0].Score.Int != 7 {
		t.Fatalf("later cells must still extract: %+v", recs[0].Score)
	}
}

func TestWalkerNotRestartable(t *testing.T) {
	w := NewRowWalker(testRows(925), 1075, func(Box) (string, error) { return "", nil })
	if got := len(drain(w)); got != 2 {
		t.Fatalf("got %d rows want 2", got)
	}
	if _, ok := w.Next(); ok {
		t.Fatalf("exhausted walker yielded another row")
	}
}
