package vision

import "log"

// RowRecord is one player line from the record list. Numeric fields are an
// integer when OCR produced one, the raw string otherwise.
type RowRecord struct {
	PlayerName string `json:"player_name"`
	HandsCount Num    `json:"hands_count"`
	BuyInCount Num    `json:"buy_in_count"`
	Score      Num    `json:"score"`
}

// RowWalker steps through the repeating player-row band of a calibrated
// layout, one row per Next call, until the cursor leaves the image. It is a
// one-shot forward iterator.
type RowWalker struct {
	rows    RowLayout
	height  int
	y       int
	extract func(Box) (string, error)
}

// NewRowWalker builds a walker over rows bounded by imageHeight. extract is
// invoked for each cell box and may fail; failures degrade to empty text.
func NewRowWalker(rows RowLayout, imageHeight int, extract func(Box) (string, error)) *RowWalker {
	return &RowWalker{
		rows:    rows,
		height:  imageHeight,
		y:       rows.Origin.Y,
		extract: extract,
	}
}

// Next extracts the row at the current offset and advances by one row
// height. ok is false once the cursor has reached the image bottom; a row
// origin already past the bottom yields zero rows.
func (w *RowWalker) Next() (RowRecord, bool) {
	if w.y >= w.height {
		return RowRecord{}, false
	}
	x := w.rows.Origin.X
	rh := w.rows.RowHeight
	name := w.cell(Box{X: x, Y: w.y, W: w.rows.NameWidth, H: rh})
	hands := w.cell(Box{X: x + w.rows.NameWidth, Y: w.y, W: w.rows.HandsWidth, H: rh})
	buyIn := w.cell(Box{X: x + w.rows.NameWidth + w.rows.HandsWidth, Y: w.y, W: w.rows.BuyInWidth, H: rh})
	score := w.cell(Box{X: x + w.rows.NameWidth + w.rows.HandsWidth + w.rows.BuyInWidth, Y: w.y, W: w.rows.ScoreWidth, H: rh})
	w.y += rh
	return RowRecord{
		PlayerName: name,
		HandsCount: Normalize(hands),
		BuyInCount: Normalize(buyIn),
		Score:      Normalize(score),
	}, true
}

func (w *RowWalker) cell(b Box) string {
	text, err := w.extract(b)
	if err != nil {
		log.Printf("vision: row cell at y=%d: %v", b.Y, err)
		return ""
	}
	return text
}
