package vision

import (
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

// FieldValue is the recognized text of one fixed field plus the crop box it
// came from, kept for diagnostics.
type FieldValue struct {
	Text string `json:"text"`
	Box  Box    `json:"box"`
}

// Screenshot is the structured result of one summary-screen extraction:
// the six fixed fields and the player rows in on-screen top-to-bottom order.
type Screenshot struct {
	GameName          FieldValue  `json:"game_name"`
	ChipLevel         FieldValue  `json:"chip_level"`
	GameHandsCount    FieldValue  `json:"game_hands_count"`
	CreatorPlayerName FieldValue  `json:"creator_player_name"`
	StartTime         FieldValue  `json:"start_time"`
	EndTime           FieldValue  `json:"end_time"`
	RecordList        []RowRecord `json:"record_list"`
	AnchorConfidence  float64     `json:"anchor_confidence"`
}

// Parser wires anchor location, calibration and region OCR into one
// screenshot extraction pipeline. Safe for concurrent use as long as the
// Recognizer and Matcher are.
type Parser struct {
	Layout Layout
	Anchor AnchorLocator
	Rec    Recognizer
	Lang   string
}

// NewParser returns a parser with the default layout, NCC matching against
// pattern, and Tesseract recognition. minConf <= 0 selects the default
// anchor threshold.
func NewParser(pattern image.Image, minConf float64) *Parser {
	if minConf <= 0 {
		minConf = DefaultMinConfidence
	}
	return &Parser{
		Layout: DefaultLayout(),
		Anchor: AnchorLocator{Matcher: NCCMatcher{}, Pattern: pattern, MinConfidence: minConf},
		Rec:    TesseractRecognizer{},
		Lang:   DefaultLang,
	}
}

// ParseFile opens path and parses it. See Parse.
func (p *Parser) ParseFile(path string) (*Screenshot, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return p.Parse(img)
}

// Parse extracts the structured record from one screenshot. Anchor failure
// aborts with ErrAnchorNotFound; per-region OCR failures are recovered as
// empty fields.
func (p *Parser) Parse(img image.Image) (*Screenshot, error) {
	found, conf, err := p.Anchor.Find(img)
	if err != nil {
		return nil, err
	}
	cal := p.Layout.Calibrate(found)

	field := func(name string) FieldValue {
		box := cal.Fields[name]
		text, err := p.recognizeBox(img, box)
		if err != nil {
			log.Printf("vision: field %s: %v", name, err)
			text = ""
		}
		return FieldValue{Text: text, Box: box}
	}

	shot := &Screenshot{
		GameName:          field(FieldGameName),
		ChipLevel:         field(FieldChipLevel),
		GameHandsCount:    field(FieldGameHandsCount),
		CreatorPlayerName: field(FieldCreatorPlayerName),
		StartTime:         field(FieldStartTime),
		EndTime:           field(FieldEndTime),
		AnchorConfidence:  conf,
	}

	walker := NewRowWalker(cal.Rows, img.Bounds().Dy(), func(b Box) (string, error) {
		return p.recognizeBox(img, b)
	})
	for {
		rec, ok := walker.Next()
		if !ok {
			break
		}
		shot.RecordList = append(shot.RecordList, rec)
	}
	return shot, nil
}

func (p *Parser) recognizeBox(img image.Image, b Box) (string, error) {
	region := imaging.Crop(img, b.Rect())
	return p.Rec.Recognize(region, p.Lang)
}
