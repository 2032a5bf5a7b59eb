package vision

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLang is the bilingual hint for summary screens: simplified Chinese
// labels with Latin digits and names.
const DefaultLang = "chi_sim+eng"

// Recognizer turns an image region into text. lang is a Tesseract-style
// language hint such as "chi_sim+eng".
type Recognizer interface {
	Recognize(region image.Image, lang string) (string, error)
}

// TesseractRecognizer runs regions through a local Tesseract install via
// gosseract. Each call uses a fresh client; gosseract clients are not safe
// for concurrent use.
type TesseractRecognizer struct{}

func (TesseractRecognizer) Recognize(region image.Image, lang string) (string, error) {
	tmpFile, err := os.CreateTemp("", "region-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := imaging.Save(region, tmp); err != nil {
		return "", fmt.Errorf("save region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	if lang != "" {
		_ = client.SetLanguage(strings.Split(lang, "+")...)
	}
	client.SetImage(tmp)
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	return strings.TrimSpace(text), nil
}
