package ocr

import (
	"fmt"
	"strings"

	"item-scanner/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// TooltipChars is the character set for item tooltip OCR. Tooltips mix
// case, digits, percentages and the +/- affix markers.
const TooltipChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ%+:-. "

// Tesseract is the default OCR backend, wrapping a gosseract client.
// The client is stateful and not safe for concurrent use; callers run
// one recognition at a time.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates the default Tesseract-backed OCR backend.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - affix lines like
	// "+73 to maximum Life" aren't prose and get "corrected" into garbage
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")

	return &Tesseract{client: client}, nil
}

// Close releases OCR resources.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// Recognize runs Tesseract on an image and returns the full text plus
// word-level tokens with confidence and position.
func (t *Tesseract) Recognize(img gocv.Mat) (string, []Token, error) {
	if img.Empty() {
		return "", nil, fmt.Errorf("empty image")
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	// PSM 6 = assume a single uniform block of text, which is exactly
	// what a tooltip body is
	if err := t.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", nil, fmt.Errorf("failed to set PSM: %w", err)
	}

	if err := t.client.SetWhitelist(TooltipChars); err != nil {
		return "", nil, fmt.Errorf("failed to set whitelist: %w", err)
	}

	if err := t.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:       word,
			Confidence: box.Confidence,
			Bounds: geometry.RectInt{
				X:      box.Box.Min.X,
				Y:      box.Box.Min.Y,
				Width:  box.Box.Dx(),
				Height: box.Box.Dy(),
			},
		})
	}

	return strings.TrimSpace(text), tokens, nil
}
