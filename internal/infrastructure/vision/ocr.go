package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/foodscan/backend/internal/domain"
)

// standard install locations probed when no explicit path is configured.
var tesseractPaths = []string{
	"/usr/bin/tesseract",
	"/usr/local/bin/tesseract",
	"tesseract",
}

// TesseractExtractor extracts text from images by shelling out to the
// tesseract binary, configured for a single language.
type TesseractExtractor struct {
	binPath  string
	language string
}

// NewTesseractExtractor locates the tesseract binary. Returning an error
// means the OCR capability is unavailable in this environment.
func NewTesseractExtractor(binPath, language string) (*TesseractExtractor, error) {
	if language == "" {
		language = "eng"
	}

	candidates := tesseractPaths
	if binPath != "" {
		candidates = []string{binPath}
	}

	for _, candidate := range candidates {
		if resolved, err := exec.LookPath(candidate); err == nil {
			log.Printf("[Vision] tesseract found at %s", resolved)
			return &TesseractExtractor{binPath: resolved, language: language}, nil
		}
	}
	return nil, fmt.Errorf("%w: tesseract not found", domain.ErrDecodeFailure)
}

// ExtractText runs OCR over the image and returns all detected text
// fragments joined with single spaces.
func (t *TesseractExtractor) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	if _, _, err := image.Decode(bytes.NewReader(imageBytes)); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	tmp, err := os.CreateTemp("", "foodscan-ocr-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(imageBytes); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, t.binPath, tmp.Name(), "stdout", "-l", t.language)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: tesseract: %v", domain.ErrDecodeFailure, err)
	}

	text := strings.Join(strings.Fields(string(out)), " ")
	if text != "" {
		log.Printf("[Vision] OCR extracted %d characters", len(text))
	}
	return text, nil
}
