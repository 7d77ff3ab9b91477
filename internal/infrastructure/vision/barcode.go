// Package vision provides the optional image capabilities consumed by the
// image resolver: barcode decoding and OCR text extraction. Constructors
// report capability unavailability as an error; callers treat a missing
// capability as a skipped stage, not a failure.
package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"github.com/foodscan/backend/internal/domain"
)

// ZXingDecoder decodes 1D product barcodes (EAN/UPC families) from raw
// image bytes using a pure-Go ZXing port.
type ZXingDecoder struct {
	reader gozxing.Reader
}

// NewZXingDecoder creates a barcode decoder for retail symbologies.
func NewZXingDecoder() *ZXingDecoder {
	return &ZXingDecoder{
		reader: oned.NewMultiFormatUPCEANReader(nil),
	}
}

// Decode extracts the first decodable barcode payload from the image as
// UTF-8 text. Undecodable bytes or the absence of a barcode return
// ErrDecodeFailure.
func (d *ZXingDecoder) Decode(ctx context.Context, imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	result, err := d.reader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("%w: no barcode detected", domain.ErrDecodeFailure)
	}
	return result.GetText(), nil
}
