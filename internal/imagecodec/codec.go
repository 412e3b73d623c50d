// Package imagecodec provides re-encoding of stored images and encoding of in-memory images to disk.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // регистрирует декодер webp для imaging.Decode
)

// FormatFromExt returns encoder format for ext; webp and unknown extensions are unsupported
func FormatFromExt(ext string) (imaging.Format, error) {
	format, err := imaging.FormatFromExtension(model.NormalizeExt(ext))
	if err != nil {
		return -1, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// Reencode decodes image from r and encodes it again in the given format
func Reencode(r io.Reader, format imaging.Format) (io.Reader, int64, error) {
	if r == nil {
		return nil, 0, errors.New("nil-reader provided to Reencode")
	}
	if _, ok := model.EncodableFormats[format]; !ok {
		return nil, 0, model.ErrUnsupportedFormat
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to DEcode image in Reencode: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, 0, fmt.Errorf("failed to ENcode image in Reencode: %w", err)
	}
	return &buf, int64(buf.Len()), nil
}

// Passthrough checks that r holds a decodable image and returns its original bytes.
// Used for formats without an encoder (webp).
func Passthrough(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil-reader provided to Passthrough")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to DEcode image in Passthrough: %w", err)
	}
	return data, nil
}

// ReencodeFile opens the file at path and re-encodes its content
func ReencodeFile(path string, format imaging.Format) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, _, err := Reencode(f, format)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// EncodeToFile writes img to path in the format named by ext
func EncodeToFile(img image.Image, path, ext string) error {
	if img == nil {
		return model.ErrEmptySource
	}

	format, err := FormatFromExt(ext)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := imaging.Encode(f, img, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s image: %w", format, err)
	}
	return f.Close()
}
