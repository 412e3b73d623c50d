// Package model provides shared errors, formats and content types for output files
package model

import (
	"errors"
	"strings"

	"github.com/disintegration/imaging"
)

// ------------------

var (
	ErrSaveFailed        error = errors.New("failed to save output file")
	ErrOutputNotFound    error = errors.New("output file doesn't exist")
	ErrEmptySource       error = errors.New("empty/incorrect source image provided")
	ErrUnsupportedFormat error = errors.New("unsupported image format")
	ErrOutsideRoot       error = errors.New("path points outside of output root")
	ErrNoStorage         error = errors.New("object storage is not configured")
	ErrBadCredentials    error = errors.New("invalid storage credential file")
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
	WEBP = "image/webp"
	TIFF = "image/tiff"
	BMP  = "image/bmp"

	DefaultExt = "png"
)

// GetCType maps a file extension (without dot, lowercase) to its content type
var GetCType = map[string]string{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"gif":  GIF,
	"webp": WEBP,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
}

// InlineExtMap - extensions kept as-is when converting to a data-URI, everything else goes png
var InlineExtMap = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

// EncodableFormats - formats the imaging package can write
var EncodableFormats = map[imaging.Format]string{
	imaging.JPEG: JPEG,
	imaging.PNG:  PNG,
	imaging.GIF:  GIF,
	imaging.TIFF: TIFF,
	imaging.BMP:  BMP,
}

// TrimExt drops a leading dot and falls back to DefaultExt when empty. Case is kept.
func TrimExt(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return DefaultExt
	}
	return ext
}

// NormalizeExt - TrimExt в нижнем регистре, для поиска формата и content type
func NormalizeExt(ext string) string {
	return strings.ToLower(TrimExt(ext))
}

// ContentType returns content type for ext or application/octet-stream if unknown
func ContentType(ext string) string {
	if ct, ok := GetCType[NormalizeExt(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}
