package outputs

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnendingLoop/ImageOutputs/internal/imagecodec"
	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/disintegration/imaging"
)

// ToBase64 re-encodes a stored file and returns it as data:<content-type>;base64,<data>.
// Extensions other than png/jpg/jpeg/webp are encoded as png.
func (m *Manager) ToBase64(rel string) (string, error) {
	abs, err := m.existing(rel)
	if err != nil {
		return "", err
	}

	ext := model.NormalizeExt(filepath.Ext(abs))
	if !model.InlineExtMap[ext] {
		ext = model.DefaultExt
	}

	var data []byte
	switch ext {
	case "webp":
		// енкодера webp нет - отдаем исходные байты, проверив что они декодируются
		data, err = passthroughFile(abs)
	default:
		var format imaging.Format
		format, err = imagecodec.FormatFromExt(ext)
		if err == nil {
			data, err = imagecodec.ReencodeFile(abs, format)
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to convert %q to base64: %w", rel, err)
	}

	return "data:" + model.ContentType(ext) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ToBytes re-encodes a stored file as PNG regardless of its extension
func (m *Manager) ToBytes(rel string) ([]byte, error) {
	abs, err := m.existing(rel)
	if err != nil {
		return nil, err
	}

	data, err := imagecodec.ReencodeFile(abs, imaging.PNG)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %q to bytes: %w", rel, err)
	}
	return data, nil
}

func passthroughFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return imagecodec.Passthrough(f)
}
