package outputs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnendingLoop/ImageOutputs/internal/model"
)

// GetPublicURL uploads a stored file under a fresh random key and returns its public URL.
// Every call makes a new object.
func (m *Manager) GetPublicURL(ctx context.Context, rel string) (string, error) {
	abs, err := m.existing(rel)
	if err != nil {
		return "", err
	}

	ext := model.NormalizeExt(filepath.Ext(abs))
	key := m.objectKey(ext)

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("failed to open %q for upload: %w", rel, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %q for upload: %w", rel, err)
	}

	if err := m.storage.PutPublic(ctx, key, st.Size(), model.ContentType(ext), f); err != nil {
		return "", fmt.Errorf("failed to upload %q as %q: %w", rel, key, err)
	}

	return m.storage.PublicURL(key), nil
}

func (m *Manager) objectKey(ext string) string {
	return m.prefix + "generated_image_" + m.newName() + "." + ext
}
