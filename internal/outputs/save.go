package outputs

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UnendingLoop/ImageOutputs/internal/imagecodec"
	"github.com/UnendingLoop/ImageOutputs/internal/model"
)

// SaveFile moves an existing temp file to <date>/<name>.<ext> and returns that relative path
func (m *Manager) SaveFile(tmpPath, name, ext string) (string, error) {
	if tmpPath == "" {
		return "", fmt.Errorf("%w: %w", model.ErrSaveFailed, model.ErrEmptySource)
	}

	rel, abs, err := m.prepareTarget(name, ext)
	if err != nil {
		return "", err
	}

	if err := moveFile(tmpPath, abs); err != nil {
		return "", fmt.Errorf("%w: move %q to %q: %w", model.ErrSaveFailed, tmpPath, rel, err)
	}
	return rel, nil
}

// SaveImage encodes img into <date>/<name>.<ext> in the format named by ext
func (m *Manager) SaveImage(img image.Image, name, ext string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: %w", model.ErrSaveFailed, model.ErrEmptySource)
	}
	if _, err := imagecodec.FormatFromExt(ext); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrSaveFailed, err)
	}

	rel, abs, err := m.prepareTarget(name, ext)
	if err != nil {
		return "", err
	}

	if err := imagecodec.EncodeToFile(img, abs, ext); err != nil {
		return "", fmt.Errorf("%w: encode %q: %w", model.ErrSaveFailed, rel, err)
	}
	return rel, nil
}

// prepareTarget builds the relative path for today and creates its date directory
func (m *Manager) prepareTarget(name, ext string) (string, string, error) {
	date := m.now().Format(dateLayout)
	rel := path.Join(date, name+"."+model.TrimExt(ext))
	// имя с ".." после Join может выйти из папки даты
	if !strings.HasPrefix(rel, date+"/") {
		return "", "", fmt.Errorf("%w: %w: name %q leaves %s/", model.ErrSaveFailed, model.ErrOutsideRoot, name, date)
	}

	abs, err := m.resolve(rel)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", model.ErrSaveFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", "", fmt.Errorf("%w: create date dir for %q: %w", model.ErrSaveFailed, rel, err)
	}
	return rel, abs, nil
}

// moveFile renames src to dst, falling back to copy+remove across filesystems
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyThenRemove(src, dst)
}

func copyThenRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}

	st, err := in.Stat()
	if err != nil {
		_ = in.Close()
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		_ = in.Close()
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = in.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}

	if err := out.Close(); err != nil {
		_ = in.Close()
		return err
	}
	if err := in.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
