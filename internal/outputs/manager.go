// Package outputs manages generated image files: saving under a date-partitioned root,
// deleting, inline conversion and publishing to object storage.
package outputs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UnendingLoop/ImageOutputs/internal/config"
	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ObjectStorage - контракт для публикации файлов во внешнем хранилище
type ObjectStorage interface {
	PutPublic(ctx context.Context, key string, size int64, contentType string, r io.Reader) error
	PublicURL(key string) string
}

// Logger - severity-tagged logger, used for delete outcomes
type Logger interface {
	StdInfo(msg string)
	StdWarn(msg string)
	StdError(msg string)
}

type Manager struct {
	root    string
	prefix  string
	storage ObjectStorage
	log     Logger
	now     func() time.Time
	newName func() string
}

// New resolves the output root to an absolute path and creates it if missing
func New(cfg config.Config, strg ObjectStorage, log Logger) (*Manager, error) {
	if strg == nil {
		return nil, model.ErrNoStorage
	}
	if log == nil {
		return nil, errors.New("nil logger passed to outputs.New")
	}

	rootRaw := cfg.OutputRoot
	if rootRaw == "" {
		rootRaw = config.DefaultOutputRoot
	}

	root, err := filepath.Abs(rootRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output root %q: %w", rootRaw, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output root %q: %w", root, err)
	}

	return &Manager{
		root:    root,
		prefix:  cfg.ObjectPrefix,
		storage: strg,
		log:     log,
		now:     time.Now,
		newName: randomName,
	}, nil
}

// Root returns absolute path of the output root
func (m *Manager) Root() string {
	return m.root
}

// Delete removes a stored file. Missing files and OS errors are logged and reported as false.
func (m *Manager) Delete(rel string) bool {
	abs, err := m.resolve(rel)
	if err != nil || !isRegularFile(abs) {
		m.log.StdWarn(fmt.Sprintf("[Outputs] %s not exists or is not a file", rel))
		return false
	}

	if err := os.Remove(abs); err != nil {
		m.log.StdError(fmt.Sprintf("[Outputs] Delete output file failed: %s: %v", rel, err))
		return false
	}

	m.log.StdInfo(fmt.Sprintf("[Outputs] Delete output file: %s", rel))
	return true
}

// resolve turns a relative path into an absolute one inside the root
func (m *Manager) resolve(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return "", model.ErrOutputNotFound
	}

	abs := filepath.Join(m.root, filepath.FromSlash(rel))
	inside, err := filepath.Rel(m.root, abs)
	if err != nil || inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", model.ErrOutsideRoot, rel)
	}
	return abs, nil
}

// existing resolves rel and checks that it is a regular file
func (m *Manager) existing(rel string) (string, error) {
	abs, err := m.resolve(rel)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrOutputNotFound, err)
	}
	if !isRegularFile(abs) {
		return "", model.ErrOutputNotFound
	}
	return abs, nil
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// randomName - 8 hex-символов из UUIDv4
func randomName() string {
	return uuid.NewString()[:8]
}
