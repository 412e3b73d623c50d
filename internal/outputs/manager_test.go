package outputs

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/UnendingLoop/ImageOutputs/internal/config"
	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/stretchr/testify/require"
)

var fixedDay = time.Date(2024, 3, 22, 15, 4, 5, 0, time.Local)

// хелпер: менеджер с корнем во временной папке и фиксированной датой
func newTestManager(t *testing.T, strg ObjectStorage) (*Manager, *mockLogger) {
	t.Helper()

	if strg == nil {
		strg = &mockStorage{}
	}

	logger := &mockLogger{}
	m, err := New(config.Config{
		OutputRoot:   filepath.Join(t.TempDir(), "outputs", "files"),
		ObjectPrefix: config.DefaultObjectPrefix,
	}, strg, logger)
	require.NoError(t, err)

	m.now = func() time.Time { return fixedDay }
	return m, logger
}

// хелпер: временный файл с заданным содержимым вне корня
func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	return img
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "files")

	m, err := New(config.Config{OutputRoot: root}, &mockStorage{}, &mockLogger{})
	require.NoError(t, err)
	require.Equal(t, root, m.Root())
	require.True(t, filepath.IsAbs(m.Root()))

	st, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, st.IsDir())

	// повторный вызов на существующем корне
	_, err = New(config.Config{OutputRoot: root}, &mockStorage{}, &mockLogger{})
	require.NoError(t, err)
}

func TestNew_RootIsAFile(t *testing.T) {
	file := writeTemp(t, "not-a-dir", []byte("x"))

	_, err := New(config.Config{OutputRoot: filepath.Join(file, "files")}, &mockStorage{}, &mockLogger{})
	require.Error(t, err)
}

func TestNew_NilCollaborators(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")

	_, err := New(config.Config{OutputRoot: root}, nil, &mockLogger{})
	require.ErrorIs(t, err, model.ErrNoStorage)

	_, err = New(config.Config{OutputRoot: root}, &mockStorage{}, nil)
	require.Error(t, err)
}

func TestManager_Delete(t *testing.T) {
	m, _ := newTestManager(t, nil)

	existing, err := m.SaveFile(writeTemp(t, "a.png", []byte("data")), "gone", "png")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(m.Root(), "2024-03-22", "dir.png"), 0o755))

	tests := []struct {
		name      string
		rel       string
		want      bool
		wantLevel string
	}{
		{name: "existing file", rel: existing, want: true, wantLevel: "info"},
		{name: "missing file", rel: "2024-03-22/missing.png", want: false, wantLevel: "warn"},
		{name: "directory", rel: "2024-03-22/dir.png", want: false, wantLevel: "warn"},
		{name: "empty path", rel: "", want: false, wantLevel: "warn"},
		{name: "outside root", rel: "../../etc/passwd", want: false, wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			m.log = logger

			require.Equal(t, tt.want, m.Delete(tt.rel))
			require.Len(t, logger.entries, 1)
			require.Equal(t, tt.wantLevel, logger.entries[0].level)
			require.Contains(t, logger.entries[0].msg, tt.rel)
		})
	}

	_, err = os.Stat(filepath.Join(m.Root(), filepath.FromSlash(existing)))
	require.True(t, os.IsNotExist(err))
}

func TestManager_DeleteTwice(t *testing.T) {
	m, logger := newTestManager(t, nil)

	rel, err := m.SaveFile(writeTemp(t, "a.png", []byte("data")), "twice", "png")
	require.NoError(t, err)

	require.True(t, m.Delete(rel))
	require.False(t, m.Delete(rel))
	require.Equal(t, []string{"info", "warn"}, []string{logger.entries[0].level, logger.entries[1].level})
}

func TestManager_resolve(t *testing.T) {
	m, _ := newTestManager(t, nil)

	abs, err := m.resolve("2024-03-22/x.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(m.Root(), "2024-03-22", "x.png"), abs)

	for _, bad := range []string{"", "  ", ".", "..", "../x.png", "2024-03-22/../../x.png"} {
		_, err := m.resolve(bad)
		require.Error(t, err, bad)
	}
}
