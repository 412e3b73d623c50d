package outputs

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// хелпер: сохраняет картинку в корень менеджера и возвращает относительный путь
func saveTestImage(t *testing.T, m *Manager, name, ext string) string {
	t.Helper()

	tmp := filepath.Join(t.TempDir(), "tmp."+ext)
	require.NoError(t, imaging.Save(testImage(8, 5), tmp))

	rel, err := m.SaveFile(tmp, name, ext)
	require.NoError(t, err)
	return rel
}

func decodeDataURI(t *testing.T, uri, wantPrefix string) []byte {
	t.Helper()

	require.True(t, strings.HasPrefix(uri, wantPrefix), uri[:min(len(uri), 40)])
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, wantPrefix))
	require.NoError(t, err)
	return raw
}

func TestManager_ToBase64_NotFound(t *testing.T) {
	m, _ := newTestManager(t, nil)

	for _, rel := range []string{"", "2024-03-22/nonexistent.png", "../outside.png"} {
		res, err := m.ToBase64(rel)
		require.ErrorIs(t, err, model.ErrOutputNotFound, rel)
		require.Empty(t, res)
	}
}

func TestManager_ToBase64_PNG(t *testing.T) {
	m, _ := newTestManager(t, nil)
	rel := saveTestImage(t, m, "portrait", "png")

	uri, err := m.ToBase64(rel)
	require.NoError(t, err)

	raw := decodeDataURI(t, uri, "data:image/png;base64,")
	img, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, testImage(8, 5).Pix, imaging.Clone(img).Pix)
}

func TestManager_ToBase64_Formats(t *testing.T) {
	tests := []struct {
		name       string
		ext        string
		wantPrefix string
	}{
		{name: "jpg", ext: "jpg", wantPrefix: "data:image/jpeg;base64,"},
		{name: "jpeg", ext: "jpeg", wantPrefix: "data:image/jpeg;base64,"},
		{name: "bmp falls back to png", ext: "bmp", wantPrefix: "data:image/png;base64,"},
		{name: "gif falls back to png", ext: "gif", wantPrefix: "data:image/png;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t, nil)
			rel := saveTestImage(t, m, "img", tt.ext)

			uri, err := m.ToBase64(rel)
			require.NoError(t, err)

			raw := decodeDataURI(t, uri, tt.wantPrefix)
			img, err := imaging.Decode(bytes.NewReader(raw))
			require.NoError(t, err)
			require.Equal(t, 8, img.Bounds().Dx())
			require.Equal(t, 5, img.Bounds().Dy())
		})
	}
}

// lossless WebP из testdata golang.org/x/image
const webpFixture = "testdata/blue-purple-pink.lossless.webp"

func TestManager_WebP(t *testing.T) {
	m, _ := newTestManager(t, nil)

	original, err := os.ReadFile(webpFixture)
	require.NoError(t, err)
	want, err := imaging.Open(webpFixture)
	require.NoError(t, err)

	rel, err := m.SaveFile(writeTemp(t, "gen.webp", original), "gen", "webp")
	require.NoError(t, err)

	t.Run("base64 embeds original bytes", func(t *testing.T) {
		uri, err := m.ToBase64(rel)
		require.NoError(t, err)

		raw := decodeDataURI(t, uri, "data:image/webp;base64,")
		require.Equal(t, original, raw)
	})

	t.Run("bytes re-encoded as png", func(t *testing.T) {
		raw, err := m.ToBytes(rel)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(raw, pngSignature))

		img, err := imaging.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		require.Equal(t, want.Bounds().Size(), img.Bounds().Size())
	})
}

func TestManager_ToBase64_Corrupt(t *testing.T) {
	m, _ := newTestManager(t, nil)

	for _, ext := range []string{"png", "webp"} {
		rel, err := m.SaveFile(writeTemp(t, "bad."+ext, []byte("definitely not an image")), "bad", ext)
		require.NoError(t, err)

		_, err = m.ToBase64(rel)
		require.Error(t, err, ext)
		require.NotErrorIs(t, err, model.ErrOutputNotFound, ext)
	}
}

func TestManager_ToBytes(t *testing.T) {
	m, _ := newTestManager(t, nil)

	t.Run("not found", func(t *testing.T) {
		res, err := m.ToBytes("")
		require.ErrorIs(t, err, model.ErrOutputNotFound)
		require.Nil(t, res)

		res, err = m.ToBytes("2024-03-22/missing.png")
		require.ErrorIs(t, err, model.ErrOutputNotFound)
		require.Nil(t, res)
	})

	for _, ext := range []string{"png", "jpg", "bmp"} {
		t.Run("always png from "+ext, func(t *testing.T) {
			rel := saveTestImage(t, m, "b-"+ext, ext)

			raw, err := m.ToBytes(rel)
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(raw, pngSignature))

			img, err := imaging.Decode(bytes.NewReader(raw))
			require.NoError(t, err)
			require.Equal(t, 8, img.Bounds().Dx())
		})
	}

	t.Run("corrupt", func(t *testing.T) {
		rel, err := m.SaveFile(writeTemp(t, "bad.png", []byte("garbage")), "garbage", "png")
		require.NoError(t, err)

		_, err = m.ToBytes(rel)
		require.Error(t, err)
	})
}
