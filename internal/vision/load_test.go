package vision

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "sock.png")
	writeTestPNG(t, good)

	bad := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	missing := filepath.Join(dir, "ghost.png")

	images := Load([]string{good, bad, missing})
	require.Len(t, images, 3)

	t.Run("valid image decodes with base filename", func(t *testing.T) {
		assert.Equal(t, "sock.png", images[0].Name)
		assert.True(t, images[0].Valid())
		assert.NoError(t, images[0].Err)
	})

	t.Run("undecodable file keeps name without payload", func(t *testing.T) {
		assert.Equal(t, "cat.png", images[1].Name)
		assert.False(t, images[1].Valid())
		assert.Error(t, images[1].Err)
	})

	t.Run("missing file keeps name without payload", func(t *testing.T) {
		assert.Equal(t, "ghost.png", images[2].Name)
		assert.False(t, images[2].Valid())
		assert.Error(t, images[2].Err)
	})
}

func TestAnyValid(t *testing.T) {
	assert.False(t, AnyValid(nil))
	assert.False(t, AnyValid([]Image{{Name: "a.png"}}))
	assert.True(t, AnyValid([]Image{{Name: "a.png"}, {Name: "b.png", Data: image.NewRGBA(image.Rect(0, 0, 1, 1))}}))
}
