package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 128, B: 64, A: 255})
		}
	}
	return img
}

func createTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, createTestImage(width, height), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createTestImage(width, height)))
	return buf.Bytes()
}

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 100, nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		data       []byte
		wantExt    string
		wantWidth  int
		wantHeight int
	}{
		{"large jpeg is shrunk", createTestJPEG(t, 400, 200), ".jpg", 100, 50},
		{"small png kept as is", createTestPNG(t, 40, 30), ".png", 40, 30},
		{"tall png fits height", createTestPNG(t, 50, 300), ".png", 16, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := store.Save(context.Background(), "photo", bytes.NewReader(tt.data))
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(path, PublicPrefix))
			assert.Equal(t, tt.wantExt, filepath.Ext(path))

			stored, err := imaging.Open(filepath.Join(dir, strings.TrimPrefix(path, PublicPrefix)))
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, stored.Bounds().Dx())
			assert.Equal(t, tt.wantHeight, stored.Bounds().Dy())
		})
	}
}

func TestDiskStore_Save_UniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0, nil)
	require.NoError(t, err)
	data := createTestPNG(t, 10, 10)

	first, err := store.Save(context.Background(), "same.png", bytes.NewReader(data))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "same.png", bytes.NewReader(data))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStore_Save_Rejects(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 0, nil)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "notes.txt", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = store.Save(context.Background(), "empty.png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyUpload)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_Save_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "a.png", bytes.NewReader(createTestPNG(t, 5, 5)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := NewDiskStore(dir, 0, nil)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// pngDeclaring returns a tiny png whose header claims width x height pixels
func pngDeclaring(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := createTestPNG(t, 1, 1)
	// signature(8) + length(4) + "IHDR"(4), then width and height
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDiskStore_Save_RejectsHugeDimensions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 0, nil)
	require.NoError(t, err)

	data := pngDeclaring(t, 12000, 12000)
	require.Less(t, len(data), 1024)

	_, err = store.Save(context.Background(), "bomb.png", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_Save_PixelBudget(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), 0, nil)
	require.NoError(t, err)
	store.maxPixels = 400

	_, err = store.Save(context.Background(), "ok.png", bytes.NewReader(createTestPNG(t, 20, 20)))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "big.png", bytes.NewReader(createTestPNG(t, 21, 20)))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestDiskStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 0, nil)
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Save(ctx, "a.png", bytes.NewReader(createTestPNG(t, 5, 5)))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Already gone and foreign paths are no-ops
	assert.NoError(t, store.Delete(ctx, path))
	assert.NoError(t, store.Delete(ctx, "/etc/passwd"))
	assert.NoError(t, store.Delete(ctx, PublicPrefix+"../secret"))
}
