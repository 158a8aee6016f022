package products

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

const (
	// ImageSize is the edge of the square thumbnail stored per product.
	ImageSize = 600
	// MaxImageBytes caps the multipart body accepted for product images.
	MaxImageBytes = 10 << 20

	jpegQuality = 85
)

// ErrInvalidImage reports an upload that is not a decodable image.
var ErrInvalidImage = fmt.Errorf("%w: invalid image", shared.ErrValidation)

// ImageStorage persists product thumbnails.
type ImageStorage interface {
	Save(id int64, img image.Image) error
	Remove(id int64) error
}

// DecodeImage reads a JPEG, PNG, GIF or WebP image.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("products: read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// Square crops img to its centered square and scales it to size×size.
func Square(img image.Image, size int) image.Image {
	b := img.Bounds()
	edge := b.Dx()
	if b.Dy() < edge {
		edge = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-edge)/2
	y0 := b.Min.Y + (b.Dy()-edge)/2
	src := image.Rect(x0, y0, x0+edge, y0+edge)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// DiskImages stores thumbnails as {dir}/{id:04d}.jpg.
type DiskImages struct {
	dir string
}

func NewDiskImages(dir string) *DiskImages {
	return &DiskImages{dir: dir}
}

func (d *DiskImages) Path(id int64) string {
	return filepath.Join(d.dir, fmt.Sprintf("%04d.jpg", id))
}

// Save writes the squared thumbnail, replacing any previous file atomically.
func (d *DiskImages) Save(id int64, img image.Image) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("products: image dir: %w", err)
	}
	tmp, err := os.CreateTemp(d.dir, "upload-*.jpg")
	if err != nil {
		return fmt.Errorf("products: image temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := jpeg.Encode(tmp, Square(img, ImageSize), &jpeg.Options{Quality: jpegQuality}); err != nil {
		tmp.Close()
		return fmt.Errorf("products: encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("products: close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.Path(id)); err != nil {
		return fmt.Errorf("products: store image: %w", err)
	}
	return nil
}

// Remove deletes the thumbnail; a missing file is not an error.
func (d *DiskImages) Remove(id int64) error {
	err := os.Remove(d.Path(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("products: remove image: %w", err)
	}
	return nil
}
