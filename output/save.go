package output

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

const DefaultQuality = 95

var ErrExists = errors.New("destination file already exists")

type Options struct {
	// Overwrite replaces an existing destination instead of failing with
	// ErrExists.
	Overwrite bool
	// Quality is the JPEG quality, 1-100. Zero means DefaultQuality.
	Quality int
}

// Save encodes img in the format matching the extension of dest through
// WriteFile.
func Save(img image.Image, dest string, opts Options) error {
	format, err := FormatFor(dest)
	if err != nil {
		return err
	}

	return WriteFile(dest, opts.Overwrite, func(w io.Writer) error {
		if err := Encode(w, img, format, opts); err != nil {
			return fmt.Errorf("could not encode %q: %w", dest, err)
		}
		return nil
	})
}

// WriteFile creates dest with the content produced by write. The data goes
// to a temporary file next to dest which is renamed into place only once
// write succeeded, so dest is never left half written. An existing dest is
// replaced only when overwrite is set; otherwise ErrExists is returned.
func WriteFile(dest string, overwrite bool, write func(io.Writer) error) (err error) {
	if err := checkDest(dest, overwrite); err != nil {
		return err
	}

	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", destDir, err)
	}

	outFile, err := os.CreateTemp(destDir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	tmpName := outFile.Name()
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", tmpName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", tmpName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(tmpName, dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		}
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Error("could not remove temporary file", "name", tmpName, "error", rmErr)
			}
		}
	}()

	if err = write(outFile); err != nil {
		return err
	}

	canRename = true
	return nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts Options) error {
	switch format {
	case PNG:
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngBuffers,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case JPEG:
		quality := opts.Quality
		if quality == 0 {
			quality = DefaultQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case GIF:
		if err := gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg}); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case BMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case TIFF:
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return nil
}

func checkDest(dest string, overwrite bool) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot overwrite non-regular file %q: %s", dest, info.Mode().String())
	}
	if !overwrite {
		return fmt.Errorf("%w: %q", ErrExists, dest)
	}
	return nil
}

// encoderBuffers lets consecutive PNG encodes share their scratch buffers.
type encoderBuffers struct {
	sync.Pool
}

func (b *encoderBuffers) Get() *png.EncoderBuffer {
	if buf, ok := b.Pool.Get().(*png.EncoderBuffer); ok {
		return buf
	}
	return new(png.EncoderBuffer)
}

func (b *encoderBuffers) Put(buf *png.EncoderBuffer) {
	b.Pool.Put(buf)
}

var pngBuffers = new(encoderBuffers)
