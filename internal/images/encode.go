package images

import (
	"bufio"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
)

// thumbnailJPEGQuality matches the quality thumbnails have always been written with.
const thumbnailJPEGQuality = 80

// encodeFunc writes img to w.
type encodeFunc func(w io.Writer, img image.Image) error

// optimizedEncoder returns the lossy encoder for the configured format.
func optimizedEncoder(format config.ImageFormat, quality int) (encodeFunc, error) {
	if format == config.ImageFormatJPEG {
		return func(w io.Writer, img image.Image) error {
			return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
		}, nil
	}
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return nil, err
	}
	return func(w io.Writer, img image.Image) error {
		return webp.Encode(w, img, opts)
	}, nil
}

// sameFormatEncoder encodes img in the format implied by name's extension.
func sameFormatEncoder(name string) (encodeFunc, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, err
	}
	return func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, format, imaging.JPEGQuality(thumbnailJPEGQuality))
	}, nil
}

// writeImage encodes img into path through a buffered file. A partially
// written file is removed on failure.
func writeImage(path string, img image.Image, enc encodeFunc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = enc(bw, img); err != nil {
		return err
	}
	return bw.Flush()
}

// copyFile copies src to dst byte for byte.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}
