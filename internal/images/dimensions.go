package images

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// Dimensions reads the native pixel size of the image at path from its header.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, ferrors.ImageError("open image").WithCause(err).
			WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, ferrors.ImageError("read image header").WithCause(err).
			WithContext("path", path).Build()
	}
	return cfg.Width, cfg.Height, nil
}
