package imgresize

import (
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
)

// decodeWebP reads a WebP file. The webp codec is bridged explicitly
// because the general-purpose image stack decodes but never encodes the
// format, and a resizer must round-trip it.
func decodeWebP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return webp.Decode(f)
}

// encodeWebP writes a lossy WebP file at the processor's quality setting.
func (p *Processor) encodeWebP(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	defer f.Close()

	if err := webp.Encode(f, img, &webp.Options{Quality: p.WebPQuality}); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}
