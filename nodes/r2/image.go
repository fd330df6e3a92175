package r2

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the formats hosts commonly emit.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// MinImageDim is the smallest accepted width/height. Anything below is
// almost certainly a broken tensor-to-image conversion on the host side.
const MinImageDim = 32

// normalizeImage validates the raw image bytes and re-encodes them into
// the target format when they arrive in a different one. Returns the
// bytes to upload and the extension they should carry.
func normalizeImage(data []byte, format string) ([]byte, string, error) {
	cfg, srcFormat, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &ImageError{Reason: fmt.Sprintf("input does not decode as an image: %v", err)}
	}

	if cfg.Width < MinImageDim || cfg.Height < MinImageDim {
		return nil, "", &ImageError{
			Reason: fmt.Sprintf("image dimensions too small (%dx%d, minimum %dx%d)",
				cfg.Width, cfg.Height, MinImageDim, MinImageDim),
		}
	}

	if srcFormat == format {
		return data, format, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &ImageError{Reason: fmt.Sprintf("failed to decode image: %v", err)}
	}

	target, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, "", &ImageError{Reason: fmt.Sprintf("unsupported target format %q: %v", format, err)}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, target); err != nil {
		return nil, "", &ImageError{Reason: fmt.Sprintf("failed to encode image as %s: %v", format, err)}
	}

	return buf.Bytes(), format, nil
}

// contentTypeFor maps an image extension to its MIME type.
func contentTypeFor(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
