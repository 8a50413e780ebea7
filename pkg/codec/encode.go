package codec

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// Format is an output image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath picks the output format from the file extension.
// Unknown or missing extensions map to PNG.
func FormatFromPath(path string) Format {
	if f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatPNG
}

// Encode writes the canvas to w in the given format.
func Encode(w io.Writer, c *raster.Canvas, f Format) error {
	var err error
	img := c.Image()
	switch f {
	case FormatPNG, "":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported output format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode %s", f)
	}
	return nil
}

// EncodeBytes encodes the canvas into memory.
func EncodeBytes(c *raster.Canvas, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes the canvas in the format implied by path and writes it atomically.
func Save(path string, c *raster.Canvas) error {
	data, err := EncodeBytes(c, FormatFromPath(path))
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// Dimensions reports the size of an encoded image without decoding its pixels.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeDecode, err, "decode config")
	}
	return cfg.Width, cfg.Height, nil
}
