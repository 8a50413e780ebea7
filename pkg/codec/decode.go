package codec

import (
	"bytes"
	"image"
	"io"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// Decode reads an image in any registered format from r.
// Decode does not close r.
func Decode(r io.Reader) (*raster.Image, error) {
	return decode(r, "image")
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (*raster.Image, error) {
	return decode(bytes.NewReader(data), "image")
}

// Load reads and decodes the image file at path.
func Load(path string) (*raster.Image, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeFile(path, data)
}

// DecodeFile decodes data previously read from path. The path only labels
// errors; callers that hash their inputs read once with [ReadFile] and
// decode with DecodeFile.
func DecodeFile(path string, data []byte) (*raster.Image, error) {
	return decode(bytes.NewReader(data), path)
}

// ReadFile returns the raw bytes of an input image, mapping a missing file to
// FILE_NOT_FOUND and other read failures to DECODE_FAILED.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read %s", path)
	}
	return data, nil
}

func decode(r io.Reader, name string) (*raster.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", name)
	}
	return raster.FromImage(img), nil
}
