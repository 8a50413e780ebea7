// Package codec reads and writes raster images on disk.
//
// # Decoding
//
// [Load] opens a file and decodes it with [Decode]. PNG, GIF and JPEG are
// supported through the standard library; BMP, TIFF and WebP through
// golang.org/x/image. Every decoded image is converted to non-premultiplied
// 8-bit RGBA ([raster.Image]) so color values under zero alpha survive.
//
// Failures are coded errors: a missing file is FILE_NOT_FOUND, anything else
// is DECODE_FAILED. Both satisfy errors.IsDecode.
//
// # Encoding
//
// [Encode] writes a canvas as PNG, BMP or TIFF. The format is picked from the
// output path by [FormatFromPath], defaulting to PNG. [Save] encodes into
// memory and hands the bytes to [WriteFileAtomic], so a failed encode or
// write never leaves a partial file at the output path.
//
// [raster.Image]: github.com/matzehuels/spritestrip/pkg/raster.Image
package codec
