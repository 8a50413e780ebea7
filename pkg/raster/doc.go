// Package raster holds the pixel buffers the compositing operations work on.
//
// An [Image] is a read-only input normalized to non-premultiplied 8-bit RGBA
// with its origin at (0,0). A [Canvas] is a freshly allocated, zero-filled
// output buffer of the same shape that an operation owns until it hands the
// result to the encoder.
//
// Pixel accessors panic on out-of-range coordinates. Operations are expected
// to validate every region they touch up front with [CheckRegion], so a panic
// here always means a bug in the caller, never bad user input.
//
// # Pixels
//
// A pixel is a [color.NRGBA]. Alpha 0 marks "no content"; every other alpha
// value is content to place. Converting decoded images never premultiplies,
// so color channels under zero alpha survive when the source was NRGBA.
package raster
