// Package composite implements the three sprite compositing operations.
//
//   - [Filmstrip] repeats a base image once per frame and stamps the frames
//     of an overlay strip onto it.
//   - [Grid] draws the top and left edge of every cell of a uniform grid.
//   - [StackVertical] places one image above another.
//
// The operations are independent, stateless and synchronous. Each validates
// its geometry against the buffers it reads and the canvas it writes before
// the first pixel is touched, so a request that cannot be satisfied returns
// a coded error (see package errors) and never a partial canvas.
//
// Compositing is a hard replace: a source pixel with alpha 0 is "no content"
// and leaves the destination alone, any other alpha overwrites it entirely.
// Nothing is blended, resampled or color converted.
package composite
