// Package pkg provides the core libraries for Spritestrip sprite-sheet compositing.
//
// # Overview
//
// Spritestrip builds sprite sheets from raster images. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [raster], [composite], [naming]
//  2. Infrastructure: [codec], [cache], [observability], [errors]
//  3. Orchestration: [manifest], [batch]
//
// # Architecture
//
// The typical data flow:
//
//	Manifest (TOML/YAML/JSON) or CLI flags
//	         ↓
//	    [manifest] package (jobs with defaults, names and output paths)
//	         ↓
//	    [batch] package (ordering, workers, cache lookup)
//	         ↓
//	    [codec] package (decode inputs)
//	         ↓
//	    [composite] package (filmstrip, grid, stack)
//	         ↓
//	    [codec] package (encode and write atomically)
//
// # Quick Start
//
// Build a filmstrip in memory:
//
//	base, _ := codec.Load("temple.png")
//	overlay, _ := codec.Load("fire.png")
//	canvas, err := composite.Filmstrip(base, overlay, composite.FrameGeometry{Width: 32, Height: 48, Count: 6})
//	if err != nil {
//	    return err // CAPACITY_EXCEEDED or INVALID_GEOMETRY
//	}
//	return codec.Save(naming.Combine("temple.png", "fire.png"), canvas)
//
// Run a manifest:
//
//	m, _ := manifest.Load("sprites.toml")
//	runner := batch.NewRunner(cache.NewNullCache(), nil, logger)
//	report, _ := runner.Run(ctx, m.Expand(), batch.Options{Workers: 4})
//	if err := report.Err(); err != nil {
//	    // at least one job failed; the others still ran
//	}
//
// # Main Packages
//
//   - [raster]: non-premultiplied RGBA images and canvases, color parsing
//   - [composite]: the three compositors and their geometry checks
//   - [naming]: output path derivation that never overwrites an input
//   - [codec]: image decoding (png, gif, jpeg, bmp, tiff, webp), encoding and atomic writes
//   - [manifest]: batch manifest loading, defaults and validation
//   - [batch]: job runner with per-job isolation and same-path ordering
//   - [cache]: artifact cache backends (file, redis, mongo) and key derivation
//   - [observability]: hook interfaces for batch and cache events
//   - [errors]: coded errors and input validation
//   - [buildinfo]: version information set at link time
//
// [raster]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/raster
// [composite]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/composite
// [naming]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/naming
// [codec]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/codec
// [cache]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/errors
// [manifest]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/manifest
// [batch]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/batch
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/spritestrip/pkg/buildinfo
package pkg
