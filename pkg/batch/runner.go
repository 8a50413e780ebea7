package batch

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritestrip/pkg/cache"
	"github.com/matzehuels/spritestrip/pkg/codec"
	"github.com/matzehuels/spritestrip/pkg/composite"
	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/manifest"
	"github.com/matzehuels/spritestrip/pkg/observability"
	"github.com/matzehuels/spritestrip/pkg/raster"
)

// Runner executes compositing jobs with artifact caching.
//
// The Runner holds no per-run state, so one Runner can serve several
// concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run executes jobs and reports one result per job, in input order.
// The returned error is non-nil only for invalid options; job failures are
// recorded in the report.
func (r *Runner) Run(ctx context.Context, jobs []manifest.Job, opts Options) (*Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	opts.Logger = opts.Logger.With("run", runID)
	start := time.Now()
	hooks := observability.Batch()
	hooks.OnBatchStart(ctx, runID, len(jobs))

	groups := chains(jobs)
	opts.Logger.Debug("planned batch", "jobs", len(jobs), "chains", len(groups), "workers", opts.Workers)

	results := make([]Result, len(jobs))
	var stop atomic.Bool

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for _, chain := range groups {
		g.Go(func() error {
			failedOutputs := make(map[string]string)
			staged := make(map[string][]byte)
			for _, i := range chain {
				job := jobs[i]
				var planned []byte
				switch {
				case ctx.Err() != nil:
					results[i] = skipped(job, ctx.Err())
				case opts.FailFast && stop.Load():
					results[i] = skipped(job, errors.New(errors.ErrCodeInternal, "not started after an earlier failure"))
				default:
					if dep, ok := failedDependency(job, failedOutputs); ok {
						results[i] = skipped(job, errors.New(errors.ErrCodeInvalidInput,
							"input %s was not produced: job %s failed", filepath.Base(dep.path), dep.job))
					} else {
						results[i], planned = r.execute(ctx, job, opts, staged)
					}
				}
				out := filepath.Clean(results[i].Output)
				switch {
				case !results[i].OK():
					failedOutputs[out] = job.Name
					delete(staged, out)
					stop.Store(true)
				case results[i].Status == StatusPlanned:
					delete(failedOutputs, out)
					staged[out] = planned
				default:
					delete(failedOutputs, out)
					delete(staged, out)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{RunID: runID, Results: results, Duration: time.Since(start)}
	hooks.OnBatchComplete(ctx, runID, report.Succeeded(), report.Failed(), report.Duration)
	opts.Logger.Info("batch complete",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"cached", report.Cached(),
		"duration", report.Duration.Round(time.Millisecond))
	return report, nil
}

type dependency struct{ path, job string }

func failedDependency(job manifest.Job, failedOutputs map[string]string) (dependency, bool) {
	for _, in := range job.Inputs {
		if name, ok := failedOutputs[filepath.Clean(in)]; ok {
			return dependency{path: in, job: name}, true
		}
	}
	return dependency{}, false
}

func skipped(job manifest.Job, err error) Result {
	return Result{Job: job, Output: job.OutputPath(), Status: StatusSkipped, Err: err}
}

// RunJob executes a single job. Failures are reported in the result.
func (r *Runner) RunJob(ctx context.Context, job manifest.Job, opts Options) Result {
	res, _ := r.execute(ctx, job, opts, nil)
	return res
}

// execute runs one job, reading inputs from staged before the filesystem.
// staged holds the encoded outputs of planned jobs earlier in a dry-run
// chain. For a planned job it also returns the bytes it would have written.
func (r *Runner) execute(ctx context.Context, job manifest.Job, opts Options, staged map[string][]byte) (Result, []byte) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{Job: job, Output: job.OutputPath(), Status: StatusFailed, Err: err}, nil
	}
	logger := opts.Logger.With("job", job.Name)

	start := time.Now()
	hooks := observability.Batch()
	hooks.OnJobStart(ctx, string(job.Kind), job.Name)

	res, planned := r.runJob(ctx, job, opts, logger, staged)
	res.Duration = time.Since(start)

	hooks.OnJobComplete(ctx, string(job.Kind), job.Name, res.Duration, res.Status == StatusCached, res.Err)
	if res.Err != nil {
		logger.Error("job failed",
			"kind", job.Kind,
			"inputs", job.Inputs,
			"code", errors.GetCode(res.Err),
			"err", errors.UserMessage(res.Err))
		return res, nil
	}
	logger.Info("composited",
		"kind", job.Kind,
		"output", res.Output,
		"width", res.Width,
		"height", res.Height,
		"status", res.Status,
		"duration", res.Duration.Round(time.Millisecond))
	return res, planned
}

func (r *Runner) runJob(ctx context.Context, job manifest.Job, opts Options, logger *log.Logger, staged map[string][]byte) (Result, []byte) {
	res := Result{Job: job, Output: job.OutputPath(), Status: StatusFailed}
	fail := func(err error) (Result, []byte) {
		res.Err = err
		return res, nil
	}

	if err := job.Validate(); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	inputs := make([][]byte, len(job.Inputs))
	hashes := make([]string, len(job.Inputs))
	for i, path := range job.Inputs {
		data, ok := staged[filepath.Clean(path)]
		if !ok {
			var err error
			if data, err = codec.ReadFile(path); err != nil {
				return fail(err)
			}
		}
		inputs[i] = data
		hashes[i] = cache.Hash(data)
	}

	format := codec.FormatFromPath(res.Output)
	keyOpts, err := artifactKeyOpts(job, format)
	if err != nil {
		return fail(err)
	}
	key := r.Keyer.ArtifactKey(string(job.Kind), hashes, keyOpts)

	if !opts.Refresh {
		if data, ok := r.cached(ctx, key, logger); ok {
			res.Width, res.Height, _ = codec.Dimensions(data)
			res.Bytes = len(data)
			if opts.DryRun {
				res.Status = StatusPlanned
				return res, data
			}
			if err := codec.WriteFileAtomic(res.Output, data); err != nil {
				return fail(err)
			}
			res.Status = StatusCached
			return res, nil
		}
	}

	images := make([]*raster.Image, len(inputs))
	for i, data := range inputs {
		img, err := codec.DecodeFile(job.Inputs[i], data)
		if err != nil {
			return fail(err)
		}
		images[i] = img
	}

	canvas, err := composeJob(job, images)
	if err != nil {
		return fail(err)
	}
	res.Width, res.Height = canvas.Width(), canvas.Height()

	data, err := codec.EncodeBytes(canvas, format)
	if err != nil {
		return fail(err)
	}
	res.Bytes = len(data)
	if opts.DryRun {
		res.Status = StatusPlanned
		return res, data
	}

	if err := codec.WriteFileAtomic(res.Output, data); err != nil {
		return fail(err)
	}
	res.Status = StatusOK

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		logger.Debug("cache write failed", "err", err)
	}
	return res, nil
}

func (r *Runner) cached(ctx context.Context, key string, logger *log.Logger) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	if _, _, err := codec.Dimensions(data); err != nil {
		logger.Debug("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return data, true
}

// composeJob dispatches to the compositing operation for the job kind.
func composeJob(job manifest.Job, images []*raster.Image) (*raster.Canvas, error) {
	switch job.Kind {
	case manifest.KindFilmstrip:
		return composite.Filmstrip(images[0], images[1], job.Frame)
	case manifest.KindGrid:
		c, err := job.GridColor()
		if err != nil {
			return nil, err
		}
		return composite.Grid(images[0], job.Cell, c)
	case manifest.KindStack:
		return composite.StackVertical(images[0], images[1])
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported job kind %q", job.Kind)
}

// artifactKeyOpts collects the parameters that affect the output bytes.
// Parameters the kind ignores are left out so they never split the cache.
func artifactKeyOpts(job manifest.Job, format codec.Format) (cache.ArtifactKeyOpts, error) {
	opts := cache.ArtifactKeyOpts{Format: string(format)}
	switch job.Kind {
	case manifest.KindFilmstrip:
		opts.Frame = [3]int{job.Frame.Width, job.Frame.Height, job.Frame.Count}
	case manifest.KindGrid:
		c, err := job.GridColor()
		if err != nil {
			return opts, err
		}
		opts.Cell = [2]int{job.Cell.Width, job.Cell.Height}
		opts.Color = raster.FormatColor(c)
	}
	return opts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
