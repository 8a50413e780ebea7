// Package batch runs lists of compositing jobs.
//
// This package is the shared execution path for the single-job CLI commands
// and for manifests: every job, whatever its kind, goes through
// [Runner.RunJob], which reads and hashes the inputs, consults the artifact
// cache, composites on a miss, encodes, and writes the output atomically.
//
// # Ordering and isolation
//
// [Runner.Run] groups jobs into chains. Two jobs share a chain when one
// writes a path the other reads or writes, so a then_stack pair, or two jobs
// with the same output, always run in manifest order on one worker.
// Independent chains run concurrently, up to [Options.Workers].
//
// A failing job never stops its siblings: its error is recorded in its
// [Result] and the batch continues. Jobs that consume the output of a failed
// job in the same chain are skipped instead of reading a stale file. With
// [Options.FailFast] no new job starts after the first failure.
//
// Results are always reported in input order.
//
// # Usage
//
//	runner := batch.NewRunner(cache, nil, logger)
//	report, err := runner.Run(ctx, m.Expand(), batch.Options{Workers: 4})
//	if err != nil {
//	    return err // invalid options only
//	}
//	if report.Failed() > 0 {
//	    // inspect report.Results
//	}
package batch

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/manifest"
)

// DefaultWorkers processes jobs sequentially.
const DefaultWorkers = 1

// MaxWorkers bounds the worker pool.
const MaxWorkers = 64

// Options configures a batch run.
type Options struct {
	// Workers is the number of chains processed concurrently.
	Workers int `json:"workers,omitempty"`
	// FailFast stops starting new jobs after the first failure.
	FailFast bool `json:"fail_fast,omitempty"`
	// DryRun composites in memory and writes nothing. Later jobs in the same
	// chain read the planned outputs instead of the files on disk.
	DryRun bool `json:"dry_run,omitempty"`
	// Refresh ignores cached artifacts. Fresh results are still cached.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives per-job events. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Status is the outcome of one job.
type Status string

const (
	StatusOK      Status = "ok"
	StatusCached  Status = "cached"
	StatusPlanned Status = "planned"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one job.
type Result struct {
	Job      manifest.Job
	Output   string
	Status   Status
	Width    int
	Height   int
	Bytes    int
	Duration time.Duration
	Err      error
}

// OK reports whether the job produced (or would produce) its output.
func (r Result) OK() bool {
	return r.Status == StatusOK || r.Status == StatusCached || r.Status == StatusPlanned
}

// Report is the outcome of a batch run, with results in job order.
type Report struct {
	RunID    string
	Results  []Result
	Duration time.Duration
}

// Succeeded counts jobs that produced their output.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed counts jobs that failed or were skipped.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Cached counts jobs served from the artifact cache.
func (r *Report) Cached() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusCached {
			n++
		}
	}
	return n
}

// Err returns nil when every job succeeded, otherwise an error naming the
// first failed job and the failure count.
func (r *Report) Err() error {
	for _, res := range r.Results {
		if res.OK() {
			continue
		}
		code := errors.GetCode(res.Err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		if failed := r.Failed(); failed > 1 {
			return errors.Wrap(code, res.Err, "job %s failed (and %d more)", res.Job.Name, failed-1)
		}
		return errors.Wrap(code, res.Err, "job %s failed", res.Job.Name)
	}
	return nil
}
