package manifest

import (
	"slices"

	"github.com/matzehuels/spritestrip/pkg/errors"
)

// Validate checks every job and reports the first problem, naming the job by
// index and name. All errors carry INVALID_MANIFEST.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no jobs")
	}
	seen := make(map[string]int, len(m.Jobs))
	for i, j := range m.Jobs {
		if prev, ok := seen[j.Name]; ok {
			return errors.New(errors.ErrCodeInvalidManifest, "job %d (%s): name already used by job %d", i, j.Name, prev)
		}
		seen[j.Name] = i
		if err := j.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "job %d (%s)", i, j.Name)
		}
	}
	return nil
}

// Validate checks a single job: its kind, input count, paths, and the
// geometry and color the kind needs.
func (j Job) Validate() error {
	if err := errors.ValidateJobName(j.Name); err != nil {
		return err
	}
	if !slices.Contains(Kinds, j.Kind) {
		return errors.New(errors.ErrCodeInvalidManifest, "unknown kind %q (want filmstrip, grid or stack)", j.Kind)
	}
	if len(j.Inputs) != j.Kind.Arity() {
		return errors.New(errors.ErrCodeInvalidManifest, "%s takes %d inputs, got %d", j.Kind, j.Kind.Arity(), len(j.Inputs))
	}
	for _, in := range j.Inputs {
		if err := errors.ValidatePath(in); err != nil {
			return err
		}
	}
	if j.Output != "" {
		if err := errors.ValidatePath(j.Output); err != nil {
			return err
		}
	}
	if j.ThenStack && j.Kind != KindFilmstrip {
		return errors.New(errors.ErrCodeInvalidManifest, "then_stack is only valid on filmstrip jobs")
	}

	switch j.Kind {
	case KindFilmstrip:
		if err := j.Frame.Validate(); err != nil {
			return err
		}
	case KindGrid:
		if err := j.Cell.Validate(); err != nil {
			return err
		}
		if _, err := j.GridColor(); err != nil {
			return err
		}
	}
	return nil
}
