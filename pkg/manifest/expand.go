package manifest

// Expand returns the jobs to run: every job in order, with a stack job
// inserted after each filmstrip that sets then_stack. The stack job places
// the filmstrip's base image over the filmstrip it produced.
func (m *Manifest) Expand() []Job {
	jobs := make([]Job, 0, len(m.Jobs))
	for _, j := range m.Jobs {
		jobs = append(jobs, j)
		if j.Kind != KindFilmstrip || !j.ThenStack {
			continue
		}
		jobs[len(jobs)-1].ThenStack = false
		inputs := []string{j.Inputs[0], j.OutputPath()}
		name := j.Name + "/stack"
		if len(name) > 128 {
			name = name[:128]
		}
		jobs = append(jobs, Job{
			Name:   name,
			Kind:   KindStack,
			Inputs: inputs,
			Output: DefaultOutput(KindStack, inputs),
		})
	}
	return jobs
}
