package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys the encoded output of one job.
	ArtifactKey(kind string, inputHashes []string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every job parameter that changes the output bytes.
type ArtifactKeyOpts struct {
	Frame  [3]int `json:"frame,omitempty"` // width, height, count
	Cell   [2]int `json:"cell,omitempty"`  // width, height
	Color  string `json:"color,omitempty"` // normalized #rrggbbaa
	Format string `json:"format"`
}

// DefaultKeyer hashes the kind, inputs and options into "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(kind string, inputHashes []string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", kind, inputHashes, opts)
}
