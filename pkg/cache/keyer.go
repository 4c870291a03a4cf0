package cache

import "github.com/matzehuels/csrstore/pkg/graph"

// Keyer generates cache keys for the different entry kinds.
type Keyer interface {
	// GraphKey keys a built graph snapshot by the hash of its source content.
	GraphKey(contentHash string, opts GraphKeyOpts) string

	// ArtifactKey keys an output derived from a built graph (an export,
	// a rendering, a ranking).
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the inputs that change the arrays built from a source.
type GraphKeyOpts struct {
	Format   string         `json:"format"`
	Property graph.Property `json:"property"`
}

// ArtifactKeyOpts are the inputs that change a derived artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Limit  int    `json:"limit,omitempty"`
}

// DefaultKeyer is the standard key layout: "graph:<sha256>" and
// "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey hashes the content hash together with the build options.
func (DefaultKeyer) GraphKey(contentHash string, opts GraphKeyOpts) string {
	return hashKey("graph", contentHash, opts)
}

// ArtifactKey hashes the graph hash together with the artifact options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
