package formats

import (
	"io"

	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
)

// JSONType identifies the JSON document parser.
const JSONType = pkgio.JSONFormat

// JSON reads node-link documents written by [pkgio.WriteJSON], so an
// exported graph loads back with different build options.
type JSON struct{}

func (*JSON) Type() string              { return JSONType }
func (*JSON) Supports(name string) bool { return hasExt(name, ".json") }

func (*JSON) Parse(r io.Reader, _ graph.Property) (*Result, error) {
	s, coo, err := pkgio.DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	return &Result{Type: JSONType, Structure: s, COO: coo}, nil
}
