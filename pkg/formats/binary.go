package formats

import (
	"io"

	"github.com/matzehuels/csrstore/pkg/graph"
	pkgio "github.com/matzehuels/csrstore/pkg/io"
)

// BinaryType identifies the binary snapshot parser.
const BinaryType = pkgio.BinaryFormat

// Binary reads snapshots written by [pkgio.WriteBinary] (.csr, .bin). The CSR
// arrays are loaded as stored; no edge list is scattered.
type Binary struct{}

func (*Binary) Type() string              { return BinaryType }
func (*Binary) Supports(name string) bool { return hasExt(name, ".csr", ".bin") }

func (*Binary) Parse(r io.Reader, _ graph.Property) (*Result, error) {
	g, err := pkgio.ReadBinary(r)
	if err != nil {
		return nil, err
	}
	return &Result{Type: BinaryType, Structure: g.Structure(), Graph: g}, nil
}
