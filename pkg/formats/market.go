package formats

import (
	"io"
	"strings"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// MarketType identifies the Matrix-Market parser.
const MarketType = "market"

// valueCount is the number of value tokens per entry for each field kind.
var valueCount = map[string]int{
	"pattern": 0,
	"integer": 1,
	"real":    1,
	"double":  1,
	"complex": 2,
}

var symmetries = map[string]graph.Direction{
	"general":        graph.Directed,
	"symmetric":      graph.Undirected,
	"skew-symmetric": graph.Undirected,
	"hermitian":      graph.Undirected,
}

// Market reads Matrix-Market coordinate files (.mtx).
//
//	%%MatrixMarket matrix coordinate pattern symmetric
//	% comment
//	3 3 2
//	1 2
//	2 3
//
// Rows and columns are vertices, 1-indexed; V is the larger of the two
// dimensions. A symmetric matrix yields an undirected graph.
type Market struct{}

func (*Market) Type() string              { return MarketType }
func (*Market) Supports(name string) bool { return hasExt(name, ".mtx", ".mm") }

func (*Market) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, MarketType, prop.IndexBase.Offset(graph.BaseOne))

	if !s.next() {
		return nil, s.truncated("missing %%%%MatrixMarket banner")
	}
	banner := strings.Fields(strings.ToLower(s.text))
	if len(banner) < 5 || banner[0] != "%%matrixmarket" {
		return nil, s.fail(errors.ReasonMalformedHeader, "want %%%%MatrixMarket matrix coordinate <field> <symmetry>")
	}
	if banner[1] != "matrix" || banner[2] != "coordinate" {
		return nil, s.fail(errors.ReasonMalformedHeader, "unsupported object %q %q", banner[1], banner[2])
	}
	values, ok := valueCount[banner[3]]
	if !ok {
		return nil, s.fail(errors.ReasonMalformedHeader, "unknown field %q", banner[3])
	}
	dir, ok := symmetries[banner[4]]
	if !ok {
		return nil, s.fail(errors.ReasonMalformedHeader, "unknown symmetry %q", banner[4])
	}

	comment := prefixed("%")
	if !s.nextData(comment) {
		return nil, s.truncated("missing size line")
	}
	size := strings.Fields(s.text)
	if len(size) != 3 {
		return nil, s.fail(errors.ReasonMalformedHeader, "size line wants rows cols entries, got %d tokens", len(size))
	}
	var dims [3]int64
	for i, tok := range size {
		n, err := s.count(tok, "dimension")
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	v, nnz := max(dims[0], dims[1]), dims[2]
	if v > graph.MaxVertices {
		return nil, s.fail(errors.ReasonMalformedHeader, "%d vertices exceed the limit %d", v, graph.MaxVertices)
	}

	coo := make([]graph.Pair, 0, min(nnz, 1<<20))
	for s.nextData(comment) {
		if int64(len(coo)) == nnz {
			return nil, s.mismatch("more than the %d declared entries", nnz)
		}
		fields := strings.Fields(s.text)
		e, err := s.edge(fields, v)
		if err != nil {
			return nil, err
		}
		if len(fields) < 2+values {
			return nil, s.fail(errors.ReasonBadToken, "entry wants %d values, got %d", values, len(fields)-2)
		}
		for _, tok := range fields[2 : 2+values] {
			if err := s.weight(tok); err != nil {
				return nil, err
			}
		}
		coo = append(coo, e)
	}
	if int64(len(coo)) < nnz {
		return nil, s.truncated("%d of %d entries", len(coo), nnz)
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	return &Result{
		Type:      MarketType,
		Structure: graph.Structure{V: v, E: nnz, Direction: dir, Weighted: values > 0},
		COO:       coo,
	}, nil
}
