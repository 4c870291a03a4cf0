package formats

import (
	"io"

	"github.com/matzehuels/csrstore/pkg/graph"
)

// NetRepoType identifies the Network Repository parser.
const NetRepoType = "netrepo"

// NetRepo reads Network Repository edge lists (.edges, .csv).
//
//	% comment
//	1,2
//	2,3,0.5
//
// Fields are separated by commas and/or whitespace; ids are 1-indexed and
// the counts are inferred. A third column is read as a weight.
type NetRepo struct{}

func (*NetRepo) Type() string              { return NetRepoType }
func (*NetRepo) Supports(name string) bool { return hasExt(name, ".edges", ".csv") }

func (*NetRepo) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, NetRepoType, prop.IndexBase.Offset(graph.BaseOne))

	var (
		st  graph.Structure
		coo []graph.Pair
	)
	for s.nextData(prefixed("%", "#")) {
		fields := splitCSV(s.text)
		p, err := s.edge(fields, unknownV)
		if err != nil {
			return nil, err
		}
		if len(fields) > 2 {
			if err := s.weight(fields[2]); err != nil {
				return nil, err
			}
			st.Weighted = true
		}
		coo = append(coo, p)
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	st.V = inferV(coo)
	return &Result{Type: NetRepoType, Structure: st, COO: coo}, nil
}
