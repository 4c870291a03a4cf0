package formats

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// SnapType identifies the SNAP edge-list parser.
const SnapType = "snap"

var snapCountsRE = regexp.MustCompile(`(?i)nodes:\s*(\d+)\s+edges:\s*(\d+)`)

// Snap reads Stanford SNAP edge lists (.txt, .snap).
//
//	# Directed graph (each unordered pair of nodes is saved once): web.txt
//	# Nodes: 4 Edges: 3
//	# FromNodeId	ToNodeId
//	0	1
//	1	3
//	2	3
//
// Ids are 0-indexed. A "# Nodes:" comment fixes V and ids outside it are
// rejected; without one, V is the largest id + 1. A comment mentioning
// "undirected" marks the graph undirected. A third column is read as a
// weight.
type Snap struct{}

func (*Snap) Type() string              { return SnapType }
func (*Snap) Supports(name string) bool { return hasExt(name, ".txt", ".snap", ".el") }

func (*Snap) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, SnapType, prop.IndexBase.Offset(graph.BaseZero))

	var (
		st  graph.Structure
		coo []graph.Pair
		v   int64 = unknownV
	)
	for s.next() {
		if s.text == "" {
			continue
		}
		if strings.HasPrefix(s.text, "#") {
			if snapComment(s.text, &st) {
				if st.V > graph.MaxVertices {
					return nil, s.fail(errors.ReasonMalformedHeader, "%d vertices exceed the limit %d", st.V, graph.MaxVertices)
				}
				v = st.V
			}
			continue
		}
		fields := strings.Fields(s.text)
		p, err := s.edge(fields, v)
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

	if v == unknownV {
		st.V = inferV(coo)
	}
	return &Result{Type: SnapType, Structure: st, COO: coo}, nil
}

// snapComment applies a header comment to st and reports whether it
// declared the counts.
func snapComment(line string, st *graph.Structure) bool {
	if strings.Contains(strings.ToLower(line), "undirected") {
		st.Direction = graph.Undirected
	}
	if m := snapCountsRE.FindStringSubmatch(line); m != nil {
		st.V, _ = strconv.ParseInt(m[1], 10, 64)
		st.E, _ = strconv.ParseInt(m[2], 10, 64)
		return true
	}
	return false
}
