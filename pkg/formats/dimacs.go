package formats

import (
	"io"
	"strings"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// Format identifiers of the DIMACS parsers.
const (
	Dimacs9Type  = "dimacs9"
	Dimacs10Type = "dimacs10"
)

// Dimacs9 reads 9th DIMACS challenge shortest-path files (.gr).
//
//	c comment
//	p sp 3 2
//	a 1 2 7
//	a 2 3 4
//
// Arcs are directed, 1-indexed and carry an optional weight.
type Dimacs9 struct{}

func (*Dimacs9) Type() string              { return Dimacs9Type }
func (*Dimacs9) Supports(name string) bool { return hasExt(name, ".gr", ".dimacs") }

func (*Dimacs9) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, Dimacs9Type, prop.IndexBase.Offset(graph.BaseOne))
	res, err := parseArcs(s, nil)
	if err != nil {
		return nil, err
	}
	res.Structure.Direction = graph.Directed
	return res, nil
}

// parseArcs reads the "p <kind> V E" / "a u v [w]" arc form. problem holds
// the tokens of an already consumed problem line, or nil.
func parseArcs(s *scanner, problem []string) (*Result, error) {
	comment := prefixed("c", "%")
	var (
		v, e   int64 = unknownV, 0
		coo    []graph.Pair
		weight bool
	)
	readProblem := func(fields []string) error {
		if len(fields) != 4 {
			return s.fail(errors.ReasonMalformedHeader, "problem line wants p <kind> <V> <E>, got %d tokens", len(fields))
		}
		var err error
		if v, err = s.count(fields[2], "vertex count"); err != nil {
			return err
		}
		if v > graph.MaxVertices {
			return s.fail(errors.ReasonMalformedHeader, "%d vertices exceed the limit %d", v, graph.MaxVertices)
		}
		if e, err = s.count(fields[3], "edge count"); err != nil {
			return err
		}
		coo = make([]graph.Pair, 0, min(e, 1<<20))
		return nil
	}
	if problem != nil {
		if err := readProblem(problem); err != nil {
			return nil, err
		}
	}

	for s.nextData(comment) {
		fields := strings.Fields(s.text)
		switch fields[0] {
		case "p":
			if v != unknownV {
				return nil, s.fail(errors.ReasonMalformedHeader, "duplicate problem line")
			}
			if err := readProblem(fields); err != nil {
				return nil, err
			}
		case "a", "e":
			if v == unknownV {
				return nil, s.fail(errors.ReasonMalformedHeader, "arc before problem line")
			}
			if int64(len(coo)) == e {
				return nil, s.mismatch("more than the %d declared arcs", e)
			}
			p, err := s.edge(fields[1:], v)
			if err != nil {
				return nil, err
			}
			if len(fields) > 3 {
				if err := s.weight(fields[3]); err != nil {
					return nil, err
				}
				weight = true
			}
			coo = append(coo, p)
		default:
			return nil, s.fail(errors.ReasonBadToken, "unknown line type %q", fields[0])
		}
	}
	if v == unknownV {
		return nil, s.truncated("missing problem line")
	}
	if int64(len(coo)) < e {
		return nil, s.truncated("%d of %d arcs", len(coo), e)
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	return &Result{
		Type:      s.format,
		Structure: graph.Structure{V: v, E: e, Weighted: weight},
		COO:       coo,
	}, nil
}

// Dimacs10 reads 10th DIMACS challenge graph files (.graph), the METIS
// adjacency format:
//
//	% comment
//	4 3
//	2 3
//	1
//	1 4
//	3
//
// The header holds V, the number of undirected edges E and an optional
// format code "abc" (a: vertex sizes, b: vertex weights, c: edge weights)
// with the number of vertex weights. Line i lists the 1-indexed neighbors
// of vertex i, so every edge appears once from each side; an empty line is
// an isolated vertex.
//
// Files that open with a "p" problem line, possibly after "c" comments, are
// read in the DIMACS arc form instead, as an undirected graph.
type Dimacs10 struct{}

func (*Dimacs10) Type() string              { return Dimacs10Type }
func (*Dimacs10) Supports(name string) bool { return hasExt(name, ".graph", ".metis") }

func (*Dimacs10) Parse(r io.Reader, prop graph.Property) (*Result, error) {
	s := newScanner(r, Dimacs10Type, prop.IndexBase.Offset(graph.BaseOne))
	comment := prefixed("%")

	// A "c" line cannot open a METIS file, so it marks the arc form too.
	if !s.nextData(prefixed("%", "c")) {
		return nil, s.truncated("missing header")
	}
	header := strings.Fields(s.text)
	if header[0] == "p" {
		res, err := parseArcs(s, header)
		if err != nil {
			return nil, err
		}
		res.Structure.Direction = graph.Undirected
		return res, nil
	}
	if len(header) < 2 || len(header) > 4 {
		return nil, s.fail(errors.ReasonMalformedHeader, "header wants <V> <E> [fmt [ncon]], got %d tokens", len(header))
	}
	v, err := s.count(header[0], "vertex count")
	if err != nil {
		return nil, err
	}
	if v > graph.MaxVertices {
		return nil, s.fail(errors.ReasonMalformedHeader, "%d vertices exceed the limit %d", v, graph.MaxVertices)
	}
	e, err := s.count(header[1], "edge count")
	if err != nil {
		return nil, err
	}
	layout, err := parseMetisFormat(s, header[2:])
	if err != nil {
		return nil, err
	}

	coo := make([]graph.Pair, 0, min(2*e, 1<<20))
	for i := int64(0); i < v; i++ {
		if !s.nextNonComment(comment) {
			return nil, s.truncated("%d of %d adjacency lines", i, v)
		}
		fields := strings.Fields(s.text)
		if len(fields) < layout.skip {
			return nil, s.fail(errors.ReasonBadToken, "vertex line wants %d leading weights, got %d tokens", layout.skip, len(fields))
		}
		for _, tok := range fields[:layout.skip] {
			if _, err := s.int(tok); err != nil {
				return nil, err
			}
		}
		fields = fields[layout.skip:]
		if len(fields)%layout.stride != 0 {
			return nil, s.fail(errors.ReasonBadToken, "neighbor without edge weight")
		}
		for j := 0; j < len(fields); j += layout.stride {
			dst, err := s.vertex(fields[j], v)
			if err != nil {
				return nil, err
			}
			if layout.stride == 2 {
				if _, err := s.int(fields[j+1]); err != nil {
					return nil, err
				}
			}
			coo = append(coo, graph.Pair{Src: graph.VertexID(i), Dst: dst})
		}
	}
	if s.nextData(comment) {
		return nil, s.mismatch("more than the %d declared adjacency lines", v)
	}
	if err := s.err(); err != nil {
		return nil, err
	}

	return &Result{
		Type: Dimacs10Type,
		Structure: graph.Structure{
			V:         v,
			E:         2 * e,
			Direction: graph.Undirected,
			Weighted:  layout.stride == 2,
			Mirrored:  true,
		},
		COO: coo,
	}, nil
}

// nextNonComment advances to the next line that is not a comment. Unlike
// nextData it stops on blank lines, which are isolated vertices.
func (s *scanner) nextNonComment(comment func(string) bool) bool {
	for s.next() {
		if !comment(s.text) {
			return true
		}
	}
	return false
}

// metisLayout describes the tokens of one adjacency line.
type metisLayout struct {
	skip   int // leading vertex size and weight tokens
	stride int // tokens per neighbor: 1, or 2 with edge weights
}

func parseMetisFormat(s *scanner, opts []string) (metisLayout, error) {
	l := metisLayout{stride: 1}
	if len(opts) == 0 {
		return l, nil
	}
	code := opts[0]
	if len(code) > 3 || strings.Trim(code, "01") != "" {
		return l, s.fail(errors.ReasonMalformedHeader, "format code %q wants up to three 0/1 digits", code)
	}
	code = strings.Repeat("0", 3-len(code)) + code
	ncon := int64(1)
	if len(opts) == 2 {
		var err error
		if ncon, err = s.count(opts[1], "vertex weight count"); err != nil {
			return l, err
		}
	}
	if code[0] == '1' {
		l.skip++
	}
	if code[1] == '1' {
		l.skip += int(ncon)
	}
	if code[2] == '1' {
		l.stride = 2
	}
	return l, nil
}
