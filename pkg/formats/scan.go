package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// maxLine bounds a single input line. Adjacency formats put a whole row on
// one line, so the limit is generous.
const maxLine = 256 << 20

// unknownV marks a vertex count that is inferred from the largest id.
const unknownV = -1

// scanner walks a text graph file line by line, tracking the 1-based line
// number for error reports.
type scanner struct {
	sc     *bufio.Scanner
	format string
	line   int
	text   string
	base   int64
}

func newScanner(r io.Reader, format string, base int64) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &scanner{sc: sc, format: format, base: base}
}

// next advances to the next line and trims surrounding space. It returns
// false at the end of input or on a read error; see err.
func (s *scanner) next() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	s.text = strings.TrimSpace(s.sc.Text())
	return true
}

// nextData advances to the next line that is neither blank nor a comment.
func (s *scanner) nextData(comment func(string) bool) bool {
	for s.next() {
		if s.text != "" && !comment(s.text) {
			return true
		}
	}
	return false
}

func (s *scanner) err() error {
	if err := s.sc.Err(); err != nil {
		return errors.NewIOError("read", s.format, err)
	}
	return nil
}

func (s *scanner) fail(reason errors.Reason, detail string, args ...any) error {
	return errors.NewParseError(s.format, s.line, reason, detail, args...)
}

// mismatch reports data that disagrees with a declared count. The file is
// well formed, so this is a structure error rather than a parse error.
func (s *scanner) mismatch(detail string, args ...any) error {
	return errors.NewStructureError("%s:%d: %s", s.format, s.line, fmt.Sprintf(detail, args...))
}

// truncated reports a stream that ended early, or the read error that ended it.
func (s *scanner) truncated(detail string, args ...any) error {
	if err := s.err(); err != nil {
		return err
	}
	return s.fail(errors.ReasonTruncated, detail, args...)
}

func (s *scanner) int(tok string) (int64, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, s.fail(errors.ReasonBadToken, "%q is not an integer", tok)
	}
	return n, nil
}

func (s *scanner) count(tok, what string) (int64, error) {
	n, err := s.int(tok)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, s.fail(errors.ReasonMalformedHeader, "negative %s %d", what, n)
	}
	return n, nil
}

// weight checks that tok is a number. Weights are validated, not stored.
func (s *scanner) weight(tok string) error {
	if _, err := strconv.ParseFloat(tok, 64); err != nil {
		return s.fail(errors.ReasonBadToken, "%q is not a number", tok)
	}
	return nil
}

// vertex converts a raw id to a 0-based VertexID. With v == unknownV only
// the global limit applies.
func (s *scanner) vertex(tok string, v int64) (graph.VertexID, error) {
	n, err := s.int(tok)
	if err != nil {
		return 0, err
	}
	id := n - s.base
	limit := v
	if limit == unknownV {
		limit = graph.MaxVertices
	}
	if id < 0 || id >= limit {
		return 0, s.fail(errors.ReasonOutOfRange, "%d not in [%d, %d)", n, s.base, limit+s.base)
	}
	return graph.VertexID(id), nil
}

// edge reads the first two tokens of fields as an edge.
func (s *scanner) edge(fields []string, v int64) (graph.Pair, error) {
	if len(fields) < 2 {
		return graph.Pair{}, s.fail(errors.ReasonBadToken, "want 2 vertex ids, got %d tokens", len(fields))
	}
	src, err := s.vertex(fields[0], v)
	if err != nil {
		return graph.Pair{}, err
	}
	dst, err := s.vertex(fields[1], v)
	if err != nil {
		return graph.Pair{}, err
	}
	return graph.Pair{Src: src, Dst: dst}, nil
}

// inferV returns the vertex count implied by the largest id in coo.
func inferV(coo []graph.Pair) int64 {
	var v int64
	for _, p := range coo {
		v = max(v, int64(p.Src)+1, int64(p.Dst)+1)
	}
	return v
}

func prefixed(prefixes ...string) func(string) bool {
	return func(line string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				return true
			}
		}
		return false
	}
}

func splitCSV(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
}

func hasExt(name string, exts ...string) bool {
	lower := strings.ToLower(name)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}
