package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/csrstore/pkg/analysis"
	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// defaultRankK is the number of vertices /rank returns without ?k=.
const defaultRankK = 10

// GraphInfo is the body of GET /graph.
type GraphInfo struct {
	Vertices int64  `json:"vertices"`
	Edges    int64  `json:"edges"`
	Directed bool   `json:"directed"`
	InEdges  bool   `json:"in_edges"`
	Sorted   bool   `json:"sorted"`
	Weighted bool   `json:"weighted"`
	Format   string `json:"format"`
	Hash     string `json:"hash"`
}

// VertexInfo is the body of GET /vertices/{id}.
type VertexInfo struct {
	ID        graph.VertexID `json:"id"`
	OutDegree graph.Degree   `json:"out_degree"`
	InDegree  *graph.Degree  `json:"in_degree,omitempty"`
}

// Neighbors is the body of GET /vertices/{id}/out and /in.
type Neighbors struct {
	ID        graph.VertexID   `json:"id"`
	Degree    graph.Degree     `json:"degree"`
	Offset    int              `json:"offset"`
	Neighbors []graph.VertexID `json:"neighbors"`
}

// EdgeInfo is the body of GET /edges/{offset}.
type EdgeInfo struct {
	Offset graph.EdgeOffset `json:"offset"`
	Src    graph.VertexID   `json:"src"`
	Dst    graph.VertexID   `json:"dst"`
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g := s.res.Graph
	writeJSON(w, http.StatusOK, GraphInfo{
		Vertices: g.V(),
		Edges:    g.E(),
		Directed: g.Directed(),
		InEdges:  g.HasInEdges(),
		Sorted:   g.Property().Sorted,
		Weighted: g.Structure().Weighted,
		Format:   s.res.Format,
		Hash:     s.res.ContentHash,
	})
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	v, ok := s.vertex(w, r)
	if !ok {
		return
	}
	info := VertexInfo{ID: v.ID(), OutDegree: v.OutDegree()}
	if s.res.Graph.HasInEdges() {
		d := v.InDegree()
		info.InDegree = &d
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleOut(w http.ResponseWriter, r *http.Request) {
	v, ok := s.vertex(w, r)
	if !ok {
		return
	}
	s.writeNeighbors(w, r, v.ID(), v.Neighbors())
}

func (s *Server) handleIn(w http.ResponseWriter, r *http.Request) {
	v, ok := s.vertex(w, r)
	if !ok {
		return
	}
	if !s.res.Graph.HasInEdges() {
		writeError(w, http.StatusNotFound, "incoming edges were not built; reload with in-edges enabled")
		return
	}
	s.writeNeighbors(w, r, v.ID(), v.InNeighbors())
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	off, err := strconv.ParseInt(chi.URLParam(r, "offset"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid edge offset %q", chi.URLParam(r, "offset")))
		return
	}
	g := s.res.Graph
	if !g.HasEdge(graph.EdgeOffset(off)) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("edge offset %d out of range [0, %d)", off, g.E()))
		return
	}
	e := g.Edge(graph.EdgeOffset(off))
	writeJSON(w, http.StatusOK, EdgeInfo{Offset: e.ID(), Src: e.Src().ID(), Dst: e.Dest().ID()})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	k, ok := queryInt(w, r, "k", defaultRankK)
	if !ok {
		return
	}
	scores, err := s.runner.Rank(r.Context(), s.res, k)
	if err != nil {
		s.logger.Error("rank failed", "err", err)
		writeError(w, http.StatusInternalServerError, "ranking failed")
		return
	}
	if scores == nil {
		scores = []analysis.Score{}
	}
	writeJSON(w, http.StatusOK, scores)
}

// vertex resolves the {id} parameter, writing a 400 or 404 on failure.
func (s *Server) vertex(w http.ResponseWriter, r *http.Request) (graph.Vertex, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid vertex id %q", raw))
		return graph.Vertex{}, false
	}
	g := s.res.Graph
	if id < 0 || id >= g.V() {
		writeError(w, http.StatusNotFound, fmt.Sprintf("vertex %d out of range [0, %d)", id, g.V()))
		return graph.Vertex{}, false
	}
	return g.Vertex(graph.VertexID(id)), true
}

// writeNeighbors pages ids with ?offset= and ?limit= (0 = no limit).
func (s *Server) writeNeighbors(w http.ResponseWriter, r *http.Request, id graph.VertexID, ids []graph.VertexID) {
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	if offset < 0 || limit < 0 {
		writeError(w, http.StatusBadRequest, "offset and limit must not be negative")
		return
	}

	page := ids[min(offset, len(ids)):]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}
	if page == nil {
		page = []graph.VertexID{}
	}
	writeJSON(w, http.StatusOK, Neighbors{ID: id, Degree: graph.Degree(len(ids)), Offset: offset, Neighbors: page})
}

// queryInt reads an optional integer query parameter, writing a 400 when it
// is malformed.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	code := errors.ErrCodeInvalidInput
	switch status {
	case http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case http.StatusInternalServerError:
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}
