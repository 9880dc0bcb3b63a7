// Package viewer serves computed graphs over HTTP.
package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/render"
)

// --- Graph types (the normalised schema clients render) ---

type GraphNode struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	IsCritical     bool    `json:"is_critical"`
	Duration       float64 `json:"duration"`
	EarliestStart  float64 `json:"earliest_start"`
	EarliestFinish float64 `json:"earliest_finish"`
	LatestStart    float64 `json:"latest_start"`
	LatestFinish   float64 `json:"latest_finish"`
	Slack          float64 `json:"slack"`
	X              int     `json:"x"`
	Y              int     `json:"y"`
}

type GraphEdge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	IsCritical bool   `json:"is_critical"`
	IsCycle    bool   `json:"is_cycle"`
}

type GraphMetadata struct {
	GeneratedAt     string  `json:"generated_at"`
	TotalNodes      int     `json:"total_nodes"`
	TotalEdges      int     `json:"total_edges"`
	ProjectDuration float64 `json:"project_duration"`
	HasCycle        bool    `json:"has_cycle"`
}

type Graph struct {
	Nodes            []GraphNode   `json:"nodes"`
	Edges            []GraphEdge   `json:"edges"`
	TopologicalOrder []string      `json:"topological_order"`
	CriticalPath     []string      `json:"critical_path"`
	Cycles           [][]string    `json:"cycles"`
	Metadata         GraphMetadata `json:"metadata"`
}

// toGraph converts an analysed graph into the normalised Graph clients render.
func toGraph(g *pert.Graph, at time.Time) *Graph {
	nodes := make([]GraphNode, 0, g.Len())
	for _, n := range g.Nodes() {
		nodes = append(nodes, GraphNode{
			ID:             n.ID,
			Title:          n.Title,
			Status:         string(n.Status),
			IsCritical:     n.IsCritical,
			Duration:       n.Duration,
			EarliestStart:  n.EarliestStart,
			EarliestFinish: n.EarliestFinish,
			LatestStart:    n.LatestStart,
			LatestFinish:   n.LatestFinish,
			Slack:          n.Slack,
			X:              n.X,
			Y:              n.Y,
		})
	}

	back := make(map[pert.Edge]bool, len(g.CycleDetection.CycleEdges))
	for _, e := range g.CycleDetection.CycleEdges {
		back[e] = true
	}
	edges := make([]GraphEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		edges = append(edges, GraphEdge{
			From:       e.From,
			To:         e.To,
			IsCritical: from.IsCritical && to.IsCritical,
			IsCycle:    back[e],
		})
	}

	out := &Graph{
		Nodes:            nodes,
		Edges:            edges,
		TopologicalOrder: g.TopologicalOrder,
		CriticalPath:     g.CriticalPath,
		Cycles:           g.CycleDetection.Cycles,
		Metadata: GraphMetadata{
			GeneratedAt:     at.UTC().Format(time.RFC3339),
			TotalNodes:      g.Len(),
			TotalEdges:      len(g.Edges),
			ProjectDuration: g.ProjectDuration,
			HasCycle:        g.CycleDetection.HasCycle,
		},
	}
	if out.TopologicalOrder == nil {
		out.TopologicalOrder = []string{}
	}
	if out.CriticalPath == nil {
		out.CriticalPath = []string{}
	}
	if out.Cycles == nil {
		out.Cycles = [][]string{}
	}
	return out
}

// RefreshFunc recomputes the graph from its source.
type RefreshFunc func(ctx context.Context) (*pert.Graph, error)

// Server holds the latest graph and serves it.
type Server struct {
	Options pert.Options // used for graphs built from POSTed items
	Logger  *slog.Logger

	refresh RefreshFunc
	now     func() time.Time

	mu    sync.RWMutex
	graph *pert.Graph
	view  *Graph
}

// New creates a Server. refresh may be nil, in which case POST /refresh is
// unavailable.
func New(refresh RefreshFunc, opts pert.Options) *Server {
	return &Server{
		Options: opts,
		Logger:  slog.Default(),
		refresh: refresh,
		now:     time.Now,
	}
}

// Set replaces the served graph.
func (s *Server) Set(g *pert.Graph) {
	view := toGraph(g, s.now())
	s.mu.Lock()
	s.graph = g
	s.view = view
	s.mu.Unlock()
}

func (s *Server) current() (*pert.Graph, *Graph) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.view
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handlePostGraph(w, r)
		case http.MethodGet:
			s.handleGetGraph(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/refresh", s.handleRefresh)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("beadpert viewer: GET /graph, GET /chart, POST /refresh, GET /metrics\n"))
	})
	return mux
}

// maxGraphBody caps the item list accepted by POST /graph.
const maxGraphBody = 8 << 20

// handlePostGraph builds a graph from a JSON array of items and serves it.
func (s *Server) handlePostGraph(w http.ResponseWriter, r *http.Request) {
	var items []pert.Item
	r.Body = http.MaxBytesReader(w, r.Body, maxGraphBody)
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.Set(pert.Build(items, s.Options))
	_, view := s.current()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	_, view := s.current()
	if view == nil {
		http.Error(w, "no graph loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.refresh == nil {
		http.Error(w, "refresh not configured", http.StatusNotImplemented)
		return
	}

	g, err := s.refresh(r.Context())
	if err != nil {
		s.Logger.Error("refresh failed", "err", err)
		http.Error(w, "refresh failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	s.Set(g)
	_, view := s.current()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// handleChart serves the terminal chart as plain text. ?focus=, ?depth= and
// ?direction= select a subgraph.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	g, _ := s.current()
	if g == nil {
		http.Error(w, "no graph loaded", http.StatusNotFound)
		return
	}

	cfg := render.DefaultConfig()
	q := r.URL.Query()
	if focus := q.Get("focus"); focus != "" {
		if _, ok := g.Node(focus); !ok {
			http.Error(w, fmt.Sprintf("unknown node %q", focus), http.StatusNotFound)
			return
		}
		cfg.Focus = focus
	}
	if d := q.Get("depth"); d != "" {
		depth, err := strconv.Atoi(d)
		if err != nil || depth < 0 {
			http.Error(w, "invalid depth", http.StatusBadRequest)
			return
		}
		cfg.FocusDepth = depth
	}
	if d := q.Get("direction"); d != "" {
		dir, err := pert.ParseDirection(d)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg.FocusDirection = dir
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(render.Chart(g, cfg).Plain()))
}

// Serve runs the HTTP server on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown viewer: %w", err)
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Listen opens the viewer port.
func Listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return ln, nil
}

// IsPortOpen checks if something is listening on the given address.
func IsPortOpen(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
