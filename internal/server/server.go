package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"

	"fianchetto/pkg/chess"
	"fianchetto/pkg/engine"
	"fianchetto/pkg/eval"
	"fianchetto/pkg/game"
)

// StateResponse is the game snapshot every endpoint answers with.
type StateResponse struct {
	Fen        string   `json:"fen"`
	SideToMove string   `json:"side_to_move"`
	InCheck    bool     `json:"in_check"`
	LegalMoves []string `json:"legal_moves"`
	History    []string `json:"history"`
	Status     string   `json:"status"`
	Winner     string   `json:"winner,omitempty"`
	Difficulty string   `json:"difficulty"`
}

type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type searchResponse struct {
	Move     string        `json:"move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	TimeMs   int64         `json:"time_ms"`
	MainLine []string      `json:"main_line"`
	State    StateResponse `json:"state"`
}

// Server owns one game and the engine playing it. A single mutex
// serializes every access, so a search in flight delays state reads
// until it returns.
type Server struct {
	cfg    Config
	logger *log.Logger

	mu     sync.Mutex
	game   *game.Game
	engine *engine.Engine
	hub    *Hub
}

func New(cfg Config, logger *log.Logger) *Server {
	var eng = engine.NewEngine(eval.NewEvaluationService())
	if cfg.Hash > 0 {
		eng.Hash = cfg.Hash
	}
	if cfg.Difficulty != "" && !eng.SetDifficulty(engine.Difficulty(cfg.Difficulty)) {
		logger.Printf("unknown difficulty %q, keeping %s", cfg.Difficulty, eng.Difficulty())
	}
	if cfg.Depth > 0 {
		eng.Depth = cfg.Depth
	}
	if cfg.TimeLimitMs > 0 {
		eng.TimeLimit = cfg.TimeLimit()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		game:   game.NewGame(),
		engine: eng,
		hub:    NewHub(),
	}
}

// Handler builds the router. Split from Run so tests can drive the API
// through httptest.
func (s *Server) Handler() http.Handler {
	var r = chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/state", s.handleState)
	r.Post("/api/move", s.handleMove)
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/reset", s.handleReset)
	r.Post("/api/difficulty", s.handleDifficulty)
	r.Get("/ws", s.handleWS)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	var done = make(chan struct{})
	defer close(done)
	go s.hub.Run(done)

	var srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	var errCh = make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Printf("listening on %s", s.cfg.Addr)
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return srv.Close()
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var state = s.stateLocked()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	var from = chess.ParseSquare(strings.ToLower(strings.TrimSpace(body.From)))
	var to = chess.ParseSquare(strings.ToLower(strings.TrimSpace(body.To)))
	if from == chess.SquareNone || to == chess.SquareNone {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid square"})
		return
	}
	var promotion = chess.Empty
	if p := strings.ToLower(strings.TrimSpace(body.Promotion)); p != "" {
		promotion = chess.ParsePromotion(p)
		if promotion == chess.Empty {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid promotion"})
			return
		}
	}

	s.mu.Lock()
	var applied = s.game.MakeMove(from, to, promotion)
	var state = s.stateLocked()
	s.mu.Unlock()
	if !applied {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "illegal move"})
		return
	}
	s.hub.Broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if _, over := s.game.Result(); over {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"error": "game is over"})
		return
	}
	result, ok := s.engine.Search(engine.SearchParams{Positions: s.game.Positions()})
	if !ok || !s.game.MakeMove(result.Move.From, result.Move.To, result.Move.Promotion) {
		s.mu.Unlock()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	var state = s.stateLocked()
	s.mu.Unlock()

	s.hub.Broadcast(state)
	writeJSON(w, http.StatusOK, searchResponse{
		Move:     result.Move.String(),
		Score:    result.Score,
		Depth:    result.Depth,
		Nodes:    result.Nodes,
		TimeMs:   result.Time.Milliseconds(),
		MainLine: moveStrings(result.MainLine),
		State:    state,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.game.Reset()
	s.engine.Clear()
	var state = s.stateLocked()
	s.mu.Unlock()
	s.hub.Broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var body difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	s.mu.Lock()
	var ok = s.engine.SetDifficulty(engine.Difficulty(strings.ToLower(strings.TrimSpace(body.Difficulty))))
	var state = s.stateLocked()
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown difficulty"})
		return
	}
	s.hub.Broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	var client = &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)

	s.mu.Lock()
	var state = s.stateLocked()
	s.mu.Unlock()
	client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(state)})

	go func() {
		defer conn.Close()
		_ = writeWithHeartbeat(conn, client.send)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_state":
			s.mu.Lock()
			state := s.stateLocked()
			s.mu.Unlock()
			client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(state)})
		}
	}
}

// stateLocked builds a snapshot, the caller holds s.mu.
func (s *Server) stateLocked() StateResponse {
	var p = s.game.Position()
	var legal = s.game.LegalMoves()
	var lan = make([]string, 0, len(legal))
	for _, m := range legal {
		lan = append(lan, m.String())
	}
	slices.Sort(lan)
	var status = "running"
	var winner = ""
	if result, over := s.game.Result(); over {
		status = result.Outcome.String()
		if result.Outcome == game.OutcomeCheckmate {
			winner = result.Winner.String()
		}
	}
	return StateResponse{
		Fen:        p.String(),
		SideToMove: p.SideToMove.String(),
		InCheck:    p.IsCheck(),
		LegalMoves: lan,
		History:    moveStrings(s.game.Moves()),
		Status:     status,
		Winner:     winner,
		Difficulty: string(s.engine.Difficulty()),
	}
}

func moveStrings(moves []chess.Move) []string {
	var out = make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
