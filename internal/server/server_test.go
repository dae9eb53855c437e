package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"

	"fianchetto/pkg/chess"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	var cfg = DefaultConfig()
	cfg.Difficulty = "easy"
	cfg.Hash = 4
	var srv = New(cfg, log.New(io.Discard, "", 0))
	var ts = httptest.NewServer(srv.Handler())
	var done = make(chan struct{})
	go srv.hub.Run(done)
	t.Cleanup(func() {
		close(done)
		ts.Close()
	})
	return srv, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	var _, ts = newTestServer(t)
	var out map[string]bool
	if code := getJSON(t, ts.URL+"/healthz", &out); code != http.StatusOK {
		t.Fatal(code)
	}
	if !out["ok"] {
		t.Error(out)
	}
}

func TestStateInitial(t *testing.T) {
	var _, ts = newTestServer(t)
	var state StateResponse
	if code := getJSON(t, ts.URL+"/api/state", &state); code != http.StatusOK {
		t.Fatal(code)
	}
	if state.Fen != chess.InitialPositionFen {
		t.Error(state.Fen)
	}
	if state.SideToMove != "white" || state.InCheck || state.Status != "running" {
		t.Error(state)
	}
	if len(state.LegalMoves) != 20 || len(state.History) != 0 {
		t.Error(state.LegalMoves, state.History)
	}
	if !slices.IsSorted(state.LegalMoves) {
		t.Error(state.LegalMoves)
	}
	if state.Difficulty != "easy" {
		t.Error(state.Difficulty)
	}
}

func TestMove(t *testing.T) {
	var _, ts = newTestServer(t)
	var state StateResponse
	if code := postJSON(t, ts.URL+"/api/move", map[string]string{"from": "e2", "to": "e4"}, &state); code != http.StatusOK {
		t.Fatal(code)
	}
	if state.Fen != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1" {
		t.Error(state.Fen)
	}
	if len(state.History) != 1 || state.History[0] != "e2e4" || state.SideToMove != "black" {
		t.Error(state)
	}

	var errOut map[string]string
	if code := postJSON(t, ts.URL+"/api/move", map[string]string{"from": "e2", "to": "e4"}, &errOut); code != http.StatusBadRequest {
		t.Fatal(code)
	}
	if errOut["error"] != "illegal move" {
		t.Error(errOut)
	}
}

func TestMoveValidation(t *testing.T) {
	var _, ts = newTestServer(t)
	var tests = []struct {
		body map[string]string
		want string
	}{
		{map[string]string{"from": "e9", "to": "e4"}, "invalid square"},
		{map[string]string{"from": "e2", "to": "zz"}, "invalid square"},
		{map[string]string{"from": "e2", "to": "e4", "promotion": "x"}, "invalid promotion"},
	}
	for i, test := range tests {
		var out map[string]string
		if code := postJSON(t, ts.URL+"/api/move", test.body, &out); code != http.StatusBadRequest {
			t.Error(i, code)
			continue
		}
		if out["error"] != test.want {
			t.Error(i, out)
		}
	}

	resp, err := http.Post(ts.URL+"/api/move", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Error(resp.StatusCode)
	}
}

func TestSearch(t *testing.T) {
	var _, ts = newTestServer(t)
	var before StateResponse
	getJSON(t, ts.URL+"/api/state", &before)

	var out searchResponse
	if code := postJSON(t, ts.URL+"/api/search", nil, &out); code != http.StatusOK {
		t.Fatal(code)
	}
	if !slices.Contains(before.LegalMoves, out.Move) {
		t.Error(out.Move)
	}
	if len(out.State.History) != 1 || out.State.History[0] != out.Move {
		t.Error(out.State.History)
	}
	if out.Depth == 0 || out.Nodes == 0 {
		t.Error(out.Depth, out.Nodes)
	}
	if len(out.MainLine) == 0 || out.MainLine[0] != out.Move {
		t.Error(out.MainLine)
	}
}

func TestSearchWhenGameOver(t *testing.T) {
	var _, ts = newTestServer(t)
	for _, mv := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		var state StateResponse
		if code := postJSON(t, ts.URL+"/api/move", map[string]string{"from": mv[0], "to": mv[1]}, &state); code != http.StatusOK {
			t.Fatal(mv, code)
		}
	}
	var state StateResponse
	getJSON(t, ts.URL+"/api/state", &state)
	if state.Status != "checkmate" || state.Winner != "black" {
		t.Error(state.Status, state.Winner)
	}
	if len(state.LegalMoves) != 0 {
		t.Error(state.LegalMoves)
	}

	var errOut map[string]string
	if code := postJSON(t, ts.URL+"/api/search", nil, &errOut); code != http.StatusConflict {
		t.Fatal(code)
	}
	if errOut["error"] != "game is over" {
		t.Error(errOut)
	}
}

func TestReset(t *testing.T) {
	var _, ts = newTestServer(t)
	postJSON(t, ts.URL+"/api/move", map[string]string{"from": "e2", "to": "e4"}, nil)
	var state StateResponse
	if code := postJSON(t, ts.URL+"/api/reset", nil, &state); code != http.StatusOK {
		t.Fatal(code)
	}
	if state.Fen != chess.InitialPositionFen || len(state.History) != 0 {
		t.Error(state)
	}
}

func TestDifficulty(t *testing.T) {
	var _, ts = newTestServer(t)
	var state StateResponse
	if code := postJSON(t, ts.URL+"/api/difficulty", map[string]string{"difficulty": "Hard"}, &state); code != http.StatusOK {
		t.Fatal(code)
	}
	if state.Difficulty != "hard" {
		t.Error(state.Difficulty)
	}

	var errOut map[string]string
	if code := postJSON(t, ts.URL+"/api/difficulty", map[string]string{"difficulty": "grandmaster"}, &errOut); code != http.StatusBadRequest {
		t.Fatal(code)
	}
	if errOut["error"] != "unknown difficulty" {
		t.Error(errOut)
	}
}

func TestWebsocket(t *testing.T) {
	var _, ts = newTestServer(t)
	var url = "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "state" {
		t.Fatal(msg.Type)
	}
	var state StateResponse
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if state.Fen != chess.InitialPositionFen {
		t.Error(state.Fen)
	}

	// a move over HTTP shows up as a broadcast
	if code := postJSON(t, ts.URL+"/api/move", map[string]string{"from": "g1", "to": "f3"}, nil); code != http.StatusOK {
		t.Fatal(code)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if len(state.History) != 1 || state.History[0] != "g1f3" {
		t.Error(state.History)
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "state" {
		t.Error(msg.Type)
	}
}
