package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rummy-service/internal/api"
	"rummy-service/internal/config"
	"rummy-service/internal/service"
	"rummy-service/internal/ws"
	"rummy-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Simulation.TargetScore = 30

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.RegisterRoutes(r, service.NewContainer(cfg, nil), apiKey)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, header map[string]string) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Body
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	data, _ := resp.Data.(map[string]interface{})
	return w.Code, data
}

func TestPing(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected ping response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestOrganizeEndpoint(t *testing.T) {
	r := newRouter(t, "")

	code, data := doJSON(t, r, http.MethodPost, "/rummy/v1/organize", gin.H{"hand": "AS 2S 3S 4S JS JC 9C"}, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if data["deadwood"] != float64(29) || data["meldCount"] != float64(4) {
		t.Fatalf("unexpected report %v", data)
	}

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing hand", gin.H{}, http.StatusBadRequest},
		{"bad card", gin.H{"hand": "AS XX"}, http.StatusBadRequest},
		{"duplicate card", gin.H{"hand": "AS AS"}, http.StatusBadRequest},
		{"too many cards", gin.H{"hand": "AS 2S 3S 4S 5S 6S 7S 8S 9S TS JS QS"}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _ := doJSON(t, r, http.MethodPost, "/rummy/v1/organize", tt.body, nil); code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, code)
			}
		})
	}
}

func TestAdviseEndpoint(t *testing.T) {
	r := newRouter(t, "")

	code, data := doJSON(t, r, http.MethodPost, "/rummy/v1/advise", gin.H{
		"hand":          "KD 8H 2C",
		"discards":      "8S 8C 9H",
		"opponentKnown": "6H 7H",
		"threshold":     0,
		"strategy":      "risk_aware",
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if data["recommended"] != "8H" || data["throw"] != "KD" {
		t.Fatalf("unexpected advice %v", data)
	}

	code, _ = doJSON(t, r, http.MethodPost, "/rummy/v1/advise", gin.H{"hand": "AS 2S", "discards": "2S"}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for a card in two places, got %d", code)
	}
	code, _ = doJSON(t, r, http.MethodPost, "/rummy/v1/advise", gin.H{"hand": "AS", "threshold": 11}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for threshold 11, got %d", code)
	}
}

func TestSimulateEndpoint(t *testing.T) {
	r := newRouter(t, "secret")
	body := gin.H{"matches": 2, "seed": 9, "workers": 2}

	if code, _ := doJSON(t, r, http.MethodPost, "/rummy/v1/simulate", body, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without the api key, got %d", code)
	}

	auth := map[string]string{"Authorization": "Bearer secret"}
	code, data := doJSON(t, r, http.MethodPost, "/rummy/v1/simulate", body, auth)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if data["matches"] != float64(2) {
		t.Fatalf("unexpected summary %v", data)
	}

	code, _ = doJSON(t, r, http.MethodPost, "/rummy/v1/simulate", gin.H{"matches": 1, "strategy": "reckless"}, auth)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown strategy, got %d", code)
	}
}

func TestRoundStream(t *testing.T) {
	srv := httptest.NewServer(newRouter(t, ""))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/round?seed=5"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var messages []ws.OutgoingMessage
	for {
		var msg ws.OutgoingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		messages = append(messages, msg)
		if msg.Type != ws.MessageEvent {
			break
		}
	}

	if len(messages) < 2 {
		t.Fatalf("expected events and a final message, got %d messages", len(messages))
	}
	first, _ := messages[0].Data.(map[string]interface{})
	if messages[0].Type != ws.MessageEvent || first["type"] != "deal" {
		t.Fatalf("stream should open with the deal, got %+v", messages[0])
	}
	last := messages[len(messages)-1]
	if last.Type != ws.MessageResult && last.Type != ws.MessageError {
		t.Fatalf("stream should close with the outcome, got %+v", last)
	}
	for i, msg := range messages {
		if msg.Seq != i+1 {
			t.Fatalf("message %d has seq %d", i, msg.Seq)
		}
	}
}

func TestRoundStreamRejectsBadSeed(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/round?seed=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
