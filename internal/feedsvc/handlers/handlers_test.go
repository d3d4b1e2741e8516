package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"

	"github.com/voidbinder/binder-services/internal/feedsvc/ws"
)

func newFeedRouter() (*chi.Mux, *ws.Ws) {
	s := ws.NewWs()
	r := chi.NewRouter()
	SetRoutes(r, s)
	return r, s
}

func TestFeedBroadcastEndToEnd(t *testing.T) {
	r, s := newFeedRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/feed"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	// Registration happens on the upgrade goroutine; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for s.ConnectionCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.ConnectionCount() == 0 {
		t.Fatal("client never registered")
	}

	payload := `{"type":"ingested","data":{"persisted":1}}`
	s.Broadcast([]byte(payload))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != payload {
		t.Errorf("received %q, want %q", got, payload)
	}
}

func TestHandleWebSocketBadHandshake(t *testing.T) {
	r, _ := newFeedRouter()

	// A plain GET carries no upgrade headers; gorilla answers it alone
	// and the handler must not reply a second time.
	req := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Failed to upgrade") {
		t.Errorf("handler wrote its own error on top of the upgrader's: %q", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r, _ := newFeedRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
