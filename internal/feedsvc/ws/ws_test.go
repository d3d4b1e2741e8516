package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newFeedServer upgrades every request and hands the server side of each
// connection back through the channel, in dial order.
func newFeedServer(t *testing.T) (*httptest.Server, chan *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	connCh := make(chan *websocket.Conn, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)
	return srv, connCh
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func readPayload(t *testing.T, client *websocket.Conn) string {
	t.Helper()
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(payload)
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	srv, connCh := newFeedServer(t)
	s := NewWs()

	clientA := dial(t, srv)
	s.StoreConnection("a", <-connCh)
	clientB := dial(t, srv)
	s.StoreConnection("b", <-connCh)

	payload := `{"type":"ingested","data":{"persisted":2}}`
	s.Broadcast([]byte(payload))

	if got := readPayload(t, clientA); got != payload {
		t.Errorf("client a received %q, want %q", got, payload)
	}
	if got := readPayload(t, clientB); got != payload {
		t.Errorf("client b received %q, want %q", got, payload)
	}
}

func TestBroadcastEvictsDeadClients(t *testing.T) {
	srv, connCh := newFeedServer(t)
	s := NewWs()

	clientA := dial(t, srv)
	s.StoreConnection("a", <-connCh)
	dial(t, srv)
	dead := <-connCh
	s.StoreConnection("b", dead)

	// Kill b's server side; the next broadcast's write must fail and
	// drop it from the registry.
	dead.Close()

	s.Broadcast([]byte(`{"type":"card_deleted"}`))

	if _, ok := s.GetConnection("a"); !ok {
		t.Error("healthy client must stay registered")
	}
	if _, ok := s.GetConnection("b"); ok {
		t.Error("client with a failed write must be evicted")
	}
	if got := readPayload(t, clientA); got == "" {
		t.Error("healthy client must still receive the broadcast")
	}
}

func TestDisconnectRemovesConnection(t *testing.T) {
	srv, connCh := newFeedServer(t)
	s := NewWs()

	dial(t, srv)
	s.StoreConnection("a", <-connCh)

	if _, ok := s.GetConnection("a"); !ok {
		t.Fatal("connection should be registered")
	}
	s.HandleDisconnect("a")
	if _, ok := s.GetConnection("a"); ok {
		t.Error("connection should be gone after disconnect")
	}
}
