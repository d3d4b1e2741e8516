package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/voidbinder/binder-services/internal/comm"
)

// Ws keeps the registry of connected dashboard clients and fans
// collection events out to all of them.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// ConnectionCount reports how many clients are registered.
func (s *Ws) ConnectionCount() int {
	count := 0
	s.connMap.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// Broadcast pushes one event payload to every connected client. A failed
// write drops that client from the registry.
func (s *Ws) Broadcast(payload []byte) {
	s.connMap.Range(func(key, value interface{}) bool {
		conn := value.(*websocket.Conn)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("dropping feed client %v: %v", key, err)
			conn.Close()
			s.connMap.Delete(key)
		}
		return true
	})
}

// Subscribe wires the NATS collection event subject into the broadcast.
// Writes to all clients happen on the single subscription goroutine, so
// no per-connection write lock is needed.
func (s *Ws) Subscribe(nc *nats.Conn, subject string) (*nats.Subscription, error) {
	return nc.Subscribe(subject, func(m *nats.Msg) {
		event := &comm.CollectionEvent{}
		if err := json.Unmarshal(m.Data, event); err != nil {
			log.Errorf("Error: malformed collection event %s", err)
			return
		}

		log.Debugf("broadcasting %s event", event.Type)
		s.Broadcast(m.Data)
	})
}
