package eventstream

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Operators terminate TLS and same-origin policy in front of this
	// listener; this server is an internal progress feed, not a public API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingInterval = 15 * time.Second

// Server exposes a Broker's per-job channels over websocket, one connection
// per jobId query parameter, so a remote watcher UI can render the same
// onEvent checkpoints the in-process caller receives.
type Server struct {
	broker *Broker
}

func NewServer(broker *Broker) *Server {
	return &Server{broker: broker}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("jobId")
	if jobID == "" {
		http.Error(w, "missing jobId", http.StatusBadRequest)
		return
	}
	ch, ok := s.broker.Get(jobID)
	if !ok {
		http.Error(w, "unknown jobId", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("eventstream: upgrade failed for job %s: %v", jobID, err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, open := <-ch:
			if !open {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ListenAndServe starts the websocket event-stream server at addr (empty
// disables it; §6 "EventStreamAddr"). Blocks until the listener errors.
func (s *Server) ListenAndServe(addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/events", s)
	return http.ListenAndServe(addr, mux)
}
