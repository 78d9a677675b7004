// Package spectate streams turn reports to live viewers over WebSocket.
// Viewers are read-only: the connection exists so a browser overlay or a
// second screen can watch a crypt run turn by turn.
package spectate

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seolfor/cryptward/internal/tactics"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Viewers send nothing but
	// control frames, so this stays small.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Frame is one WebSocket payload: a turn report or a bare lifecycle event
// for the named zone.
type Frame struct {
	Zone   string              `json:"zone"`
	Report *tactics.TurnReport `json:"report,omitempty"`
	Event  string              `json:"event,omitempty"`
	Data   interface{}         `json:"data,omitempty"`
}

// Viewer is one connected spectator.
type Viewer struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	zone string
}

// Hub maintains the set of connected viewers per zone and fans frames out
// to them.
type Hub struct {
	// Connected viewers by zone name
	zones map[string]map[*Viewer]bool

	// Outbound frames awaiting fan-out
	broadcast chan *Frame

	// Register requests from viewers
	register chan *Viewer

	// Unregister requests from viewers
	unregister chan *Viewer
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		zones:      make(map[string]map[*Viewer]bool),
		broadcast:  make(chan *Frame),
		register:   make(chan *Viewer),
		unregister: make(chan *Viewer),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case v := <-h.register:
			h.registerViewer(v)

		case v := <-h.unregister:
			h.unregisterViewer(v)

		case frame := <-h.broadcast:
			h.broadcastFrame(frame)
		}
	}
}

// ServeWS upgrades an HTTP request into a spectator connection on the
// given zone.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, zone string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	v := &Viewer{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		zone: zone,
	}

	v.hub.register <- v

	go v.writePump()
	go v.readPump()
}

// BroadcastReport sends a finished turn's report to every viewer of the
// zone. Safe to call from the turn loop; marshaling happens here, fan-out
// happens on the hub goroutine.
func (h *Hub) BroadcastReport(zone string, report *tactics.TurnReport) {
	h.broadcast <- &Frame{
		Zone:   zone,
		Report: report,
		Event:  "turn",
	}
}

// BroadcastEvent sends a bare lifecycle event (zone entered, zone cleared)
// to every viewer of the zone.
func (h *Hub) BroadcastEvent(zone string, event string, data interface{}) {
	h.broadcast <- &Frame{
		Zone:  zone,
		Event: event,
		Data:  data,
	}
}

// registerViewer adds a viewer to its zone.
func (h *Hub) registerViewer(v *Viewer) {
	if h.zones[v.zone] == nil {
		h.zones[v.zone] = make(map[*Viewer]bool)
	}
	h.zones[v.zone][v] = true

	log.Printf("Viewer joined zone %s (total viewers: %d)", v.zone, len(h.zones[v.zone]))
}

// unregisterViewer removes a viewer and drops its zone entry once empty.
func (h *Hub) unregisterViewer(v *Viewer) {
	viewers, ok := h.zones[v.zone]
	if !ok {
		return
	}
	if _, ok := viewers[v]; !ok {
		return
	}
	delete(viewers, v)
	close(v.send)

	if len(viewers) == 0 {
		delete(h.zones, v.zone)
	}

	log.Printf("Viewer left zone %s (remaining viewers: %d)", v.zone, len(viewers))
}

// broadcastFrame fans one frame out to the zone's viewers. A viewer whose
// send buffer is full is dropped rather than allowed to stall the turn loop.
func (h *Hub) broadcastFrame(frame *Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("Failed to marshal spectate frame: %v", err)
		return
	}

	viewers, ok := h.zones[frame.Zone]
	if !ok {
		return
	}
	for v := range viewers {
		select {
		case v.send <- data:
		default:
			h.unregisterViewer(v)
		}
	}
}

// readPump drains the connection. Spectators are read-only, so inbound
// frames only serve to detect disconnects and answer pings.
func (v *Viewer) readPump() {
	defer func() {
		v.hub.unregister <- v
		v.conn.Close()
	}()

	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pushes queued frames and keepalive pings to the connection.
func (v *Viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case data, ok := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := v.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Coalesce any queued frames into the same write
			n := len(v.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-v.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
