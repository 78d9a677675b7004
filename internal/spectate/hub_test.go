package spectate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seolfor/cryptward/internal/tactics"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.zones == nil {
		t.Error("zones map is nil")
	}
	if hub.broadcast == nil {
		t.Error("broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("unregister channel is nil")
	}
}

func TestHubRegisterViewer(t *testing.T) {
	hub := NewHub()
	v := &Viewer{hub: hub, zone: "crypt-1", send: make(chan []byte, 256)}

	hub.registerViewer(v)

	if !hub.zones["crypt-1"][v] {
		t.Error("viewer was not registered in its zone")
	}
	if len(hub.zones["crypt-1"]) != 1 {
		t.Errorf("expected 1 viewer in zone, got %d", len(hub.zones["crypt-1"]))
	}
}

func TestHubUnregisterLastViewerDropsZone(t *testing.T) {
	hub := NewHub()
	v := &Viewer{hub: hub, zone: "crypt-1", send: make(chan []byte, 256)}

	hub.registerViewer(v)
	hub.unregisterViewer(v)

	if _, exists := hub.zones["crypt-1"]; exists {
		t.Error("zone entry should be dropped once its last viewer leaves")
	}
}

func TestHubMultipleViewersPerZone(t *testing.T) {
	hub := NewHub()
	v1 := &Viewer{hub: hub, zone: "crypt-2", send: make(chan []byte, 256)}
	v2 := &Viewer{hub: hub, zone: "crypt-2", send: make(chan []byte, 256)}

	hub.registerViewer(v1)
	hub.registerViewer(v2)
	if len(hub.zones["crypt-2"]) != 2 {
		t.Errorf("expected 2 viewers, got %d", len(hub.zones["crypt-2"]))
	}

	hub.unregisterViewer(v1)
	if len(hub.zones["crypt-2"]) != 1 {
		t.Errorf("expected 1 remaining viewer, got %d", len(hub.zones["crypt-2"]))
	}
	if !hub.zones["crypt-2"][v2] {
		t.Error("the remaining viewer should still be registered")
	}
}

func TestHubBroadcastFrameReachesViewer(t *testing.T) {
	hub := NewHub()
	v := &Viewer{hub: hub, zone: "crypt-3", send: make(chan []byte, 256)}
	hub.registerViewer(v)

	report := &tactics.TurnReport{
		Turn:   4,
		Player: tactics.Position{X: 5, Y: 3},
	}
	hub.broadcastFrame(&Frame{Zone: "crypt-3", Report: report, Event: "turn"})

	select {
	case data := <-v.send:
		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if frame.Zone != "crypt-3" || frame.Event != "turn" {
			t.Errorf("bad frame header: %+v", frame)
		}
		if frame.Report == nil || frame.Report.Turn != 4 {
			t.Error("turn report not transmitted intact")
		}
		if frame.Report.Player != (tactics.Position{X: 5, Y: 3}) {
			t.Error("player position not transmitted intact")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no frame received within timeout")
	}
}

func TestHubBroadcastIgnoresEmptyZone(t *testing.T) {
	hub := NewHub()
	// Must not panic or block with zero viewers.
	hub.broadcastFrame(&Frame{Zone: "empty", Event: "turn"})
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zone := r.URL.Query().Get("zone")
		if zone == "" {
			zone = "default"
		}
		hub.ServeWS(w, r, zone)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?zone=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)
	if len(hub.zones["ws-test"]) != 1 {
		t.Errorf("expected 1 viewer after dial, got %d", len(hub.zones["ws-test"]))
	}

	conn.Close()
	time.Sleep(50 * time.Millisecond)
	if _, exists := hub.zones["ws-test"]; exists {
		t.Error("zone should be cleaned up after the connection closes")
	}
}

func TestWebSocketReceivesTurnReport(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("zone"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?zone=report-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	report := &tactics.TurnReport{
		Turn:   9,
		Player: tactics.Position{X: 2, Y: 7},
		Frozen: true,
	}
	hub.BroadcastReport("report-test", report)

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Zone != "report-test" || frame.Event != "turn" {
		t.Errorf("bad frame header: %+v", frame)
	}
	if frame.Report == nil || frame.Report.Turn != 9 || !frame.Report.Frozen {
		t.Error("turn report not received intact")
	}
}
