package websocket

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/esimov/ascii-particles/app"
	particle "github.com/esimov/ascii-particles/particle-system"
)

func TestMessageEvent(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		want    particle.EventKind
		wantErr bool
	}{
		{"Down", Message{Type: "down", X: 1, Y: 2}, particle.EventPointerDown, false},
		{"Move", Message{Type: "move", X: 1, Y: 2}, particle.EventPointerMove, false},
		{"Up", Message{Type: "up"}, particle.EventPointerUp, false},
		{"Resize", Message{Type: "resize", Width: 640, Height: 480}, particle.EventResize, false},
		{"Empty resize", Message{Type: "resize"}, 0, true},
		{"Unknown", Message{Type: "wheel"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := tt.msg.Event()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && ev.Kind != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, ev.Kind)
			}
		})
	}
}

func TestRecorderFlush(t *testing.T) {
	r := NewRecorder(100, 50)
	s := particle.NewSystem(100, 50, 10, particle.WithRand(rand.New(rand.NewSource(1))))
	s.Insert(&particle.Particle{X: 10, Y: 20, Radius: 2, Color: particle.Color{R: 255, A: 1}})
	s.Render(r)

	f := r.Flush(100, 50)
	if f.Type != "frame" || f.Width != 100 || f.Height != 50 {
		t.Errorf("Unexpected frame header: %+v", f)
	}
	if len(f.Ops) != 2 {
		t.Fatalf("Expected 2 ops, got %d", len(f.Ops))
	}
	if f.Ops[0].Op != "rect" || f.Ops[0].Color != "rgba(17, 17, 17, 0.2)" {
		t.Errorf("Expected the trail fill first, got %+v", f.Ops[0])
	}
	if f.Ops[1].Op != "circle" || f.Ops[1].X != 10 || f.Ops[1].R != 2 || f.Ops[1].Color != "rgba(255, 0, 0, 1)" {
		t.Errorf("Unexpected particle op: %+v", f.Ops[1])
	}
	if next := r.Flush(100, 50); len(next.Ops) != 0 {
		t.Errorf("Expected the recorder to be reset, got %d ops", len(next.Ops))
	}
}

func newTestServer(t *testing.T) (*Server, *app.App, *httptest.Server) {
	t.Helper()
	rec := NewRecorder(800, 600)
	a := app.New(rec, app.Config{Capacity: 50},
		particle.WithRand(rand.New(rand.NewSource(1))),
		particle.WithSpawnChance(0),
	)
	srv := NewServer(HttpParams{Prefix: "/"}, a, rec)
	handler, err := srv.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return srv, a, ts
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServesClientPage(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "appCanvas") {
		t.Errorf("Expected the canvas client page")
	}
}

func TestSocketRoundTrip(t *testing.T) {
	srv, a, ts := newTestServer(t)
	target := &particle.Particle{X: 100, Y: 100, Radius: 1}
	a.System.Insert(target)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, "client registration", func() bool { return srv.Clients() == 1 })

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []Message{
		{Type: "down", X: 90, Y: 100},
		{Type: "move", X: 100, Y: 100},
	} {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
	}

	// Only this goroutine runs frames, so the system is not shared with Run.
	waitFor(t, "pointer events", func() bool {
		a.Frame()
		return target.Vx > 0
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if f.Type != "frame" || f.Width != 800 || f.Height != 600 {
		t.Errorf("Unexpected frame header: %+v", f)
	}
	if len(f.Ops) != 2 || f.Ops[0].Op != "rect" || f.Ops[1].Op != "circle" {
		t.Errorf("Expected a trail fill and one particle, got %+v", f.Ops)
	}

	conn.Close()
	waitFor(t, "client removal", func() bool { return srv.Clients() == 0 })
}

func TestSocketSkipsMalformedMessages(t *testing.T) {
	srv, a, ts := newTestServer(t)
	target := &particle.Particle{X: 100, Y: 100, Radius: 1}
	a.System.Insert(target)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, "client registration", func() bool { return srv.Clients() == 1 })

	for _, raw := range []string{`{"type":"move"`, ``, `{"type":"down","x":"left"}`, `{"type":"wheel"}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
			t.Fatalf("Writing %q: %v", raw, err)
		}
	}
	for _, msg := range []Message{
		{Type: "down", X: 90, Y: 100},
		{Type: "move", X: 100, Y: 100},
	} {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
	}

	// Messages are read in order, so the push lands only after every bad one was handled.
	waitFor(t, "pointer events after malformed input", func() bool {
		a.Frame()
		return target.Vx > 0
	})
	if srv.Clients() != 1 {
		t.Errorf("Expected the client to stay connected, got %d clients", srv.Clients())
	}
}

func TestFrameJSONShape(t *testing.T) {
	data, err := json.Marshal(Frame{Type: "frame", Width: 1, Height: 2, Ops: []Op{{Op: "circle", X: 1, Y: 1, R: 3, Color: "red"}}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"frame","width":1,"height":2,"ops":[{"op":"circle","x":1,"y":1,"r":3,"color":"red"}]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}
