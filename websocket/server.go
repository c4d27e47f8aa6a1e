package websocket

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/esimov/ascii-particles/app"
)

// MaxClients caps the number of simultaneously connected browsers.
const MaxClients = 16

const (
	sendBuffer   = 4
	writeTimeout = 5 * time.Second
)

//go:embed static
var static embed.FS

type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server streams the frames of an App to browsers and feeds their pointer input back into it.
type Server struct {
	params   HttpParams
	app      *app.App
	recorder *Recorder

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a server for a, whose surface must be recorder.
func NewServer(p HttpParams, a *app.App, recorder *Recorder) *Server {
	s := &Server{
		params:   p,
		app:      a,
		recorder: recorder,
		clients:  make(map[*client]struct{}),
	}
	a.OnFrame = s.broadcastFrame

	return s
}

// Handler returns the HTTP handler serving the client page and the /ws endpoint.
func (s *Server) Handler() (http.Handler, error) {
	var files http.FileSystem
	if s.params.Root != "" {
		root, err := filepath.Abs(s.params.Root)
		if err != nil {
			return nil, errors.Wrap(err, "resolving root")
		}
		files = http.Dir(root)
	} else {
		sub, err := fs.Sub(static, "static")
		if err != nil {
			return nil, errors.Wrap(err, "embedded client")
		}
		files = http.FS(sub)
	}
	prefix := s.params.Prefix
	if prefix == "" {
		prefix = "/"
	}

	mux := http.NewServeMux()
	mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(files)))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	}), nil
}

// ListenAndServe runs the frame loop and the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: s.params.Address, Handler: handler}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := s.app.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("frame loop stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("serving %s on %s", s.params.Prefix, s.params.Address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server")
	}
	return nil
}

// Clients returns the number of connected browsers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.clients)
}

func (s *Server) broadcastFrame() {
	w, h := s.app.System.Bounds()
	data, err := json.Marshal(s.recorder.Flush(w, h))
	if err != nil {
		log.Printf("encoding frame: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("client %s is too slow, dropping frame", c.conn.RemoteAddr())
		}
	}
}

// wsHandler defines the websocket connection endpoint
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Println(err)
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		log.Println("max clients reached")
		conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log.Printf("client %s connected", conn.RemoteAddr())

	go writePump(c)

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.send)
		conn.Close()
		log.Printf("client %s disconnected", conn.RemoteAddr())
	}()
	s.readSocket(c)
}

// readSocket listen for new messages being sent to the websocket
func (s *Server) readSocket(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("malformed message: %v", err)
			continue
		}
		ev, err := msg.Event()
		if err != nil {
			log.Printf("skipping message: %v", err)
			continue
		}
		if !s.app.Post(ev) {
			log.Printf("input queue full, dropping %v", ev.Kind)
		}
	}
}

func writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("write to %s failed: %v", c.conn.RemoteAddr(), err)
			c.conn.Close()
			return
		}
	}
}
