package display

import (
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/nullpilot/dmgcore/internal/ppu"
	"github.com/nullpilot/dmgcore/pkg/log"
)

// frameBytes is the size of one RGBA frame: 160*144*4, the same buffer
// size the teacher's web player streams per frame.
const frameBytes = ppu.ScreenWidth * ppu.ScreenHeight * 4

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: frameBytes,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Streamer broadcasts rendered frames to any number of connected
// websocket clients, skipping frames whose content hash matches the
// last one sent — a simplified version of the teacher's patch/frame
// cache in pkg/display/web/cache.go, without the brotli compression or
// per-client patch diffing.
type Streamer struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	lastHash  uint64
	hasSent   bool
	log       log.Logger
}

// NewStreamer returns a Streamer with no clients connected yet.
func NewStreamer(logger log.Logger) *Streamer {
	if logger == nil {
		logger = log.NewLeveled(log.LevelWarn)
	}
	return &Streamer{clients: make(map[*websocket.Conn]bool), log: logger}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection to receive future Broadcast frames.
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("websocket upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go s.readPump(conn)
}

// readPump discards client messages but notices disconnects, the same
// role the teacher's Client.readPump plays stripped of input handling:
// the stream accepts no joypad input, and no other HTTP endpoint does
// either.
func (s *Streamer) readPump(conn *websocket.Conn) {
	defer s.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Streamer) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Broadcast renders frame through pal and sends it to every connected
// client, unless it's byte-identical to the last frame sent.
func (s *Streamer) Broadcast(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal Palette) {
	buf := make([]byte, 0, frameBytes)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			c := pal.RGBA(frame[y][x])
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
	}

	hash := xxhash.Sum64(buf)
	s.mu.Lock()
	unchanged := s.hasSent && hash == s.lastHash
	s.lastHash = hash
	s.hasSent = true
	if unchanged {
		s.mu.Unlock()
		return
	}
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, conn := range clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			s.unregister(conn)
		}
	}
}

// Close disconnects every client.
func (s *Streamer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
}
