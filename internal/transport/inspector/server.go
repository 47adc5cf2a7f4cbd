// Package inspector serves a generated test world for inspection: it pushes
// the generation report on connect and answers region and entity queries.
// The world must not be mutated while the inspector is serving it.
package inspector

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"plotworld/internal/geom"
	"plotworld/internal/sim/world"
	"plotworld/internal/testworld"
)

// maxRegionVolume caps a single region query so one request cannot ask for
// half the world.
const maxRegionVolume = 64 * 64 * 16

type Server struct {
	world  *world.World
	report *testworld.Report
	log    *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, rep *testworld.Report, logger *log.Logger) *Server {
	return &Server{
		world:  w,
		report: rep,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev tool
		},
	}
}

type request struct {
	Type string `json:"type"`
	Min  [3]int `json:"min"`
	Max  [3]int `json:"max"`
}

type regionResp struct {
	Type   string   `json:"type"`
	Min    [3]int   `json:"min"`
	Max    [3]int   `json:"max"`
	Blocks []string `json:"blocks"` // x fastest, then z, then y
}

type entityResp struct {
	Type     string        `json:"type"`
	Entities []entityEntry `json:"entities"`
}

type entityEntry struct {
	ID   string   `json:"id"`
	Kind string   `json:"kind"`
	Pos  [3]int   `json:"pos"`
	Text []string `json:"text,omitempty"`
}

type errorResp struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if err := s.write(conn, map[string]any{"type": "REPORT", "report": s.report}); err != nil {
			return
		}

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req request
			if err := json.Unmarshal(msg, &req); err != nil {
				_ = s.write(conn, errorResp{Type: "ERROR", Error: "bad request"})
				continue
			}
			var resp any
			switch req.Type {
			case "REGION":
				resp = s.region(req)
			case "ENTITIES":
				resp = s.entities()
			default:
				resp = errorResp{Type: "ERROR", Error: "unknown request type"}
			}
			if err := s.write(conn, resp); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		if s.log != nil {
			s.log.Printf("inspector: write: %v", err)
		}
		return err
	}
	return nil
}

func (s *Server) region(req request) any {
	for i := 0; i < 3; i++ {
		if req.Min[i] > req.Max[i] {
			return errorResp{Type: "ERROR", Error: "min exceeds max"}
		}
	}
	vol := (req.Max[0] - req.Min[0] + 1) * (req.Max[1] - req.Min[1] + 1) * (req.Max[2] - req.Min[2] + 1)
	if vol > maxRegionVolume {
		return errorResp{Type: "ERROR", Error: "region too large"}
	}

	blocks := make([]string, 0, vol)
	for y := req.Min[1]; y <= req.Max[1]; y++ {
		for z := req.Min[2]; z <= req.Max[2]; z++ {
			for x := req.Min[0]; x <= req.Max[0]; x++ {
				b := s.world.GetBlock(geom.Vec3i{X: x, Y: y, Z: z})
				blocks = append(blocks, s.world.BlockName(b))
			}
		}
	}
	return regionResp{Type: "REGION", Min: req.Min, Max: req.Max, Blocks: blocks}
}

func (s *Server) entities() any {
	all := s.world.Entities()
	out := make([]entityEntry, 0, len(all))
	for _, e := range all {
		out = append(out, entityEntry{ID: e.ID, Kind: e.Kind, Pos: e.Pos.ToArray(), Text: e.Text})
	}
	return entityResp{Type: "ENTITIES", Entities: out}
}
