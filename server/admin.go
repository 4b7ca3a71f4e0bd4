package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/game"
	"github.com/milk9111/saiyanquest/prefabs"
)

const defaultRoom = "room-1"

func roomParam(r *http.Request) string {
	if id := r.URL.Query().Get("room"); id != "" {
		return id
	}
	return defaultRoom
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handler routes the websocket, metrics, admin and health endpoints.
func (m *Manager) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleWS)
	mux.HandleFunc("/metrics", m.HandleMetrics)
	mux.HandleFunc("/admin/spawn", m.HandleAdminSpawn)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// HandleMetrics reports a room's counters.
// GET /metrics?room=room-1
func (m *Manager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := roomParam(r)
	room, ok := m.Room(roomID)
	if !ok {
		http.Error(w, "unknown room", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room":    roomID,
		"metrics": room.Metrics().Snapshot(),
	})
}

// HandleAdminSpawn places an enemy with its table defaults.
// POST /admin/spawn?room=room-1&archetype=wolf&x=3&z=-2
func (m *Manager) HandleAdminSpawn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	arch, err := component.ParseArchetype(q.Get("archetype"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	at, err := parsePoint(q.Get("x"), q.Get("z"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := m.GetOrCreateRoom(roomParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var spawned ecs.Entity
	err = room.Exec(r.Context(), func(s *game.Session) error {
		e, err := s.SpawnArchetype(arch, at)
		spawned = e
		return err
	})
	switch {
	case errors.Is(err, prefabs.ErrUnknownArchetype):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		m.log.Error("admin spawn", zap.String("room", room.ID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	m.log.Info("admin spawn",
		zap.String("room", room.ID),
		zap.Stringer("archetype", arch),
		zap.Float64("x", at.X),
		zap.Float64("z", at.Y))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entity": spawned})
}

func parsePoint(xs, zs string) (cp.Vector, error) {
	var v cp.Vector
	var err error
	if xs != "" {
		if v.X, err = strconv.ParseFloat(xs, 64); err != nil {
			return cp.Vector{}, err
		}
	}
	if zs != "" {
		if v.Y, err = strconv.ParseFloat(zs, 64); err != nil {
			return cp.Vector{}, err
		}
	}
	return v, nil
}
