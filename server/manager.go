package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/game"
	"github.com/milk9111/saiyanquest/prefabs"
)

var ErrManagerClosed = errors.New("server: manager closed")

// SessionFactory builds the session for a new room.
type SessionFactory func(roomID string) (*game.Session, error)

type Config struct {
	TickRate   int
	NewSession SessionFactory
	Logger     *zap.Logger
}

// Manager owns the rooms of one server.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	closed bool

	cfg Config
	log *zap.Logger
}

func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NewSession == nil {
		cfg.NewSession = func(string) (*game.Session, error) {
			return game.NewSession(game.Options{Logger: cfg.Logger})
		}
	}
	return &Manager{
		rooms: make(map[string]*Room),
		cfg:   cfg,
		log:   cfg.Logger.Named("server"),
	}
}

// GetOrCreateRoom returns the room, creating and starting it on first use.
func (m *Manager) GetOrCreateRoom(id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	session, err := m.cfg.NewSession(id)
	if err != nil {
		return nil, fmt.Errorf("server: new session for %s: %w", id, err)
	}
	r := NewRoom(id, session, m.cfg.TickRate, m.cfg.Logger)
	m.rooms[id] = r
	r.Start()
	m.log.Info("room created", zap.String("room", id))
	return r, nil
}

func (m *Manager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Rooms lists the room ids in order.
func (m *Manager) Rooms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) snapshotRooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// ApplyBalance swaps the balance of every live room.
func (m *Manager) ApplyBalance(ctx context.Context, b *prefabs.Balance) error {
	var errs []error
	for _, r := range m.snapshotRooms() {
		err := r.Exec(ctx, func(s *game.Session) error {
			s.ApplyBalance(b)
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("room %s: %w", r.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Close stops every room. Later GetOrCreateRoom calls fail.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	for _, r := range rooms {
		r.Close()
	}
}
