package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/game"
)

var ErrRoomClosed = errors.New("server: room closed")

type op struct {
	fn     func(*game.Session) error
	result chan error
}

// Room hosts one session. The session is only touched from the tick
// goroutine; everything else reaches it through channels.
type Room struct {
	ID      string
	session *game.Session
	log     *zap.Logger
	metrics *RoomMetrics

	clients map[*Client]struct{}

	inputChan chan Input
	joinChan  chan *Client
	leaveChan chan *Client
	opChan    chan op

	tickRate  int
	joinMu    sync.RWMutex
	sealed    bool
	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewRoom(id string, session *game.Session, tickRate int, log *zap.Logger) *Room {
	if tickRate <= 0 {
		tickRate = TicksPerSecond
	}
	return &Room{
		ID:        id,
		session:   session,
		log:       log.Named("room").With(zap.String("room", id)),
		metrics:   &RoomMetrics{},
		clients:   make(map[*Client]struct{}),
		inputChan: make(chan Input, 256),
		joinChan:  make(chan *Client, 16),
		leaveChan: make(chan *Client, 64),
		opChan:    make(chan op, 16),
		tickRate:  tickRate,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *Room) Metrics() *RoomMetrics {
	return r.metrics
}

// OnInput queues an input for the next tick. A full queue drops it.
func (r *Room) OnInput(in Input) {
	select {
	case r.inputChan <- in:
		r.metrics.IncAccepted()
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// Exec runs fn against the session on the tick goroutine and waits for it.
func (r *Room) Exec(ctx context.Context, fn func(*game.Session) error) error {
	o := op{fn: fn, result: make(chan error, 1)}
	select {
	case r.opChan <- o:
	case <-r.done:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-o.result:
		return err
	case <-r.done:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// join hands c to the tick loop. It fails once the room is stopping; a
// client it accepts is either adopted or closed by the loop.
func (r *Room) join(c *Client) bool {
	r.joinMu.RLock()
	defer r.joinMu.RUnlock()
	if r.sealed {
		return false
	}
	select {
	case r.joinChan <- c:
		return true
	case <-r.stop:
		return false
	}
}

// seal refuses further joins and waits out the ones in flight.
func (r *Room) seal() {
	r.joinMu.Lock()
	r.sealed = true
	r.joinMu.Unlock()
}

func (r *Room) leave(c *Client) {
	select {
	case r.leaveChan <- c:
	case <-r.done:
	}
}

// processControl drains joins, leaves and queued operations without
// blocking.
func (r *Room) processControl() {
	for {
		select {
		case c := <-r.joinChan:
			r.clients[c] = struct{}{}
			r.metrics.SetClients(len(r.clients))
			r.log.Info("client joined", zap.String("client", c.id))
		case c := <-r.leaveChan:
			if _, ok := r.clients[c]; ok {
				delete(r.clients, c)
				c.Close()
				r.metrics.SetClients(len(r.clients))
				r.log.Info("client left", zap.String("client", c.id))
			}
		case o := <-r.opChan:
			o.result <- o.fn(r.session)
		default:
			return
		}
	}
}

func (r *Room) processInputs() {
	for {
		select {
		case in := <-r.inputChan:
			in.apply(r.session)
		default:
			return
		}
	}
}

type stateMessage struct {
	Type  string        `json:"type"`
	Room  string        `json:"room"`
	State game.Snapshot `json:"state"`
}

type eventMessage struct {
	Type string `json:"type"`
	game.EventView
}

// broadcast sends every event raised this tick followed by the new state.
func (r *Room) broadcast(evts []ecs.Event) {
	if len(r.clients) == 0 {
		return
	}
	for _, view := range game.EventViews(evts) {
		b, err := json.Marshal(eventMessage{Type: "event", EventView: view})
		if err != nil {
			r.log.Error("encode event", zap.String("event", string(view.Type)), zap.Error(err))
			continue
		}
		r.send(b)
	}
	b, err := json.Marshal(stateMessage{Type: "state", Room: r.ID, State: r.session.Snapshot()})
	if err != nil {
		r.log.Error("encode state", zap.Error(err))
		return
	}
	r.send(b)
}

func (r *Room) send(b []byte) {
	for c := range r.clients {
		if !c.Enqueue(b) {
			r.metrics.IncSendDropped()
		}
	}
}

func (r *Room) closeClients() {
	for c := range r.clients {
		c.Close()
		delete(r.clients, c)
	}
	r.metrics.SetClients(0)
}

// Close stops the tick loop and disconnects every client.
func (r *Room) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	// A room that never started is drained here instead of by its loop.
	r.startOnce.Do(func() {
		r.seal()
		r.processControl()
		r.closeClients()
		close(r.done)
	})
	<-r.done
}
