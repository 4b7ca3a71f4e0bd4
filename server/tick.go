package server

import "time"

// TicksPerSecond is the default simulation rate of a room.
const TicksPerSecond = 30

// Start launches the room's tick loop. Further calls do nothing.
func (r *Room) Start() {
	r.startOnce.Do(func() {
		go r.run()
	})
}

func (r *Room) run() {
	defer close(r.done)

	interval := time.Second / time.Duration(r.tickRate)
	dt := 1.0 / float64(r.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info("room ticking")
	for {
		select {
		case <-r.stop:
			r.seal()
			r.processControl()
			r.closeClients()
			r.log.Info("room stopped")
			return
		case <-ticker.C:
			// inputs, then simulate, then broadcast
			start := time.Now()
			r.processControl()
			r.processInputs()
			evts := r.session.Step(dt)
			r.broadcast(evts)
			r.metrics.AddTick(time.Since(start).Nanoseconds())
		}
	}
}
