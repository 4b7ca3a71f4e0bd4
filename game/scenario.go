package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/ecs/component"
	"github.com/milk9111/saiyanquest/prefabs"
)

const defaultTickRate = 30

// Frame is one simulated step of a scenario replay.
type Frame struct {
	Index  int
	Time   float64
	Events []ecs.Event
}

type scheduledInput struct {
	at    float64
	apply func(*Session)
}

func compileInputs(specs []prefabs.InputSpec) ([]scheduledInput, error) {
	out := make([]scheduledInput, 0, len(specs))
	for i, in := range specs {
		var apply func(*Session)
		switch {
		case in.Press != "":
			a, err := component.ParseAction(in.Press)
			if err != nil {
				return nil, fmt.Errorf("game: input %d: %w", i, err)
			}
			apply = func(s *Session) { s.Press(a) }
		case in.Move != "":
			d, err := component.ParseDirection(in.Move)
			if err != nil {
				return nil, fmt.Errorf("game: input %d: %w", i, err)
			}
			apply = func(s *Session) { s.Move(d) }
		case in.Stop:
			apply = (*Session).Stop
		default:
			return nil, fmt.Errorf("game: input %d: %w: no press, move or stop", i, prefabs.ErrInvalidValue)
		}
		out = append(out, scheduledInput{at: in.At, apply: apply})
	}
	slices.SortStableFunc(out, func(a, b scheduledInput) int { return cmp.Compare(a.at, b.at) })
	return out, nil
}

// Replay drives s through the scenario's timed inputs at its tick rate for
// its duration. Inputs due at or before a frame's start are applied before
// that frame is stepped. onFrame may be nil.
func Replay(s *Session, spec *prefabs.ScenarioSpec, onFrame func(Frame)) error {
	inputs, err := compileInputs(spec.Inputs)
	if err != nil {
		return err
	}
	rate := spec.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}
	if spec.Duration <= 0 {
		return fmt.Errorf("game: scenario %s: %w: duration must be positive", spec.Name, prefabs.ErrInvalidValue)
	}

	dt := 1.0 / float64(rate)
	frames := int(spec.Duration*float64(rate) + 0.5)
	next := 0
	for i := 0; i < frames; i++ {
		t := float64(i) * dt
		for next < len(inputs) && inputs[next].at <= t+1e-9 {
			inputs[next].apply(s)
			next++
		}
		evts := s.Step(dt)
		if onFrame != nil {
			onFrame(Frame{Index: i, Time: s.Time(), Events: evts})
		}
	}
	return nil
}
