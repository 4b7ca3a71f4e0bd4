package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/ecs"
	"github.com/milk9111/saiyanquest/game"
	"github.com/milk9111/saiyanquest/logging"
	"github.com/milk9111/saiyanquest/prefabs"
)

func main() {
	scenario := flag.String("scenario", prefabs.ScenarioFile, "scenario file: a prefab name or a path on disk")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
	debug := flag.Bool("debug", false, "log combat outcomes to stderr")
	quiet := flag.Bool("quiet", false, "print only the final state")
	flag.Parse()

	log := logging.New(logging.Options{Debug: *debug, Stderr: *debug})
	defer func() { _ = log.Sync() }()
	prefabs.SetDiskDir(*prefabDir)

	if err := run(*scenario, *quiet, log); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func loadScenario(name string) (*prefabs.ScenarioSpec, error) {
	if data, err := os.ReadFile(name); err == nil {
		return prefabs.ParseScenarioSpec(data)
	}
	return prefabs.LoadScenarioSpec(name)
}

func run(name string, quiet bool, log *zap.Logger) error {
	spec, err := loadScenario(name)
	if err != nil {
		return err
	}
	b, err := prefabs.LoadBalance()
	if err != nil {
		return err
	}
	spawns, err := spec.ResolveSpawns(b)
	if err != nil {
		return err
	}
	s, err := game.NewSession(game.Options{Balance: b, Spawns: spawns, Logger: log})
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d spawns, %.1fs\n", spec.Name, len(spawns), spec.Duration)
	tally := map[ecs.EventType]int{}
	err = game.Replay(s, spec, func(f game.Frame) {
		for _, evt := range f.Events {
			tally[evt.Type]++
			if !quiet {
				fmt.Printf("%7.3fs  %-16s entity=%-12s %v\n", f.Time, evt.Type, evt.Entity, evt.Data)
			}
		}
	})
	if err != nil {
		return err
	}

	for _, typ := range []ecs.EventType{
		ecs.EventAttackFired, ecs.EventAttackRejected, ecs.EventEnemyHit, ecs.EventEnemyDefeated,
		ecs.EventPlayerHit, ecs.EventPlayerDefeated, ecs.EventLevelUp, ecs.EventRespawned,
	} {
		fmt.Printf("%-16s %d\n", typ, tally[typ])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Snapshot())
}
