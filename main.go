package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/saiyanquest/game"
	"github.com/milk9111/saiyanquest/logging"
	"github.com/milk9111/saiyanquest/prefabs"
	"github.com/milk9111/saiyanquest/server"
)

// tables is the balance and spawn list new rooms start from. Reloads
// replace it as a whole.
type tables struct {
	mu       sync.RWMutex
	balance  *prefabs.Balance
	spawns   []prefabs.Spawn
	scenario string
}

func (t *tables) load() error {
	b, err := prefabs.LoadBalance()
	if err != nil {
		return err
	}
	sc, err := prefabs.LoadScenarioSpec(t.scenario)
	if err != nil {
		return err
	}
	spawns, err := sc.ResolveSpawns(b)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.balance = b
	t.spawns = spawns
	t.mu.Unlock()
	return nil
}

func (t *tables) current() (*prefabs.Balance, []prefabs.Spawn) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balance, t.spawns
}

func main() {
	addr := flag.String("addr", ":8080", "server listen address, e.g. :8080")
	logFile := flag.String("log", "saiyanquest.log", "rotating log file (empty for stderr only)")
	debug := flag.Bool("debug", false, "log combat outcomes at debug level")
	prefabDir := flag.String("prefabs", "prefabs", "directory whose files override the embedded prefabs")
	watch := flag.Bool("watch", false, "reload balance tables and behavior scripts when files under -prefabs change")
	scenario := flag.String("scenario", prefabs.ScenarioFile, "scenario whose spawns populate new rooms")
	flag.Parse()

	log := logging.New(logging.Options{File: *logFile, Debug: *debug, Stderr: true})
	defer func() { _ = log.Sync() }()

	prefabs.SetDiskDir(*prefabDir)
	tbl := &tables{scenario: *scenario}
	if err := tbl.load(); err != nil {
		log.Fatal("load prefabs", zap.Error(err))
	}

	rooms := server.NewManager(server.Config{
		Logger: log,
		NewSession: func(roomID string) (*game.Session, error) {
			b, spawns := tbl.current()
			return game.NewSession(game.Options{
				Balance: b,
				Spawns:  spawns,
				Logger:  log.With(zap.String("room", roomID)),
			})
		},
	})
	if _, err := rooms.GetOrCreateRoom("room-1"); err != nil {
		log.Fatal("create default room", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		w, err := prefabs.NewWatcher(watchDirs(*prefabDir)...)
		if err != nil {
			log.Fatal("watch prefabs", zap.String("dir", *prefabDir), zap.Error(err))
		}
		defer w.Close()
		go hotReload(ctx, w, tbl, rooms, log)
	}

	srv := &http.Server{Addr: *addr, Handler: rooms.Handler()}
	go func() {
		log.Info("listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	rooms.Close()
}

func watchDirs(dir string) []string {
	dirs := []string{dir}
	scripts := filepath.Join(dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	return dirs
}

// hotReload re-reads the prefabs after every edit and pushes the new balance
// into live rooms. A broken edit is logged and the previous tables stay.
func hotReload(ctx context.Context, w *prefabs.Watcher, tbl *tables, rooms *server.Manager, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("prefab watcher", zap.Error(err))
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if err := tbl.load(); err != nil {
				log.Error("reload prefabs", zap.String("path", path), zap.Error(err))
				continue
			}
			b, _ := tbl.current()
			if err := rooms.ApplyBalance(ctx, b); err != nil {
				log.Error("apply balance", zap.Error(err))
				continue
			}
			log.Info("prefabs reloaded", zap.String("path", path), zap.Strings("rooms", rooms.Rooms()))
		}
	}
}
