// Command demo runs a population of wandering machines against a YAML
// machine definition, with structured logging, Prometheus metrics and live
// definition reload. Without -config it runs a built-in robot machine.
//
// Edit the watched file while the demo runs and the population restarts on
// the new definition; invalid edits are logged and ignored.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/comalice/pushfsm"
	"github.com/comalice/pushfsm/config"
	"github.com/comalice/pushfsm/graph"
	"github.com/comalice/pushfsm/logger"
	"github.com/comalice/pushfsm/metrics"
	"github.com/comalice/pushfsm/realtime"
)

const builtinMachine = `id: robot
states: [idle, patrol, charge]
transitions:
  - from: idle
    to: [patrol]
  - from: patrol
    to: [idle, charge]
  - from: charge
    to: [patrol]
`

var (
	configPath  = flag.String("config", "", "machine definition to load and watch; empty runs the built-in robot")
	metricsAddr = flag.String("metrics", ":9102", "address serving /metrics")
	logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
	population  = flag.Int("entities", 4, "number of entities to spawn")
	tickRate    = flag.Duration("tick-rate", 50*time.Millisecond, "loop tick interval")
)

func main() {
	flag.Parse()

	logger.Initialize(logger.Config{Level: *logLevel, Format: logger.FormatConsole})
	defer func() { _ = logger.Sync() }()
	log := logger.For("demo")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Infow("shutting down")
		cancel()
	}()

	server := metrics.SetupEndpoint(*metricsAddr, logger.For("metrics"))
	defer func() { _ = server.Close() }()
	log.Infow("metrics endpoint up", "addr", *metricsAddr)

	if *configPath == "" {
		cfg, err := config.Load(strings.NewReader(builtinMachine))
		if err != nil {
			log.Fatalw("built-in machine rejected", "error", err)
		}
		runMachine(ctx, cfg)
		return
	}

	watcher := config.NewWatcher(*configPath, logger.For("config"))
	if err := watcher.Start(); err != nil {
		log.Fatalw("cannot watch machine definition", "path", *configPath, "error", err)
	}
	defer func() { _ = watcher.Stop() }()

	// Each validated definition gets its own generation: cancel the old
	// population, start a fresh one.
	var stopGen context.CancelFunc
	var genDone chan struct{}
	for {
		select {
		case <-ctx.Done():
			if stopGen != nil {
				stopGen()
				<-genDone
			}
			return
		case cfg := <-watcher.Events():
			if stopGen != nil {
				stopGen()
				<-genDone
				log.Infow("restarting on new definition", "machine", cfg.ID)
			}
			genCtx, genCancel := context.WithCancel(ctx)
			stopGen = genCancel
			done := make(chan struct{})
			genDone = done
			go func() {
				defer close(done)
				runMachine(genCtx, cfg)
			}()
		}
	}
}

func runMachine(ctx context.Context, cfg *config.MachineConfig) {
	log := logger.For("demo")
	resolve := func(id pushfsm.StateID) string {
		if name, ok := cfg.StateName(id); ok {
			return name
		}
		return "none"
	}

	behaviors := make([]pushfsm.Behavior, cfg.StateCount())
	for i := range behaviors {
		behaviors[i] = newWanderer(pushfsm.StateID(i), cfg.ID, resolve)
	}

	observer := pushfsm.MultiObserver(
		metrics.Observer(cfg.ID, resolve),
		pushfsm.ObserverFunc(func(op pushfsm.Op, from, to pushfsm.StateID) {
			log.Debugw("transition", "op", op.String(), "from", resolve(from), "to", resolve(to))
		}),
	)

	h, err := cfg.Build(behaviors, pushfsm.WithObserver(observer))
	if err != nil {
		log.Errorw("machine definition rejected", "machine", cfg.ID, "error", err)
		return
	}

	fmt.Println(graph.DOT(h.Graph(), resolve))

	loop := realtime.NewLoop(h, realtime.Config{
		TickRate: *tickRate,
		Logger:   logger.For("loop"),
		Recorder: metrics.Recorder(cfg.ID),
	})
	for i := 0; i < *population; i++ {
		if _, err := loop.Spawn(realtime.Entity{ID: fmt.Sprintf("%s-%d", cfg.ID, i)}); err != nil {
			log.Errorw("spawn failed", "error", err)
			return
		}
	}
	log.Infow("population running",
		"machine", cfg.ID, "entities", loop.Len(), "tick_rate", *tickRate)

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Infow("tick progress", "machine", cfg.ID, "seq", loop.Seq(), "entities", loop.Len())
			}
		}
	}()

	_ = loop.Run(ctx)
}

// wanderer drifts through whatever graph it is given: an occasional jump or
// push to a random declared target, an occasional pop. Pops at the bottom of
// the stack come back as underflows; those rejections are counted, not
// logged.
type wanderer struct {
	pushfsm.BaseBehavior
	machine string
	resolve func(pushfsm.StateID) string
}

func newWanderer(id pushfsm.StateID, machine string, resolve func(pushfsm.StateID) string) *wanderer {
	return &wanderer{
		BaseBehavior: pushfsm.NewBaseBehavior(id),
		machine:      machine,
		resolve:      resolve,
	}
}

func (w *wanderer) Update(ctx pushfsm.Context) {
	h := w.Handler()
	roll := rand.Float64()
	switch {
	case roll < 0.04:
		if err := h.Pop(ctx); err != nil {
			metrics.RecordRejection(w.machine, pushfsm.OpPop)
		}
	case roll < 0.12:
		targets := h.Graph().Targets(h.Top())
		if len(targets) == 0 {
			return
		}
		to := targets[rand.Intn(len(targets))]
		if rand.Float64() < 0.3 {
			if err := h.Push(ctx, to); err != nil {
				metrics.RecordRejection(w.machine, pushfsm.OpPush)
			}
		} else {
			if err := h.Jump(ctx, to); err != nil {
				metrics.RecordRejection(w.machine, pushfsm.OpJump)
			}
		}
	}
}
