// Package realtime drives pushfsm handlers from a fixed-rate tick loop.
//
// The engine itself never schedules anything: a Handler only acts when an
// operation is called on it. This package supplies the missing driver for
// simulations that tick many actors, in the usual game-loop shape: one
// Loop, one shared Handler, and any number of entities, each owning a
// state stack. Every tick the loop binds each entity's stack in turn, runs
// Update, and unbinds, so one behavior set serves the whole population
// without any per-entity allocation.
//
// # Example
//
//	h, _ := pushfsm.NewHandler(int(StateCount), behaviors, transitions)
//	loop := realtime.NewLoop(h, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 ticks per second
//	})
//	loop.Spawn(realtime.Entity{Data: &RobotData{}})
//	loop.Run(ctx) // blocks until ctx is canceled
//
// Run measures Context.Delta from the ticker's own clock. Tests and
// replays call Step directly with a hand-picked delta, which makes a whole
// simulation deterministic.
//
// # Use cases
//
//   - Game logic at a fixed frame rate
//   - Robotics control loops
//   - Reproducible simulation tests via Step
package realtime
