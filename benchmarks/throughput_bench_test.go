// Package benchmarks provides performance benchmarks for population
// throughput.
package benchmarks

import (
	"fmt"
	"testing"
	"time"

	"github.com/comalice/pushfsm"
	"github.com/comalice/pushfsm/realtime"
)

// counterBehavior counts its updates, verifying the loop really drove
// every entity.
type counterBehavior struct {
	pushfsm.BaseBehavior
	updates int64
}

func (c *counterBehavior) Update(ctx pushfsm.Context) {
	c.updates++
}

// BenchmarkPopulationThroughput measures entity updates per second when one
// handler drives a whole population by serial rebinding.
func BenchmarkPopulationThroughput(b *testing.B) {
	for _, entities := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("entities=%d", entities), func(b *testing.B) {
			counter := &counterBehavior{BaseBehavior: pushfsm.NewBaseBehavior(0)}
			h, err := pushfsm.NewHandler(1, []pushfsm.Behavior{counter}, nil)
			if err != nil {
				b.Fatal(err)
			}

			loop := realtime.NewLoop(h, realtime.Config{})
			for i := 0; i < entities; i++ {
				if _, err := loop.Spawn(realtime.Entity{}); err != nil {
					b.Fatal(err)
				}
			}

			delta := 16 * time.Millisecond
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				loop.Step(delta)
			}
			b.StopTimer()

			want := int64(entities) * int64(b.N)
			if counter.updates != want {
				b.Fatalf("expected %d updates, got %d", want, counter.updates)
			}
			b.ReportMetric(float64(want)/b.Elapsed().Seconds(), "updates/sec")
		})
	}
}
