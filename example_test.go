package pathrace_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/pathrace"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/playback"
)

// ExampleRacer_Compare runs both algorithms around a short wall.
func ExampleRacer_Compare() {
	racer := pathrace.New()
	res, err := racer.Compare(context.Background(), domain.ComparisonRequest{
		Width:      3,
		Height:     3,
		Start:      domain.C(0, 0),
		End:        domain.C(2, 2),
		Obstacles:  []domain.Coordinate{domain.C(1, 1)},
		Algorithms: []string{"Dijkstra", "AStar"},
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, a := range res.Algorithms {
		fmt.Printf("%s: length %d, cost %.1f\n", a.Name, a.Metrics.PathLength, a.Metrics.PathCost)
	}
	// Output:
	// Dijkstra: length 4, cost 4.0
	// AStar:manhattan: length 4, cost 4.0
}

// ExampleRacer_Race steps through a replay by hand.
func ExampleRacer_Race() {
	racer := pathrace.New()
	engine, err := racer.Race(context.Background(), domain.ComparisonRequest{
		Width:      4,
		Height:     1,
		Start:      domain.C(0, 0),
		End:        domain.C(0, 3),
		Algorithms: []string{"Dijkstra"},
	}, playback.DrawFunc(func(p *playback.PanelFrame) {
		fmt.Printf("%s step %d/%d done=%t\n", p.Name, p.StepIndex, p.MaxIndex, p.Done)
	}))
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	engine.GoToStep(engine.MaxSteps())
}
