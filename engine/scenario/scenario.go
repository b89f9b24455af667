// Package scenario replays scripted request sequences against isolated assemblies on a
// mock clock, so timing behaviour can be inspected without a window or terminal.
package scenario

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
)

// Step is one scripted request.
type Step struct {
	At   time.Duration
	Name string
	Do   func(a crystal.Assembly)
}

// Scenario is a named script run for a fixed simulated duration.
type Scenario struct {
	Name        string
	Description string
	Duration    time.Duration
	Steps       []Step

	// Configure, when set, adjusts the scenario's private copy of the config.
	Configure func(cfg *config.Config)
}

func explode(at time.Duration) Step {
	return Step{At: at, Name: "explode toggle", Do: func(a crystal.Assembly) { a.RequestExplodeToggle() }}
}

func selectFacet(at time.Duration, key string) Step {
	return Step{At: at, Name: "select " + key, Do: func(a crystal.Assembly) { a.RequestSelect(key) }}
}

// Builtin returns the stock scenarios.
func Builtin() []Scenario {
	return []Scenario{
		{
			Name:        "explode-idle",
			Description: "explode and let the facets settle into their idle float",
			Duration:    6 * time.Second,
			Steps:       []Step{explode(0)},
		},
		{
			Name:        "select-then-select",
			Description: "select one facet, then switch straight to another",
			Duration:    6 * time.Second,
			Steps: []Step{
				explode(0),
				selectFacet(2*time.Second, "craft"),
				selectFacet(3500*time.Millisecond, "system"),
			},
		},
		{
			Name:        "reform-mid-fracture",
			Description: "reform before the fracture phase completes",
			Duration:    3 * time.Second,
			Steps: []Step{
				explode(0),
				{At: 250 * time.Millisecond, Name: "reform", Do: func(a crystal.Assembly) { a.RequestExplodeToggle() }},
			},
			Configure: func(cfg *config.Config) {
				cfg.Timing.Camera.Explode = 200
			},
		},
		{
			Name:        "toggle-with-selection",
			Description: "reform while a facet is selected",
			Duration:    8 * time.Second,
			Steps: []Step{
				explode(0),
				selectFacet(2*time.Second, "craft"),
				explode(4 * time.Second),
			},
		},
	}
}

// ByName picks scenarios out of the builtin set. No names selects all of them.
//
// Parameters:
//   - names: scenario names
//
// Returns:
//   - []Scenario: the scenarios in the requested order
//   - error: for an unknown name
func ByName(names ...string) ([]Scenario, error) {
	all := Builtin()
	if len(names) == 0 {
		return all, nil
	}
	out := make([]Scenario, 0, len(names))
	for _, n := range names {
		found := false
		for _, s := range all {
			if s.Name == n {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown scenario %q", n)
		}
	}
	return out, nil
}
