// Package fit holds the hole-selection policies used by the arena manager.
package fit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joshuapare/wordarena/arena/blocks"
)

// ErrUnknownStrategy is returned by ByName for an unregistered name.
var ErrUnknownStrategy = errors.New("fit: unknown strategy")

// Strategy picks the hole that should satisfy a request of words words.
// Implementations must not retain or modify holes. ok is false when no hole
// can hold the request.
type Strategy interface {
	Select(words int, holes []blocks.Hole) (offset int, ok bool)
}

// Func adapts a plain function to Strategy.
type Func func(words int, holes []blocks.Hole) (int, bool)

// Select calls f.
func (f Func) Select(words int, holes []blocks.Hole) (int, bool) { return f(words, holes) }

var (
	// BestFit picks the smallest hole that fits; ties go to the lowest offset.
	BestFit Strategy = Func(bestFit)
	// WorstFit picks the largest hole that fits; ties go to the lowest offset.
	WorstFit Strategy = Func(worstFit)
	// FirstFit picks the first hole in list order that fits.
	FirstFit Strategy = Func(firstFit)
)

var registry = map[string]Strategy{
	"best":  BestFit,
	"worst": WorstFit,
	"first": FirstFit,
}

// ByName returns the built-in strategy registered under name
// ("best", "worst" or "first").
func ByName(name string) (Strategy, error) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func bestFit(words int, holes []blocks.Hole) (int, bool) {
	if words <= 0 {
		return 0, false
	}
	best := -1
	for i, h := range holes {
		if h.Size < words {
			continue
		}
		// Strict < keeps the first of equal candidates.
		if best < 0 || h.Size < holes[best].Size {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return holes[best].Offset, true
}

func worstFit(words int, holes []blocks.Hole) (int, bool) {
	if words <= 0 {
		return 0, false
	}
	worst := -1
	for i, h := range holes {
		if h.Size < words {
			continue
		}
		if worst < 0 || h.Size > holes[worst].Size {
			worst = i
		}
	}
	if worst < 0 {
		return 0, false
	}
	return holes[worst].Offset, true
}

func firstFit(words int, holes []blocks.Hole) (int, bool) {
	if words <= 0 {
		return 0, false
	}
	for _, h := range holes {
		if h.Size >= words {
			return h.Offset, true
		}
	}
	return 0, false
}
