package provisioning

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/vpcprov/internal/logging"
)

// State is a step of a provisioning run.
type State int

// States of a provisioning run, in order.
const (
	StateCreateDestination State = iota
	StatePrepareVolumes
	StatePrepareNetworks
	StatePrepareProvision
	StateStartClone
	StateCheckClone
	StateCustomizeDestination
	StatePostCreateDestination
	StateFinished
)

var stateNames = map[State]string{
	StateCreateDestination:     "create_destination",
	StatePrepareVolumes:        "prepare_volumes",
	StatePrepareNetworks:       "prepare_networks",
	StatePrepareProvision:      "prepare_provision",
	StateStartClone:            "start_clone",
	StateCheckClone:            "check_clone",
	StateCustomizeDestination:  "customize_destination",
	StatePostCreateDestination: "post_create_destination",
	StateFinished:              "finished",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState returns the state with the given name.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return StateFinished, fmt.Errorf("unknown provisioning state %q", name)
}

// IsPreProvision reports whether s is one of the placeholder steps that run
// before the instance is submitted.
func (s State) IsPreProvision() bool {
	return s >= StateCreateDestination && s <= StatePrepareProvision
}

// Next returns the state following s. It is total: finished and any value
// outside the chain map to finished.
func Next(s State) State {
	switch s {
	case StateCreateDestination:
		return StatePrepareVolumes
	case StatePrepareVolumes:
		return StatePrepareNetworks
	case StatePrepareNetworks:
		return StatePrepareProvision
	case StatePrepareProvision:
		return StateStartClone
	case StateStartClone:
		return StateCheckClone
	case StateCheckClone:
		return StateCustomizeDestination
	case StateCustomizeDestination:
		return StatePostCreateDestination
	default:
		return StateFinished
	}
}

// Sequencer runs the pre-provision steps.
type Sequencer struct {
	log logging.Component
}

// NewSequencer returns a Sequencer logging through log.
func NewSequencer(log logr.Logger) *Sequencer {
	return &Sequencer{log: logging.NewComponent(log, "sequencer")}
}

// Step runs the work of s and returns the state to signal next. Pre-provision
// steps have no work yet and always advance; later states are driven by the
// host and are only advanced here.
func (q *Sequencer) Step(_ context.Context, s State) State {
	next := Next(s)
	q.log.Debug(s.String(), fmt.Sprintf("signaling %s", next))
	return next
}

// PreProvision runs the whole pre-provision chain from create_destination and
// returns the first state after it.
func (q *Sequencer) PreProvision(ctx context.Context) State {
	s := StateCreateDestination
	for s.IsPreProvision() {
		s = q.Step(ctx, s)
	}
	return s
}
