// Package agent runs the daily job-search workflow: follow-ups, listing
// discovery, application creation, status advancement and tracker sync.
package agent

import (
	"fmt"
	"sync"
	"time"
)

// State values reported by the agent while it works.
const (
	StateIdle        = "idle"
	StateSearching   = "searching"
	StateApplying    = "applying"
	StateFollowingUp = "following_up"
	StateStopped     = "stopped"
)

// Agent guards the workflow state so concurrent status reads from the
// HTTP API see a consistent view. A single Agent runs at most one daily
// workflow at a time.
type Agent struct {
	mu           sync.Mutex
	state        string
	currentTask  string
	lastActivity string
	lastSummary  *Summary
}

// Status is a point-in-time snapshot of the agent.
type Status struct {
	State        string   `json:"state"`
	CurrentTask  string   `json:"current_task,omitempty"`
	LastActivity string   `json:"last_activity,omitempty"`
	LastSummary  *Summary `json:"last_summary,omitempty"`
}

// New creates an idle agent.
func New() *Agent {
	return &Agent{state: StateIdle}
}

// Status returns the agent's current state. The embedded summary is the
// result of the most recent run and must be treated as read-only.
func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.state
	if state == "" {
		state = StateIdle
	}
	return Status{
		State:        state,
		CurrentTask:  a.currentTask,
		LastActivity: a.lastActivity,
		LastSummary:  a.lastSummary,
	}
}

// begin claims the agent for one run. A second run started while the
// first is still working is refused.
func (a *Agent) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case "", StateIdle, StateStopped:
		a.state = StateFollowingUp
		a.currentTask = "starting daily workflow"
		return nil
	default:
		return fmt.Errorf("agent is already running (state %s)", a.state)
	}
}

func (a *Agent) setState(state, task string) {
	a.mu.Lock()
	a.state = state
	a.currentTask = task
	a.mu.Unlock()
}

// finish records the run outcome and releases the agent. A cancelled run
// leaves the agent in the stopped state.
func (a *Agent) finish(summary *Summary, err error) (*Summary, error) {
	a.mu.Lock()
	if err != nil {
		a.state = StateStopped
	} else {
		a.state = StateIdle
	}
	a.currentTask = ""
	a.lastActivity = time.Now().Format(time.RFC3339)
	a.lastSummary = summary
	a.mu.Unlock()
	return summary, err
}
