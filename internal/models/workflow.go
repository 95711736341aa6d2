package models

import "fmt"

// WorkflowState is a step of the choose-mentor flow
type WorkflowState string

const (
	StateBrowsing    WorkflowState = "browsing"
	StateDetailsOpen WorkflowState = "details_open"
	StateFormOpen    WorkflowState = "form_open"
	StateSubmitting  WorkflowState = "submitting"
	StateSuccess     WorkflowState = "success"
	StateFailure     WorkflowState = "failure"
)

var workflowTransitions = map[WorkflowState][]WorkflowState{
	StateBrowsing:    {StateDetailsOpen},
	StateDetailsOpen: {StateFormOpen, StateBrowsing},
	StateFormOpen:    {StateSubmitting, StateDetailsOpen, StateBrowsing},
	StateSubmitting:  {StateSuccess, StateFailure},
	// Failure keeps the form data so the requester can resubmit
	StateFailure: {StateSubmitting, StateFormOpen, StateBrowsing},
	StateSuccess: {StateBrowsing},
}

// CanTransitionTo reports whether next is a legal step from s
func (s WorkflowState) CanTransitionTo(next WorkflowState) bool {
	for _, allowed := range workflowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Workflow tracks one pass through the choose-mentor flow
type Workflow struct {
	state WorkflowState
}

// NewWorkflow starts a flow in the browsing state
func NewWorkflow() *Workflow {
	return &Workflow{state: StateBrowsing}
}

// State returns the current state
func (w *Workflow) State() WorkflowState {
	return w.state
}

// Advance moves to next or returns an error for an illegal step
func (w *Workflow) Advance(next WorkflowState) error {
	if !w.state.CanTransitionTo(next) {
		return fmt.Errorf("illegal workflow transition %s -> %s", w.state, next)
	}
	w.state = next
	return nil
}
