// Package fsm implements the session lifecycle state machine that gates
// which protocol methods are reachable at each point in a connection's life.
package fsm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// State is one phase of a session's lifecycle.
type State int

// Session lifecycle states.
const (
	StateActiveUninitialized State = iota
	StateInitializing
	StateActiveInitialized
	StateShuttingDown
	StateStopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateActiveUninitialized:
		return "ActiveUninitialized"
	case StateInitializing:
		return "Initializing"
	case StateActiveInitialized:
		return "ActiveInitialized"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateError reports a method that is not applicable in the session's
// current state. The state is left unchanged.
type StateError struct {
	State  State
	Method string
}

// Error is an implementation of the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("method %q is not applicable in session state %s", e.Method, e.State)
}

// Kind distinguishes request handlers, which produce a response, from
// notification handlers, which do not.
type Kind int

// Handler kinds.
const (
	KindRequest Kind = iota
	KindNotification
)

type entry struct {
	kind   Kind
	invoke func(ctx context.Context, state State, params json.RawMessage) (interface{}, error)
	next   *State
}

// Dispatcher holds the method table for a single state.
type Dispatcher struct {
	state   State
	entries map[string]entry
}

// NewDispatcher creates an empty method table for state.
func NewDispatcher(state State) *Dispatcher {
	return &Dispatcher{
		state:   state,
		entries: make(map[string]entry),
	}
}

// Option configures a registered handler.
type Option func(*entry)

// WithTransition moves the machine to next when the handler succeeds.
func WithTransition(next State) Option {
	return func(e *entry) {
		e.next = &next
	}
}

// Request registers a typed request handler for method. Params are decoded
// into P before invocation; a null or absent payload yields the zero value.
func Request[P, R any](d *Dispatcher, method string, handler func(ctx context.Context, state State, params *P) (R, error), opts ...Option) {
	d.register(method, KindRequest, func(ctx context.Context, state State, raw json.RawMessage) (interface{}, error) {
		params, err := decode[P](raw)
		if err != nil {
			return nil, err
		}
		return handler(ctx, state, params)
	}, opts)
}

// Notification registers a typed notification handler for method.
func Notification[P any](d *Dispatcher, method string, handler func(ctx context.Context, state State, params *P) error, opts ...Option) {
	d.register(method, KindNotification, func(ctx context.Context, state State, raw json.RawMessage) (interface{}, error) {
		params, err := decode[P](raw)
		if err != nil {
			return nil, err
		}
		return nil, handler(ctx, state, params)
	}, opts)
}

func (d *Dispatcher) register(method string, kind Kind, invoke func(context.Context, State, json.RawMessage) (interface{}, error), opts []Option) {
	e := entry{kind: kind, invoke: invoke}
	for _, opt := range opts {
		opt(&e)
	}
	d.entries[method] = e
}

func decode[P any](raw json.RawMessage) (*P, error) {
	params := new(P)
	if len(raw) == 0 || string(raw) == "null" {
		return params, nil
	}
	if err := json.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return params, nil
}

// Machine routes inbound methods through the dispatcher of its current state
// and applies the transitions its handlers declare.
type Machine struct {
	mu          sync.Mutex
	state       State
	dispatchers map[State]*Dispatcher
}

// NewMachine creates a machine in StateActiveUninitialized.
func NewMachine(dispatchers ...*Dispatcher) *Machine {
	m := &Machine{
		state:       StateActiveUninitialized,
		dispatchers: make(map[State]*Dispatcher, len(dispatchers)),
	}
	for _, d := range dispatchers {
		m.dispatchers[d.state] = d
	}
	return m
}

// State returns the machine's current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// IsActive reports whether the session can still process messages.
func (m *Machine) IsActive() bool {
	return m.State() != StateStopped
}

// Dispatch invokes the handler registered for method in the current state.
// On handler success any declared transition is applied; on handler error
// the state is unchanged. The response and the transition belong to one
// handler invocation: the machine lock is held from lookup through
// transition, so no caller can observe a response from a state the machine
// has already left.
//
// A method with no handler in the current state fails with *StateError.
func (m *Machine) Dispatch(ctx context.Context, method string, params json.RawMessage) (interface{}, Kind, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dispatcher, ok := m.dispatchers[m.state]
	if !ok {
		return nil, KindRequest, &StateError{State: m.state, Method: method}
	}
	e, ok := dispatcher.entries[method]
	if !ok {
		return nil, KindRequest, &StateError{State: m.state, Method: method}
	}

	result, err := e.invoke(ctx, m.state, params)
	if err != nil {
		return nil, e.kind, err
	}

	if e.next != nil {
		m.state = *e.next
	}
	return result, e.kind, nil
}
