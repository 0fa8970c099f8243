// Package auth holds the login session: an observable authenticated/loading
// state and the operation that logs a user in.
package auth

import (
	"context"
	"sync"
)

// State is the observable part of a session.
type State struct {
	IsAuthenticated bool
	Loading         bool
}

// Credentials are what the user typed on the login form.
type Credentials struct {
	Username string
	Password string
}

// LoginResponse is the result of a login attempt. Message is informational,
// Error is a failure; a response with neither is a success.
type LoginResponse struct {
	Message string
	Error   string
}

// Session is the auth state a view observes and the login operation it calls.
type Session interface {
	State() State
	// Subscribe registers fn for state changes and returns a function that
	// removes it. fn is not called with the current state.
	Subscribe(fn func(State)) (unsubscribe func())
	LogIn(ctx context.Context, creds Credentials) LoginResponse
}

// Observable is a mutex-guarded State with change subscribers.
type Observable struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewObservable creates an Observable starting at initial.
func NewObservable(initial State) *Observable {
	return &Observable{state: initial, subs: make(map[int]func(State))}
}

// State returns the current state.
func (o *Observable) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Set stores s and notifies subscribers when it differs from the current state.
// Subscribers run outside the lock, in no particular order.
func (o *Observable) Set(s State) {
	o.mu.Lock()
	if o.state == s {
		o.mu.Unlock()
		return
	}
	o.state = s
	subs := make([]func(State), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Subscribe implements Session.
func (o *Observable) Subscribe(fn func(State)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.next
	o.next++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}
