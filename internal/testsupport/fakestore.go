package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"reklamefix/internal/doms"
)

// Remote call names recorded by FakeStore.
const (
	CallFetch   = "fetch"
	CallState   = "state"
	CallBegin   = "begin"
	CallWrite   = "write"
	CallPublish = "publish"
)

// ErrInjected is returned for calls configured to fail.
var ErrInjected = errors.New("injected failure")

// StoreCall records one remote call.
type StoreCall struct {
	Op string
	ID string
}

// FakeStore is an in-memory DOMS stand-in. Objects start active; WriteContent
// replaces content and BeginEdit/Publish move the state like DOMS does.
type FakeStore struct {
	mu       sync.Mutex
	contents map[string][]byte
	states   map[string]doms.State
	failures map[StoreCall]error
	calls    []StoreCall
}

// NewFakeStore returns an empty store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		contents: map[string][]byte{},
		states:   map[string]doms.State{},
		failures: map[StoreCall]error{},
	}
}

// Put stores an active object.
func (s *FakeStore) Put(id, content string) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents[id] = []byte(content)
	s.states[id] = doms.StateActive
	return s
}

// SetState overrides the lifecycle state of id.
func (s *FakeStore) SetState(id string, state doms.State) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
	return s
}

// Fail makes the named call for id return ErrInjected.
func (s *FakeStore) Fail(op, id string) *FakeStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[StoreCall{Op: op, ID: id}] = ErrInjected
	return s
}

// Content returns the current stored content of id.
func (s *FakeStore) Content(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.contents[id])
}

// State returns the current lifecycle state of id.
func (s *FakeStore) State(id string) doms.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// Calls returns a copy of every recorded call in arrival order.
func (s *FakeStore) Calls() []StoreCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StoreCall(nil), s.calls...)
}

// CallsFor returns the ops recorded for id in arrival order.
func (s *FakeStore) CallsFor(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ops []string
	for _, call := range s.calls {
		if call.ID == id {
			ops = append(ops, call.Op)
		}
	}
	return ops
}

// CountOp returns how many times op was called.
func (s *FakeStore) CountOp(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, call := range s.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (s *FakeStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *FakeStore) FetchContent(ctx context.Context, id string) ([]byte, error) {
	if err := s.record(ctx, CallFetch, id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.contents[id]
	if !ok {
		return nil, fmt.Errorf("%w: object %s not found", doms.ErrRemote, id)
	}
	return append([]byte(nil), content...), nil
}

func (s *FakeStore) GetState(ctx context.Context, id string) (doms.State, error) {
	if err := s.record(ctx, CallState, id); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	if !ok {
		return "", fmt.Errorf("%w: object %s not found", doms.ErrRemote, id)
	}
	return state, nil
}

func (s *FakeStore) BeginEdit(ctx context.Context, id string) error {
	if err := s.record(ctx, CallBegin, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = doms.StateInactive
	return nil
}

func (s *FakeStore) WriteContent(ctx context.Context, id string, content []byte) error {
	if err := s.record(ctx, CallWrite, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents[id] = append([]byte(nil), content...)
	return nil
}

func (s *FakeStore) Publish(ctx context.Context, id string) error {
	if err := s.record(ctx, CallPublish, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = doms.StateActive
	return nil
}

func (s *FakeStore) record(ctx context.Context, op, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	call := StoreCall{Op: op, ID: id}
	s.calls = append(s.calls, call)
	if err := s.failures[call]; err != nil {
		return fmt.Errorf("%w: %s %s: %w", doms.ErrRemote, op, id, err)
	}
	return nil
}
