// Package lua runs extension modules and scripts written in Lua.
package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned by calls on a closed State.
var ErrStateClosed = errors.New("lua state is closed")

// State is a sandboxed Lua interpreter. LState is not goroutine-safe, so every
// call into Lua holds mu; one module's actions therefore run one at a time.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	closed bool
}

// NewState creates a state with only the base, table, string and math
// libraries opened.
func NewState() *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// The base library can still reach the file system through these.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}

	return &State{L: L}
}

// DoFile runs the file at path and returns the value it returns, or LNil.
func (s *State) DoFile(ctx context.Context, path string) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil, ErrStateClosed
	}

	fn, err := s.L.LoadFile(path)
	if err != nil {
		return lua.LNil, err
	}
	ret, err := s.call(ctx, fn, 1)
	if err != nil {
		return lua.LNil, err
	}
	return ret[0], nil
}

// Call calls fn with args and returns nret results.
func (s *State) Call(ctx context.Context, fn *lua.LFunction, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}
	return s.call(ctx, fn, nret, args...)
}

func (s *State) call(ctx context.Context, fn *lua.LFunction, nret int, args ...lua.LValue) (ret []lua.LValue, err error) {
	if ctx != nil {
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := s.L.GetTop()
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...); err != nil {
		s.L.SetTop(top)
		return nil, err
	}

	ret = make([]lua.LValue, nret)
	for i := 0; i < nret; i++ {
		ret[i] = s.L.Get(top + i + 1)
	}
	s.L.SetTop(top)
	return ret, nil
}

// Do runs fn with the state lock held. fn must not call back into s.
func (s *State) Do(fn func(L *lua.LState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	fn(s.L)
	return nil
}

// Close releases the interpreter.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
