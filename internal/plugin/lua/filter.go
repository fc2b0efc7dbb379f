package lua

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single filter call.
const DefaultTimeout = 100 * time.Millisecond

// FilterFunc is the name of the global function a filter script defines.
const FilterFunc = "filter"

// Errors returned by filters.
var (
	ErrFilterClosed  = errors.New("lua filter is closed")
	ErrNoFilterFunc  = errors.New("script does not define a filter function")
	ErrBadFilterType = errors.New("filter returned a non-string value")
)

// Filter is a compiled Lua input filter.
type Filter struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	timeout time.Duration
	closed  bool
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) FilterOption {
	return func(f *Filter) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewFilter compiles source and looks up its filter function.
func NewFilter(source string, opts ...FilterOption) (*Filter, error) {
	f := &Filter{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := f.run(L, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading filter: %w", err)
	}

	fn, ok := L.GetGlobal(FilterFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoFilterFunc
	}

	f.L = L
	f.fn = fn
	return f, nil
}

// NewFilterFromFile reads and compiles a filter script.
func NewFilterFromFile(path string, opts ...FilterOption) (*Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filter %s: %w", path, err)
	}
	return NewFilter(string(data), opts...)
}

// Apply runs the filter on text about to be inserted into current.
// It returns the text to insert; "" with a nil error means rejected.
func (f *Filter) Apply(text, current string, maxLength int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrFilterClosed
	}

	top := f.L.GetTop()
	defer f.L.SetTop(top)

	err := f.run(f.L, func() error {
		return f.L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true},
			lua.LString(text), lua.LString(current), lua.LNumber(maxLength))
	})
	if err != nil {
		return "", fmt.Errorf("running filter: %w", err)
	}

	switch ret := f.L.Get(-1).(type) {
	case lua.LString:
		return string(ret), nil
	case *lua.LNilType, lua.LBool:
		if ret == lua.LTrue {
			return text, nil
		}
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrBadFilterType, ret.Type())
	}
}

// Close releases the Lua state.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.L.Close()
}

// run executes fn with a timeout context and panic recovery.
func (f *Filter) run(L *lua.LState, fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// openSafeLibraries opens only safe Lua standard libraries and removes the
// loaders that could pull in code from outside the script.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}
