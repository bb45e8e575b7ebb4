package mapfn

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// ErrUnknownFunction is returned for a name that is not registered.
var ErrUnknownFunction = errors.New("unknown function")

// Registry owns the functions of one map frame and enforces channel
// exclusivity among them.
type Registry struct {
	host   Host
	fns    []Function
	logger *log.Logger
}

// NewRegistry returns an empty registry bound to h. A nil logger falls back
// to log.Default().
func NewRegistry(h Host, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{host: h, logger: logger}
}

// Add initializes f against the host and registers it. AlwaysOn functions are
// activated immediately. Adding an already active function arbitrates as if
// it had just been activated.
func (r *Registry) Add(f Function) error {
	if _, ok := r.Get(f.Name()); ok {
		return fmt.Errorf("function %q already registered", f.Name())
	}
	f.Init(r.host)
	r.fns = append(r.fns, f)
	f.Observe(func(active bool) {
		if active {
			r.yield(f)
		}
		r.logger.Debug("function state", "name", f.Name(), "active", active, "style", f.YieldStyle())
	})
	if f.YieldStyle().IsAlwaysOn() {
		f.Activate()
	} else if f.IsActive() {
		r.yield(f)
	}
	return nil
}

// Remove deactivates and unloads the named function.
func (r *Registry) Remove(name string) bool {
	for i, f := range r.fns {
		if f.Name() != name {
			continue
		}
		f.Deactivate()
		f.Unload()
		r.fns = slices.Delete(r.fns, i, i+1)
		return true
	}
	return false
}

// Get returns the named function.
func (r *Registry) Get(name string) (Function, bool) {
	for _, f := range r.fns {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Functions returns every function in registration order.
func (r *Registry) Functions() []Function { return slices.Clone(r.fns) }

// Activate activates the named function; conflicting functions yield.
func (r *Registry) Activate(name string) error {
	f, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	f.Activate()
	return nil
}

// Deactivate deactivates the named function.
func (r *Registry) Deactivate(name string) error {
	f, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	f.Deactivate()
	return nil
}

// yield deactivates every other active function competing with f.
func (r *Registry) yield(f Function) {
	for _, g := range r.fns {
		if g == f || !g.IsActive() {
			continue
		}
		if f.YieldStyle().Conflicts(g.YieldStyle()) {
			r.logger.Debug("function yields", "name", g.Name(), "to", f.Name())
			g.Deactivate()
		}
	}
}

// Active returns the active functions in dispatch order: AlwaysOn functions
// first, then the rest, each in registration order.
func (r *Registry) Active() []Function {
	var always, rest []Function
	for _, f := range r.fns {
		if !f.IsActive() {
			continue
		}
		if f.YieldStyle().IsAlwaysOn() {
			always = append(always, f)
		} else {
			rest = append(rest, f)
		}
	}
	return append(always, rest...)
}

// Targets returns the functions an event on channel ch is dispatched to.
func (r *Registry) Targets(ch YieldStyle) []Function {
	var out []Function
	for _, f := range r.Active() {
		if f.YieldStyle().IsAlwaysOn() || f.YieldStyle()&ch != 0 {
			out = append(out, f)
		}
	}
	return out
}

// Draw lets every active function render its overlay.
func (r *Registry) Draw(args DrawArgs) {
	for _, f := range r.Active() {
		f.Draw(args)
	}
}
