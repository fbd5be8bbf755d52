package dokufy

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/alnah/go-dokufy/internal/logger"
)

// Factory builds a driver. It runs at most once per registered name.
type Factory func() (Driver, error)

type registryEntry struct {
	factory Factory
	once    sync.Once
	driver  Driver
	err     error
}

// Registry maps driver names to lazily constructed singletons.
// Safe for concurrent use; a name resolves to the same instance every time.
type Registry struct {
	mu      sync.RWMutex
	names   []string
	entries map[string]*registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register binds name to factory. Registering a name again replaces the
// factory and drops any instance built from the previous one.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = &registryEntry{factory: factory}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Resolve returns the singleton for name, building it on first use.
// Unknown names fail with ErrDriverNotFound; a factory error, panic or nil
// driver fails with ErrDriverNotConfigured, and that failure is memoized.
func (r *Registry) Resolve(name string) (Driver, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}

	e.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				e.driver, e.err = nil, fmt.Errorf("%w: %s: %v", ErrDriverNotConfigured, name, r)
			}
		}()
		d, err := e.factory()
		switch {
		case err != nil:
			e.err = fmt.Errorf("%w: %s: %v", ErrDriverNotConfigured, name, err)
		case d == nil:
			e.err = fmt.Errorf("%w: %s", ErrDriverNotConfigured, name)
		default:
			e.driver = d
		}
	})
	return e.driver, e.err
}

// Close closes every constructed driver that holds resources.
func (r *Registry) Close() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, name := range r.names {
		e := r.entries[name]
		// Do with a no-op marks never-resolved entries as done so a late
		// Resolve cannot build a driver after Close.
		e.once.Do(func() { e.err = fmt.Errorf("%w: %s: registry closed", ErrDriverNotConfigured, name) })
		if c, ok := e.driver.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// DefaultRegistry registers the built-in drivers in status order:
// gotenberg, libreoffice, chromium, stencil, fake. Each factory reads its
// settings from cfg when first resolved.
func DefaultRegistry(cfg *Config, log Logger) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	loader := NewAssetLoader(cfg.Templates.Path)

	built := func(name string, d Driver) (Driver, error) {
		log.Debug("driver constructed", map[string]any{"driver": name})
		return d, nil
	}

	r := NewRegistry()
	r.Register(DriverGotenberg, func() (Driver, error) {
		return built(DriverGotenberg, NewGotenbergDriver(cfg.Driver(DriverGotenberg), nil))
	})
	r.Register(DriverLibreOffice, func() (Driver, error) {
		return built(DriverLibreOffice, NewLibreOfficeDriver(cfg.Driver(DriverLibreOffice), nil))
	})
	r.Register(DriverChromium, func() (Driver, error) {
		return built(DriverChromium, NewChromiumDriver(cfg.Driver(DriverChromium), cfg.PDF))
	})
	r.Register(DriverStencil, func() (Driver, error) {
		return built(DriverStencil, NewStencilDriver(cfg.Driver(DriverStencil), cfg.PDF, loader, nil))
	})
	r.Register(DriverFake, func() (Driver, error) {
		return built(DriverFake, NewFakeDriver(cfg.Driver(DriverFake)))
	})
	return r
}
