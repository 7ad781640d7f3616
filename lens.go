package typelens

import (
	"errors"
	"fmt"

	"github.com/pablor21/typelens/annotation"
	"github.com/pablor21/typelens/cache"
	"github.com/pablor21/typelens/hints"
	"github.com/pablor21/typelens/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoSource is returned by source lookups on a Lens built without
// ResolveModeSource.
var ErrNoSource = errors.New("source resolution is disabled")

type lensOptions struct {
	registerer prometheus.Registerer
	resolver   hints.Resolver
	logger     logger.Logger
}

// Option configures a Lens
type Option func(*lensOptions)

// UseRegisterer registers the cache metrics on reg
func UseRegisterer(reg prometheus.Registerer) Option {
	return func(o *lensOptions) {
		o.registerer = reg
	}
}

// UseResolver replaces the resolver selected from the configuration
func UseResolver(r hints.Resolver) Option {
	return func(o *lensOptions) {
		o.resolver = r
	}
}

// UseLogger sets the logger of the lens
func UseLogger(l logger.Logger) Option {
	return func(o *lensOptions) {
		o.logger = l
	}
}

// Lens ties a configuration, a resolver and a view cache together
type Lens struct {
	config   *Config
	registry *hints.Registry
	source   *hints.SourceResolver
	resolver hints.Resolver
	views    *cache.Cache[*TypeView]
	logger   logger.Logger
}

// New creates a Lens. A nil cfg means NewDefaultConfig(). With
// ResolveModeSource the configured packages are loaded upfront.
func New(cfg *Config, opts ...Option) (*Lens, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	var o lensOptions
	for _, opt := range opts {
		opt(&o)
	}

	newLogger := func(tag string) logger.Logger {
		l := logger.NewDefaultLogger()
		l.SetLevel(cfg.LogLevel)
		l.SetTag(tag)
		return l
	}
	log := o.logger
	if log == nil {
		log = newLogger("Lens")
	}

	l := &Lens{
		config:   cfg,
		registry: hints.NewRegistry(newLogger("Registry")),
		logger:   log,
	}

	if cfg.Mode.Has(ResolveModeSource) {
		l.source = hints.NewSourceResolver(cfg.Dir, newLogger("SourceResolver"))
		if len(cfg.Packages) > 0 {
			if _, err := l.source.Load(cfg.Packages...); err != nil {
				return nil, err
			}
		}
	}

	switch {
	case o.resolver != nil:
		l.resolver = o.resolver
	case l.source != nil:
		l.resolver = l.source
	default:
		l.resolver = l.registry
	}

	metrics, err := cache.NewMetrics(o.registerer, "views")
	if err != nil {
		return nil, fmt.Errorf("registering cache metrics: %w", err)
	}
	l.views = cache.New[*TypeView](cfg.CacheSize, metrics)

	l.logger.Debug(fmt.Sprintf("Lens ready, mode=%q resolver=%T", cfg.Mode.String(), l.resolver))
	return l, nil
}

func (l *Lens) Config() *Config {
	return l.config
}

// Registry returns the registry of the lens. It is the active resolver
// unless source resolution or UseResolver replaced it.
func (l *Lens) Registry() *hints.Registry {
	return l.registry
}

// Source returns the source resolver, nil without ResolveModeSource
func (l *Lens) Source() *hints.SourceResolver {
	return l.source
}

func (l *Lens) Resolver() hints.Resolver {
	return l.resolver
}

// View returns the TypeView of raw, reusing a cached view of an equal
// annotation when possible.
func (l *Lens) View(raw any) *TypeView {
	key, ok := annotation.Key(raw)
	if !ok {
		l.logger.Debug(fmt.Sprintf("Annotation %s cannot be cached", annotation.Repr(raw)))
		return NewTypeView(raw)
	}
	return l.views.GetOrCreate(key,
		func(v *TypeView) bool { return annotation.Equal(v.Raw(), raw) },
		func() *TypeView { return NewTypeView(raw) },
	)
}

// Callable returns the CallableView of fn using the lens resolver and mode
func (l *Lens) Callable(fn any) (*CallableView, error) {
	return NewCallableView(fn,
		WithResolver(l.resolver),
		WithIncludeExtras(l.config.Mode.Has(ResolveModeExtras)),
		WithStrictAnnotations(l.config.Mode.Has(ResolveModeStrict)),
	)
}

// Symbol inspects the declaration pkgPath.name, where name is a function,
// a type or Type.Method.
func (l *Lens) Symbol(pkgPath, name string) (*CallableView, error) {
	return l.Callable(hints.Symbol(pkgPath + "." + name))
}

// TypeOf returns the view of the type (or function type) declared as
// pkgPath.name in source.
func (l *Lens) TypeOf(pkgPath, name string) (*TypeView, error) {
	if l.source == nil {
		return nil, ErrNoSource
	}
	a, err := l.source.Annotation(hints.Symbol(pkgPath + "." + name))
	if err != nil {
		return nil, err
	}
	return l.View(a), nil
}

// CachedViews returns the number of cached views
func (l *Lens) CachedViews() int {
	return l.views.Len()
}
