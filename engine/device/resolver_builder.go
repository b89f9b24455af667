package device

import "github.com/Carmen-Shannon/oxy-crystal/engine/timer"

// ResolverBuilderOption configures a Resolver.
type ResolverBuilderOption func(*resolverImpl)

// WithSignalSource sets where hardware signals are read from.
func WithSignalSource(src SignalSource) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.source = src
	}
}

// WithOverrideStore sets where the manual override is persisted.
func WithOverrideStore(store OverrideStore) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.store = store
	}
}

// WithScheduler runs the resize debounce on a shared scheduler, usually the assembly's.
func WithScheduler(s *timer.Scheduler) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.sched = s
	}
}
