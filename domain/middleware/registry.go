package middleware

// Registry manages an ordered collection of middleware.
type Registry struct {
	middlewares []Middleware
}

// NewRegistry creates a registry holding the given middleware in order.
func NewRegistry(ms ...Middleware) *Registry {
	return &Registry{middlewares: append([]Middleware(nil), ms...)}
}

// Use appends middleware. They execute in the order they are added.
func (r *Registry) Use(ms ...Middleware) *Registry {
	r.middlewares = append(r.middlewares, ms...)
	return r
}

// Chain returns the complete middleware chain, or Noop when empty.
func (r *Registry) Chain() Middleware {
	if len(r.middlewares) == 0 {
		return Noop()
	}
	return Chain(r.middlewares...)
}

// Then wraps final with the registered chain.
func (r *Registry) Then(final Handler) Handler {
	return r.Chain()(final)
}

// Len returns the number of middleware in the registry.
func (r *Registry) Len() int {
	return len(r.middlewares)
}
