// Package router layers named routes and nested groups over chi.
//
// Route names let other layers build URLs without hard-coding paths:
//
//	api := r.Group("/api")
//	api.Get("/vehicles/{id}", "vehicles.show", ctrl.Show)
//	path, _ := r.URL("vehicles.show", map[string]string{"id": "7"})
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the net/http middleware shape.
type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Router is the root of the route tree.
type Router struct {
	mux   chi.Router
	mu    sync.RWMutex
	named map[string]RouteInfo
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		named: make(map[string]RouteInfo),
	}
}

// Handler exposes the router to http.Server.
func (r *Router) Handler() http.Handler { return r.mux }

// Use installs global middleware. chi requires this before the first route.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// HandleFunc mounts a handler for every method, which /metrics needs.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(cleanPath(path), handler)
}

// Group scopes a prefix and middleware set for the routes mounted under it.
func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{root: r, prefix: cleanPath(prefix), mws: append([]Middleware(nil), mws...)}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPatch, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodDelete, cleanPath(path), name, h, mws)
}

// Routes lists every named route sorted by path, then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := make([]RouteInfo, 0, len(r.named))
	for _, ri := range r.named {
		out = append(out, ri)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Path looks up the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ri, ok := r.named[name]
	return ri.Path, ok
}

// URL substitutes params into the named route's pattern. Every {param} must
// be supplied.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

func (r *Router) register(method, fullPath, name string, h http.Handler, mws []Middleware) {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	r.mux.Method(method, fullPath, h)

	if name == "" {
		return
	}
	r.mu.Lock()
	r.named[name] = RouteInfo{Method: method, Path: fullPath, Name: name}
	r.mu.Unlock()
}

// Group mounts routes under a shared prefix, threading its middleware ahead
// of any route-level middleware.
type Group struct {
	root   *Router
	prefix string
	mws    []Middleware
}

// Group nests a sub-group, inheriting this group's prefix and middleware.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		root:   g.root,
		prefix: joinPath(g.prefix, prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPut, path, name, h, mws)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPatch, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodDelete, path, name, h, mws)
}

func (g *Group) register(method, path, name string, h http.Handler, mws []Middleware) {
	combined := append(append([]Middleware(nil), g.mws...), mws...)
	g.root.register(method, joinPath(g.prefix, path), name, h, combined)
}

func joinPath(parts ...string) string {
	var segments []string
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return "/" + strings.Join(segments, "/")
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	return joinPath(path)
}
