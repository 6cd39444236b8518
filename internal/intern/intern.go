// Package intern deduplicates file paths shared by many located values.
package intern

import "sync"

// Path is a handle to an interned file path. Two handles from the same
// Pool compare equal when they name the same path.
type Path struct {
	s *string
}

// String returns the path the handle refers to.
func (p Path) String() string {
	if p.s == nil {
		return ""
	}
	return *p.s
}

// IsZero reports whether the handle refers to no path.
func (p Path) IsZero() bool {
	return p.s == nil
}

// Pool is a concurrency-safe path table.
type Pool struct {
	mu    sync.RWMutex
	paths map[string]*string
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{paths: make(map[string]*string)}
}

// Intern returns the handle for path, adding it to the pool on first use.
func (p *Pool) Intern(path string) Path {
	p.mu.RLock()
	s, ok := p.paths[path]
	p.mu.RUnlock()
	if ok {
		return Path{s: s}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.paths[path]; ok {
		return Path{s: s}
	}
	s = new(string)
	*s = path
	p.paths[path] = s
	return Path{s: s}
}

// Len returns the number of distinct paths in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.paths)
}

var defaultPool = NewPool()

// Intern interns path in the process-wide pool.
func Intern(path string) Path {
	return defaultPool.Intern(path)
}
