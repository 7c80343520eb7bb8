package gateway

import "sync"

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Navigator is where the gateway sends the user after a 401.
type Navigator interface {
	Location() string
	Navigate(path string)
}

func IsPublicPath(p string) bool {
	return p == LoginPath || p == RegisterPath
}

// MemoryNavigator tracks a location without any UI behind it.
type MemoryNavigator struct {
	mu        sync.Mutex
	location  string
	redirects []string
	onNav     func(path string)
}

func NewMemoryNavigator(location string, onNavigate func(path string)) *MemoryNavigator {
	return &MemoryNavigator{location: location, onNav: onNavigate}
}

func (n *MemoryNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *MemoryNavigator) SetLocation(p string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = p
}

func (n *MemoryNavigator) Navigate(p string) {
	n.mu.Lock()
	n.location = p
	n.redirects = append(n.redirects, p)
	cb := n.onNav
	n.mu.Unlock()

	if cb != nil {
		cb(p)
	}
}

func (n *MemoryNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.redirects...)
}
