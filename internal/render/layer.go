package render

import (
	"sync"

	"chosenoffset.com/templar/internal/scene"
)

// Node is a drawable element of the scene graph. Nodes position themselves
// in world space and use the camera to find their screen location.
type Node interface {
	Draw(r Renderer, dst Image, cam scene.Camera)
}

// Layer is an ordered insertion point in the scene graph. Owners attach and
// detach their own nodes; a layer never touches a node it was not given.
// Layer is safe for concurrent use.
type Layer struct {
	mu    sync.Mutex
	nodes []Node
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Attach appends n so it draws above existing nodes. Attaching a node that is
// already present is a no-op.
func (l *Layer) Attach(n Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.nodes {
		if existing == n {
			return
		}
	}
	l.nodes = append(l.nodes, n)
}

// Detach removes n and reports whether it was present.
func (l *Layer) Detach(n Node) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.nodes {
		if existing == n {
			l.nodes = append(l.nodes[:i:i], l.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether n is attached.
func (l *Layer) Contains(n Node) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.nodes {
		if existing == n {
			return true
		}
	}
	return false
}

// Len returns the number of attached nodes.
func (l *Layer) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.nodes)
}

// Draw draws every node in attach order.
func (l *Layer) Draw(r Renderer, dst Image, cam scene.Camera) {
	l.mu.Lock()
	nodes := make([]Node, len(l.nodes))
	copy(nodes, l.nodes)
	l.mu.Unlock()

	for _, n := range nodes {
		n.Draw(r, dst, cam)
	}
}
