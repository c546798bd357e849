package style

import (
	"github.com/google/uuid"
)

// Method tells a walk callback whether a node is being entered or left.
type Method int

const (
	// Visit is delivered before a node's children.
	Visit Method = iota
	// Leave is delivered after a node's children.
	Leave
)

// ControlFlow is returned by traversal callbacks.
type ControlFlow int

const (
	// Continue keeps traversing.
	Continue ControlFlow = iota
	// Break stops the traversal.
	Break
)

// WalkFunc is called on entry and exit of every node.
type WalkFunc func(n Node, m Method) ControlFlow

// Walk traverses the tree rooted at n depth-first in stored order, calling
// fn with Visit before and Leave after each node's children. A Break from fn
// ends the walk immediately and is returned.
func Walk(n Node, fn WalkFunc) ControlFlow {
	if IsNil(n) {
		return Continue
	}
	if fn(n, Visit) == Break {
		return Break
	}
	for _, child := range Children(n) {
		if Walk(child, fn) == Break {
			return Break
		}
	}
	return fn(n, Leave)
}

// SearchKey calls action on the first node, in pre-order, matching pred and
// returns its result. ok is false when nothing matched.
func SearchKey[R any](root Node, pred func(Node) bool, action func(Node) R) (result R, ok bool) {
	Walk(root, func(n Node, m Method) ControlFlow {
		if m != Visit || !pred(n) {
			return Continue
		}
		result, ok = action(n), true
		return Break
	})
	return result, ok
}

// Search calls action on the node with the given id.
func Search[R any](root Node, id uuid.UUID, action func(Node) R) (R, bool) {
	return SearchKey(root, func(n Node) bool { return n.NodeID() == id }, action)
}

// FindNode returns the node with the given id.
func FindNode(root Node, id uuid.UUID) (Node, bool) {
	return Search(root, id, func(n Node) Node { return n })
}

// Find returns the node with the given id if it has type N. N may be a
// concrete node pointer or an interface such as Container.
func Find[N Node](root Node, id uuid.UUID) (N, bool) {
	n, found := FindNode(root, id)
	if !found {
		var zero N
		return zero, false
	}
	typed, ok := n.(N)
	return typed, ok
}

// ParentOf finds the folder that directly contains id and the child's index
// in it, in a single walk.
func ParentOf(root Node, id uuid.UUID) (Container, int, bool) {
	type hit struct {
		parent Container
		index  int
	}
	found, ok := SearchKey(root, func(n Node) bool {
		c, isContainer := n.(Container)
		return isContainer && c.IndexOf(id) >= 0
	}, func(n Node) hit {
		c := n.(Container)
		return hit{parent: c, index: c.IndexOf(id)}
	})
	if !ok {
		return nil, -1, false
	}
	return found.parent, found.index, true
}

// Contains reports whether id is root or one of its descendants.
func Contains(root Node, id uuid.UUID) bool {
	_, ok := FindNode(root, id)
	return ok
}

// Count returns the number of nodes in the tree, root included.
func Count(root Node) int {
	count := 0
	Walk(root, func(_ Node, m Method) ControlFlow {
		if m == Visit {
			count++
		}
		return Continue
	})
	return count
}

// Collision returns the first id in the subtree n that occurs twice inside n
// or is already used under root.
func Collision(root, n Node) (uuid.UUID, bool) {
	seen := make(map[uuid.UUID]struct{})
	var hit uuid.UUID
	flow := Walk(n, func(child Node, m Method) ControlFlow {
		if m != Visit {
			return Continue
		}
		id := child.NodeID()
		if _, dup := seen[id]; dup || Contains(root, id) {
			hit = id
			return Break
		}
		seen[id] = struct{}{}
		return Continue
	})
	return hit, flow == Break
}
