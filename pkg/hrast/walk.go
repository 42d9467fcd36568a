package hrast

import "iter"

// WalkFunc is called for each node visited by Walk. A non-nil error stops
// the walk.
type WalkFunc func(n *Node) error

// All yields root and its descendants in document order (pre-order).
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preorder(root, yield)
	}
}

func preorder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !preorder(child, yield) {
			return false
		}
	}
	return true
}

// Walk calls fn for root and every descendant in document order and returns
// the first error fn returns.
func Walk(root *Node, fn WalkFunc) error {
	for n := range All(root) {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every node under root, root included, that matches.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	for n := range All(root) {
		if match(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first matching node in document order, or nil.
func FindFirst(root *Node, match func(*Node) bool) *Node {
	for n := range All(root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns all nodes of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
