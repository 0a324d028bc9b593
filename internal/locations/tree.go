// Package locations builds the location hierarchy from flat rows and
// maintains materialized paths.
package locations

import "github.com/erazemk/shramba/internal/model"

// Node is a location together with its direct children.
type Node struct {
	model.Location
	Children []*Node `json:"children"`
}

// FlatNode is a location with its depth in the hierarchy, for indented
// rendering.
type FlatNode struct {
	model.Location
	Depth int `json:"depth"`
}

// BuildHierarchy turns flat parent-referencing rows into a forest.
// A location whose parent is missing from the input becomes a root.
// Children keep the order they had in the input.
func BuildHierarchy(locs []model.Location) []*Node {
	nodes := make(map[int64]*Node, len(locs))
	for _, l := range locs {
		nodes[l.ID] = &Node{Location: l, Children: []*Node{}}
	}

	roots := []*Node{}
	for _, l := range locs {
		n := nodes[l.ID]
		if l.ParentID != nil && *l.ParentID != l.ID {
			if parent, ok := nodes[*l.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	// A parent cycle leaves its members unreachable from any root. Promote
	// one member per cycle so every location still shows up exactly once.
	seen := make(map[int64]bool, len(locs))
	for _, r := range roots {
		mark(r, seen)
	}
	for _, l := range locs {
		if seen[l.ID] {
			continue
		}
		n := nodes[l.ID]
		detach(nodes, n)
		roots = append(roots, n)
		mark(n, seen)
	}

	return roots
}

func mark(n *Node, seen map[int64]bool) {
	seen[n.ID] = true
	for _, c := range n.Children {
		if !seen[c.ID] {
			mark(c, seen)
		}
	}
}

func detach(nodes map[int64]*Node, n *Node) {
	if n.ParentID == nil {
		return
	}
	parent, ok := nodes[*n.ParentID]
	if !ok {
		return
	}
	for i, c := range parent.Children {
		if c == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// Flatten walks the forest depth-first.
func Flatten(forest []*Node) []FlatNode {
	var out []FlatNode
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			out = append(out, FlatNode{Location: n.Location, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return out
}

// ComputePath returns the materialized path for a location named name under
// parent (nil for a root).
func ComputePath(name string, parent *model.Location) string {
	if parent == nil {
		return name
	}
	return parent.Path + model.PathSeparator + name
}

// Descendants returns every location below id, parents before children.
func Descendants(locs []model.Location, id int64) []model.Location {
	children := make(map[int64][]model.Location)
	for _, l := range locs {
		if l.ParentID != nil {
			children[*l.ParentID] = append(children[*l.ParentID], l)
		}
	}

	var out []model.Location
	seen := map[int64]bool{id: true}
	queue := []int64{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
			queue = append(queue, c.ID)
		}
	}
	return out
}

// IsDescendant reports whether candidate lies in the subtree rooted at
// ancestor (a location is its own descendant).
func IsDescendant(locs []model.Location, ancestor, candidate int64) bool {
	if ancestor == candidate {
		return true
	}
	for _, d := range Descendants(locs, ancestor) {
		if d.ID == candidate {
			return true
		}
	}
	return false
}

// Repath recomputes the paths of root's descendants from root's current
// path. It returns only the locations whose path changed.
func Repath(locs []model.Location, root model.Location) []model.Location {
	paths := map[int64]string{root.ID: root.Path}
	var changed []model.Location
	for _, d := range Descendants(locs, root.ID) {
		parentPath, ok := paths[*d.ParentID]
		if !ok {
			continue
		}
		newPath := parentPath + model.PathSeparator + d.Name
		paths[d.ID] = newPath
		if newPath != d.Path {
			d.Path = newPath
			changed = append(changed, d)
		}
	}
	return changed
}
