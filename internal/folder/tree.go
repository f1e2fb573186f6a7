package folder

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Node is a folder with its children and card sets attached.
type Node struct {
	Folder
	Children []*Node         `json:"children"`
	CardSets []CardSetSummary `json:"card_sets"`
}

// BuildTree nests flat records into a forest. Records whose parent is not in
// the input become roots. Siblings are ordered by OrderIndex; equal indexes
// keep input order. It never fails.
func BuildTree(records []Folder) []*Node {
	index := make(map[string]*Node, len(records))
	nodes := make([]*Node, len(records))
	for i, r := range records {
		n := &Node{Folder: r, Children: []*Node{}, CardSets: []CardSetSummary{}}
		nodes[i] = n
		// Keep the first record when ids repeat so the output stays a tree.
		if _, ok := index[r.ID]; !ok {
			index[r.ID] = n
		}
	}

	roots := []*Node{}
	for _, n := range nodes {
		if parent := parentOf(index, n); parent != nil {
			parent.Children = append(parent.Children, n)
			continue
		}
		roots = append(roots, n)
	}

	// Records that point at each other in a loop never reach a root. Cut each
	// loop at its member that comes first in input order and treat that member
	// as a root. Records hanging off a loop stay under their parent.
	position := make(map[*Node]int, len(nodes))
	for i, n := range nodes {
		position[n] = i
	}
	reached := make(map[*Node]bool, len(nodes))
	mark := func(n *Node) {
		Walk([]*Node{n}, func(d *Node, _ int) bool {
			reached[d] = true
			return true
		})
	}
	for _, r := range roots {
		mark(r)
	}
	for _, n := range nodes {
		if reached[n] {
			continue
		}
		cut := loopMember(index, n, position)
		parent := parentOf(index, cut)
		parent.Children = slices.DeleteFunc(parent.Children, func(c *Node) bool { return c == cut })
		roots = append(roots, cut)
		mark(cut)
	}

	sortNodes(roots)
	return roots
}

// loopMember follows parent links from n, which never reaches a root, to the
// loop it ends in and returns the loop member with the lowest position.
func loopMember(index map[string]*Node, n *Node, position map[*Node]int) *Node {
	seen := make(map[*Node]bool)
	for !seen[n] {
		seen[n] = true
		n = parentOf(index, n)
	}
	first := n
	for m := parentOf(index, n); m != n; m = parentOf(index, m) {
		if position[m] < position[first] {
			first = m
		}
	}
	return first
}

func parentOf(index map[string]*Node, n *Node) *Node {
	if n.ParentID == nil {
		return nil
	}
	if parent, ok := index[*n.ParentID]; ok && parent != n {
		return parent
	}
	return nil
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].OrderIndex < nodes[j].OrderIndex
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// AttachCardSets adds each card set to the node of its folder. Card sets
// outside the forest are dropped.
func AttachCardSets(roots []*Node, sets []CardSetSummary) {
	index := make(map[string]*Node)
	Walk(roots, func(n *Node, _ int) bool {
		index[n.ID] = n
		return true
	})
	for _, s := range sets {
		if s.FolderID == nil {
			continue
		}
		if n, ok := index[*s.FolderID]; ok {
			n.CardSets = append(n.CardSets, s)
		}
	}
}

// Walk visits nodes depth first, parents before children. Returning false
// from fn skips the node's children.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(nodes, 0)
}

// Find returns the node with id, or nil.
func Find(roots []*Node, id string) *Node {
	var found *Node
	Walk(roots, func(n *Node, _ int) bool {
		if found == nil && n.ID == id {
			found = n
		}
		return found == nil
	})
	return found
}

// StatsOf computes the statistics of a node.
func StatsOf(n *Node) Stats {
	s := Stats{
		CardSetCount:   len(n.CardSets),
		SubfolderCount: len(n.Children),
	}
	Walk([]*Node{n}, func(d *Node, _ int) bool {
		s.TotalCardSets += len(d.CardSets)
		return true
	})
	return s
}

// ExportStructure renders the forest as an indented plain-text outline.
func ExportStructure(roots []*Node) string {
	var b strings.Builder
	b.WriteString("Folder Structure:\n")
	Walk(roots, func(n *Node, depth int) bool {
		fmt.Fprintf(&b, "%s- %s (%d sets)\n", strings.Repeat("  ", depth), n.Name, len(n.CardSets))
		return true
	})
	return b.String()
}

// FormatPath joins the names of a root-first path.
func FormatPath(path []Folder) string {
	names := make([]string, len(path))
	for i, f := range path {
		names[i] = f.Name
	}
	return strings.Join(names, " / ")
}
