package types

// NodeKind distinguishes category branches from leaves.
type NodeKind int

const (
	BranchNode NodeKind = iota
	LeafNode
	// MergedLeafNode is the synthetic "All" tab of a results view.
	MergedLeafNode
)

func (k NodeKind) String() string {
	switch k {
	case BranchNode:
		return "branch"
	case LeafNode:
		return "leaf"
	case MergedLeafNode:
		return "merged"
	default:
		return "unknown"
	}
}

// Display selects how a leaf's candidates are presented.
type Display int

const (
	DisplayStandard Display = iota
	// DisplayAcademic leaves mix several roles, so cards show the post title.
	DisplayAcademic
)

// TabNode is a tab in the directory tree. Branches carry Children, leaves
// carry Candidates.
type TabNode struct {
	ID         string
	Label      string
	Term       string // role name or group term behind a leaf
	Category   Category
	Kind       NodeKind
	Display    Display
	Active     bool
	Children   []TabNode
	Candidates []Candidate
}

func (n TabNode) IsLeaf() bool { return n.Kind != BranchNode }

// ActiveChild returns the index of the active child, or -1.
func (n TabNode) ActiveChild() int {
	for i, c := range n.Children {
		if c.Active {
			return i
		}
	}
	return -1
}

// Count returns the number of distinct candidates below n. Academic leaves
// match by substring and may overlap, so a candidate filed under two groups
// counts once. Merged leaves are skipped.
func (n TabNode) Count() int {
	if n.Kind == MergedLeafNode {
		return 0
	}
	if n.IsLeaf() {
		return len(n.Candidates)
	}
	seen := make(map[uintptr]struct{})
	total := 0
	n.walkLeaves(func(leaf TabNode) {
		for _, c := range leaf.Candidates {
			k := c.identity()
			if k == 0 {
				total++
				continue
			}
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				total++
			}
		}
	})
	return total
}

func (n TabNode) walkLeaves(fn func(TabNode)) {
	for _, c := range n.Children {
		switch {
		case c.Kind == MergedLeafNode:
		case c.IsLeaf():
			fn(c)
		default:
			c.walkLeaves(fn)
		}
	}
}

// Tree is the outer tab row.
type Tree struct {
	Branches []TabNode
}

func (t Tree) Empty() bool { return len(t.Branches) == 0 }

// ActiveIndex returns the index of the active outer tab, or -1.
func (t Tree) ActiveIndex() int {
	for i, b := range t.Branches {
		if b.Active {
			return i
		}
	}
	return -1
}

// Branch returns the outer tab for a category.
func (t Tree) Branch(c Category) (TabNode, bool) {
	for _, b := range t.Branches {
		if b.Category == c {
			return b, true
		}
	}
	return TabNode{}, false
}
