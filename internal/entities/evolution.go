package entities

// EvolutionNode is one stage in an evolution chain tree
type EvolutionNode struct {
	Species  string
	Children []*EvolutionNode
}

// PrimaryPath walks from this node through the first child at every level and
// returns the visited species names. Alternate branches are not followed.
func (n *EvolutionNode) PrimaryPath() []string {
	var path []string
	for node := n; node != nil; {
		path = append(path, node.Species)
		if len(node.Children) == 0 {
			break
		}
		node = node.Children[0]
	}
	return path
}

// Walk visits every node depth-first, parents before children, passing the node depth.
// Returning false from fn prunes that node's subtree.
func (n *EvolutionNode) Walk(fn func(node *EvolutionNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *EvolutionNode) walk(fn func(node *EvolutionNode, depth int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Branches reports whether any node in the tree has more than one child
func (n *EvolutionNode) Branches() bool {
	branching := false
	n.Walk(func(node *EvolutionNode, _ int) bool {
		if len(node.Children) > 1 {
			branching = true
		}
		return !branching
	})
	return branching
}

// EvolutionStage is a stage on the displayed path with its sprite, nil when unavailable
type EvolutionStage struct {
	Name      string
	SpriteURL *string
}
