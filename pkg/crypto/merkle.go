package crypto

import (
	"math"
	"math/big"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Node is a node of a Merkle tree. Leaves carry the original leaf value
// in Content; internal nodes have exactly two children and no content.
//
//	                root
//	              /      \
//	          hash0123   hash44     (right = duplicated leaf when odd)
//	          /    \      /  \
//	       h01    h23   h4   h4
//	       /\     /\
//	      h0 h1  h2 h3
type Node struct {
	Value   types.Digest
	Left    *Node
	Right   *Node
	Parent  *Node
	Content []byte // only set on leaves
	isLeaf  bool
}

// IsLeaf reports whether the node is a leaf (holds original content).
func (n *Node) IsLeaf() bool { return n.isLeaf }

// Tree is a balanced binary hash tree built over an ordered sequence of
// leaf values. The zero Tree is the empty tree.
type Tree struct {
	leaves []*Node // leaves in tree order, after odd-count duplication
	root   *Node
}

// NewTree builds a Merkle tree over the given ordered leaf values,
// following the construction contract of spec §4.B: leaves hash to
// H(v), an odd leaf count is fixed by duplicating the last leaf, and the
// tree is built top-down splitting each subrange so the left child
// carries the remainder and the right child is a pure power of two.
func NewTree(leaves [][]byte) *Tree {
	t := &Tree{}
	if len(leaves) == 0 {
		return t
	}

	nodes := make([]*Node, 0, len(leaves)+1)
	for _, v := range leaves {
		nodes = append(nodes, &Node{Value: H(v), Content: v, isLeaf: true})
	}
	if len(nodes)%2 == 1 {
		last := nodes[len(nodes)-1]
		nodes = append(nodes, &Node{Value: last.Value, Content: last.Content, isLeaf: true})
	}

	t.leaves = nodes
	t.root = generate(nodes)
	setParents(t.root)
	return t
}

// split returns the index at which a subrange of length m is divided so
// the left half carries the remainder and the right half is a pure power
// of two, half of the largest power of two not above m:
// m - 2^floor(log2 m) / 2 (m=6 splits 4+2, m=10 splits 6+4). Spec §9 flags that
// an off-1 formula here produces an unbalanced, non-verifiable tree.
func split(m int) int {
	pow := math.Pow(2, math.Floor(math.Log2(float64(m))))
	return m - int(pow)/2
}

func generate(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	if len(nodes) == 2 {
		value := combine(nodes[0].Value, nodes[1].Value)
		return &Node{Value: value, Left: nodes[0], Right: nodes[1]}
	}
	idx := split(len(nodes))
	left := generate(nodes[:idx])
	right := generate(nodes[idx:])
	return &Node{Value: combine(left.Value, right.Value), Left: left, Right: right}
}

func setParents(n *Node) {
	if n == nil || n.Left == nil {
		return
	}
	n.Left.Parent = n
	n.Right.Parent = n
	setParents(n.Left)
	setParents(n.Right)
}

// combine computes the value of an internal node from its two children:
// H(str(int(L,16) + int(R,16))), the big-integer sum, not concatenation
// and not bitwise-OR (spec §4.B/§9). This is commutative, which is what
// lets a verifier rehash a sibling pair without a left/right indicator.
func combine(l, r types.Digest) types.Digest {
	sum := new(big.Int).Add(l.Int(), r.Int())
	return H([]byte(sum.String()))
}

// Root returns the tree's root digest. An empty tree's root is the fixed
// sentinel (spec §4.B).
func (t *Tree) Root() types.Digest {
	if t.root == nil {
		return types.EmptyMerkleRoot()
	}
	return t.root.Value
}

// Path returns the ordered sibling values encountered walking from the
// leaf whose content equals v up to the root (root excluded). The bool
// result is false if v is not present in the tree (spec §4.B's
// "distinguishable empty/error result").
func (t *Tree) Path(v []byte) ([]types.Digest, bool) {
	var leaf *Node
	for _, n := range t.leaves {
		if string(n.Content) == string(v) {
			leaf = n
			break
		}
	}
	if leaf == nil {
		return nil, false
	}

	var path []types.Digest
	for cur := leaf; cur.Parent != nil; cur = cur.Parent {
		sibling := cur.Parent.Left
		if sibling == cur {
			sibling = cur.Parent.Right
		}
		path = append(path, sibling.Value)
	}
	return path, true
}

// VerifyPath recomputes the root from a leaf value and its inclusion
// path and reports whether it matches the given root (spec §4.B
// Verification).
func VerifyPath(leaf []byte, path []types.Digest, root types.Digest) bool {
	h := H(leaf)
	for _, sibling := range path {
		h = combine(h, sibling)
	}
	return h == root
}
