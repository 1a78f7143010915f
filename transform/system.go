package transform

import (
	"slices"

	"github.com/plus3/puppet/ecs"
)

// System recomputes every WorldTransform's world matrix, parents before
// children.
type System struct {
	Transforms ecs.Query[struct {
		ecs.EntityId
		*WorldTransform
		Parent *Parent `ecs:"optional"`
	}]

	nodes []node
	index map[ecs.EntityId]int
}

type node struct {
	id     ecs.EntityId
	wt     *WorldTransform
	parent ecs.EntityId
	depth  int
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	s.nodes = s.nodes[:0]
	if s.index == nil {
		s.index = make(map[ecs.EntityId]int)
	}
	clear(s.index)

	for item := range s.Transforms.Iter() {
		n := node{id: item.EntityId, wt: item.WorldTransform, depth: -1}
		if item.Parent != nil {
			if id, ok := frame.Storage.ResolveEntityRef(item.Parent.Ref); ok {
				n.parent = id
			}
		}
		s.index[n.id] = len(s.nodes)
		s.nodes = append(s.nodes, n)
	}

	for i := range s.nodes {
		s.depth(i)
	}

	slices.SortStableFunc(s.nodes, func(a, b node) int {
		return a.depth - b.depth
	})
	for i := range s.nodes {
		s.index[s.nodes[i].id] = i
	}

	for _, n := range s.nodes {
		var parent *WorldTransform
		if n.depth > 0 {
			parent = s.nodes[s.index[n.parent]].wt
		}
		n.wt.UpdateMatrix(parent)
	}
}

// depth walks the parent chain of node i and assigns depths along it.
// Parents outside the query end the chain at a root. A parent loop is cut by
// turning the first repeated node into a root.
func (s *System) depth(i int) int {
	if d := s.nodes[i].depth; d >= 0 {
		return d
	}

	var chain []int
	onChain := make(map[int]bool)
	base := 0
	cur := i
	for {
		if d := s.nodes[cur].depth; d >= 0 {
			base = d + 1
			break
		}
		if onChain[cur] {
			s.nodes[cur].parent = 0
			return s.depth(i)
		}
		chain = append(chain, cur)
		onChain[cur] = true

		parentIdx, ok := s.parentIndex(cur)
		if !ok {
			break
		}
		cur = parentIdx
	}

	for j := len(chain) - 1; j >= 0; j-- {
		s.nodes[chain[j]].depth = base
		base++
	}
	return s.nodes[i].depth
}

func (s *System) parentIndex(i int) (int, bool) {
	parent := s.nodes[i].parent
	if parent == 0 {
		return 0, false
	}
	idx, ok := s.index[parent]
	if !ok {
		s.nodes[i].parent = 0
	}
	return idx, ok
}
