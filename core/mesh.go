package isoline

// owners holds the indexes of the (at most two) triangles sharing an edge.
// Unused slots are -1.
type owners [2]int

// mesh is an arena of triangles addressed by stable index. Removed slots go to
// a free list and are reused. The edge map is kept in sync on every add and
// remove, so finding the triangles around an edge never scans the arena.
type mesh struct {
	tris  []Triangle
	alive []bool
	free  []int
	edges map[Edge]owners
	count int
}

func newMesh() *mesh {
	return &mesh{edges: make(map[Edge]owners)}
}

// add stores t and registers it as an owner of its three edges.
func (m *mesh) add(t Triangle) int {
	var i int
	if n := len(m.free); n > 0 {
		i = m.free[n-1]
		m.free = m.free[:n-1]
		m.tris[i] = t
		m.alive[i] = true
	} else {
		i = len(m.tris)
		m.tris = append(m.tris, t)
		m.alive = append(m.alive, true)
	}
	m.count++

	for _, e := range t.edges {
		o, ok := m.edges[e]
		if !ok {
			o = owners{-1, -1}
		}
		switch {
		case o[0] < 0:
			o[0] = i
		case o[1] < 0:
			o[1] = i
		default:
			fatalf(ErrEdgeOwners, "edge %v owned by %v and %v, adding %v", e, m.tris[o[0]], m.tris[o[1]], t)
		}
		m.edges[e] = o
	}
	return i
}

// remove drops the triangle at index i and unregisters its edges.
func (m *mesh) remove(i int) {
	if !m.alive[i] {
		return
	}
	t := m.tris[i]
	m.alive[i] = false
	m.free = append(m.free, i)
	m.count--

	for _, e := range t.edges {
		o := m.edges[e]
		switch i {
		case o[0]:
			o[0], o[1] = o[1], -1
		case o[1]:
			o[1] = -1
		}
		if o[0] < 0 {
			delete(m.edges, e)
			continue
		}
		m.edges[e] = o
	}
}

// owners returns the indexes of the live triangles having e as an edge.
func (m *mesh) owners(e Edge) []int {
	o, ok := m.edges[e]
	if !ok {
		return nil
	}
	if o[1] < 0 {
		return []int{o[0]}
	}
	return []int{o[0], o[1]}
}

// locate returns the index of the first live triangle containing p, or -1.
// This is a linear scan over the arena.
func (m *mesh) locate(p Point) int {
	for i, t := range m.tris {
		if m.alive[i] && t.ContainsPoint(p) {
			return i
		}
	}
	return -1
}

// triangles returns the live triangles in arena order.
func (m *mesh) triangles() []Triangle {
	out := make([]Triangle, 0, m.count)
	for i, t := range m.tris {
		if m.alive[i] {
			out = append(out, t)
		}
	}
	return out
}

// edgeStack is the legalization worklist.
type edgeStack []Edge

func (s *edgeStack) Push(e Edge) {
	*s = append(*s, e)
}

func (s *edgeStack) Pop() Edge {
	n := len(*s)
	e := (*s)[n-1]
	*s = (*s)[:n-1]
	return e
}

func (s *edgeStack) Empty() bool {
	return len(*s) == 0
}
