package typesystem

import (
	"github.com/funvibe/tmc/internal/diagnostics"
	"github.com/funvibe/tmc/internal/token"
)

// constraint records one required cast edge between two types, at least
// one of which may still be an unresolved Var.
type constraint struct {
	from, to Type
	loc      token.Location
}

// Graph accumulates the cast constraints gathered while bidirectionally
// checking an expression, then solves them in three phases: function
// decomposition, Tarjan SCC cycle collapse, and a bounds-resolution loop
// (spec.md §4.1). The casts left over are not checked against CanCast
// afterwards, so Solve does not report a cast between two concrete types
// that cannot hold.
type Graph struct {
	next        int
	constraints []constraint
	bound       map[int]Type // vars pinned to a concrete Tape/Function
}

// NewGraph creates an empty constraint graph.
func NewGraph() *Graph {
	return &Graph{bound: map[int]Type{}}
}

// Push allocates a fresh, unresolved type variable.
func (g *Graph) Push() Type {
	v := Var{ID: g.next}
	g.next++
	return v
}

// Cast records that a value of type `from` must be usable as `to`.
func (g *Graph) Cast(from, to Type, loc token.Location) *diagnostics.CompileError {
	g.constraints = append(g.constraints, constraint{from, to, loc})
	return nil
}

func (g *Graph) resolveShallow(t Type) Type {
	for {
		v, ok := t.(Var)
		if !ok {
			return t
		}
		b, ok := g.bound[v.ID]
		if !ok {
			return t
		}
		t = b
	}
}

// decompose expands constraints between Function types into constraints
// between their components, to a fixpoint, and records direct bindings
// for vars forced to a concrete Tape/Function.
func (g *Graph) decompose() *diagnostics.CompileError {
	for {
		changed := false
		next := make([]constraint, 0, len(g.constraints))
		for _, c := range g.constraints {
			from := g.resolveShallow(c.from)
			to := g.resolveShallow(c.to)

			if v, ok := from.(Var); ok {
				if ct, ok := to.(Function); ok {
					if err := g.bind(v, ct, c.loc); err != nil {
						return err
					}
					changed = true
					continue
				}
				if ct, ok := to.(Tape); ok {
					if err := g.bind(v, ct, c.loc); err != nil {
						return err
					}
					changed = true
					continue
				}
				if _, ok := to.(Halt); ok {
					// Halt may flow anywhere; imposes no binding on from.
				}
			}
			if v, ok := to.(Var); ok {
				if cf, ok := from.(Function); ok {
					if err := g.bind(v, cf, c.loc); err != nil {
						return err
					}
					changed = true
					continue
				}
				if cf, ok := from.(Tape); ok {
					if err := g.bind(v, cf, c.loc); err != nil {
						return err
					}
					changed = true
					continue
				}
			}

			ff, fIsFunc := from.(Function)
			tf, tIsFunc := to.(Function)
			if fIsFunc && tIsFunc {
				next = append(next, constraint{tf.Arg, ff.Arg, c.loc})
				next = append(next, constraint{ff.Ret, tf.Ret, c.loc})
				changed = true
				continue
			}

			next = append(next, constraint{from, to, c.loc})
		}
		g.constraints = next
		if !changed {
			return nil
		}
	}
}

func (g *Graph) bind(v Var, t Type, loc token.Location) *diagnostics.CompileError {
	if existing, ok := g.bound[v.ID]; ok {
		if !Equal(existing, t) {
			return diagnostics.New(diagnostics.PhaseType, diagnostics.ErrTypeCastFailure, loc, existing.String(), t.String())
		}
		return nil
	}
	g.bound[v.ID] = t
	return nil
}

// tarjan collapses strongly-connected components of the remaining
// Var-to-Var cast edges so a cyclic group of mutually-casting variables
// (produced by recursive Y-bound functions) resolves as one unit.
func (g *Graph) tarjan(edges map[int][]int) map[int]int {
	index := 0
	indices := map[int]int{}
	lowlink := map[int]int{}
	onStack := map[int]bool{}
	var stack []int
	rep := map[int]int{}

	var visit func(v int)
	visit = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, seen := indices[w]; !seen {
				visit(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				rep[w] = v // v is the SCC's chosen representative
				if w == v {
					break
				}
			}
		}
	}

	var nodes []int
	for v := range edges {
		nodes = append(nodes, v)
	}
	for v := range edges {
		for _, w := range edges[v] {
			_ = w
		}
	}
	for _, v := range nodes {
		if _, seen := indices[v]; !seen {
			visit(v)
		}
	}
	return rep
}

// Solve runs the three phases and returns the resolved type for every
// Var created via Push, addressed by ID.
func (g *Graph) Solve() (map[int]Type, *diagnostics.CompileError) {
	if err := g.decompose(); err != nil {
		return nil, err
	}

	// Build the Var-Var edge graph and per-var concrete lower/upper
	// lattice bounds from what remains (Symbol/Union/Halt constraints
	// only, after decompose() has stripped out every Function/Tape one).
	edges := map[int][]int{}
	lower := map[int]map[string]bool{} // types definitely flowing IN
	upper := map[int]map[string]bool{} // types this var is cast OUT to

	ensure := func(m map[int]map[string]bool, id int) {
		if m[id] == nil {
			m[id] = map[string]bool{}
		}
	}

	for _, c := range g.constraints {
		from := g.resolveShallow(c.from)
		to := g.resolveShallow(c.to)
		fv, fIsVar := from.(Var)
		tv, tIsVar := to.(Var)

		switch {
		case fIsVar && tIsVar:
			edges[fv.ID] = append(edges[fv.ID], tv.ID)
			ensure(lower, fv.ID)
			ensure(upper, tv.ID)
		case fIsVar && !tIsVar:
			ensure(upper, fv.ID)
			upper[fv.ID][to.String()] = true
		case !fIsVar && tIsVar:
			ensure(lower, tv.ID)
			lower[tv.ID][from.String()] = true
		}
	}

	rep := g.tarjan(edges)

	repOf := func(id int) int {
		if r, ok := rep[id]; ok {
			return r
		}
		return id
	}

	mergedLower := map[int]map[string]bool{}
	mergedUpper := map[int]map[string]bool{}
	for id, set := range lower {
		r := repOf(id)
		if mergedLower[r] == nil {
			mergedLower[r] = map[string]bool{}
		}
		for k := range set {
			mergedLower[r][k] = true
		}
	}
	for id, set := range upper {
		r := repOf(id)
		if mergedUpper[r] == nil {
			mergedUpper[r] = map[string]bool{}
		}
		for k := range set {
			mergedUpper[r][k] = true
		}
	}

	repEdges := map[int]map[int]bool{}
	for from, tos := range edges {
		rf := repOf(from)
		for _, to := range tos {
			rt := repOf(to)
			if rf == rt {
				continue
			}
			if repEdges[rf] == nil {
				repEdges[rf] = map[int]bool{}
			}
			repEdges[rf][rt] = true
		}
	}

	// Propagate lattice bounds across representative edges to a fixpoint:
	// anything flowing into `from` also flows into `to`.
	for {
		changed := false
		for from, tos := range repEdges {
			for to := range tos {
				for k := range mergedLower[from] {
					if !mergedLower[to][k] {
						if mergedLower[to] == nil {
							mergedLower[to] = map[string]bool{}
						}
						mergedLower[to][k] = true
						changed = true
					}
				}
				for k := range mergedUpper[to] {
					if !mergedUpper[from][k] {
						if mergedUpper[from] == nil {
							mergedUpper[from] = map[string]bool{}
						}
						mergedUpper[from][k] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	resolved := map[int]Type{}
	resolve := func(id int) Type {
		if b, ok := g.bound[id]; ok {
			return b
		}
		r := repOf(id)
		lo := mergedLower[r]
		hi := mergedUpper[r]
		hasUnion := lo["Union"] || hi["Union"]
		hasSymbol := lo["Symbol"] || hi["Symbol"]
		switch {
		case hasUnion:
			return Union{}
		case hasSymbol:
			return Symbol{}
		default:
			// No Symbol/Union anchor reaches this var at all: the
			// symbol-vs-union ambiguity is deferred to the union
			// resolver, per spec.md §9.
			return UnresolvedUnion{ID: 0}
		}
	}

	for id := 0; id < g.next; id++ {
		resolved[id] = resolve(id)
	}
	return resolved, nil
}

// Apply substitutes every Var in t with its resolved type, including the
// Vars inside a resolved type; a Var met again inside its own resolution
// is left as it is.
func Apply(t Type, resolved map[int]Type) Type {
	return apply(t, resolved, map[int]bool{})
}

func apply(t Type, resolved map[int]Type, active map[int]bool) Type {
	switch t := t.(type) {
	case Var:
		r, ok := resolved[t.ID]
		if !ok || active[t.ID] {
			return t
		}
		active[t.ID] = true
		out := apply(r, resolved, active)
		delete(active, t.ID)
		return out
	case Function:
		return Function{Arg: apply(t.Arg, resolved, active), Ret: apply(t.Ret, resolved, active)}
	default:
		return t
	}
}
