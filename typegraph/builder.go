package typegraph

// node is the concrete Node implementation used by Builder.
type node struct {
	ref     Ref
	kind    Kind
	items   Ref
	props   []Property
	members []Ref
	format  Format
}

func (n *node) Ref() Ref           { return n.ref }
func (n *node) Kind() Kind         { return n.kind }
func (n *node) Items() Ref         { return n.items }
func (n *node) Props() []Property  { return n.props }
func (n *node) Members() []Ref     { return n.members }
func (n *node) Format() Format     { return n.format }

// Builder assembles a Graph in memory. Refs are plain ints assigned in
// allocation order, so they are stable and comparable.
type Builder struct {
	nodes   map[Ref]*node
	next    int
	root    Ref
	rootTag string
	hasRoot bool
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[Ref]*node)}
}

func (b *Builder) alloc() Ref {
	r := b.next
	b.next++
	return r
}

// Primitive allocates a fresh leaf node of one of the primitive kinds
// (None, Any, Null, Bool, Integer, Double, String, Map, Object, Enum).
func (b *Builder) Primitive(kind Kind) Ref {
	r := b.alloc()
	b.nodes[r] = &node{ref: r, kind: kind}
	return r
}

// TransformedString allocates a string node carrying a format tag.
func (b *Builder) TransformedString(format Format) Ref {
	r := b.alloc()
	b.nodes[r] = &node{ref: r, kind: KindTransformedString, format: format}
	return r
}

// Array allocates an array node over the given item type.
func (b *Builder) Array(items Ref) Ref {
	r := b.alloc()
	b.nodes[r] = &node{ref: r, kind: KindArray, items: items}
	return r
}

// Class allocates a class node with the given ordered properties.
func (b *Builder) Class(props []Property) Ref {
	r := b.alloc()
	b.nodes[r] = &node{ref: r, kind: KindClass, props: props}
	return r
}

// Union allocates a union node over the given member types.
func (b *Builder) Union(members []Ref) Ref {
	r := b.alloc()
	b.nodes[r] = &node{ref: r, kind: KindUnion, members: members}
	return r
}

// SetRoot designates the single top-level type and its user-facing tag.
func (b *Builder) SetRoot(ref Ref, tag string) {
	b.root, b.rootTag, b.hasRoot = ref, tag, true
}

// Build finalizes the graph. Returns false if no root was set.
func (b *Builder) Build() (Graph, bool) {
	if !b.hasRoot {
		return nil, false
	}
	return &graph{nodes: b.nodes, root: b.root, rootTag: b.rootTag}, true
}

type graph struct {
	nodes   map[Ref]*node
	root    Ref
	rootTag string
}

func (g *graph) Resolve(ref Ref) (Node, bool) {
	n, ok := g.nodes[ref]
	if !ok {
		return nil, false
	}
	return n, true
}

func (g *graph) Root() Ref        { return g.root }
func (g *graph) RootTag() string  { return g.rootTag }
