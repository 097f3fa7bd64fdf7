// The declare package is used to generate castfile structures in a
// declarative style.
//
// Most items have a Declare method, which returns a new castfile structure
// corresponding to the declared item.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//	import . "github.com/castapi/castfile/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier:
//
//	doc := Root(
//		Node(castfile.RootID,
//			Node(castfile.SkeletonID,
//				Node(castfile.BoneID,
//					Hash(1),
//					Property("n", castfile.ValueString("root")),
//				),
//			),
//		),
//	).Declare()
package declare

import (
	"github.com/castapi/castfile"
)

// Root declares a castfile.Document with one declared node per root.
func Root(nodes ...node) root {
	return root(nodes)
}

type root []node

// Declare evaluates the root declaration, generating every node and setting
// up the hierarchy.
func (droot root) Declare() *castfile.Document {
	doc := castfile.NewDocument()
	for _, dnode := range droot {
		doc.AddRoot(dnode.build())
	}
	return doc
}

// Element is implemented by declarations that can be within a node
// declaration: Hash, Property, and nested Node declarations.
type Element interface {
	element()
}

// Node declares a castfile.Node with the given identifier.
func Node(identifier uint32, elements ...Element) node {
	return node{identifier: identifier, elements: elements}
}

type node struct {
	identifier uint32
	elements   []Element
}

func (node) element() {}

// Declare evaluates the node declaration, generating the node and its
// descendants. The node has no parent.
func (dnode node) Declare() *castfile.Node {
	return dnode.build()
}

func (dnode node) build() *castfile.Node {
	n := castfile.NewNode(dnode.identifier, nil)
	for _, e := range dnode.elements {
		switch e := e.(type) {
		case hash:
			n.Hash = uint64(e)
		case prop:
			n.Set(e.name, e.value)
		case node:
			n.AddChild(e.build())
		}
	}
	return n
}

// Hash declares the hash of the containing node.
func Hash(h uint64) Element {
	return hash(h)
}

type hash uint64

func (hash) element() {}

// Property declares a property of the containing node. Declaring the same
// name twice overwrites, as Node.Set does.
func Property(name string, value castfile.Value) Element {
	return prop{name: name, value: value}
}

type prop struct {
	name  string
	value castfile.Value
}

func (prop) element() {}
