// Package dom adapts the golang.org/x/net/html document tree to the
// views the style engine needs: an element view with tag/id/class
// access, upward and sideways navigation, and a text-node test. The DOM
// itself stays external; nothing here owns or mutates nodes.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node is the DOM node type the engine traverses.
type Node = html.Node

// Element is a read-only element view over a DOM node.
type Element struct {
	node *Node
}

// AsElement returns the element view of n, or false when n is not an
// element node.
func AsElement(n *Node) (Element, bool) {
	if n == nil || n.Type != html.ElementNode {
		return Element{}, false
	}
	return Element{node: n}, true
}

// MustElement returns the element view of n and panics when n is not an
// element. Callers use it where a non-element is a contract breach.
func MustElement(n *Node) Element {
	el, ok := AsElement(n)
	if !ok {
		panic("dom: node is not an element")
	}
	return el
}

// IsText reports whether n is a text node.
func IsText(n *Node) bool {
	return n != nil && n.Type == html.TextNode
}

// Node returns the underlying DOM node.
func (e Element) Node() *Node {
	return e.node
}

// TagName returns the element's tag name as produced by the HTML parser
// (already lowercased for HTML documents).
func (e Element) TagName() string {
	return e.node.Data
}

// Attr looks up an attribute by name. The second result is false when
// the attribute is absent, distinguishing it from an empty value.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "" when absent.
func (e Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// ClassList returns the element's classes split on whitespace.
func (e Element) ClassList() []string {
	cls, _ := e.Attr("class")
	return strings.Fields(cls)
}

// HasClass reports whether the element's class list contains c.
func (e Element) HasClass(c string) bool {
	for _, have := range e.ClassList() {
		if have == c {
			return true
		}
	}
	return false
}

// ParentElement returns the nearest ancestor that is an element, or nil
// at the top of the tree. The ancestor chain of a parsed document is
// finite and acyclic, so walks over it terminate.
func ParentElement(n *Node) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// PreviousElementSibling returns the closest preceding sibling that is an
// element, skipping text and comment nodes, or nil when none exists.
func PreviousElementSibling(n *Node) *Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Children returns n's child nodes in document order.
func Children(n *Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*Node, error) {
	return html.Parse(r)
}

// DocumentElement returns the root <html> element of a parsed document,
// or nil when the tree holds none.
func DocumentElement(doc *Node) *Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode && doc.Data == "html" {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			return c
		}
	}
	return nil
}

// Elem builds an element node for tests and examples. The descriptor is
// a compact tag#id.class.class form: "div#parent.note". Children are
// appended in order.
func Elem(desc string, children ...*Node) *Node {
	tag := desc
	var id string
	var classes []string

	if i := strings.IndexAny(tag, "#."); i >= 0 {
		rest := tag[i:]
		tag = tag[:i]
		for rest != "" {
			mark := rest[0]
			rest = rest[1:]
			end := strings.IndexAny(rest, "#.")
			if end < 0 {
				end = len(rest)
			}
			switch mark {
			case '#':
				id = rest[:end]
			case '.':
				classes = append(classes, rest[:end])
			}
			rest = rest[end:]
		}
	}

	n := &Node{Type: html.ElementNode, Data: tag}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// Text builds a text node for tests and examples.
func Text(data string) *Node {
	return &Node{Type: html.TextNode, Data: data}
}
