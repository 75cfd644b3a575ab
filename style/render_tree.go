package style

import (
	"go.uber.org/zap"

	"stylecore/dom"
)

// RenderNode mirrors one qualifying DOM node with its fully computed
// style. Children are owned by the node; Parent is a back-reference
// used only for inheritance lookups and never extends the parent's
// lifetime.
type RenderNode struct {
	Node       *dom.Node
	Properties PropertyMap
	Children   []*RenderNode
	Parent     *RenderNode
}

// GetStyle returns the node's computed value for a property. Only
// inheritable properties walk up the parent chain when the node itself
// has none; the fallback either way is the initial value.
func (n *RenderNode) GetStyle(p Property) Value {
	if v, ok := n.Properties[p]; ok {
		return v
	}
	if p.Inheritable() {
		for cur := n.Parent; cur != nil; cur = cur.Parent {
			if v, ok := cur.Properties[p]; ok {
				return v
			}
		}
	}
	return p.Initial()
}

// Display returns the node's computed display mode.
func (n *RenderNode) Display() Display {
	if d, ok := n.GetStyle(PropDisplay).(Display); ok {
		return d
	}
	return DisplayInline
}

// Tag returns the DOM tag name, or "#text" for text nodes.
func (n *RenderNode) Tag() string {
	if dom.IsText(n.Node) {
		return "#text"
	}
	if el, ok := dom.AsElement(n.Node); ok {
		return el.TagName()
	}
	return ""
}

// BuildRenderTree builds the render tree for a DOM subtree against a set
// of contextual rules. The head element and any element whose computed
// display is none produce no render node and their subtrees are not
// visited. Comment, doctype and other non-element non-text nodes
// produce nothing. parent may be nil at the root.
func BuildRenderTree(log *zap.Logger, node *dom.Node, rules []ContextualRule, parent *RenderNode) *RenderNode {
	if log == nil {
		log = zap.NewNop()
	}

	var specified PropertyMap
	switch {
	case dom.IsText(node):
		// text carries no own style, everything inherits
		specified = PropertyMap{}
	default:
		el, ok := dom.AsElement(node)
		if !ok {
			return nil
		}
		if el.TagName() == "head" {
			return nil
		}
		specified = ApplyStyles(log, rules, node)
	}

	rn := &RenderNode{
		Node:       node,
		Properties: ComputeStyles(specified, parent),
		Parent:     parent,
	}
	if rn.Display() == DisplayNone {
		return nil
	}

	for _, child := range dom.Children(node) {
		if cn := BuildRenderTree(log, child, rules, rn); cn != nil {
			rn.Children = append(rn.Children, cn)
		}
	}
	return rn
}
