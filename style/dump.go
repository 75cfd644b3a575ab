package style

import (
	"io"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
)

// DumpXML writes a render tree as an indented XML document for
// inspection. Each render node becomes an element named after its tag,
// with computed properties as attributes in natural name order and text
// content inlined.
func DumpXML(w io.Writer, root *RenderNode) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	if root != nil {
		appendNode(&doc.Element, root)
	}
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func appendNode(parent *etree.Element, n *RenderNode) {
	if n.Tag() == "#text" {
		parent.CreateText(n.Node.Data)
		return
	}

	el := parent.CreateElement(n.Tag())
	names := make([]string, 0, len(n.Properties))
	byName := make(map[string]Value, len(n.Properties))
	for p, v := range n.Properties {
		names = append(names, p.String())
		byName[p.String()] = v
	}
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		el.CreateAttr(name, byName[name].String())
	}

	for _, c := range n.Children {
		appendNode(el, c)
	}
}
