package report

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses HTML fragment (as produced by external formatters)
// and returns its top level elements converted into etree form. Top level
// text is wrapped in paragraphs, comments are dropped.
func ParseFragment(markup string) ([]*etree.Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html fragment: %w", err)
	}

	var out []*etree.Element
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			out = append(out, convertNode(n))
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				p := etree.NewElement("p")
				p.SetText(text)
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func convertNode(n *html.Node) *etree.Element {
	el := etree.NewElement(n.Data)
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		el.CreateAttr(a.Key, a.Val)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el.AddChild(convertNode(c))
		case html.TextNode:
			el.CreateText(c.Data)
		}
	}
	return el
}
