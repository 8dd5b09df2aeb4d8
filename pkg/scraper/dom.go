package scraper

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func findByID(node *html.Node, id string) *html.Node {
	if node.Type == html.ElementNode && attribute(node, "id") == id {
		return node
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}

	return nil
}

// findAll collects the descendants of node matching match, in document order.
func findAll(node *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			found = append(found, child)
		}
		found = append(found, findAll(child, match)...)
	}

	return found
}

func findFirst(node *html.Node, match func(*html.Node) bool) *html.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		if found := findFirst(child, match); found != nil {
			return found
		}
	}

	return nil
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(node *html.Node) bool {
		return node.Type == html.ElementNode && node.DataAtom == a
	}
}

func isScheduleTable(node *html.Node) bool {
	if !isElement(atom.Table)(node) {
		return false
	}

	for _, class := range strings.Fields(attribute(node, "class")) {
		if class == "cot-table" {
			return true
		}
	}

	return false
}

// childElements returns the direct element children of node with the given tag.
func childElements(node *html.Node, a atom.Atom) []*html.Node {
	var children []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if isElement(a)(child) {
			children = append(children, child)
		}
	}

	return children
}

func attribute(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}

// text is the whitespace-normalised text content of node.
func text(node *html.Node) string {
	var builder strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
			builder.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return strings.Join(strings.Fields(builder.String()), " ")
}
