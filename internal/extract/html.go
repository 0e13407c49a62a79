package extract

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// cell is one table cell with the attributes the row-shape heuristics need.
type cell struct {
	text     string
	colspan  int
	anchored bool
	header   bool
}

type row struct {
	cells []cell
}

// parseTables extracts every table in the document as rows of cells. Markup
// from the portal is loosely structured; html.Parse repairs what it can and
// anything unparseable simply yields no tables.
func parseTables(raw []byte) ([][]row, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	var tables [][]row
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, tableRows(n))
			// Nested tables are rare in the reports; treat the outer
			// table as authoritative and skip descent.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

func tableRows(table *html.Node) []row {
	var rows []row
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if r := rowCells(n); len(r.cells) > 0 {
				rows = append(rows, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) row {
	var r row
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "td" && c.Data != "th" {
			continue
		}
		cl := cell{
			text:     strings.TrimSpace(nodeText(c)),
			colspan:  1,
			anchored: containsAnchor(c),
			header:   c.Data == "th",
		}
		for _, attr := range c.Attr {
			if attr.Key == "colspan" {
				if n, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && n > 1 {
					cl.colspan = n
				}
			}
		}
		r.cells = append(r.cells, cl)
	}
	return r
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsAnchor(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "a" {
			return true
		}
		if containsAnchor(c) {
			return true
		}
	}
	return false
}
