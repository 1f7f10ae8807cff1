package catalog

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names identifying a playable entry in listing markup: an element
// with class "link" whose parent has class "file-video".
const (
	EntryClass     = "link"
	ContainerClass = "file-video"
)

// Parse scans a parsed document for playable entries in document order.
// Relative hrefs are resolved against the document's <base href>, if any,
// and then against base. A document without entries yields an empty catalog.
func Parse(doc *html.Node, base *url.URL) *Catalog {
	base = documentBase(doc, base)

	var entries []Entry
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isEntry(n) {
			entries = append(entries, Entry{
				Name: textContent(n),
				URL:  resolveHref(n, base),
			})
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if doc != nil {
		walk(doc)
	}
	return New(entries...)
}

// ParseReader parses HTML from r and builds a catalog from it.
// The only possible error is a read error from r.
func ParseReader(r io.Reader, base *url.URL) (*Catalog, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return Parse(doc, base), nil
}

func isEntry(n *html.Node) bool {
	if n.Type != html.ElementNode || !hasClass(n, EntryClass) {
		return false
	}
	p := n.Parent
	return p != nil && p.Type == html.ElementNode && hasClass(p, ContainerClass)
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates all descendant text nodes, untrimmed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// resolveHref returns the absolute URL of the entry's href, or "" if the
// element has no href. Unparseable hrefs are kept verbatim.
func resolveHref(n *html.Node, base *url.URL) string {
	href, ok := attr(n, "href")
	if !ok {
		return ""
	}
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// documentBase applies the first <base href> of the document on top of base.
func documentBase(doc *html.Node, base *url.URL) *url.URL {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Base {
			if _, ok := attr(n, "href"); ok {
				found = n
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if doc != nil {
		walk(doc)
	}
	if found == nil {
		return base
	}
	href, _ := attr(found, "href")
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	if base == nil {
		return ref
	}
	return base.ResolveReference(ref)
}
