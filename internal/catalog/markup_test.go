package catalog

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func parse(t *testing.T, doc, base string) *Catalog {
	t.Helper()
	var b *url.URL
	if base != "" {
		b = mustURL(t, base)
	}
	c, err := ParseReader(strings.NewReader(doc), b)
	require.NoError(t, err)
	return c
}

func names(c *Catalog) []string {
	var out []string
	for _, it := range c.Items() {
		out = append(out, it.Name)
	}
	return out
}

func TestParse_SelectsFileVideoLinks(t *testing.T) {
	doc := `<ul>
<li class="dir-item"><a class="link" href="sub/">sub</a></li>
<li class="file-item file-video"><a class="link" href="a.mp4">a.mp4</a></li>
<li class="file-item"><a class="link" href="notes.txt">notes.txt</a></li>
<li class="file-video"><a href="nolink.mp4">nolink</a></li>
<li class="file-video"><span><a class="link" href="nested.mp4">nested</a></span></li>
<li class="file-item file-video"><a class="link other" href="b.mkv">b.mkv</a></li>
</ul>`

	c := parse(t, doc, "http://host/films/")

	assert.Equal(t, []string{"a.mp4", "b.mkv"}, names(c))
	first, _ := c.At(0)
	assert.Equal(t, "http://host/films/a.mp4", first.URL)
}

func TestParse_DocumentOrderAcrossContainers(t *testing.T) {
	doc := `<div class="file-video"><a class="link" href="1">one</a></div>
<section><p class="file-video"><a class="link" href="2">two</a></p></section>
<div class="file-video"><a class="link" href="3">three</a></div>`

	c := parse(t, doc, "")

	assert.Equal(t, []string{"one", "two", "three"}, names(c))
}

func TestParse_NameVerbatim(t *testing.T) {
	doc := `<li class="file-video"><a class="link" href="x">  spaced <b>bold</b> </a></li>
<li class="file-video"><a class="link" href="y"></a></li>`

	c := parse(t, doc, "")

	assert.Equal(t, []string{"  spaced bold ", ""}, names(c))
}

func TestParse_HrefResolution(t *testing.T) {
	tests := []struct {
		name string
		href string
		base string
		want string
	}{
		{"relative", `href="a%20b.mp4"`, "http://h/dir/", "http://h/dir/a%20b.mp4"},
		{"parent", `href="../c.mp4"`, "http://h/dir/sub/", "http://h/dir/c.mp4"},
		{"absolute path", `href="/root.mp4"`, "http://h/dir/", "http://h/root.mp4"},
		{"absolute url", `href="https://cdn/x.mp4"`, "http://h/", "https://cdn/x.mp4"},
		{"missing href", ``, "http://h/", ""},
		{"no base", `href="rel.mp4"`, "", "rel.mp4"},
		{"file base", `href="v.mkv"`, "file:///media/films/", "file:///media/films/v.mkv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<li class="file-video"><a class="link" ` + tt.href + `>n</a></li>`
			c := parse(t, doc, tt.base)
			require.Equal(t, 1, c.Len())
			it, _ := c.First()
			assert.Equal(t, tt.want, it.URL)
		})
	}
}

func TestParse_DocumentBaseElement(t *testing.T) {
	doc := `<html><head><base href="/media/"></head><body>
<li class="file-video"><a class="link" href="a.mp4">a</a></li></body></html>`

	c := parse(t, doc, "http://h/listing/")

	it, _ := c.First()
	assert.Equal(t, "http://h/media/a.mp4", it.URL)
}

func TestParse_NoMatchesIsEmpty(t *testing.T) {
	c := parse(t, `<p>nothing here</p>`, "")

	if !c.IsEmpty() {
		t.Errorf("expected empty catalog, got %d items", c.Len())
	}
}

func TestParse_NilDocument(t *testing.T) {
	c := Parse(nil, nil)

	if c == nil || !c.IsEmpty() {
		t.Error("Parse(nil) should return an empty catalog")
	}
}
