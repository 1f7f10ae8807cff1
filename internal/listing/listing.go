// Package listing renders directory listings whose markup marks media files
// as playable entries, and serves them over HTTP.
package listing

import (
	"html/template"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultExtensions are the file extensions rendered as playable entries.
var DefaultExtensions = []string{".mp4", ".mkv", ".avi"}

// Entry is one visible item of a directory.
type Entry struct {
	Name    string
	Href    string // escaped, relative to the directory
	IsDir   bool
	IsMedia bool
	Size    int64
}

// HumanSize returns the size in human-readable form.
func (e Entry) HumanSize() string {
	return humanize.IBytes(uint64(max(e.Size, 0)))
}

// ReadDir lists dir for rendering. Hidden entries (leading dot) are skipped,
// names are sorted case-insensitively, and directories come before files.
func ReadDir(dir string, extensions []string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []Entry
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Name: name, Href: url.PathEscape(name)}
		if isDir(dir, de) {
			e.IsDir = true
			dirs = append(dirs, e)
			continue
		}
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
		}
		e.IsMedia = IsMedia(name, extensions)
		files = append(files, e)
	}

	sortEntries(dirs)
	sortEntries(files)
	return append(dirs, files...), nil
}

// IsMedia reports whether name has one of the given extensions (case-insensitive).
func IsMedia(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// isDir follows symlinks so linked directories are browsable.
func isDir(dir string, de os.DirEntry) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, de.Name()))
	return err == nil && info.IsDir()
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
	})
}

// Crumb is one element of the breadcrumb guide.
type Crumb struct {
	Name string
	Href string // empty for the current directory
}

// Breadcrumbs splits a directory URL path into crumbs from the root ("Home")
// to the current directory. Ancestors link with relative "../" hrefs.
func Breadcrumbs(urlPath string) []Crumb {
	parts := strings.Split(strings.TrimRight(urlPath, "/"), "/")
	crumbs := make([]Crumb, len(parts))
	up := ""
	for i := len(parts) - 1; i >= 0; i-- {
		name := parts[i]
		if name == "" {
			name = "Home"
		}
		crumbs[i] = Crumb{Name: name, Href: up}
		up += "../"
	}
	return crumbs
}

type page struct {
	Title     string
	Header    string
	Crumbs    []Crumb
	Entries   []Entry
	HasVideos bool
}

var pageTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Header}}</h1>
<div class="guide">{{range $i, $c := .Crumbs}}{{if $i}} / {{end}}{{if $c.Href}}<a href="{{$c.Href}}">{{$c.Name}}</a>{{else}}{{$c.Name}}{{end}}{{end}}</div>
{{- if .HasVideos}}
<div class="video-player"><span class="video-name"></span></div>
{{- end}}
<ul>
{{- range .Entries}}
{{- if .IsDir}}
<li class="dir-item"><a class="link" href="{{.Href}}/">{{.Name}}</a></li>
{{- else}}
<li class="file-item{{if .IsMedia}} file-video{{end}}"><a class="link" href="{{.Href}}">{{.Name}}</a> <span class="size">{{.HumanSize}}</span></li>
{{- end}}
{{- else}}
<li>Null</li>
{{- end}}
</ul>
</body>
</html>
`))

// Render writes the listing page for the directory at urlPath.
func Render(w io.Writer, urlPath string, entries []Entry) error {
	p := page{
		Title:   "Directory Listing",
		Header:  "Directory listing",
		Crumbs:  Breadcrumbs(urlPath),
		Entries: entries,
	}
	for _, e := range entries {
		if e.IsMedia {
			p.HasVideos = true
			break
		}
	}
	return pageTemplate.Execute(w, p)
}
