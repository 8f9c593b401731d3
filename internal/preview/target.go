package preview

import (
	"net/url"
	"strings"
)

type Kind int

const (
	KindElement Kind = iota
	KindPage
)

// Target is what the overlay edits: a single element by pid or a whole page
// by path.
type Target struct {
	Kind Kind
	ID   string
	Path string
}

func Element(id string) Target { return Target{Kind: KindElement, ID: id} }

// Page targets a page; the path always gets a leading slash.
func Page(path string) Target {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Target{Kind: KindPage, Path: path}
}

// Endpoint is the server path that reads and writes the target's data.
func (t Target) Endpoint() string {
	if t.Kind == KindPage {
		return "/preview/page" + t.Path
	}
	return "/preview/element/" + url.PathEscape(t.ID)
}

func (t Target) String() string {
	if t.Kind == KindPage {
		return "page " + t.Path
	}
	return "element " + t.ID
}
