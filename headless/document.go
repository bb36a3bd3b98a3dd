package headless

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wippyai/webview2/webview2"
)

// document is a parsed page: its title and inline scripts in document
// order.
type document struct {
	title   string
	scripts []string
}

// parseDocument extracts what the runtime executes or reports from markup.
func parseDocument(markup string) (*document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	doc := &document{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if doc.title == "" {
					doc.title = strings.TrimSpace(textContent(n))
				}
			case atom.Script:
				if isInlineScript(n) {
					doc.scripts = append(doc.scripts, textContent(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// isInlineScript reports whether n is a classic script with a body.
func isInlineScript(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "src":
			return false
		case "type":
			switch strings.ToLower(strings.TrimSpace(a.Val)) {
			case "", "text/javascript", "application/javascript":
			default:
				return false
			}
		}
	}
	return true
}

// fetch resolves a navigation target to markup. A non-zero status means the
// navigation fails with that web error status.
func fetch(uri string) (string, int32, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", webview2.WebErrorStatusUnexpectedError, err
	}

	switch strings.ToLower(u.Scheme) {
	case "about":
		if u.Opaque != "blank" {
			return "", webview2.WebErrorStatusCannotConnect, fmt.Errorf("unknown page %q", uri)
		}
		return "", 0, nil
	case "data":
		// The payload may contain '?' or '#', so it is taken unparsed.
		return decodeDataURL(uri[len("data:"):])
	case "file":
		data, err := os.ReadFile(filePath(u))
		if err != nil {
			return "", webview2.WebErrorStatusCannotConnect, err
		}
		return string(data), 0, nil
	}
	return "", webview2.WebErrorStatusCannotConnect, fmt.Errorf("scheme %q is not served", u.Scheme)
}

func decodeDataURL(opaque string) (string, int32, error) {
	meta, payload, ok := strings.Cut(opaque, ",")
	if !ok {
		return "", webview2.WebErrorStatusUnexpectedError, fmt.Errorf("data url without payload")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", webview2.WebErrorStatusUnexpectedError, err
		}
		return string(data), 0, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return "", webview2.WebErrorStatusUnexpectedError, err
	}
	return s, 0, nil
}

// filePath converts a file URL to a local path; file:///C:/x is C:\x on
// Windows.
func filePath(u *url.URL) string {
	p := u.Path
	if runtime.GOOS == "windows" && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
