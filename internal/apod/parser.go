package apod

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/apodwall/internal/model"
)

// rasterExtensions are the image file extensions the desktop background
// call accepts. Anything else linked from the page (videos, applets,
// other HTML pages) is not a wallpaper candidate.
var rasterExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".bmp":  true,
}

// Parser extracts the day's full-resolution image link from the picture
// page markup.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. The page is hand-written HTML with inconsistent casing and spacing
//  2. A DOM walk gives document order for free, which matters here: the
//     first qualifying anchor is the day's picture
//  3. More maintainable than regex against markup that changes over time
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving the
	// relative image href ("image/2608/...").
	baseURL *url.URL
}

// NewParser creates a parser for a page at the given URL.
func NewParser(pageURL string) (*Parser, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}
	return &Parser{baseURL: u}, nil
}

// Parse walks the page markup and returns the day's picture.
//
// The full-size image is the first anchor whose target is a raster image
// (the thumbnail <img> on the page links to it). When no such anchor
// exists the day's entry is a video or an interactive page, and Parse
// returns ErrNoImageLink.
func (p *Parser) Parse(content io.Reader) (*model.Picture, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page markup: %w", err)
	}

	pic := &model.Picture{PageURL: p.baseURL.String()}
	var firstBold string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					p.applyTitle(strings.TrimSpace(n.FirstChild.Data), pic)
				}
			case "a":
				if pic.ImageURL == "" {
					if resolved := p.resolveImageLink(getAttr(n, "href")); resolved != "" {
						pic.ImageURL = resolved
					}
				}
			case "b":
				if firstBold == "" {
					firstBold = strings.TrimSpace(nodeText(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// The bold heading under the picture is the display title; the <title>
	// tag is a fallback because older pages omit the heading.
	if firstBold != "" {
		pic.Title = firstBold
	}

	if pic.ImageURL == "" {
		return nil, fmt.Errorf("%w: page at %s has no full-size image anchor", ErrNoImageLink, pic.PageURL)
	}

	return pic, nil
}

// applyTitle fills Date and a fallback Title from the <title> tag, which
// follows the fixed form "APOD: 2026 August 31 - The Title".
func (p *Parser) applyTitle(title string, pic *model.Picture) {
	rest, ok := strings.CutPrefix(title, "APOD:")
	if !ok {
		if pic.Title == "" {
			pic.Title = title
		}
		return
	}

	datePart, titlePart, found := strings.Cut(rest, "-")
	if found {
		pic.Date = strings.TrimSpace(datePart)
		if pic.Title == "" {
			pic.Title = strings.TrimSpace(titlePart)
		}
		return
	}
	pic.Date = strings.TrimSpace(rest)
}

// resolveImageLink resolves href against the page URL and returns the
// absolute URL when the target is a full-size raster image, or "" when it
// is not a candidate. Malformed hrefs are skipped, not fatal.
func (p *Parser) resolveImageLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") || href == "#" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	lower := strings.ToLower(resolved.Path)
	if !rasterExtensions[path.Ext(lower)] {
		return ""
	}

	// The archive serves full-size images from the image/ tree; thumbnails
	// embedded in other sites' pages are not linked this way.
	if !strings.Contains(lower, "/image/") {
		return ""
	}

	return resolved.String()
}

// nodeText returns the concatenated text content of a node's children.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
