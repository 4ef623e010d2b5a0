// Package fetch loads a blog page and the same-host pages it links to,
// one hop deep, and converts them to wrapped plain text.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
)

// Defaults for a Loader created with New.
const (
	DefaultWrapWidth     = 130
	DefaultMaxConcurrent = 4
	DefaultMaxBodyBytes  = 5 << 20
	DefaultUserAgent     = "go-post-generator/1.0"
)

// DefaultExcludeDirs are path prefixes that are never crawled.
var DefaultExcludeDirs = []string{"/docs/api/"}

// ErrInvalidURL is returned when the root URL cannot be crawled at all.
var ErrInvalidURL = errors.New("invalid url")

var (
	errStatus      = errors.New("unexpected status")
	errContentType = errors.New("unsupported content type")
	errEmptyBody   = errors.New("empty body")
)

// Document is the plain text of one fetched page.
type Document struct {
	SourceURL string
	Text      string
}

// Loader crawls a root page and its direct same-host links.
type Loader struct {
	HTTPClient *http.Client
	UserAgent  string
	// ExcludeDirs lists path prefixes that are skipped without a request.
	ExcludeDirs []string
	// WrapWidth is the column plain text is wrapped at.
	WrapWidth int
	// MaxConcurrent bounds parallel child requests.
	MaxConcurrent int
	// MaxBodyBytes caps how much of each page is read.
	MaxBodyBytes int64

	logger *zap.Logger
}

// New creates a Loader with default settings. A nil client uses
// http.DefaultClient.
func New(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		HTTPClient:    client,
		UserAgent:     DefaultUserAgent,
		ExcludeDirs:   append([]string(nil), DefaultExcludeDirs...),
		WrapWidth:     DefaultWrapWidth,
		MaxConcurrent: DefaultMaxConcurrent,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		logger:        logger,
	}
}

// Fetch returns the root page followed by the pages it links to on the
// same host. Links are followed exactly one hop.
//
// Only a root URL that cannot be crawled is an error. When the root page
// itself fails to load, Fetch returns no documents and a nil error so the
// caller can go on without content.
func (l *Loader) Fetch(ctx context.Context, rawURL string) ([]Document, error) {
	root, err := parseRoot(rawURL)
	if err != nil {
		return nil, err
	}

	rootDoc, err := l.get(ctx, root.String())
	if err != nil {
		l.logger.Warn("root page not loaded", zap.String("url", root.String()), zap.Error(err))
		return nil, nil
	}

	links := l.childLinks(root, rootDoc)
	docs := []Document{{SourceURL: root.String(), Text: toText(rootDoc, l.wrapWidth())}}

	children := make([]*Document, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxConcurrent())

	for i, link := range links {
		g.Go(func() error {
			doc, err := l.get(gctx, link)
			if err != nil {
				l.logger.Debug("child page skipped", zap.String("url", link), zap.Error(err))
				return nil
			}

			children[i] = &Document{SourceURL: link, Text: toText(doc, l.wrapWidth())}
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range children {
		if c != nil {
			docs = append(docs, *c)
		}
	}

	l.logger.Debug("crawl finished",
		zap.String("url", root.String()),
		zap.Int("links", len(links)),
		zap.Int("documents", len(docs)),
	)

	return docs, nil
}

func parseRoot(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !isHTTP(u) || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	return normalize(u), nil
}

func (l *Loader) get(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return nil, fmt.Errorf("%w: %s", errContentType, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBodyBytes()))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errEmptyBody
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	return goquery.NewDocumentFromReader(r)
}

// childLinks returns the unique same-host links of doc that are not
// excluded, in document order.
func (l *Loader) childLinks(root *url.URL, doc *goquery.Document) []string {
	seen := map[string]struct{}{root.String(): {}}
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")

		u, err := root.Parse(strings.TrimSpace(href))
		if err != nil || !isHTTP(u) || !strings.EqualFold(u.Host, root.Host) {
			return
		}

		u = normalize(u)
		if l.excluded(u) {
			l.logger.Debug("excluded link", zap.String("url", u.String()))
			return
		}

		key := u.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		links = append(links, key)
	})

	return links
}

func (l *Loader) excluded(u *url.URL) bool {
	for _, dir := range l.ExcludeDirs {
		if dir == "" {
			continue
		}
		if strings.HasPrefix(u.Path, dir) || strings.HasPrefix(u.String(), dir) {
			return true
		}
	}

	return false
}

func (l *Loader) wrapWidth() int {
	if l.WrapWidth <= 0 {
		return DefaultWrapWidth
	}
	return l.WrapWidth
}

func (l *Loader) maxConcurrent() int {
	if l.MaxConcurrent <= 0 {
		return DefaultMaxConcurrent
	}
	return l.MaxConcurrent
}

func (l *Loader) maxBodyBytes() int64 {
	if l.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return l.MaxBodyBytes
}

func normalize(u *url.URL) *url.URL {
	out := *u
	out.Fragment = ""
	out.RawFragment = ""
	if out.Path == "" {
		out.Path = "/"
	}

	return &out
}

func isHTTP(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return true
	}

	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
