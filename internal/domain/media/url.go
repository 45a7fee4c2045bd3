package media

import (
	"net/url"
	"strconv"
	"strings"
)

type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

type Options struct {
	Width  int
	Height int
	Fit    Fit
}

// URLBuilder turns CDN image ids into delivery URLs:
// {base}/{id}?w=..&h=..&fit=..
type URLBuilder struct {
	BaseURL string
}

func NewURLBuilder(base string) URLBuilder {
	return URLBuilder{BaseURL: strings.TrimRight(base, "/")}
}

func (b URLBuilder) URL(id string, opts Options) string {
	if id == "" {
		return ""
	}
	q := url.Values{}
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		q.Set("fit", string(opts.Fit))
	}
	u := b.BaseURL + "/" + url.PathEscape(id)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Resolver fixes the options, for callers that only deal in ids.
func (b URLBuilder) Resolver(opts Options) func(id string) string {
	return func(id string) string { return b.URL(id, opts) }
}
