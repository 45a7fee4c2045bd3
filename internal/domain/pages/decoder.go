// Package pages turns an episode's stored content into the ordered list of
// images the viewer renders.
//
// Content has been written in two shapes over time: a JSON array of image
// ids, and markdown with inline images. Strategies are tried in a fixed
// order and the first one that recognises the content wins.
package pages

import (
	"encoding/json"
	"regexp"
	"strings"
)

type Format string

const (
	FormatImageList Format = "image_list"
	FormatMarkdown  Format = "markdown"
	FormatEmpty     Format = "empty"
)

// Result is the decoded form. Images is never nil.
type Result struct {
	Format Format   `json:"format"`
	Images []string `json:"images"`
}

func (r Result) Empty() bool { return len(r.Images) == 0 }

// Strategy recognises one content shape. ok is false when the content is
// not in that shape and the next strategy should be tried. A nil slice with
// ok true claims the content but renders nothing.
type Strategy interface {
	Format() Format
	Decode(content string) (images []string, ok bool)
}

// ImageList claims any content that parses as JSON. Arrays map every string
// or number element through Resolve, which turns an image id into a URL;
// other JSON values are claimed with nothing to render.
type ImageList struct {
	Resolve func(id string) string
}

func (ImageList) Format() Format { return FormatImageList }

func (s ImageList) Decode(content string) ([]string, bool) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil || dec.More() {
		return nil, false
	}
	items, isList := parsed.([]any)
	if !isList {
		return nil, true
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var id string
		switch v := item.(type) {
		case string:
			id = v
		case json.Number:
			id = v.String()
		default:
			continue
		}
		if s.Resolve != nil {
			id = s.Resolve(id)
		}
		out = append(out, id)
	}
	return out, true
}

var inlineImage = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)

// MarkdownImages extracts the targets of ![alt](url) in document order.
// Everything else in the document is dropped. URLs are returned verbatim.
type MarkdownImages struct{}

func (MarkdownImages) Format() Format { return FormatMarkdown }

func (MarkdownImages) Decode(content string) ([]string, bool) {
	matches := inlineImage.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out, true
}

type Decoder struct {
	strategies []Strategy
}

// NewDecoder uses the given strategies in order.
func NewDecoder(strategies ...Strategy) *Decoder {
	return &Decoder{strategies: strategies}
}

// Default is the production order: image id list, then markdown.
func Default(resolve func(id string) string) *Decoder {
	return NewDecoder(ImageList{Resolve: resolve}, MarkdownImages{})
}

// Decode never fails; unrecognised content yields FormatEmpty.
func (d *Decoder) Decode(content string) Result {
	for _, s := range d.strategies {
		images, ok := s.Decode(content)
		if !ok {
			continue
		}
		if images == nil {
			break
		}
		return Result{Format: s.Format(), Images: images}
	}
	return Result{Format: FormatEmpty, Images: []string{}}
}
