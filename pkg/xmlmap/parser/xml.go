// Package parser reads XML sources and workbook contents.
package parser

import (
	"errors"
	"io"
	"iter"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrNoRoot indicates a document without a root element.
var ErrNoRoot = errors.New("document has no root element")

// ReadXMLFile parses the XML file at path and returns its root element.
func ReadXMLFile(path string) (*etree.Element, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, err
	}
	return rootOf(doc)
}

// ReadXML parses XML from r and returns its root element.
func ReadXML(r io.Reader) (*etree.Element, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	return rootOf(doc)
}

// ReadXMLString parses an XML string and returns its root element.
func ReadXMLString(s string) (*etree.Element, error) {
	return ReadXML(strings.NewReader(s))
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	// Declared encodings other than UTF-8 (latin1, shift_jis, ...) are decoded on the fly.
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

func rootOf(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// TagText is one element visited by Walk.
type TagText struct {
	Tag  string
	Text string
}

// Walk yields every element under root in document pre-order
// (element first, then its children left to right), paired with its
// leading text: the character data before its first child element.
func Walk(root *etree.Element) iter.Seq[TagText] {
	return func(yield func(TagText) bool) {
		if root == nil {
			return
		}
		stack := []*etree.Element{root}
		for len(stack) > 0 {
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(TagText{Tag: el.FullTag(), Text: el.Text()}) {
				return
			}

			children := el.ChildElements()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// HasText reports whether text is non-empty after trimming whitespace.
// Both the tag set and value collection use this test, so a tag is
// offered for mapping exactly when it would produce at least one value.
func HasText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// DistinctTextualTags returns every tag that has at least one element
// with non-blank text, sorted for stable display.
func DistinctTextualTags(root *etree.Element) []string {
	seen := make(map[string]struct{})
	for tt := range Walk(root) {
		if HasText(tt.Text) {
			seen[tt.Tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ValuesForTag returns the text of every element named tag, in document
// pre-order. Blank texts are skipped; kept texts are returned untrimmed.
func ValuesForTag(root *etree.Element, tag string) []string {
	var values []string
	for tt := range Walk(root) {
		if tt.Tag == tag && HasText(tt.Text) {
			values = append(values, tt.Text)
		}
	}
	return values
}
