package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/go-readability"
	"github.com/japaniel/latindict/pkg/db"
	"golang.org/x/net/html"
)

var (
	itemSelector   = cascadia.MustCompile("li")
	strongSelector = cascadia.MustCompile("strong")
)

// ParseHTMLList extracts word/definition pairs from a saved page of the
// rendered dictionary, where each entry is
//
//	<li><strong>word:</strong> definition <button>Edit</button>...</li>
//
// Pages without such list items go through readability extraction and each
// "word: definition" line of the article text becomes a pair. pageURL may be nil.
func ParseHTMLList(r io.Reader, pageURL *url.URL) ([]db.WordPair, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", db.ErrInvalidFormat, err)
	}

	var pairs []db.WordPair
	for _, li := range itemSelector.MatchAll(doc) {
		strong := strongSelector.MatchFirst(li)
		if strong == nil {
			continue
		}
		word := strings.TrimSpace(strings.TrimSuffix(collapse(textOf(strong)), ":"))
		def := collapse(entryText(li))
		if word == "" || def == "" {
			continue
		}
		pairs = append(pairs, db.WordPair{Word: word, Definition: def})
	}
	if len(pairs) > 0 {
		return pairs, nil
	}

	if pageURL == nil {
		pageURL = &url.URL{Scheme: "file", Path: "/"}
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: no dictionary entries found: %w", db.ErrInvalidFormat, err)
	}
	pairs = parseLines(article.TextContent)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no dictionary entries found", db.ErrInvalidFormat)
	}
	return pairs, nil
}

// parseLines reads "word: definition" lines.
func parseLines(text string) []db.WordPair {
	var pairs []db.WordPair
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		word, def, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		word, def = collapse(word), collapse(def)
		if word == "" || def == "" {
			continue
		}
		pairs = append(pairs, db.WordPair{Word: word, Definition: def})
	}
	return pairs
}

// entryText returns the text of a list item minus its <strong> label and buttons.
func entryText(li *html.Node) string {
	var sb strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "strong" || c.Data == "button") {
			continue
		}
		sb.WriteString(textOf(c))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
