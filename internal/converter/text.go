package converter

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	maxTitleLength = 140
	ellipsis       = "..."
)

// Typographic punctuation mapped before transliteration, which would
// otherwise turn dashes into "--".
var punctuation = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "″", `"`,
	"–", "-", "—", "-", "−", "-",
	"«", "<<", "»", ">>",
)

// toASCII transliterates s to its closest ASCII form, so "Привет" becomes
// "Privet" and "Łódź" becomes "Lodz". Runes with no transliteration are
// dropped.
func toASCII(s string) string {
	s = punctuation.Replace(s)
	s = norm.NFKC.String(s)
	s = unidecode.Unidecode(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// stripTags returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed.
func stripTags(s string) string {
	if s == "" {
		return ""
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(whitespaceRegex.ReplaceAllString(buf.String(), " "))
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "div", "br", "li", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
				buf.WriteByte(' ')
			}
		}
	}
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "rock'n roll" becomes "Rock'N Roll".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// truncateTitle bounds s to maxTitleLength characters. Longer input keeps
// the words that fit in the first maxTitleLength+1 characters and gets an
// ellipsis. Input without a space in that window keeps the whole window.
func truncateTitle(s string) string {
	if len(s) <= maxTitleLength {
		return s
	}
	cut := s[:maxTitleLength+1]
	if i := strings.LastIndexByte(cut, ' '); i >= 0 {
		cut = cut[:i]
	}
	return cut + ellipsis
}
