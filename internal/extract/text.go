package extract

import (
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// chromeTags are structural elements whose text is UI chrome, never message
// content. Text nodes under any of these are excluded.
var chromeTags = map[string]struct{}{
	"button": {}, "nav": {}, "aside": {}, "footer": {},
	"header": {}, "script": {}, "style": {},
}

// uiActionLabels are per-fragment action captions excluded during collection,
// matched case-insensitively against the whole trimmed fragment.
var uiActionLabels = map[string]struct{}{
	"copy code": {}, "regenerate": {}, "edit": {},
	"share": {}, "like": {}, "dislike": {},
}

// blockText extracts the normalized text of one candidate block, preferring
// an inner content sub-element over the block itself.
func blockText(block *goquery.Selection) string {
	content := block
	if inner := block.Find(contentSelector); inner.Length() > 0 {
		content = inner.First()
	}

	var fragments []string
	for _, n := range content.Nodes {
		collectFragments(n, &fragments)
	}
	if len(fragments) == 0 {
		return ""
	}
	return NormalizeText(strings.Join(fragments, "\n"))
}

// collectFragments walks descendant text nodes, skipping chrome subtrees and
// UI action captions.
func collectFragments(n *html.Node, out *[]string) {
	if n.Type == html.ElementNode {
		if _, chrome := chromeTags[strings.ToLower(n.Data)]; chrome {
			return
		}
	}
	if n.Type == html.TextNode {
		piece := strings.TrimSpace(n.Data)
		if piece != "" {
			if _, label := uiActionLabels[strings.ToLower(piece)]; !label {
				*out = append(*out, piece)
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFragments(c, out)
	}
}

// NormalizeText collapses whitespace runs to single spaces within lines,
// trims each line, and caps consecutive newlines at two so paragraph breaks
// survive while larger gaps collapse.
func NormalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		out = append(out, collapseSpaces(trimmed))
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}

// uiNoiseRes reject text that is UI chrome disguised as content. Phrases
// match on word boundaries anywhere in the text; the last three match only
// when they are the entire text.
var uiNoiseRes = []*regexp.Regexp{
	regexp.MustCompile(`\blog in\b`),
	regexp.MustCompile(`\bsign up\b`),
	regexp.MustCompile(`\bskip to content\b`),
	regexp.MustCompile(`\bwhat can i help\b`),
	regexp.MustCompile(`\bsearch\b`),
	regexp.MustCompile(`\bloading\b`),
	regexp.MustCompile(`^copy$`),
	regexp.MustCompile(`^menu$`),
	regexp.MustCompile(`^help$`),
}

// commonPunct counts toward the content ratio alongside letters, digits, and
// whitespace.
const commonPunct = ".,!?-_()[]{}"

// IsMeaningful reports whether text is real message content rather than UI
// noise. isCode exempts the noise patterns, the length floor, and the
// character-ratio check; empty text is always rejected. The classifier never
// passes isCode=true today; the parameter exists so a code-block pass can opt
// out of noise filtering.
func IsMeaningful(text string, isCode bool) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	if isCode {
		return true
	}
	for _, re := range uiNoiseRes {
		if re.MatchString(text) {
			return false
		}
	}
	if len(text) < 5 {
		return false
	}
	var counted int
	var total int
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(commonPunct, r) {
			counted++
		}
	}
	return float64(counted)/float64(total) >= 0.1
}

// Fingerprint hashes normalized text for within-run deduplication.
func Fingerprint(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}
