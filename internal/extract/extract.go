// Package extract reconstructs a structured conversation from rendered share
// page markup: candidate block discovery, content extraction, deduplication,
// noise filtering, and role classification.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/chatscribe/chatscribe/internal/conversation"
)

// ErrExtractionFailed indicates the markup loaded but no candidate blocks
// were found, or fewer than one meaningful turn survived classification.
var ErrExtractionFailed = errors.New("extraction failed")

// Parse builds a queryable document from rendered markup.
func Parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: parse markup: %v", ErrExtractionFailed, err)
	}
	return doc, nil
}

// Conversation returns the ordered message sequence for the page: a synthetic
// system message carrying page metadata (when any field was found) followed by
// the classified turns in document order.
func Conversation(doc *goquery.Document) ([]conversation.Message, error) {
	meta := PageMetadata(doc)
	log.Debug().
		Str("title", meta.Title).
		Str("model", meta.Model).
		Str("timestamp", meta.Timestamp).
		Msg("extracted page metadata")

	msgs := make([]conversation.Message, 0, 16)
	if sys, ok := meta.SystemMessage(); ok {
		msgs = append(msgs, sys)
	}

	blocks, strategy, err := findCandidateBlocks(doc)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("count", blocks.Length()).Str("strategy", strategy.name).Msg("candidate blocks found")
	if !strategy.reliableRoles {
		log.Warn().Str("strategy", strategy.name).Msg("using fallback block selectors; role detection may be inaccurate")
	}

	// Dedup set is owned by this call; a normalized text appears at most once
	// per extraction run.
	seen := make(map[uint64]struct{})

	blocks.Each(func(_ int, block *goquery.Selection) {
		content := blockText(block)
		if content == "" {
			return
		}
		fp := Fingerprint(content)
		if _, dup := seen[fp]; dup {
			log.Debug().Str("content", Preview(content)).Msg("skipping duplicate content block")
			return
		}
		seen[fp] = struct{}{}

		if !IsMeaningful(content, false) {
			log.Debug().Str("content", Preview(content)).Msg("skipping non-meaningful content block")
			return
		}

		role, resolved := ResolveRole(block)
		if !resolved {
			log.Warn().Str("content", Preview(content)).Msg("could not determine role for block, defaulting to assistant")
		}
		msgs = append(msgs, conversation.Message{Role: role, Content: content})
	})

	if len(msgs) <= 1 {
		return nil, fmt.Errorf("%w: no meaningful conversation turns found on the page", ErrExtractionFailed)
	}
	return msgs, nil
}

// Preview shortens content for log lines, truncating on a rune boundary so
// multi-byte content stays valid UTF-8.
func Preview(content string) string {
	const max = 50
	if len(content) <= max {
		return content
	}
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
