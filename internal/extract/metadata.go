package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/chatscribe/chatscribe/internal/conversation"
)

const (
	timestampSelector = `time[datetime], span[class*='time'], div[class*='timestamp']`
	modelSelector     = `div[class*='model-name'], span[class*='model-info'], div:contains('Model:')`

	timestampLayout = "2006-01-02 15:04:05"
)

var modelPrefixRe = regexp.MustCompile(`(?i)^(Model|Using|Running):\s*`)

// modelHints flag page titles that likely name the model themselves.
var modelHints = []string{"GPT-3", "GPT-4", "Claude"}

// PageMetadata recovers best-effort title, model, and timestamp from the
// parsed page. It never fails: the timestamp always carries a value, falling
// back to the current wall clock.
func PageMetadata(doc *goquery.Document) conversation.Metadata {
	var meta conversation.Metadata

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if sel := doc.Find(timestampSelector).First(); sel.Length() > 0 {
		if dt, ok := sel.Attr("datetime"); ok {
			if ts, err := time.Parse(time.RFC3339, dt); err == nil {
				meta.Timestamp = ts.UTC().Format(timestampLayout) + " UTC"
			} else {
				meta.Timestamp = strings.TrimSpace(sel.Text())
			}
		} else {
			meta.Timestamp = strings.TrimSpace(sel.Text())
		}
	}
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().Format(timestampLayout) + " Local"
		log.Warn().Msg("could not find timestamp on page, using current time as fallback")
	}

	if sel := doc.Find(modelSelector).First(); sel.Length() > 0 {
		meta.Model = strings.TrimSpace(modelPrefixRe.ReplaceAllString(strings.TrimSpace(sel.Text()), ""))
	}
	if meta.Model == "" && meta.Title != "" {
		for _, hint := range modelHints {
			if strings.Contains(meta.Title, hint) {
				meta.Model = meta.Title
				log.Debug().Msg("using page title as fallback for model information")
				break
			}
		}
	}

	return meta
}
