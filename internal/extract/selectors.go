package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// selectorStrategy is one rung of the block-discovery cascade. Strategies are
// tried in order and the first one yielding any candidates wins.
type selectorStrategy struct {
	name     string
	selector string
	// reliableRoles is false for broad content-container selectors, where a
	// matched node may not correspond one-to-one with a conversation turn.
	reliableRoles bool
}

var blockStrategies = []selectorStrategy{
	{
		name:          "turn-groups",
		selector:      `div.w-full.text-token-text-primary[class*='group'], div[class*='text-base'], div[class*='message']`,
		reliableRoles: true,
	},
	{
		name:          "content-containers",
		selector:      `div[class*='prose'], div[class*='markdown']`,
		reliableRoles: false,
	},
}

// contentSelector picks the inner content sub-element within a candidate
// block, when present.
const contentSelector = `div[class*='prose'], div[class*='markdown'], .text-message`

// findCandidateBlocks walks the strategy cascade and returns the first
// non-empty candidate selection along with the strategy that produced it.
func findCandidateBlocks(doc *goquery.Document) (*goquery.Selection, selectorStrategy, error) {
	for _, s := range blockStrategies {
		if sel := doc.Find(s.selector); sel.Length() > 0 {
			return sel, s, nil
		}
	}
	return nil, selectorStrategy{}, fmt.Errorf("%w: could not find any potential message blocks on the page", ErrExtractionFailed)
}
