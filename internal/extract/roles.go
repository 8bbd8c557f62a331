package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/chatscribe/chatscribe/internal/conversation"
)

// roleClassifier inspects one candidate block and either resolves a role or
// passes. Classifiers run in order; the first hit wins.
type roleClassifier func(*goquery.Selection) (conversation.Role, bool)

var roleClassifiers = []roleClassifier{
	byClassTokens,
	byAssistantIcon,
	byHumanChild,
}

// ResolveRole runs the classifier chain over a block. When nothing matches it
// returns the assistant default with resolved=false so the caller can record
// a diagnostic.
func ResolveRole(block *goquery.Selection) (conversation.Role, bool) {
	for _, classify := range roleClassifiers {
		if role, ok := classify(block); ok {
			return role, true
		}
	}
	return conversation.RoleAssistant, false
}

// byClassTokens looks for role hints in the block's own class attribute.
func byClassTokens(block *goquery.Selection) (conversation.Role, bool) {
	tokens := strings.Fields(strings.ToLower(block.AttrOr("class", "")))
	for _, token := range tokens {
		if strings.Contains(token, "user") {
			return conversation.RoleUser, true
		}
	}
	for _, token := range tokens {
		if strings.Contains(token, "agent") || strings.Contains(token, "assistant") {
			return conversation.RoleAssistant, true
		}
	}
	return "", false
}

// byAssistantIcon matches the avatar icon path fragment rendered with
// assistant turns.
func byAssistantIcon(block *goquery.Selection) (conversation.Role, bool) {
	if block.Find(`svg path[d*='M9.01']`).Length() > 0 {
		return conversation.RoleAssistant, true
	}
	return "", false
}

// byHumanChild matches a "human"-hinted child container.
func byHumanChild(block *goquery.Selection) (conversation.Role, bool) {
	if block.Find(`div[class*='human']`).Length() > 0 {
		return conversation.RoleUser, true
	}
	return "", false
}
