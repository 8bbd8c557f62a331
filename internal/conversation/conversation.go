// Package conversation defines the structured message model produced by
// extraction and consumed by article generation.
package conversation

import "strings"

// Role tags who produced a turn. Normalized to a small closed set so
// downstream consumers never see site-specific labels.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleUnknown   Role = "unknown"
)

// Message is one conversation turn. Content is plain text with paragraph
// structure preserved via newlines; no markup survives extraction.
type Message struct {
	Role    Role
	Content string
}

// Metadata is the best-effort page metadata recovered once per extraction.
// Timestamp is always populated; Title and Model may be empty.
type Metadata struct {
	Title     string
	Model     string
	Timestamp string
}

// SystemMessage renders the metadata as the synthetic system turn that leads
// the extracted sequence. It returns ok=false when no field carries a value,
// in which case no message should be prepended.
func (m Metadata) SystemMessage() (Message, bool) {
	var parts []string
	if m.Title != "" {
		parts = append(parts, "Title: "+m.Title)
	}
	if m.Model != "" {
		parts = append(parts, "Model Used: "+m.Model)
	}
	if m.Timestamp != "" {
		parts = append(parts, "Conversation Time: "+m.Timestamp)
	}
	if len(parts) == 0 {
		return Message{}, false
	}
	return Message{Role: RoleSystem, Content: strings.Join(parts, "\n")}, true
}

// NormalizeRole maps arbitrary role strings onto the closed set, defaulting
// to assistant for anything unrecognized.
func NormalizeRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSystem:
		return RoleSystem
	case RoleUser:
		return RoleUser
	case RoleAssistant:
		return RoleAssistant
	default:
		return RoleAssistant
	}
}
