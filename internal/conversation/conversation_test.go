package conversation

import "testing"

func TestSystemMessage_AllFields(t *testing.T) {
	m := Metadata{Title: "Go concurrency patterns", Model: "GPT-4", Timestamp: "2024-01-15 10:30:00 UTC"}
	msg, ok := m.SystemMessage()
	if !ok {
		t.Fatal("expected a system message")
	}
	if msg.Role != RoleSystem {
		t.Fatalf("expected system role, got %q", msg.Role)
	}
	want := "Title: Go concurrency patterns\nModel Used: GPT-4\nConversation Time: 2024-01-15 10:30:00 UTC"
	if msg.Content != want {
		t.Fatalf("unexpected content:\n%q", msg.Content)
	}
}

func TestSystemMessage_Empty(t *testing.T) {
	if _, ok := (Metadata{}).SystemMessage(); ok {
		t.Fatal("expected no system message for empty metadata")
	}
}

func TestSystemMessage_PartialFields(t *testing.T) {
	msg, ok := (Metadata{Timestamp: "2024-01-15 10:30:00 UTC"}).SystemMessage()
	if !ok {
		t.Fatal("expected a system message when any field is set")
	}
	if msg.Content != "Conversation Time: 2024-01-15 10:30:00 UTC" {
		t.Fatalf("unexpected content: %q", msg.Content)
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"user":      RoleUser,
		"USER":      RoleUser,
		"assistant": RoleAssistant,
		"system":    RoleSystem,
		"unknown":   RoleAssistant,
		"tool":      RoleAssistant,
		"":          RoleAssistant,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}
