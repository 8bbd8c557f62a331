package shareurl

import (
	"errors"
	"testing"
)

func TestNormalize_LegacyConversationPath(t *testing.T) {
	got, err := Normalize("https://chat.openai.com/c/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://chat.openai.com/share/abc123" {
		t.Fatalf("expected share rewrite, got %q", got)
	}
}

func TestNormalize_RejectsNonSharePath(t *testing.T) {
	// Appending /share/ to an arbitrary path yields chatgpt.com/abc123/share/,
	// which is not a shareable conversation link and must be rejected.
	_, err := Normalize("https://chatgpt.com/abc123")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-share path, got %v", err)
	}
}

func TestNormalize_AppendsShareToBareHost(t *testing.T) {
	got, err := Normalize("https://chatgpt.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://chatgpt.com/share/" {
		t.Fatalf("expected /share/ appended to bare host, got %q", got)
	}
}

func TestNormalize_ForcesHTTPS(t *testing.T) {
	got, err := Normalize("http://chatgpt.com/share/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://chatgpt.com/share/abc123" {
		t.Fatalf("expected https scheme, got %q", got)
	}
}

func TestNormalize_SchemelessInput(t *testing.T) {
	got, err := Normalize("chatgpt.com/share/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://chatgpt.com/share/abc123" {
		t.Fatalf("expected https scheme added, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize("chat.openai.com/c/xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Normalize(first)
	if err != nil {
		t.Fatalf("unexpected error on renormalize: %v", err)
	}
	if first != second {
		t.Fatalf("normalization not idempotent: %q vs %q", first, second)
	}
}

func TestNormalize_RejectsUnknownHost(t *testing.T) {
	for _, raw := range []string{
		"https://example.com/share/abc",
		"https://claude.ai/share/abc",
		"https://chat.openai.com.evil.com/share/abc",
	} {
		if _, err := Normalize(raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q, got %v", raw, err)
		}
	}
}

func TestNormalize_RejectsEmpty(t *testing.T) {
	if _, err := Normalize("   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank input, got %v", err)
	}
}

func TestNormalize_AcceptsGPTLinks(t *testing.T) {
	got, err := Normalize("https://chat.openai.com/g/g-abc123-my-gpt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Fatal("expected non-empty normalized URL")
	}
}
