package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	data := "# comment\n\nCHATSCRIBE_TEST_A=plain\nCHATSCRIBE_TEST_B=\"quoted value\"\nCHATSCRIBE_TEST_C='single'\nnot-a-pair\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHATSCRIBE_TEST_A", "")
	t.Setenv("CHATSCRIBE_TEST_B", "")
	t.Setenv("CHATSCRIBE_TEST_C", "")

	if err := LoadEnvFiles(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("CHATSCRIBE_TEST_A"); got != "plain" {
		t.Fatalf("A = %q", got)
	}
	if got := os.Getenv("CHATSCRIBE_TEST_B"); got != "quoted value" {
		t.Fatalf("B = %q", got)
	}
	if got := os.Getenv("CHATSCRIBE_TEST_C"); got != "single" {
		t.Fatalf("C = %q", got)
	}
}

func TestLoadEnvFiles_MissingFileIgnored(t *testing.T) {
	if err := LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}
