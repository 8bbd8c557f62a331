package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chatscribe.yaml")
	data := `
url: https://chatgpt.com/share/abc
output: out.md
llm:
  base: http://localhost:8081/v1
  model: test-model
  key: sk-test
browser:
  settleDelay: 1s
linkedin:
  post: true
  token: tok
verbose: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg := Config{OutputPath: "article.md"}
	ApplyFileConfig(&cfg, fc)

	if cfg.URL != "https://chatgpt.com/share/abc" {
		t.Fatalf("url not applied: %q", cfg.URL)
	}
	if cfg.OutputPath != "out.md" {
		t.Fatalf("default output should be overridden, got %q", cfg.OutputPath)
	}
	if cfg.LLMBaseURL != "http://localhost:8081/v1" || cfg.LLMModel != "test-model" || cfg.LLMAPIKey != "sk-test" {
		t.Fatalf("llm settings not applied: %+v", cfg)
	}
	if cfg.SettleDelay != time.Second {
		t.Fatalf("settle delay not applied: %v", cfg.SettleDelay)
	}
	if !cfg.PostToLinkedIn || cfg.LinkedInToken != "tok" {
		t.Fatalf("linkedin settings not applied: %+v", cfg)
	}
	if !cfg.Verbose {
		t.Fatal("verbose not applied")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{URL: "chatgpt.com/share/fromflag", LLMModel: "flag-model"}
	var fc FileConfig
	fc.URL = "chatgpt.com/share/fromfile"
	fc.LLM.Model = "file-model"
	ApplyFileConfig(&cfg, fc)

	if cfg.URL != "chatgpt.com/share/fromflag" || cfg.LLMModel != "flag-model" {
		t.Fatalf("explicit values must win over file config: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := Config{URL: "chatgpt.com/share/a", OutputPath: "a.md", LLMModel: "m"}
	if err := ValidateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := ValidateConfig(Config{OutputPath: "a.md", LLMModel: "m"}); err == nil {
		t.Fatal("expected error for missing URL")
	}
	if err := ValidateConfig(Config{URL: "u", OutputPath: "a.md"}); err == nil {
		t.Fatal("expected error for missing model")
	}
	withPost := valid
	withPost.PostToLinkedIn = true
	if err := ValidateConfig(withPost); err == nil {
		t.Fatal("expected error for posting without token")
	}
}
