package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and environment variables.
type FileConfig struct {
	URL       string `yaml:"url" json:"url"`
	Output    string `yaml:"output" json:"output"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Browser struct {
		UserAgent        string        `yaml:"userAgent" json:"userAgent"`
		ExecPath         string        `yaml:"execPath" json:"execPath"`
		IndicatorTimeout time.Duration `yaml:"indicatorTimeout" json:"indicatorTimeout"`
		SettleDelay      time.Duration `yaml:"settleDelay" json:"settleDelay"`
	} `yaml:"browser" json:"browser"`

	LinkedIn struct {
		Post       bool   `yaml:"post" json:"post"`
		Token      string `yaml:"token" json:"token"`
		Visibility string `yaml:"visibility" json:"visibility"`
	} `yaml:"linkedin" json:"linkedin"`

	Cache struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"cache" json:"cache"`

	MinPostInterval time.Duration `yaml:"minPostInterval" json:"minPostInterval"`
	Verbose         bool          `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields still
// at their zero/default value. Flags should already have been parsed; this
// lets the file supply defaults while explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		outputDefault   = "article.md"
		cacheDirDefault = ".chatscribe-cache"
	)

	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == outputDefault) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OutputPDFPath == "" && fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}

	if cfg.BrowserUserAgent == "" && fc.Browser.UserAgent != "" {
		cfg.BrowserUserAgent = fc.Browser.UserAgent
	}
	if cfg.BrowserExecPath == "" && fc.Browser.ExecPath != "" {
		cfg.BrowserExecPath = fc.Browser.ExecPath
	}
	if cfg.IndicatorTimeout == 0 && fc.Browser.IndicatorTimeout > 0 {
		cfg.IndicatorTimeout = fc.Browser.IndicatorTimeout
	}
	if cfg.SettleDelay == 0 && fc.Browser.SettleDelay > 0 {
		cfg.SettleDelay = fc.Browser.SettleDelay
	}

	if !cfg.PostToLinkedIn && fc.LinkedIn.Post {
		cfg.PostToLinkedIn = true
	}
	if cfg.LinkedInToken == "" && fc.LinkedIn.Token != "" {
		cfg.LinkedInToken = fc.LinkedIn.Token
	}
	if cfg.LinkedInVisibility == "" && fc.LinkedIn.Visibility != "" {
		cfg.LinkedInVisibility = fc.LinkedIn.Visibility
	}

	if (cfg.CacheDir == "" || cfg.CacheDir == cacheDirDefault) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.MinPostInterval == 0 && fc.MinPostInterval > 0 {
		cfg.MinPostInterval = fc.MinPostInterval
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return errors.New("config: share URL is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	if cfg.PostToLinkedIn && strings.TrimSpace(cfg.LinkedInToken) == "" {
		return errors.New("config: linkedin.token is required when posting is enabled (or set LINKEDIN_TOKEN)")
	}
	return nil
}
