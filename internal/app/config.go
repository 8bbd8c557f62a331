package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// URL is the raw share link to extract.
	URL        string
	OutputPath string
	// OutputPDFPath, when set, additionally renders the article as PDF.
	OutputPDFPath string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Browser
	BrowserUserAgent    string
	BrowserExecPath     string
	IndicatorTimeout    time.Duration
	SettleDelay         time.Duration

	// LinkedIn
	PostToLinkedIn     bool
	LinkedInToken      string
	LinkedInVisibility string

	// Behavior
	CacheDir        string
	MinPostInterval time.Duration
	Verbose         bool
}
