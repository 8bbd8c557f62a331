package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chatscribe/chatscribe/internal/app"
	"github.com/chatscribe/chatscribe/internal/browser"
	"github.com/chatscribe/chatscribe/internal/extract"
	"github.com/chatscribe/chatscribe/internal/shareurl"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load a local dotenv before flags so os.Getenv defaults see it.
	_ = app.LoadEnvFiles(".env")

	var (
		rawURL        string
		outputPath    string
		outputPDFPath string
		configPath    string
		envPath       string
		llmBaseURL    string
		llmModel      string
		llmKey        string
		browserUA     string
		browserExec   string
		indicatorWait time.Duration
		settleDelay   time.Duration
		postLinkedIn  bool
		linkedInToken string
		linkedInVis   string
		cacheDir      string
		minInterval   time.Duration
		verbose       bool
	)

	flag.StringVar(&rawURL, "url", "", "ChatGPT share link to extract (also accepts a bare positional argument)")
	flag.StringVar(&outputPath, "output", "article.md", "Path to write the generated Markdown article")
	flag.StringVar(&outputPDFPath, "output.pdf", "", "Optional path to additionally render the article as PDF")
	flag.StringVar(&configPath, "config", os.Getenv("CHATSCRIBE_CONFIG"), "Optional YAML or JSON config file; flags win over file values")
	flag.StringVar(&envPath, "env", "", "Optional extra dotenv file to load")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&browserUA, "browser.ua", "", "Override browser User-Agent")
	flag.StringVar(&browserExec, "browser.exec", os.Getenv("CHROME_PATH"), "Path to Chrome/Chromium binary (optional)")
	flag.DurationVar(&indicatorWait, "browser.indicatorTimeout", 0, "Max wait for conversation content to appear (default 15s)")
	flag.DurationVar(&settleDelay, "browser.settleDelay", 0, "Extra delay after content appears for dynamic loading (default 5s)")
	flag.BoolVar(&postLinkedIn, "linkedin.post", false, "Post the generated article to LinkedIn")
	flag.StringVar(&linkedInToken, "linkedin.token", os.Getenv("LINKEDIN_TOKEN"), "LinkedIn OAuth access token")
	flag.StringVar(&linkedInVis, "linkedin.visibility", "PUBLIC", "LinkedIn post visibility: PUBLIC or CONNECTIONS")
	flag.StringVar(&cacheDir, "cache.dir", ".chatscribe-cache", "Cache directory for completions and run markers")
	flag.DurationVar(&minInterval, "minInterval", time.Minute, "Minimum interval between generations; 0 disables")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if rawURL == "" && flag.NArg() > 0 {
		rawURL = flag.Arg(0)
	}

	if envPath != "" {
		if err := app.LoadEnvFiles(envPath); err != nil {
			log.Error().Err(err).Str("path", envPath).Msg("load env file failed")
			os.Exit(1)
		}
		// Re-apply env fallbacks for values the extra file may have supplied.
		if llmBaseURL == "" {
			llmBaseURL = os.Getenv("LLM_BASE_URL")
		}
		if llmModel == "" {
			llmModel = os.Getenv("LLM_MODEL")
		}
		if llmKey == "" {
			llmKey = os.Getenv("LLM_API_KEY")
		}
		if linkedInToken == "" {
			linkedInToken = os.Getenv("LINKEDIN_TOKEN")
		}
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:                rawURL,
		OutputPath:         outputPath,
		OutputPDFPath:      outputPDFPath,
		LLMBaseURL:         llmBaseURL,
		LLMModel:           llmModel,
		LLMAPIKey:          llmKey,
		BrowserUserAgent:   browserUA,
		BrowserExecPath:    browserExec,
		IndicatorTimeout:   indicatorWait,
		SettleDelay:        settleDelay,
		PostToLinkedIn:     postLinkedIn,
		LinkedInToken:      linkedInToken,
		LinkedInVisibility: linkedInVis,
		CacheDir:           cacheDir,
		MinPostInterval:    minInterval,
		Verbose:            verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	if err := app.ValidateConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 for pipeline failures a user can act on (bad
		// link, inaccessible page, unrecognized layout), 1 for everything else.
		if errors.Is(err, shareurl.ErrInvalidInput) ||
			errors.Is(err, browser.ErrFetchFailed) ||
			errors.Is(err, extract.ErrExtractionFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
