package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/chatscribe/chatscribe/internal/article"
	"github.com/chatscribe/chatscribe/internal/browser"
	"github.com/chatscribe/chatscribe/internal/cache"
	"github.com/chatscribe/chatscribe/internal/conversation"
	"github.com/chatscribe/chatscribe/internal/extract"
	"github.com/chatscribe/chatscribe/internal/linkedin"
	"github.com/chatscribe/chatscribe/internal/llm"
	"github.com/chatscribe/chatscribe/internal/shareurl"
)

// App wires the extraction pipeline to article generation and output.
type App struct {
	cfg     Config
	ai      llm.Client
	fetcher browser.Fetcher
	gen     *article.Generator
}

// New builds the application from configuration. The chat backend is probed
// best-effort; an unreachable server is a warning, not a startup failure.
func New(ctx context.Context, cfg Config) (*App, error) {
	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	provider := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	a := &App{cfg: cfg, ai: provider}

	opts := browser.DefaultOptions()
	if cfg.BrowserUserAgent != "" {
		opts.UserAgent = cfg.BrowserUserAgent
	}
	if cfg.BrowserExecPath != "" {
		opts.ExecPath = cfg.BrowserExecPath
	}
	if cfg.IndicatorTimeout > 0 {
		opts.IndicatorTimeout = cfg.IndicatorTimeout
	}
	if cfg.SettleDelay > 0 {
		opts.SettleDelay = cfg.SettleDelay
	}
	a.fetcher = browser.NewChromeFetcher(opts)

	a.gen = &article.Generator{Client: provider, Model: cfg.LLMModel}
	if cfg.CacheDir != "" {
		a.gen.Cache = &cache.LLMCache{Dir: cfg.CacheDir}
	}

	// Quick connectivity check by listing models; do not fail hard.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if lister, ok := a.ai.(llm.ModelLister); ok {
		if models, err := lister.ListModels(probeCtx); err != nil {
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		} else {
			log.Info().Int("count", len(models.Models)).Msg("LLM models available")
		}
	}

	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// Extract runs the full extraction pipeline for one raw URL: normalize,
// fetch, parse, classify. On success the result always carries the synthetic
// metadata message plus at least one real turn. There are no retries and no
// partial results; the browser is torn down before this returns.
func (a *App) Extract(ctx context.Context, rawURL string) ([]conversation.Message, error) {
	canonical, err := shareurl.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", canonical).Msg("starting extraction")

	markup, err := a.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return nil, err
	}

	doc, err := extract.Parse(markup)
	if err != nil {
		return nil, wrapUnexpected(err, markup)
	}
	msgs, err := extract.Conversation(doc)
	if err != nil {
		if errors.Is(err, extract.ErrExtractionFailed) {
			return nil, err
		}
		return nil, wrapUnexpected(err, markup)
	}
	log.Info().Int("messages", len(msgs)).Msg("extraction complete")
	return msgs, nil
}

// wrapUnexpected converts internal parser errors into a generic extraction
// failure carrying a short page snippet for diagnosis.
func wrapUnexpected(err error, markup string) error {
	log.Error().Err(err).Msg("unexpected extraction error")
	return fmt.Errorf("%w: %v. Page snippet: %s", extract.ErrExtractionFailed, err, browser.Snippet(markup, 500))
}

// Run executes the whole flow: extract, generate, write outputs, and
// optionally post to LinkedIn.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.MinPostInterval > 0 && a.cfg.CacheDir != "" {
		if wait, limited := rateLimited(a.cfg.CacheDir, a.cfg.MinPostInterval); limited {
			return fmt.Errorf("rate limited: wait %s before generating again", wait.Round(time.Second))
		}
	}

	msgs, err := a.Extract(ctx, a.cfg.URL)
	if err != nil {
		return err
	}

	art, err := a.gen.Generate(ctx, msgs)
	if err != nil {
		return err
	}
	if a.cfg.CacheDir != "" {
		recordGeneration(a.cfg.CacheDir)
	}

	content := art.Body
	if art.Title != "" {
		content = "# " + art.Title + "\n\n" + art.Body
	}
	if err := os.WriteFile(a.cfg.OutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote article")

	if a.cfg.OutputPDFPath != "" {
		if err := writeArticlePDF(art, a.cfg.OutputPDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote article PDF")
	}

	if a.cfg.PostToLinkedIn {
		client := linkedin.NewClient(a.cfg.LinkedInToken, "")
		vis := linkedin.Visibility(a.cfg.LinkedInVisibility)
		if _, err := client.Post(ctx, content, vis); err != nil {
			return fmt.Errorf("post to linkedin: %w", err)
		}
	}
	return nil
}
