// Package freedict resolves short word explanations from the FreeDictionary
// API (dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public API root; the language and word are
	// appended as path segments.
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries"

	defaultLang       = "en"
	defaultRetryDelay = 500 * time.Millisecond
	maxBodyBytes      = 1 << 20
)

// Config configures a Provider.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryDelay time.Duration
	UserAgent  string
}

// Provider fetches explanations from the FreeDictionary API.
type Provider struct {
	baseURL    string
	retryDelay time.Duration
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. Zero config fields fall back to defaults.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		retryDelay: cfg.RetryDelay,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// Explain returns "<part of speech>: <definition>" for the first definition
// of word, or "" if the dictionary does not know it (HTTP 404 or no
// definitions).
func (p *Provider) Explain(ctx context.Context, word, lang string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", nil
	}
	if lang == "" {
		lang = defaultLang
	}

	reqURL := p.baseURL + "/" + url.PathEscape(lang) + "/" + url.PathEscape(word)
	p.log.DebugContext(ctx, "freedict request", slog.String("word", word), slog.String("lang", lang))

	resp, err := p.getWithRetry(ctx, reqURL, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return "", fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("freedict: decode json: %w", err)
	}

	return firstDefinition(entries), nil
}

// getWithRetry issues a GET and retries once on 5xx or network errors.
func (p *Provider) getWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := p.get(ctx, reqURL)

	retry := err != nil || resp.StatusCode >= http.StatusInternalServerError
	if !retry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	timer := time.NewTimer(p.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return p.get(ctx, reqURL)
}

func (p *Provider) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	return p.httpClient.Do(req)
}

// firstDefinition picks the first non-empty definition across entries.
func firstDefinition(entries []apiEntry) string {
	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				text := strings.TrimSpace(def.Definition)
				if text == "" {
					continue
				}
				if meaning.PartOfSpeech != "" {
					return meaning.PartOfSpeech + ": " + text
				}
				return text
			}
		}
	}
	return ""
}
