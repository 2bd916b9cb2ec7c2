// Package ingestion loads job descriptions and resume files into the
// in-memory parts the analysis client submits.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hirestack/recruit-agent/internal/client"
	"github.com/hirestack/recruit-agent/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting page cannot be fetched.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// JDSource describes where a job description comes from. Exactly one of
// Text, Path or URL should be set; callers that set several get the
// precedence file > url > text.
type JDSource struct {
	Text       string
	Path       string
	URL        string
	UseBrowser bool
}

// LoadJD resolves a JD source into the text or file part for submission.
// A file source returns a FilePart so the backend can sniff the format
// (PDF vs plain text); URL and inline sources return extracted text.
func LoadJD(ctx context.Context, src JDSource, logger zerolog.Logger) (jdText string, jdFile *client.FilePart, err error) {
	switch {
	case src.Path != "":
		content, err := os.ReadFile(src.Path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read job description file: %w", err)
		}
		return "", &client.FilePart{Name: filepath.Base(src.Path), Content: content}, nil
	case src.URL != "":
		text, err := jdFromURL(ctx, src.URL, src.UseBrowser, logger)
		if err != nil {
			return "", nil, err
		}
		return text, nil, nil
	default:
		return strings.TrimSpace(src.Text), nil, nil
	}
}

// jdFromURL fetches a posting page and extracts the description body,
// using platform-aware selectors and an optional headless-browser fallback
// for pages that render client-side.
func jdFromURL(ctx context.Context, urlStr string, useBrowser bool, logger zerolog.Logger) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	logger.Debug().Str("url", urlStr).Str("platform", string(platform)).Msg("fetching job posting")

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		logger.Debug().Int("chars", len(text)).Msg("content too short, rendering with headless browser")
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, 30*time.Second)
		if browserErr != nil {
			logger.Warn().Err(browserErr).Msg("browser rendering failed, keeping HTTP content")
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: page yielded no text", ErrContentExtractionFailed)
	}
	return text, nil
}
