package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const userAgent = "islandferry schedule generator"

// Fetch reads the published schedule page from an http(s) URL or a local file and parses it.
func Fetch(ctx context.Context, client *http.Client, location string) (*html.Node, error) {
	if !isValidUrl(location) {
		file, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return parseHTML(file, "")
	}

	log.Info().Str("url", location).Msg("Retrieving ferry schedules")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch schedules from %s: HTTP %d", location, resp.StatusCode)
	}

	root, err := parseHTML(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", location).Msg("Successfully retrieved ferry schedules")

	return root, nil
}

func parseHTML(reader io.Reader, contentType string) (*html.Node, error) {
	decoded, err := charset.NewReader(reader, contentType)
	if err != nil {
		return nil, fmt.Errorf("detect page charset: %w", err)
	}

	return html.Parse(decoded)
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
