// Package integrations holds the HTTP clients for the external employee
// directory and accounting systems. Both authenticate with OAuth2 client
// credentials.
package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"solarops/internal/shared/config"
)

const (
	defaultTimeout = 10 * time.Second
	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20
)

func newOAuthClient(cfg config.OAuthClientConfig) *http.Client {
	timeout := defaultTimeout
	if cfg.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}

	base := &http.Client{Timeout: timeout}
	if cfg.TokenURL == "" {
		return base
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	client := cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	client.Timeout = timeout
	return client
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// readError turns a non-success response into an error carrying a trimmed body.
func readError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
