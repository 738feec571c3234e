package integrations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"solarops/internal/application/visit/usecases"
	"solarops/internal/shared/config"
	"solarops/internal/shared/logger"
)

var _ usecases.TechnicianDirectory = (*DirectoryClient)(nil)

// DirectoryClient checks technician ids against the employee directory.
type DirectoryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewDirectoryClient(cfg config.OAuthClientConfig, logger logger.Interface) *DirectoryClient {
	return &DirectoryClient{
		baseURL:    cfg.BaseURL,
		httpClient: newOAuthClient(cfg),
		logger:     logger,
	}
}

// TechnicianExists reports false on 404 and an error on any other failure.
func (c *DirectoryClient) TechnicianExists(ctx context.Context, technicianID string) (bool, error) {
	endpoint := joinURL(c.baseURL, "/technicians/"+url.PathEscape(technicianID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("technician directory unreachable", "technician_id", technicianID, "error", err)
		return false, fmt.Errorf("technician directory request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		err := readError(resp)
		c.logger.Warnw("technician directory returned an error", "technician_id", technicianID, "error", err)
		return false, fmt.Errorf("technician directory: %w", err)
	}
}
