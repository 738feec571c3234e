package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"solarops/internal/application/visit/usecases"
	"solarops/internal/shared/config"
	"solarops/internal/shared/logger"
)

var _ usecases.AccountingExporter = (*AccountingClient)(nil)

type exportResponse struct {
	ID string `json:"id"`
}

// AccountingClient posts invoice drafts to the accounting system.
type AccountingClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewAccountingClient(cfg config.OAuthClientConfig, logger logger.Interface) *AccountingClient {
	return &AccountingClient{
		baseURL:    cfg.BaseURL,
		httpClient: newOAuthClient(cfg),
		logger:     logger,
	}
}

// ExportInvoice returns the accounting system's invoice reference.
func (c *AccountingClient) ExportInvoice(ctx context.Context, draft usecases.InvoiceDraft) (string, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("failed to encode invoice draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(c.baseURL, "/invoices"), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build accounting request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", draft.VisitID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("accounting system unreachable", "visit_id", draft.VisitID, "error", err)
		return "", fmt.Errorf("accounting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := readError(resp)
		c.logger.Errorw("accounting system rejected invoice", "visit_id", draft.VisitID, "error", err)
		return "", fmt.Errorf("accounting export: %w", err)
	}

	var out exportResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode accounting response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("accounting response has no invoice id")
	}

	c.logger.Infow("invoice exported", "visit_id", draft.VisitID, "reference", out.ID)
	return out.ID, nil
}
