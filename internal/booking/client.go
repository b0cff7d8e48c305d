package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ms-boxoffice/internal/models"
)

// HTTPCatalogClient talks to the client service's public API. The
// orchestrator deliberately goes through the same HTTP surface as any
// other buyer, so it gets the same correctness guarantees.
type HTTPCatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPCatalogClient(baseURL string, client *http.Client) *HTTPCatalogClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPCatalogClient{BaseURL: baseURL, Client: client}
}

func (c *HTTPCatalogClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/events", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned status %d", models.ErrTransaction, resp.StatusCode)
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: decode events: %v", models.ErrTransaction, err)
	}
	return events, nil
}

func (c *HTTPCatalogClient) Purchase(ctx context.Context, eventID int64, quantity int) (*models.PurchaseConfirmation, error) {
	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/events/%d/purchase", c.BaseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransaction, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, models.ErrInvalidInput
	case http.StatusNotFound:
		return nil, models.ErrEventNotFound
	case http.StatusConflict:
		return nil, models.ErrSoldOut
	default:
		return nil, fmt.Errorf("%w: purchase returned status %d", models.ErrTransaction, resp.StatusCode)
	}

	var confirmation models.PurchaseConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("%w: decode purchase: %v", models.ErrTransaction, err)
	}
	return &confirmation, nil
}
