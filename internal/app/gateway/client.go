package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cloudcost/internal/app/config"
)

// Клиент шлюза провайдера. Шлюз уже агрегирует данные облака,
// сервис напрямую с провайдером не работает.

// CatalogEntry - позиция прайс-листа провайдера
type CatalogEntry struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"` // compute, storage, network, licence
	Flags         string  `json:"flags"`    // может содержать PER_MONTH
	UnitPrice     float64 `json:"unit_price"`
	IOPSUnitPrice float64 `json:"iops_unit_price"`
}

// ConsumptionRecord - запись истории потребления за день
type ConsumptionRecord struct {
	Date        string  `json:"date"` // 2006-01-02
	ServiceName string  `json:"service_name"`
	Category    string  `json:"category"`
	Flags       string  `json:"flags"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Cost        float64 `json:"cost"`
}

type catalogResponse struct {
	Entries []CatalogEntry `json:"entries"`
}

type consumptionResponse struct {
	Records []ConsumptionRecord `json:"records"`
}

type Client struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

// doGet выполняет запрос к шлюзу с псевдо-авторизацией по ключу
func (c *Client) doGet(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("X-Gateway-Key", c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// FetchCatalog получает прайс-лист провайдера
func (c *Client) FetchCatalog(ctx context.Context) ([]CatalogEntry, error) {
	var response catalogResponse
	if err := c.doGet(ctx, "/api/catalog", nil, &response); err != nil {
		return nil, err
	}
	return response.Entries, nil
}

// FetchConsumption получает историю потребления за период
func (c *Client) FetchConsumption(ctx context.Context, dateFrom, dateTo time.Time) ([]ConsumptionRecord, error) {
	query := url.Values{}
	query.Set("date_from", dateFrom.Format("2006-01-02"))
	query.Set("date_to", dateTo.Format("2006-01-02"))

	var response consumptionResponse
	if err := c.doGet(ctx, "/api/consumption", query, &response); err != nil {
		return nil, err
	}
	return response.Records, nil
}
