package liveodds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client consome o feed HTTP do fornecedor de odds. O token vai como query
// param, conforme a API do fornecedor.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
	}
}

// envelope é a casca padrão das respostas do fornecedor.
type envelope struct {
	Success json.Number     `json:"success"`
	Results json.RawMessage `json:"results"`
	Error   string          `json:"error"`
}

// Inplay busca o stream completo de eventos ao vivo. O fornecedor ignora
// filtro de esporte nesse endpoint; o filtro é sempre local.
func (c *Client) Inplay(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/bet365/inplay", nil)
}

// Upcoming busca eventos agendados. day: 0 = hoje, 1 = amanhã.
func (c *Client) Upcoming(ctx context.Context, day int) (json.RawMessage, error) {
	return c.get(ctx, "/bet365/upcoming", url.Values{
		"day":      {strconv.Itoa(day)},
		"page":     {"1"},
		"per_page": {"50"},
	})
}

// EventDetail busca o detalhe de um evento pelo id do feed.
func (c *Client) EventDetail(ctx context.Context, eventID string) (json.RawMessage, error) {
	return c.get(ctx, "/bet365/event", url.Values{"FI": {eventID}})
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("feed payload: %w", err)
	}
	if env.Success.String() != "1" {
		if env.Error != "" {
			return nil, fmt.Errorf("feed error: %s", env.Error)
		}
		return nil, fmt.Errorf("feed success=%s", env.Success.String())
	}

	return env.Results, nil
}
