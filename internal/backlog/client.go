package backlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// NewClient creates a new service client. An empty token disables
// authentication (useful against mock servers).
func NewClient(token string) *Client {
	return &Client{
		Token: token,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithHTTPClient returns a copy of the client using the given HTTP
// client. The project-id cache is not shared with the original.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	return &Client{
		Token:      c.Token,
		HTTPClient: hc,
	}
}

// Do performs one synchronous HTTP exchange and returns the status code
// paired with the response body as raw JSON.
//
// The configured token is appended as a query parameter. When body is
// non-nil it is marshalled as JSON and the content type is set
// accordingly. If the response body does not decode as JSON the raw half
// of the result is nil while the status code is still returned; callers
// that required a payload surface MalformedResponseError themselves.
// Do never retries and never inspects the status code.
func (c *Client) Do(ctx context.Context, method, rawurl string, body interface{}) (int, json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawurl, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.Token != "" {
		q := req.URL.Query()
		q.Set(AuthQueryParam, c.Token)
		req.URL.RawQuery = q.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, nil
	}

	if !json.Valid(respBody) {
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, json.RawMessage(respBody), nil
}

// projectCache holds resolved numeric project ids keyed by project base
// URL. Read-only after first resolution; keyed per project so one client
// can serve multiple projects safely.
type projectCache struct {
	mu  sync.Mutex
	ids map[string]int64
}

func (p *projectCache) get(baseURL string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.ids[baseURL]
	return id, ok
}

func (p *projectCache) put(baseURL string, id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ids == nil {
		p.ids = make(map[string]int64)
	}
	p.ids[baseURL] = id
}

// ResolveProjectID looks up the numeric project identifier for the
// project at baseURL via GET <base>.json. The id is cached for the
// lifetime of the client; repeated calls for the same base URL do not
// touch the network again.
func (c *Client) ResolveProjectID(ctx context.Context, baseURL string) (int64, error) {
	if id, ok := c.projectIDs.get(baseURL); ok {
		return id, nil
	}

	metaURL := baseURL + ".json"
	status, payload, err := c.Do(ctx, http.MethodGet, metaURL, nil)
	if err != nil {
		return 0, fmt.Errorf("project lookup: %w", err)
	}
	if status != http.StatusOK {
		return 0, &RemoteUnreachableError{URL: metaURL, Status: status}
	}
	if payload == nil {
		return 0, &MalformedResponseError{URL: metaURL}
	}

	var pr projectResponse
	if err := json.Unmarshal(payload, &pr); err != nil {
		return 0, &MalformedResponseError{URL: metaURL}
	}

	c.projectIDs.put(baseURL, pr.Project.ID)
	return pr.Project.ID, nil
}
