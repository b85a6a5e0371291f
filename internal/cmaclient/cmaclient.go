// Package cmaclient provides the runtime handle the execution tools
// dispatch through: an opaque client[resource][method] abstracting the
// DatoCMS Content Management API behind a single interface, with a mock
// implementation for tests.
package cmaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config carries the connection parameters, mirroring the shape of
// internal/cmaschema/client.Config so both the introspected stub and the
// runtime client agree on what a caller must supply.
type Config struct {
	APIToken    string
	Environment string
	BaseURL     string
}

const defaultBaseURL = "https://site-api.datocms.com"

// Client dispatches a (resource, method, args) call, the runtime analog of
// the TypeScript client's dynamic client[resource][method](...args)
// invocation. httpMethod is the HTTP verb resolved from the resource
// manifest (internal/resourceschema.Endpoint.Method) for this call, not
// derived from method's Go spelling. Implementations must respect context
// cancellation.
type Client interface {
	Invoke(ctx context.Context, resource, method, httpMethod string, args []any) (any, error)
}

// New returns the default HTTP-backed client. Reproducing the CMA
// client's full request/response contract is out of this module's
// scope — New performs a generic JSON:API-shaped request against
// baseURL/<namespace> so the execution path is exercised end to end
// without a bespoke implementation per resource.
func New(cfg Config) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &httpClient{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type httpClient struct {
	cfg     Config
	baseURL string
	http    *http.Client
}

func (c *httpClient) Invoke(ctx context.Context, resource, method, httpMethod string, args []any) (any, error) {
	verb := strings.ToUpper(httpMethod)
	if verb == "" {
		verb = http.MethodGet
	}
	path := strings.ToLower(resource)

	var pathID string
	var bodyArg any
	for _, a := range args {
		if s, ok := a.(string); ok && pathID == "" {
			pathID = s
			continue
		}
		if bodyArg == nil {
			bodyArg = a
		}
	}
	if pathID != "" {
		path += "/" + pathID
	}

	url := c.baseURL + "/" + path

	var body io.Reader
	if (verb == http.MethodPost || verb == http.MethodPut) && bodyArg != nil {
		data, err := json.Marshal(bodyArg)
		if err != nil {
			return nil, fmt.Errorf("cmaclient: encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, verb, url, body)
	if err != nil {
		return nil, fmt.Errorf("cmaclient: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/vnd.api+json")
	if c.cfg.Environment != "" {
		req.Header.Set("X-Environment", c.cfg.Environment)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cmaclient: %s %s: %w", verb, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cmaclient: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("cmaclient: %s %s: status %d: %s", verb, url, resp.StatusCode, string(data))
	}
	if len(data) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("cmaclient: decode response: %w", err)
	}
	return result, nil
}

// IsReadOnlyMethod reports whether httpMethod is a GET, the check the
// resource_action_readonly/destructive_method_execute tools use to reject
// a call routed through the wrong variant. httpMethod must come from the
// resource manifest (internal/resourceschema.Endpoint.Method), the
// authoritative source of a method's verb — this package has no naming
// convention reliable enough to derive it from the Go method name alone.
func IsReadOnlyMethod(httpMethod string) bool {
	return strings.EqualFold(httpMethod, http.MethodGet)
}
