package provisioner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/panel-provisioning-backend/api"
)

// maxResponseSize bounds how much of a response the client reads.
const maxResponseSize = 1024 * 1024

// ProvisioningClient implements api.ProvisioningProvider against a remote
// provisioning endpoint.
type ProvisioningClient struct {
	// ServerAddr is the base URL of the endpoint, without /api/create.
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Provision posts req to /api/create. A non-201 answer is returned as
// *api.RequestError carrying the decoded error body, including any
// credentials of an account created before the failure.
func (p *ProvisioningClient) Provision(ctx context.Context, req *api.CreateRequest) (*api.CreateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not encode provisioning request: %w", err)
	}

	url := strings.TrimSuffix(p.ServerAddr, "/") + api.CreatePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not request provisioning endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("could not read provisioning response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		reqErr := &api.RequestError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, &reqErr.Response); err != nil || reqErr.Response.Error == "" {
			reqErr.Response.Error = strings.TrimSpace(string(respBody))
		}
		return nil, reqErr
	}

	var parsedResponse api.CreateResponse
	if err := json.Unmarshal(respBody, &parsedResponse); err != nil {
		return nil, fmt.Errorf("could not parse provisioning response: %w", err)
	}

	return &parsedResponse, nil
}
