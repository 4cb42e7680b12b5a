package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/ruteri/panel-provisioning-backend/metrics"
)

const (
	usersPath   = "/api/application/users"
	serversPath = "/api/application/servers"

	// DefaultTimeout bounds each outbound call.
	DefaultTimeout = 20 * time.Second

	// maxResponseSize caps how much of a panel response is read.
	maxResponseSize = 1024 * 1024
)

// Client implements interfaces.PanelClient against a Pterodactyl-compatible
// application API.
type Client struct {
	// BaseURL is the panel root without trailing slash
	BaseURL string

	// APIKey is sent as a bearer token
	APIKey string

	HTTPClient *http.Client
}

// NewClient creates a client bound to target with the given per-call timeout.
func NewClient(target interfaces.BackendTarget, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(target.BaseURL, "/"),
		APIKey:     target.APIKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type createUserBody struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	RootAdmin bool   `json:"root_admin"`
}

type userAttributes struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type deployBody struct {
	Locations   []int    `json:"locations"`
	DedicatedIP bool     `json:"dedicated_ip"`
	PortRange   []string `json:"port_range"`
}

type createServerBody struct {
	Name          string                    `json:"name"`
	User          int                       `json:"user"`
	Nest          int                       `json:"nest,omitempty"`
	Egg           int                       `json:"egg"`
	DockerImage   string                    `json:"docker_image"`
	Startup       string                    `json:"startup"`
	Environment   map[string]interface{}    `json:"environment"`
	Limits        interfaces.ResourceLimits `json:"limits"`
	FeatureLimits interfaces.FeatureLimits  `json:"feature_limits"`
	Deploy        deployBody                `json:"deploy"`
}

type serverAttributes struct {
	ID     int                       `json:"id"`
	UUID   string                    `json:"uuid"`
	Name   string                    `json:"name"`
	Limits interfaces.ResourceLimits `json:"limits"`
}

// CreateUser creates a non-admin user. POST /api/application/users
func (c *Client) CreateUser(ctx context.Context, user interfaces.UserCreation) (*interfaces.ProvisionedAccount, error) {
	body := createUserBody{
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Password:  user.Password,
		RootAdmin: false,
	}

	var attrs userAttributes
	if err := c.post(ctx, "create_user", usersPath, body, &attrs); err != nil {
		return nil, err
	}

	return &interfaces.ProvisionedAccount{
		ID:       attrs.ID,
		Username: attrs.Username,
		Email:    attrs.Email,
	}, nil
}

// CreateServer creates a server owned by server.UserID. POST /api/application/servers
//
// The panel picks the allocation from the configured location, no port range
// or dedicated IP is requested.
func (c *Client) CreateServer(ctx context.Context, server interfaces.ServerCreation) (*interfaces.ProvisionedInstance, error) {
	environment := server.Defaults.Environment
	if environment == nil {
		environment = map[string]interface{}{}
	}

	body := createServerBody{
		Name:          server.Name,
		User:          server.UserID,
		Nest:          server.Defaults.NestID,
		Egg:           server.Defaults.EggID,
		DockerImage:   server.Defaults.DockerImage,
		Startup:       server.Defaults.StartupCommand,
		Environment:   environment,
		Limits:        server.Limits,
		FeatureLimits: server.FeatureLimits,
		Deploy: deployBody{
			Locations:   []int{server.Defaults.LocationID},
			DedicatedIP: false,
			PortRange:   []string{},
		},
	}

	var attrs serverAttributes
	if err := c.post(ctx, "create_server", serversPath, body, &attrs); err != nil {
		return nil, err
	}

	return &interfaces.ProvisionedInstance{
		ID:     attrs.ID,
		UUID:   attrs.UUID,
		Name:   attrs.Name,
		Limits: attrs.Limits,
	}, nil
}

// post sends body as JSON and decodes the attributes of a 201 response into out.
func (c *Client) post(ctx context.Context, operation, path string, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "error"
		}
		metrics.RecordPanelCall(operation, result, time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not initialize %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("could not read %s response: %w", operation, err)
	}

	if resp.StatusCode != http.StatusCreated {
		apiErr := &APIError{Operation: operation, StatusCode: resp.StatusCode}
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		// non-JSON error pages leave Errors empty
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	var envelope struct {
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("could not parse %s response: %w", operation, err)
	}
	if len(envelope.Attributes) == 0 {
		return fmt.Errorf("could not parse %s response: missing attributes", operation)
	}
	if err := json.Unmarshal(envelope.Attributes, out); err != nil {
		return fmt.Errorf("could not parse %s attributes: %w", operation, err)
	}
	return nil
}
