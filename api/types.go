package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
)

// CreatePath is the route of the provisioning endpoint in every deployment.
const CreatePath = "/api/create"

// ProvisioningProvider abstracts a provisioning endpoint.
type ProvisioningProvider interface {
	// Provision submits req and returns the created user and server.
	// Non-201 responses are returned as *RequestError.
	Provision(ctx context.Context, req *CreateRequest) (*CreateResponse, error)
}

// CreateRequest is the body of POST /api/create.
type CreateRequest struct {
	ServerName string `json:"serverName"`

	// RAM is the memory limit in megabytes, 0 means unlimited. Nil when the
	// field was absent.
	RAM *MemoryMB `json:"ram"`

	SecretKey string `json:"secretKey"`
	PanelType string `json:"panelType"`
}

// MemoryMB accepts a JSON number or a numeric string.
type MemoryMB int64

// UnmarshalJSON implements json.Unmarshaler.
func (m *MemoryMB) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}

	raw := string(data)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*m = MemoryMB(n)
		return nil
	}

	// integral floats such as 1024.0
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64/2 {
		return fmt.Errorf("ram must be an integer number of megabytes, got %s", raw)
	}
	*m = MemoryMB(int64(f))
	return nil
}

// UserInfo is the public part of a created panel account.
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserInfo strips the password from account.
func NewUserInfo(account interfaces.ProvisionedAccount) UserInfo {
	return UserInfo{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	}
}

// ServerInfo describes a created panel server.
type ServerInfo struct {
	ID     int                       `json:"id"`
	UUID   string                    `json:"uuid"`
	Name   string                    `json:"name"`
	Limits interfaces.ResourceLimits `json:"limits"`
}

// CreateResponse is the 201 body of POST /api/create.
type CreateResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	PanelURL string     `json:"panelURL"`
	User     UserInfo   `json:"user"`
	Password string     `json:"password"`
	Server   ServerInfo `json:"server"`
}

// ErrorResponse is the body of every failed POST /api/create.
// User and Password are set when an account was created before the failure.
type ErrorResponse struct {
	Success  bool      `json:"success"`
	Error    string    `json:"error"`
	Detail   string    `json:"detail,omitempty"`
	Message  string    `json:"message,omitempty"`
	User     *UserInfo `json:"user,omitempty"`
	Password string    `json:"password,omitempty"`
}

// RequestError is a non-201 answer of the provisioning endpoint.
type RequestError struct {
	StatusCode int
	Response   ErrorResponse
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("provisioning endpoint returned %d: %s", e.StatusCode, e.Response.Error)
	if e.Response.Detail != "" {
		msg += ": " + e.Response.Detail
	}
	return msg
}
