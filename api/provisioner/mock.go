package provisioner

import (
	"context"

	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/ruteri/panel-provisioning-backend/provisioning"
	"github.com/stretchr/testify/mock"
)

// MockProvider implements api.ProvisioningProvider for testing.
type MockProvider struct {
	mock.Mock
}

// Provision implements the api.ProvisioningProvider interface for testing.
func (m *MockProvider) Provision(ctx context.Context, req *api.CreateRequest) (*api.CreateResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*api.CreateResponse)
	return resp, args.Error(1)
}

// MockProvisioner implements Provisioner for handler tests.
type MockProvisioner struct {
	mock.Mock
}

// Provision implements the Provisioner interface for testing.
func (m *MockProvisioner) Provision(ctx context.Context, req interfaces.ProvisionRequest) (*provisioning.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*provisioning.Result)
	return result, args.Error(1)
}
