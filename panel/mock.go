package panel

import (
	"context"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockClient mocks the PanelClient interface
type MockClient struct {
	mock.Mock
}

// CreateUser mocks the CreateUser method
func (m *MockClient) CreateUser(ctx context.Context, user interfaces.UserCreation) (*interfaces.ProvisionedAccount, error) {
	args := m.Called(ctx, user)
	account, _ := args.Get(0).(*interfaces.ProvisionedAccount)
	return account, args.Error(1)
}

// CreateServer mocks the CreateServer method
func (m *MockClient) CreateServer(ctx context.Context, server interfaces.ServerCreation) (*interfaces.ProvisionedInstance, error) {
	args := m.Called(ctx, server)
	instance, _ := args.Get(0).(*interfaces.ProvisionedInstance)
	return instance, args.Error(1)
}

// MockClientFactory mocks the PanelClientFactory interface
type MockClientFactory struct {
	mock.Mock
}

// ClientFor mocks the ClientFor method
func (m *MockClientFactory) ClientFor(target interfaces.BackendTarget) interfaces.PanelClient {
	args := m.Called(target)
	return args.Get(0).(interfaces.PanelClient)
}
