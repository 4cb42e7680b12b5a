package interfaces

import "context"

// UserCreation is the input of PanelClient.CreateUser.
type UserCreation struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// ServerCreation is the input of PanelClient.CreateServer.
type ServerCreation struct {
	Name          string
	UserID        int
	Defaults      SharedServerDefaults
	Limits        ResourceLimits
	FeatureLimits FeatureLimits
}

// PanelClient issues authenticated application API calls against one target.
// Implementations make a single attempt per call and never retry.
type PanelClient interface {
	// CreateUser creates a non-admin panel user. The returned account does not
	// carry a password.
	CreateUser(ctx context.Context, user UserCreation) (*ProvisionedAccount, error)

	// CreateServer creates a server owned by server.UserID.
	CreateServer(ctx context.Context, server ServerCreation) (*ProvisionedInstance, error)
}

// PanelClientFactory returns a PanelClient bound to a target.
type PanelClientFactory interface {
	ClientFor(target BackendTarget) PanelClient
}
