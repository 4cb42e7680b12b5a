package panel

import (
	"time"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
)

// ClientFactory creates panel clients for resolved targets.
type ClientFactory struct {
	Timeout time.Duration
}

func NewClientFactory(timeout time.Duration) *ClientFactory {
	return &ClientFactory{Timeout: timeout}
}

// ClientFor implements interfaces.PanelClientFactory.
func (f *ClientFactory) ClientFor(target interfaces.BackendTarget) interfaces.PanelClient {
	return NewClient(target, f.Timeout)
}
