package provisioner

import (
	"fmt"
	"log/slog"

	"github.com/ruteri/panel-provisioning-backend/config"
	"github.com/ruteri/panel-provisioning-backend/credentials"
	"github.com/ruteri/panel-provisioning-backend/panel"
	"github.com/ruteri/panel-provisioning-backend/provisioning"
)

// NewHandlerFromConfig wires the orchestrator and its panel clients from cfg.
func NewHandlerFromConfig(cfg *config.Config, log *slog.Logger) (*Handler, error) {
	generator, err := credentials.NewGenerator(cfg.PasswordLength, cfg.EmailDomain)
	if err != nil {
		return nil, fmt.Errorf("invalid credential settings: %w", err)
	}

	orchestrator := provisioning.NewOrchestrator(
		provisioning.NewResolver(cfg.Targets, log),
		panel.NewClientFactory(cfg.PanelTimeout),
		generator,
		cfg.Defaults,
		log,
	)
	return NewHandler(orchestrator, log), nil
}
