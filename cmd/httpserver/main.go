package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/panel-provisioning-backend/api/provisioner"
	"github.com/ruteri/panel-provisioning-backend/api/servers"
	"github.com/ruteri/panel-provisioning-backend/cmd/flags"
	"github.com/ruteri/panel-provisioning-backend/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "provisioning-server",
		Usage: "Serve the panel user and server provisioning API",
		Flags: append(append([]cli.Flag{flags.EnvFileFlag, flags.PanelTimeoutFlag}, flags.ServerFlags...), flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			if envFiles := cCtx.StringSlice(flags.EnvFileFlag.Name); len(envFiles) > 0 {
				if err := config.LoadDotEnv(envFiles...); err != nil {
					logger.Error("Failed to load env files", "err", err)
					return err
				}
			}

			cfg, err := config.Load(cCtx.Context, os.LookupEnv, logger)
			if err != nil {
				logger.Error("Invalid configuration", "err", err)
				return err
			}
			if cCtx.IsSet(flags.PanelTimeoutFlag.Name) {
				cfg.PanelTimeout = cCtx.Duration(flags.PanelTimeoutFlag.Name)
			}

			handler, err := provisioner.NewHandlerFromConfig(cfg, logger)
			if err != nil {
				logger.Error("Failed to create handler", "err", err)
				return err
			}

			serverCfg := flags.ConfigureServer(cCtx, logger)
			serverCfg.FitPanelTimeout(cfg.PanelTimeout)

			server, err := servers.New(serverCfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server", "panelTimeout", cfg.PanelTimeout, "writeTimeout", serverCfg.WriteTimeout)
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
