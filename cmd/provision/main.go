// Package main (cmd/provision) submits one provisioning request to a running
// endpoint and prints the created user, password and server as JSON.
//
// Example usage:
//
//	provision --server-addr=https://provisioning.example.com \
//	    --server-name="My Bot" --ram=1024 --panel-type=private
//
// The secret key is read from --secret-key or PROVISION_SECRET_KEY.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/ruteri/panel-provisioning-backend/api/provisioner"
	"github.com/ruteri/panel-provisioning-backend/cmd/flags"
	"github.com/urfave/cli/v2"
)

var cliFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "server-addr",
		Value:   "http://127.0.0.1:8080",
		Usage:   "base URL of the provisioning endpoint",
		EnvVars: []string{"PROVISION_SERVER_ADDR"},
	},
	&cli.StringFlag{
		Name:     "server-name",
		Required: true,
		Usage:    "name of the panel server, also used for the username",
	},
	&cli.Int64Flag{
		Name:  "ram",
		Value: 0,
		Usage: "memory limit in MB, 0 for unlimited",
	},
	&cli.StringFlag{
		Name:  "panel-type",
		Value: "private",
		Usage: "target panel: 'private' or 'public'",
	},
	&cli.StringFlag{
		Name:    "secret-key",
		Usage:   "shared secret of the target panel",
		EnvVars: []string{"PROVISION_SECRET_KEY"},
	},
	&cli.DurationFlag{
		Name:  "timeout",
		Value: 90 * time.Second,
		Usage: "request timeout",
	},
}

func main() {
	app := &cli.App{
		Name:  "provision",
		Usage: "Create a panel user and server through the provisioning API",
		Flags: append(cliFlags, flags.LogFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration("timeout"))
			defer cancel()

			client := &provisioner.ProvisioningClient{ServerAddr: cCtx.String("server-addr")}
			ram := api.MemoryMB(cCtx.Int64("ram"))

			return provision(ctx, client, &api.CreateRequest{
				ServerName: cCtx.String("server-name"),
				RAM:        &ram,
				SecretKey:  cCtx.String("secret-key"),
				PanelType:  cCtx.String("panel-type"),
			}, os.Stdout, logger)
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// provision submits req and writes the response as JSON to out. When the
// server step failed after the user was created, the error body with the
// user's credentials is written instead.
func provision(ctx context.Context, provider api.ProvisioningProvider, req *api.CreateRequest, out io.Writer, logger *slog.Logger) error {
	resp, err := provider.Provision(ctx, req)
	if err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Response.User != nil {
			logger.Warn("Server creation failed but the panel user exists",
				"userID", reqErr.Response.User.ID, "username", reqErr.Response.User.Username)
			printJSON(out, reqErr.Response)
		}
		logger.Error("Provisioning failed", "err", err)
		return err
	}

	logger.Info("Provisioned", "username", resp.User.Username, "serverID", resp.Server.ID)
	return printJSON(out, resp)
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
