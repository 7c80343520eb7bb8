package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/quest_academy/internal/app"
	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/session"
	"github.com/Skotchmaster/quest_academy/pkg/config"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

var errNotLoggedIn = errors.New("not logged in, run `questctl login` first")

const msgSessionExpired = "Session expired, run `questctl login` again"

// cli holds what every subcommand shares.
type cli struct {
	cfg config.Config
	log *slog.Logger
	app *app.App
}

func newRootCmd(cfg config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:          "questctl",
		Short:        "Command-line client for Quest Academy",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfg.APIURL, "api-url", c.cfg.APIURL, "API origin; requests go to <api-url>/api")
	flags.StringVar(&c.cfg.StateDSN, "state", c.cfg.StateDSN, "DSN of the durable session store")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(
		c.newLoginCommand(),
		c.newRegisterCommand(),
		c.newLogoutCommand(),
		c.newWhoamiCommand(),
		c.newRefreshCommand(),
		c.newUploadCommand(),
		c.newWorldsCommand(),
		c.newLeaderboardCommand(),
	)
	return rootCmd
}

// withApp opens the client for the duration of one command.
func (c *cli) withApp(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		c.log = logging.NewWithWriter(cmd.ErrOrStderr(), c.cfg.LogLevel).With("service", c.cfg.ServiceName)
		nav := gateway.NewMemoryNavigator(location(cmd), func(string) {
			c.log.Warn("session expired", "command", cmd.Name())
			fmt.Fprintln(cmd.ErrOrStderr(), msgSessionExpired)
		})
		a, err := app.New(cmd.Context(), c.cfg, c.log, app.Options{Navigator: nav})
		if err != nil {
			return err
		}
		c.app = a
		defer func() {
			err = errors.Join(err, a.Close())
		}()
		return run(cmd, args)
	}
}

// location maps a command to the screen it stands in for, so that a 401
// from a failed login is not reported as an expired session.
func location(cmd *cobra.Command) string {
	switch cmd.Name() {
	case "login":
		return gateway.LoginPath
	case "register":
		return gateway.RegisterPath
	default:
		return "/" + cmd.Name()
	}
}

// requireSession restores the stored session and fails when there is none.
func (c *cli) requireSession(ctx context.Context) (session.Snapshot, error) {
	snap := c.app.Session.Bootstrap(ctx)
	if d := session.RequireAuth(snap); !d.Allowed() {
		return snap, errNotLoggedIn
	}
	return snap, nil
}

func readSecret(cmd *cobra.Command, name string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", name)
	var s string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &s); err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return s, nil
}
