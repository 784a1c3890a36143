package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard/internal/client"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/session"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags and configuration have
// been resolved.
type app struct {
	configPath  string
	apiURL      string
	sessionPath string

	cfg    *config.ClientConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "boardctl",
		Short: "Task board client",
		Long: `boardctl talks to a task board server.

Sign in with "boardctl login <username>", then list boards with
"boardctl boards list" and show one with "boardctl show <board>".
Boards and tasks may be named by a unique prefix of their id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "client config file (default: ./config.yaml if present)")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "task board server URL (env TASKBOARD_CLIENT_API_URL)")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", "", "session file path")

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newBoardsCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newMoveCmd(a),
		newEditCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadClient(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.sessionPath != "" {
		cfg.SessionPath = a.sessionPath
	}
	if cfg.SessionPath == "" {
		if cfg.SessionPath, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.logger, err = logger.Setup(logger.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	})
	return err
}

func (a *app) callTimeout() time.Duration {
	return time.Duration(a.cfg.CallTimeoutSeconds) * time.Second
}

// newClient returns an API client, carrying the stored token when
// authenticated is set.
func (a *app) newClient(authenticated bool) (*client.Client, error) {
	opts := []client.Option{client.WithLogger(a.logger)}
	if authenticated {
		s, err := session.Load(a.cfg.SessionPath)
		if err != nil {
			return nil, fmt.Errorf("%w: run boardctl login first", err)
		}
		opts = append(opts, client.WithToken(s.Token))
	}
	return client.New(a.cfg.APIURL, opts...)
}

// callContext bounds a synchronous call made directly by a command.
func (a *app) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.callTimeout())
}
