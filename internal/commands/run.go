package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"propdesk/internal/prompt"
	"propdesk/internal/session"
)

func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start an interactive property management session",
		Args:  cobra.NoArgs,
		RunE:  runSession,
	}
}

// runSession is also the root command's default action.
func runSession(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log = log.With(zap.String("session_id", uuid.NewString()))
	ctx := cmd.Context()

	gw, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = gw.Close() }()

	controller, err := session.New(cfg, gw, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}

	log.Info("session started")
	err = controller.Run(ctx)
	switch {
	case err == nil:
		log.Info("session ended")
		return nil
	case errors.Is(err, prompt.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info("session ended early", zap.Error(err))
		return nil
	default:
		log.Error("session aborted", zap.Error(err))
		return err
	}
}
