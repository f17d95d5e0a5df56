package commands

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/gallery"
	"github.com/idelchi/photolock/internal/logging"
	"github.com/idelchi/photolock/internal/server"
)

// NewServeCommand creates a new cobra command serving the encoded gallery.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve the encoded gallery behind a password form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := requireDir(cfg.OutputDir); err != nil {
				return err
			}

			m, err := manifest(cfg)
			if err != nil {
				return err
			}

			log := logging.New(false, false)
			log.Out = cmd.OutOrStdout()
			log.Err = cmd.ErrOrStderr()

			files := os.DirFS(cfg.OutputDir)

			loader, err := gallery.NewLoader(
				gallery.NewFSFetcher(files),
				m,
				params(cfg),
				gallery.WithParallel(cfg.Parallel),
				gallery.WithLogger(log),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg.Server, loader, files, log).Run(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().String("output-dir", "encrypted", "Directory holding the encoded files")
	cmd.Flags().String("manifest", "", "JSONC gallery manifest, defaults to test.jpg.enc and 1.jpg.enc to 10.jpg.enc")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of photos decoded at once")
	cmd.Flags().Float64("unlock-rps", 1, "Unlock attempts per second allowed per client, 0 disables the limit")
	cmd.Flags().Int("unlock-burst", 5, "Unlock attempts a client may burst") //nolint:mnd
	cmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Grace period for in-flight requests on shutdown") //nolint:mnd

	return cmd
}
