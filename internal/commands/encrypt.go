package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/logging"
	"github.com/idelchi/photolock/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags]",
		Aliases: []string{"enc"},
		Short:   "Encrypt every image of the source directory",
		Long: `Encrypts every .jpg, .jpeg, .png and .gif file of the source directory into
<output-dir>/<name>.enc. Sources are never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			log := logging.New(cfg.Quiet, false)
			log.Out = cmd.OutOrStdout()
			log.Err = cmd.ErrOrStderr()

			stats, err := logic.Run(cfg, params(cfg), log)
			if err != nil {
				return err
			}

			if cfg.Stats {
				logic.PrintStats(log, stats)
			}

			return nil
		},
	}

	cmd.Flags().String("source-dir", "media/pictures", "Directory holding the original images")
	cmd.Flags().String("output-dir", "encrypted", "Directory receiving the encoded files")
	cmd.Flags().String("encrypt-ext", ".enc", "Suffix to append to encoded files")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress per-file output")
	cmd.Flags().BoolP("stats", "s", false, "Print a summary when done")
	cmd.Flags().Bool("dry", false, "Show what would be written without writing")

	return cmd
}
