package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with the gallery subcommands.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "photolock [flags] command [flags]"
	root.Short = "Password-gated photo gallery"
	root.Long = `Encrypts a directory of images into a static gallery that only opens with a shared passphrase.
The passphrase is read from SECRET_KEY, either from the environment or from a .env file.`

	root.PersistentFlags().Int("iterations", 1000, "PBKDF2 iterations, must match between encrypt and decrypt (env PBKDF2_ITERATIONS)") //nolint:mnd

	root.AddCommand(NewEncryptCommand(), NewServeCommand(), NewViewCommand())

	return root
}
