// Command photolock encrypts a photo gallery and serves it behind a shared passphrase.
package main

import (
	"os"

	"github.com/idelchi/photolock/internal/commands"
	"github.com/idelchi/photolock/internal/logging"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		logging.New(false, false).Errorf("%v", err)

		os.Exit(1)
	}
}
