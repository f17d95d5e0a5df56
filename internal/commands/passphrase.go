package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

// errNoTerminal is returned when no passphrase is configured and none can be prompted for.
var errNoTerminal = errors.New("cannot read passphrase: no terminal available, set SECRET_KEY")

// readPassphrase prompts on prompt for a passphrase without echoing it.
// When stdin is piped the controlling terminal is used instead.
func readPassphrase(prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")

	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in an int

	if !term.IsTerminal(fd) {
		if runtime.GOOS == "windows" {
			return "", errNoTerminal
		}

		tty, err := os.Open("/dev/tty")
		if err != nil {
			return "", errNoTerminal
		}
		defer tty.Close()

		fd = int(tty.Fd()) //nolint:gosec // file descriptors fit in an int
	}

	passphrase, err := term.ReadPassword(fd)

	fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	return string(passphrase), nil
}
