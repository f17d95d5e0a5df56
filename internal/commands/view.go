package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/idelchi/photolock/internal/config"
	"github.com/idelchi/photolock/internal/gallery"
	"github.com/idelchi/photolock/internal/logging"
)

// NewViewCommand creates a new cobra command decrypting a served gallery in the terminal.
func NewViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [flags]",
		Short: "Unlock a served gallery and report every photo",
		Long: `Fetches the test image and the gallery photos from --url, checks the passphrase
and reports whether each photo decrypts. Decrypted photos are never written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			return runView(cmd, cfg)
		},
	}

	cmd.Flags().String("url", "http://localhost:8080/encrypted/", "Base URL of the encoded files (env GALLERY_URL)")
	cmd.Flags().String("manifest", "", "JSONC gallery manifest, defaults to test.jpg.enc and 1.jpg.enc to 10.jpg.enc")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of photos decoded at once")
	cmd.Flags().Bool("debug", false, "Show the cause of each failure")

	return cmd
}

func runView(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	debug, _ := cmd.Flags().GetBool("debug")

	log := logging.New(false, debug)
	log.Out = out
	log.Err = cmd.ErrOrStderr()

	passphrase := cfg.Passphrase
	if passphrase == "" {
		var err error

		if passphrase, err = readPassphrase(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	m, err := manifest(cfg)
	if err != nil {
		return err
	}

	fetcher, err := gallery.NewHTTPFetcher(cfg.URL, nil)
	if err != nil {
		return err
	}

	loader, err := gallery.NewLoader(fetcher, m, params(cfg), gallery.WithParallel(cfg.Parallel))
	if err != nil {
		return err
	}

	display := newProgressDisplay(cmd.ErrOrStderr(), m.Slots)

	display.spinner.Start()
	photos, err := loader.Load(cmd.Context(), passphrase, display)
	display.spinner.Stop()

	if err != nil {
		log.Debugf("Unlock failed: %v", err)

		if errors.Is(err, gallery.ErrWrongPassphrase) {
			return gallery.ErrWrongPassphrase
		}

		return err
	}

	loaded := 0

	for _, photo := range photos {
		if photo.Err != nil {
			log.Debugf("Photo %q: %v", photo.Name, photo.Err)
			fmt.Fprintf(out, "%s %d %s %s\n", color.RedString("✗"), photo.Index+1, photo.Name, gallery.Generic(photo.Err))

			continue
		}

		loaded++

		//nolint:gosec // sizes are non-negative
		fmt.Fprintf(out, "%s %d %s %s %s\n", color.GreenString("✓"), photo.Index+1, photo.Name, photo.MIME, humanize.IBytes(uint64(photo.Size)))
	}

	log.Printf("%d of %d photos unlocked", loaded, len(photos))

	return nil
}

// progressDisplay reports load progress through a spinner.
type progressDisplay struct {
	spinner *spinner.Spinner
	slots   int
	done    atomic.Int32
}

func newProgressDisplay(w io.Writer, slots int) *progressDisplay {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w)) //nolint:mnd
	s.Suffix = " Checking password..."
	_ = s.Color("cyan")

	return &progressDisplay{spinner: s, slots: slots}
}

func (d *progressDisplay) Slots() int {
	return d.slots
}

func (d *progressDisplay) Show(int, string) {
	d.progress()
}

func (d *progressDisplay) Fail(int, error) {
	d.progress()
}

func (d *progressDisplay) progress() {
	done := d.done.Add(1)

	d.spinner.Lock()
	d.spinner.Suffix = fmt.Sprintf(" Decrypting photos... %d/%d", done, d.slots)
	d.spinner.Unlock()
}
