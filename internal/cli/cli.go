package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymoudden/startup-outreach/internal/sendlog"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagCSV      string
	flagCV       string
	flagYourName string
	flagSubject  string
	flagBody     string
	flagLogPath  string
	flagDelay    time.Duration
	flagDryRun   bool
	flagListVars bool
	flagStrict   bool
	flagSSL      bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outreach-send",
		Short: "Send templated application emails to a sector's contacts",
		Long: `Send an application email (with CV attached) to every contact in a
per-sector CSV produced by outreach-split. Use --dry-run to preview the
rendered messages before sending anything.`,
		RunE: runSend,
	}

	// Flags override the corresponding environment keys
	cmd.Flags().StringVar(&flagCSV, "csv", "", "Sector CSV file (default $SECTOR_CSV)")
	cmd.Flags().StringVar(&flagCV, "cv", "", "Path to the CV to attach (default $CV_PATH)")
	cmd.Flags().StringVar(&flagYourName, "your-name", "", "Your full name for the templates (default $YOUR_NAME)")
	cmd.Flags().StringVar(&flagSubject, "subject", "", "Subject template (default $SUBJECT)")
	cmd.Flags().StringVar(&flagBody, "body-template", "", "Body template (default $BODY_TEMPLATE)")
	cmd.Flags().StringVar(&flagLogPath, "log", sendlog.DefaultPath, "Send log path")
	cmd.Flags().DurationVar(&flagDelay, "delay", 2*time.Second, "Pause between sends")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview messages without sending")
	cmd.Flags().BoolVar(&flagListVars, "list-vars", false, "List available template placeholders and exit")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail a recipient on unknown template placeholders")
	cmd.Flags().BoolVar(&flagSSL, "ssl", false, "Use implicit TLS instead of STARTTLS")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
