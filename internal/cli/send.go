package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymoudden/startup-outreach/internal/config"
	"github.com/ymoudden/startup-outreach/internal/logger"
	"github.com/ymoudden/startup-outreach/internal/mailer"
	"github.com/ymoudden/startup-outreach/internal/sector"
	"github.com/ymoudden/startup-outreach/internal/sendlog"
	"github.com/ymoudden/startup-outreach/internal/template"
)

// runSend is the main command logic. Each recipient moves through
// Pending -> Rendered -> (DryPreviewed | Sent | Failed), at most one
// attempt per run.
func runSend(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	opts, err := config.Load()
	if err != nil {
		return err
	}

	csvPath := firstNonEmpty(flagCSV, opts.SectorCSV)
	if csvPath == "" {
		return fmt.Errorf("sector CSV required (--csv or SECTOR_CSV)")
	}
	cvPath := firstNonEmpty(flagCV, opts.CVPath)
	yourName := firstNonEmpty(flagYourName, opts.YourName)
	subjectTmpl := firstNonEmpty(flagSubject, opts.Subject)
	bodyTmpl := firstNonEmpty(flagBody, opts.BodyTemplate)

	recipients, headers, err := loadRecipients(csvPath)
	if err != nil {
		return err
	}

	if flagListVars {
		printVars(cmd.OutOrStdout(), headers)
		return nil
	}

	if yourName == "" {
		return fmt.Errorf("sender name required (--your-name or YOUR_NAME)")
	}

	if len(recipients) == 0 {
		logger.Info("no recipients with an email address", logger.Fields{
			"csv": csvPath,
		})
		fmt.Fprintln(cmd.OutOrStdout(), "No recipients found.")
		return nil
	}

	slug := sector.SlugFromFilename(csvPath)
	sectorName := sector.Humanize(slug)

	logger.Info("loaded recipients", logger.Fields{
		"csv":    csvPath,
		"count":  len(recipients),
		"sector": sectorName,
	})

	var m mailer.Mailer
	if flagDryRun {
		m = mailer.NewDryRunMailerTo(cmd.OutOrStdout())
		if cvPath != "" {
			if _, err := os.Stat(cvPath); err != nil {
				logger.Warn("cv not found, previewing without attachment", logger.Fields{
					"cv": cvPath,
				})
				cvPath = ""
			}
		}
	} else {
		if err := opts.ValidateForSend(); err != nil {
			return err
		}
		if cvPath == "" {
			return fmt.Errorf("cv required (--cv or CV_PATH)")
		}
		if _, err := os.Stat(cvPath); err != nil {
			return fmt.Errorf("cv not readable: %w", err)
		}

		sm := mailer.NewSMTPMailer(opts.SMTPServer, opts.SMTPPort, opts.SMTPUser, opts.SMTPPass, flagSSL)
		if err := sm.Preflight(); err != nil {
			return fmt.Errorf("smtp preflight failed: %w", err)
		}
		m = sm
	}

	log, err := sendlog.Open(flagLogPath)
	if err != nil {
		return err
	}
	defer log.Close()

	from := fmt.Sprintf("%s <%s>", yourName, opts.FromEmail)

	for i, r := range recipients {
		vars := buildVars(r, sectorName, slug, yourName)

		subject, body, renderErr := renderMessage(subjectTmpl, bodyTmpl, vars, flagStrict)
		if renderErr != nil {
			logger.Error("template rendering failed", logger.Fields{
				"recipient": r.Email,
			}, renderErr)
			logger.IncrCounter("send.failed")
			appendEntry(log, r.Email, sectorName, subject, sendlog.StatusFailed, renderErr)
			continue
		}

		msg := &mailer.Message{
			From:           from,
			To:             r.Email,
			Subject:        subject,
			Body:           body,
			AttachmentPath: cvPath,
		}

		if err := m.Send(msg); err != nil {
			logger.Error("send failed", logger.Fields{
				"recipient": r.Email,
			}, err)
			logger.IncrCounter("send.failed")
			appendEntry(log, r.Email, sectorName, subject, sendlog.StatusFailed, err)
			continue
		}

		if flagDryRun {
			logger.IncrCounter("send.previewed")
			appendEntry(log, r.Email, sectorName, subject, sendlog.StatusDryRun, nil)
		} else {
			logger.Info("email sent", logger.Fields{
				"recipient": r.Email,
				"sector":    sectorName,
			})
			logger.IncrCounter("send.sent")
			appendEntry(log, r.Email, sectorName, subject, sendlog.StatusSent, nil)

			// Pace real sends; no pause after the last one
			if i < len(recipients)-1 {
				time.Sleep(flagDelay)
			}
		}
	}

	logger.Info("send run complete", logger.Fields{
		"metrics": logger.MetricsSnapshot(),
	})
	return nil
}

// buildVars merges a recipient's row with the derived template variables.
func buildVars(r *Recipient, sectorName, slug, yourName string) template.Vars {
	vars := make(template.Vars, len(r.Row)+3)
	for k, v := range r.Row {
		vars[k] = v
	}
	vars["sector"] = sectorName
	vars["sector_slug"] = slug
	vars["your_name"] = yourName
	return vars
}

// renderMessage renders the subject and body for one recipient. When the
// subject template does not reference {company}, the company name is
// appended so every subject identifies its target.
func renderMessage(subjectTmpl, bodyTmpl string, vars template.Vars, strict bool) (subject, body string, err error) {
	if strict {
		subject, err = template.RenderStrict(subjectTmpl, vars)
		if err != nil {
			return subjectTmpl, "", err
		}
		body, err = template.RenderStrict(bodyTmpl, vars)
		if err != nil {
			return subject, "", err
		}
	} else {
		subject = template.Render(subjectTmpl, vars)
		body = template.Render(bodyTmpl, vars)
	}

	if !strings.Contains(subjectTmpl, "{company}") && vars["company"] != "" {
		subject = subject + " " + vars["company"]
	}
	return subject, body, nil
}

// appendEntry writes one audit row; a log write failure is reported but
// never interrupts the run.
func appendEntry(log *sendlog.Log, recipient, sectorName, subject string, status sendlog.Status, cause error) {
	entry := sendlog.Entry{
		Recipient: recipient,
		Sector:    sectorName,
		Subject:   subject,
		Status:    status,
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := log.Append(entry); err != nil {
		logger.Error("failed to append send log entry", logger.Fields{
			"recipient": recipient,
		}, err)
	}
}

// printVars lists the placeholders available to the subject and body
// templates for the loaded CSV.
func printVars(w io.Writer, headers []string) {
	fmt.Fprintln(w, "Available variables (use in templates as {var_name}):")

	sorted := make([]string, len(headers))
	copy(sorted, headers)
	sort.Strings(sorted)
	for _, h := range sorted {
		fmt.Fprintf(w, " - %s\n", h)
	}

	fmt.Fprintln(w, "\nAlways available:")
	for _, v := range derivedVars {
		fmt.Fprintf(w, " - %s\n", v)
	}
	fmt.Fprintln(w, "\nDefault SUBJECT and BODY_TEMPLATE come from the environment.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
