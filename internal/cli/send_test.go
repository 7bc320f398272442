package cli

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymoudden/startup-outreach/internal/template"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SMTP_SERVER", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "FROM_EMAIL",
		"CV_PATH", "SECTOR_CSV", "YOUR_NAME", "SUBJECT", "BODY_TEMPLATE",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readLog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestDryRunPreviewsAndLogsDryRunStatus(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_bio_tech.csv")
	logPath := filepath.Join(dir, "sent_log.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\n"+
			"Bio Tech,BioCo,Ana,ana@bioco.example\n"+
			"Bio Tech,MedLab,Marc,marc@medlab.example\n"+
			"Bio Tech,NoMail,Bob,\n"), 0644))

	out, err := execute(t,
		"--csv", csvPath,
		"--your-name", "Youssef",
		"--subject", "Hello {sector}",
		"--dry-run",
		"--log", logPath,
	)
	require.NoError(t, err)

	// Previews rendered to stdout, derived sector vars substituted
	assert.Contains(t, out, "--- Message 1 ---")
	assert.Contains(t, out, "--- Message 2 ---")
	assert.Contains(t, out, "To: ana@bioco.example")
	assert.Contains(t, out, "Subject: Hello bio tech BioCo")
	assert.Contains(t, out, "Bonjour Ana")

	// Audit trail has one dry-run row per recipient and no sent rows
	rows := readLog(t, logPath)
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.Equal(t, "dry-run", row[4])
		assert.Equal(t, "bio tech", row[2])
	}
	assert.NotContains(t, out, "smtp")
}

func TestDryRunMissingCVWarnsAndContinues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_fintech.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\nFinTech,PayCo,Ana,ana@payco.example\n"), 0644))

	out, err := execute(t,
		"--csv", csvPath,
		"--cv", filepath.Join(dir, "missing-cv.pdf"),
		"--your-name", "Youssef",
		"--dry-run",
		"--log", filepath.Join(dir, "sent_log.csv"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "To: ana@payco.example")
	assert.NotContains(t, out, "Attachment:")
}

func TestZeroRecipientsIsNoOp(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_empty.csv")
	logPath := filepath.Join(dir, "sent_log.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\n"+
			"Empty,NoMail One,Ana,\n"+
			"Empty,NoMail Two,Bob,\n"), 0644))

	out, err := execute(t,
		"--csv", csvPath,
		"--your-name", "Youssef",
		"--log", logPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "No recipients found.")

	// A no-op run produces zero log entries
	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestListVars(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_bio_tech.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\nBio Tech,BioCo,Ana,ana@bioco.example\n"), 0644))

	out, err := execute(t, "--csv", csvPath, "--list-vars")
	require.NoError(t, err)

	for _, name := range []string{"secteur", "company", "contact_name", "email", "sector", "sector_slug", "your_name"} {
		assert.Contains(t, out, " - "+name)
	}
}

func TestMissingCSVIsFatal(t *testing.T) {
	clearEnv(t)
	_, err := execute(t,
		"--csv", filepath.Join(t.TempDir(), "nope.csv"),
		"--your-name", "Youssef",
		"--dry-run",
	)
	require.Error(t, err)
}

func TestMissingSMTPServerIsFatalForRealRun(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_bio_tech.csv")
	cvPath := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\nBio Tech,BioCo,Ana,ana@bioco.example\n"), 0644))
	require.NoError(t, os.WriteFile(cvPath, []byte("%PDF-1.4"), 0644))

	_, err := execute(t,
		"--csv", csvPath,
		"--cv", cvPath,
		"--your-name", "Youssef",
		"--log", filepath.Join(dir, "sent_log.csv"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_SERVER")
}

// rejectAuthSMTPServer runs a loopback SMTP session that rejects every AUTH
// attempt, for exercising the credential preflight without a real server.
func rejectAuthSMTPServer(t *testing.T) (host, port string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		fmt.Fprintf(conn, "220 stub ready\r\n")
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			switch {
			case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
				fmt.Fprintf(conn, "250-stub\r\n250 AUTH PLAIN LOGIN\r\n")
			case strings.HasPrefix(line, "AUTH"):
				fmt.Fprintf(conn, "535 5.7.8 authentication failed\r\n")
			case strings.HasPrefix(line, "QUIT"):
				fmt.Fprintf(conn, "221 bye\r\n")
				return
			default:
				fmt.Fprintf(conn, "250 ok\r\n")
			}
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port
}

func TestRejectedCredentialsAbortRunBeforeAnySend(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_bio_tech.csv")
	cvPath := filepath.Join(dir, "cv.pdf")
	logPath := filepath.Join(dir, "sent_log.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\n"+
			"Bio Tech,BioCo,Ana,ana@bioco.example\n"+
			"Bio Tech,MedLab,Marc,marc@medlab.example\n"), 0644))
	require.NoError(t, os.WriteFile(cvPath, []byte("%PDF-1.4"), 0644))

	host, port := rejectAuthSMTPServer(t)
	t.Setenv("SMTP_SERVER", host)
	t.Setenv("SMTP_PORT", port)
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "wrong-password")

	_, err := execute(t,
		"--csv", csvPath,
		"--cv", cvPath,
		"--your-name", "Youssef",
		"--log", logPath,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp preflight failed")
	assert.Contains(t, err.Error(), "535")

	// The run aborts before the loop: no recipient attempted, no log rows
	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderMessage(t *testing.T) {
	vars := template.Vars{
		"contact_name": "Ana",
		"company":      "BioCo",
		"sector":       "bio tech",
		"your_name":    "Youssef",
	}

	t.Run("company appended when subject omits it", func(t *testing.T) {
		subject, body, err := renderMessage("Hello {sector}", "Bonjour {contact_name}", vars, false)
		require.NoError(t, err)
		assert.Equal(t, "Hello bio tech BioCo", subject)
		assert.Equal(t, "Bonjour Ana", body)
	})

	t.Run("company not appended when referenced", func(t *testing.T) {
		subject, _, err := renderMessage("Candidature — {company}", "x", vars, false)
		require.NoError(t, err)
		assert.Equal(t, "Candidature — BioCo", subject)
	})

	t.Run("lenient rendering blanks unknown placeholders", func(t *testing.T) {
		_, body, err := renderMessage("{company}", "Hi {missing}!", vars, false)
		require.NoError(t, err)
		assert.Equal(t, "Hi !", body)
	})

	t.Run("strict rendering fails closed", func(t *testing.T) {
		_, _, err := renderMessage("{company}", "Hi {missing}!", vars, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("rendering is idempotent", func(t *testing.T) {
		s1, b1, err := renderMessage("Hello {sector}", "Bonjour {contact_name}", vars, false)
		require.NoError(t, err)
		s2, b2, err := renderMessage("Hello {sector}", "Bonjour {contact_name}", vars, false)
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
		assert.Equal(t, b1, b2)
	})
}

func TestBuildVars(t *testing.T) {
	r := &Recipient{
		Email: "ana@bioco.example",
		Row: template.Vars{
			"company": "BioCo",
			"email":   "ana@bioco.example",
		},
	}

	vars := buildVars(r, "bio tech", "bio_tech", "Youssef")
	assert.Equal(t, "bio tech", vars["sector"])
	assert.Equal(t, "bio_tech", vars["sector_slug"])
	assert.Equal(t, "Youssef", vars["your_name"])
	assert.Equal(t, "BioCo", vars["company"])

	// The recipient's row is not mutated
	_, has := r.Row["sector"]
	assert.False(t, has)
}

func TestDryRunDefaultBodyUsesConfigTemplate(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sector_bio_tech.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"secteur,company,contact_name,email\nBio Tech,BioCo,Ana,ana@bioco.example\n"), 0644))

	out, err := execute(t,
		"--csv", csvPath,
		"--your-name", "Youssef",
		"--dry-run",
		"--log", filepath.Join(dir, "sent_log.csv"),
	)
	require.NoError(t, err)

	// Default French body template with substituted values
	assert.True(t, strings.Contains(out, "Je m'appelle Youssef"), "default body should be rendered: %s", out)
	assert.Contains(t, out, "BioCo")
}
