// Command outreach-send emails a templated application, CV attached, to
// every contact in a per-sector CSV. See internal/cli for flags; SMTP and
// template settings come from the environment or a .env file.
package main

import (
	"github.com/joho/godotenv"
	"github.com/ymoudden/startup-outreach/internal/cli"
)

func main() {
	// Optional; plain environment variables work without a .env file
	_ = godotenv.Load()

	cli.Execute()
}
