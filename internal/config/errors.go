package config

import "fmt"

// MissingKeyError represents a required configuration key that is unset.
// Missing keys are fatal at startup of a real send run.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config error: %s is required (set it in the environment or a .env file)", e.Key)
}
