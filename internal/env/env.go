// Package env reads reflow settings from the environment and optional .env files.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Names of the variables the command line tool reads
const (
	ContentBox      = "REFLOW_CONTENT_BOX"
	XMargin         = "REFLOW_X_MARGIN"
	ParagraphFactor = "REFLOW_PARAGRAPH_FACTOR"
	LogLevel        = "REFLOW_LOG_LEVEL"
)

// Load reads the given .env files, or ".env" when none are named.
// Variables already set in the environment are not overridden. A missing
// file is not an error.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// StringVariable returns the value of an environment variable or a default value
func StringVariable(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

// FloatVariable returns an environment variable parsed as a float, or the
// default when it is unset
func FloatVariable(name string, defaultValue float64) (float64, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number, got: %s", name, value)
	}
	return f, nil
}
