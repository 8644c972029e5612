package wizard

import (
	"errors"
	"strconv"
	"strings"
)

// Validation errors for the interactive wizard.
var (
	errPathRequired       = errors.New("path is required")
	errThreadsNotInteger  = errors.New("thread count must be a positive integer")
	errConfigNameRequired = errors.New("configuration name is required")
)

func validatePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return errPathRequired
	}
	return nil
}

func validateThreads(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errThreadsNotInteger
	}
	return nil
}

func validateConfigName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errConfigNameRequired
	}
	return nil
}
