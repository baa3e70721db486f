package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed with a usable result
	ExitNoMatch = 1 // Decision matrix found no eligible model
	ExitError   = 2 // Configuration or runtime error
)

// NoMatchError indicates the decision matrix ran successfully but no
// model satisfied every constraint.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var noMatchErr *NoMatchError
		if errors.As(err, &noMatchErr) {
			os.Exit(ExitNoMatch)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
