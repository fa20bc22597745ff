package main

import (
	"errors"

	"github.com/JonMunkholm/RouteAudit/internal/core"
	"github.com/JonMunkholm/RouteAudit/internal/loader"
	"github.com/JonMunkholm/RouteAudit/internal/store"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// exitCode picks the process exit status for err. Explicit codes win;
// otherwise input problems are validation failures.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	switch {
	case core.IsMissingColumn(err),
		errors.Is(err, core.ErrTooManyRows),
		errors.Is(err, loader.ErrUnsupportedFormat),
		errors.Is(err, loader.ErrEmptyFile),
		errors.Is(err, loader.ErrEncoding):
		return exitValidation
	case errors.Is(err, store.ErrHistoryDisabled),
		errors.Is(err, store.ErrInvalidRunID):
		return exitUsage
	case errors.Is(err, store.ErrRunNotFound):
		return exitDB
	}
	return exitFailure
}
