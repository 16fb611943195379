// Package diag carries this library's ambient diagnostics: an optional
// structured logger for the handful of events worth seeing (object
// rehash, reader leniency triggers) and a go-spew-backed dump helper for
// tests, adapted from the donor service's pkg/fmtt error-chain printer.
package diag

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

var logger = zap.NewNop().Sugar()

// L returns the package-wide diagnostics logger. Nop by default so parsing
// and writing never pay a logging cost; call SetLogger in a program that
// wants to observe rehash/leniency events.
func L() *zap.SugaredLogger { return logger }

// SetLogger installs l as the diagnostics logger, or restores the nop
// logger if l is nil. Returns the previous logger.
func SetLogger(l *zap.SugaredLogger) *zap.SugaredLogger {
	prev := logger
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
	return prev
}

// DumpErrChain walks an error chain, printing each layer's type, message,
// and a go-spew field dump — the same two-pass shape as the donor's
// fmtt.PrintErrChainDebug, generalized to any error rather than just Gin
// request errors.
func DumpErrChain(err error) {
	if err == nil {
		fmt.Println("<nil>")
		return
	}
	for i := 0; err != nil; err = errors.Unwrap(err) {
		fmt.Printf("[%d] %T: %v\n", i, err, err)
		spew.Dump(err)
		i++
	}
}

// Dump pretty-prints v with go-spew. Intended for test failure output and
// ad-hoc debugging only — never parse success/failure logic.
func Dump(v any) string { return spew.Sdump(v) }
