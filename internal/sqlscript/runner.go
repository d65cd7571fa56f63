// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package sqlscript

import (
	"context"
	"fmt"
	"io"

	"github.com/buypy/backoffice/internal/logging"
)

// Execer runs one statement verbatim. *db.Gateway implements it.
type Execer interface {
	ExecStatement(ctx context.Context, stmt string) (int64, error)
}

// StatementError records one failed statement.
type StatementError struct {
	Index     int // zero-based position in the script
	Statement string
	Err       error
}

func (e StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %v", e.Index+1, Summary(e.Statement, 80), e.Err)
}

func (e StatementError) Unwrap() error { return e.Err }

// Result summarises one script run.
type Result struct {
	Total    int
	Executed int
	Failed   []StatementError
}

// OK reports whether every statement succeeded.
func (r Result) OK() bool { return len(r.Failed) == 0 }

// Runner applies scripts through an Execer.
type Runner struct {
	exec Execer
}

// NewRunner returns a Runner using exec.
func NewRunner(exec Execer) *Runner {
	return &Runner{exec: exec}
}

// Apply splits the script and executes every statement in order. A failing
// statement is logged and recorded; the run continues with the next one.
// Only read errors and context cancellation stop the run early.
func (r *Runner) Apply(ctx context.Context, script io.Reader) (Result, error) {
	stmts, err := Split(script)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}
	res := Result{Total: len(stmts)}
	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := r.exec.ExecStatement(ctx, stmt); err != nil {
			logging.Errorf("failed:\n%s\n-> %v", truncate(stmt, 200), err)
			res.Failed = append(res.Failed, StatementError{Index: i, Statement: stmt, Err: err})
			continue
		}
		res.Executed++
		logging.Infof("executed: %s", Summary(stmt, 80))
	}
	return res, nil
}
