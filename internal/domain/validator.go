package domain

import (
	"fmt"
	"strings"
)

// IssueKind identifies a validation rule violation.
type IssueKind string

const (
	// Structural issues.
	IssueMissingEntry       IssueKind = "missing_entry"
	IssueMissingDate        IssueKind = "missing_date"
	IssueInvalidDate        IssueKind = "invalid_date"
	IssueMissingDescription IssueKind = "missing_description"
	IssueTooFewLines        IssueKind = "too_few_lines"

	// Line issues.
	IssueMissingAccount  IssueKind = "missing_account"
	IssueUnknownAccount  IssueKind = "unknown_account"
	IssueInactiveAccount IssueKind = "inactive_account"
	IssueBothSidesFilled IssueKind = "both_sides_filled"
	IssueNoAmount        IssueKind = "no_amount"
	IssueNegativeAmount  IssueKind = "negative_amount"

	// Entry-level consistency.
	IssueUnbalanced IssueKind = "unbalanced"
)

// ValidationIssue is a single rule violation. Row is the 1-indexed line
// number for line issues and 0 otherwise.
type ValidationIssue struct {
	Kind    IssueKind
	Row     int
	Message string
}

// ValidationResult is the outcome of ValidateEntry.
type ValidationResult struct {
	OK     bool
	Issues []ValidationIssue
}

// Errors returns the issue messages in evaluation order.
func (r ValidationResult) Errors() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.Message
	}
	return out
}

// Has reports whether the result contains an issue of the given kind.
func (r ValidationResult) Has(kind IssueKind) bool {
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

// Err returns a *ValidationError when the entry was rejected.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationError{Issues: r.Issues}
}

// ValidationError carries every issue of a rejected entry.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidEntry.Error()
	}

	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidEntry, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntry
}

// ValidateEntry checks a candidate entry against the structural, per-line and
// balance rules. Every violation is collected; only a nil draft short-circuits.
func ValidateEntry(draft *EntryDraft, catalog *Catalog) ValidationResult {
	v := &issueCollector{}

	if draft == nil {
		v.add(IssueMissingEntry, 0, "entry is missing")
		return v.result()
	}

	date := strings.TrimSpace(draft.Date)
	switch {
	case date == "":
		v.add(IssueMissingDate, 0, "date is required")
	case ValidateDate(date) != nil:
		v.add(IssueInvalidDate, 0, fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", draft.Date))
	}

	if strings.TrimSpace(draft.Description) == "" {
		v.add(IssueMissingDescription, 0, "description is required")
	}

	if len(draft.Lines) < MinEntryLines {
		v.add(IssueTooFewLines, 0, fmt.Sprintf("entry must have at least %d lines", MinEntryLines))
	}

	for i, line := range draft.Lines {
		validateLine(v, i+1, line, catalog)
	}

	debit, credit := sumLines(draft.Lines)
	if !debit.Equal(credit) || !debit.IsPositive() {
		v.add(IssueUnbalanced, 0, fmt.Sprintf("entry is not balanced (debit %s, credit %s)",
			debit.StringFixed(MoneyPlaces), credit.StringFixed(MoneyPlaces)))
	}

	return v.result()
}

func validateLine(v *issueCollector, row int, line JournalLine, catalog *Catalog) {
	code := strings.TrimSpace(line.AccountCode)
	if code == "" {
		v.add(IssueMissingAccount, row, fmt.Sprintf("line %d: account code is required", row))
	} else if catalog.Len() > 0 {
		account, ok := catalog.Lookup(code)
		switch {
		case !ok:
			v.add(IssueUnknownAccount, row, fmt.Sprintf("line %d: account %q is not in the catalog", row, code))
		case !account.Active:
			v.add(IssueInactiveAccount, row, fmt.Sprintf("line %d: account %q is inactive", row, code))
		}
	}

	debit, credit := line.Debit, line.Credit
	if debit.IsPositive() && credit.IsPositive() {
		v.add(IssueBothSidesFilled, row, fmt.Sprintf("line %d: debit and credit cannot both be filled", row))
	}
	if debit.IsZero() && credit.IsZero() {
		v.add(IssueNoAmount, row, fmt.Sprintf("line %d: debit or credit must be greater than zero", row))
	}
	if debit.IsNegative() || credit.IsNegative() {
		v.add(IssueNegativeAmount, row, fmt.Sprintf("line %d: amounts cannot be negative", row))
	}
}

type issueCollector struct {
	issues []ValidationIssue
}

func (c *issueCollector) add(kind IssueKind, row int, msg string) {
	c.issues = append(c.issues, ValidationIssue{Kind: kind, Row: row, Message: msg})
}

func (c *issueCollector) result() ValidationResult {
	return ValidationResult{
		OK:     len(c.issues) == 0,
		Issues: c.issues,
	}
}
