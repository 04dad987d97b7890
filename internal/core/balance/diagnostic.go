package balance

import (
	"fmt"

	"github.com/SscSPs/kasbook/internal/apperrors"
)

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind string

const (
	DiagInvalidInput        DiagnosticKind = "invalid_input"
	DiagUnresolvedReference DiagnosticKind = "unresolved_reference"
	DiagMissingCarryForward DiagnosticKind = "missing_carry_forward"
)

// Diagnostic reports a row the engine refused to aggregate, or a condition worth
// logging. Diagnostics never abort a computation.
type Diagnostic struct {
	Kind          DiagnosticKind `json:"kind"`
	TransactionID string         `json:"transactionID,omitempty"`
	Message       string         `json:"message"`
	Err           error          `json:"-"`
}

func (d Diagnostic) Error() string {
	if d.TransactionID == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: transaction %s: %s", d.Kind, d.TransactionID, d.Message)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

func invalidInput(id string, err error) Diagnostic {
	return Diagnostic{Kind: DiagInvalidInput, TransactionID: id, Message: err.Error(), Err: fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)}
}

func unresolvedReference(id, msg string) Diagnostic {
	return Diagnostic{Kind: DiagUnresolvedReference, TransactionID: id, Message: msg, Err: apperrors.ErrUnresolvedReference}
}

func missingCarryForward(msg string) Diagnostic {
	return Diagnostic{Kind: DiagMissingCarryForward, Message: msg, Err: apperrors.ErrMissingCarryForward}
}
