package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "nestegg/internal/errors"
)

// DocumentVersion tags the export format. Bump only on incompatible changes.
const DocumentVersion = "1.0"

// Document is the portable interchange format: a version tag, an export
// timestamp, and both collections verbatim. No derived fields, no balance
// recomputation.
type Document struct {
	Version      string        `json:"version"`
	ExportedAt   time.Time     `json:"exportedAt"`
	Investments  []Investment  `json:"investments"`
	Transactions []Transaction `json:"transactions"`
}

// Export produces the current ledger state as a document. Collections are
// never nil so the JSON always carries both arrays.
func (s *Store) Export() Document {
	doc := Document{
		Version:      DocumentVersion,
		ExportedAt:   s.now(),
		Investments:  s.Investments(),
		Transactions: s.Transactions(),
	}
	if doc.Investments == nil {
		doc.Investments = []Investment{}
	}
	if doc.Transactions == nil {
		doc.Transactions = []Transaction{}
	}
	return doc
}

// ExportFilename returns the conventional download name for an export taken
// at the given time. Presentation convenience only; import accepts any name.
func ExportFilename(at time.Time) string {
	return fmt.Sprintf("nestegg-export-%s.json", at.Format("2006-01-02"))
}

// InvestmentIssue describes one invalid investment in a rejected import.
type InvestmentIssue struct {
	Index  int               `json:"index"`
	Name   string            `json:"name,omitempty"`
	Errors map[string]string `json:"errors"`
}

// ImportValidationError rejects an import batch containing at least one
// invalid investment. The whole batch is refused; the store is untouched.
type ImportValidationError struct {
	Issues []InvestmentIssue
}

func (e *ImportValidationError) Error() string {
	names := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		name := issue.Name
		if name == "" {
			name = fmt.Sprintf("#%d", issue.Index)
		}
		names = append(names, name)
	}
	return fmt.Sprintf("import rejected, invalid investments: %s", strings.Join(names, ", "))
}

// Import parses a document and, if every incoming investment passes
// validation, replaces the ledger state wholesale. Transactions are copied
// verbatim without re-validation. Any failure (parse, missing keys, or an
// invalid investment) leaves the existing state untouched.
func (s *Store) Import(data []byte) error {
	// Presence check first: a document without both keys is a format error
	// regardless of what the values hold. A literal null counts as absent;
	// otherwise {"investments":null,"transactions":null} would decode to nil
	// slices and wipe the ledger.
	var head struct {
		Investments  json.RawMessage `json:"investments"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return apperrors.Wrap(apperrors.ErrImportParse, err)
	}
	if missingValue(head.Investments) || missingValue(head.Transactions) {
		return apperrors.ErrImportFormat
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.ErrImportParse, err)
	}

	var issues []InvestmentIssue
	for i, inv := range doc.Investments {
		result := ValidateInvestment(Draft{
			Name:           inv.Name,
			Type:           inv.Type,
			InitialBalance: &doc.Investments[i].InitialBalance,
			Description:    inv.Description,
		})
		if !result.IsValid {
			issues = append(issues, InvestmentIssue{Index: i, Name: inv.Name, Errors: result.Errors})
		}
	}
	if len(issues) > 0 {
		return &ImportValidationError{Issues: issues}
	}

	return s.ReplaceAll(doc.Investments, doc.Transactions)
}

func missingValue(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(raw, []byte("null"))
}
