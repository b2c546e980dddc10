package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ouz-a/tern/colors"
)

// DiagnosticBag collects diagnostics during compilation
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates a new diagnostic bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of all diagnostics (thread-safe)
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	result := make([]*Diagnostic, len(db.diagnostics))
	copy(result, db.diagnostics)
	return result
}

// EmitAll writes all collected diagnostics to stderr
func (db *DiagnosticBag) EmitAll() {
	db.EmitTo(os.Stderr)
}

// EmitTo writes all collected diagnostics to the given writer
func (db *DiagnosticBag) EmitTo(w io.Writer) {
	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	db.mu.Unlock()

	for _, diag := range diagnostics {
		color := severityColor(diag.Severity)
		if diag.Code != "" {
			color.Fprintf(w, "%s[%s]: %s\n", diag.Severity, diag.Code, diag.Message)
		} else {
			color.Fprintf(w, "%s: %s\n", diag.Severity, diag.Message)
		}
		for _, label := range diag.Labels {
			if label.Location != nil {
				fmt.Fprintf(w, "  --> %s %s\n", label.Location, label.Message)
			} else if label.Message != "" {
				fmt.Fprintf(w, "  --> %s\n", label.Message)
			}
		}
		for _, note := range diag.Notes {
			colors.GREY.Fprintf(w, "  note: %s\n", note.Message)
		}
	}
}

func severityColor(s Severity) colors.COLOR {
	switch s {
	case Error:
		return colors.RED
	case Warning:
		return colors.YELLOW
	default:
		return colors.CYAN
	}
}
