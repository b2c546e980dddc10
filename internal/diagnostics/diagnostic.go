package diagnostics

import (
	"github.com/ouz-a/tern/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Label represents a labeled section of code in a diagnostic
type Label struct {
	Location *source.Location
	Message  string
}

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic represents a compiler diagnostic (error, warning, etc.)
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // Error code like "I0001"
	Labels   []Label
	Notes    []Note
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabel adds a labeled location to the diagnostic
func (d *Diagnostic) WithLabel(loc *source.Location, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
	})
	return d
}

// WithNote attaches an informational note
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}
