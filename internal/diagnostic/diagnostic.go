package diagnostic

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
)

// Severity classifies a Diagnostic (spec.md §4.7 "Diagnostic record").
// Only Error severity invalidates the compile for downstream code
// generation; Warning, Info and Hint are advisory (spec.md §7).
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
	Hint    Severity = "hint"
)

// RelatedInformation points at a secondary span relevant to a Diagnostic,
// e.g. the earlier definition in a DUPLICATE_SYMBOL report.
type RelatedInformation struct {
	Span    ast.Span `json:"span"`
	Message string   `json:"message"`
}

// Diagnostic is the accumulating record the type checker returns (spec.md
// §4.7, §6.5, §7). Unlike Fatal, producing one never aborts the checker:
// sibling statements are still checked after an error is recorded.
type Diagnostic struct {
	Code              Code                 `json:"code"`
	Severity          Severity             `json:"severity"`
	Message           string               `json:"message"`
	Span              ast.Span             `json:"span"`
	Origin            string               `json:"origin,omitempty"`
	RelatedInformation []RelatedInformation `json:"relatedInformation,omitempty"`
	Data              map[string]any       `json:"data,omitempty"`
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s (%s) at %s", d.Severity, d.Message, d.Code, d.Span.Start)
}

// New builds an error-severity Diagnostic, the common case.
func New(code Code, span ast.Span, message string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(message, args...),
		Span:     span,
	}
}

// Newf is an alias of New kept for call sites that read more naturally with
// an explicit "f" suffix when the message always has format verbs.
func Newf(code Code, span ast.Span, format string, args ...any) *Diagnostic {
	return New(code, span, format, args...)
}

// NewWarning builds a warning-severity Diagnostic.
func NewWarning(code Code, span ast.Span, message string, args ...any) *Diagnostic {
	d := New(code, span, message, args...)
	d.Severity = Warning
	return d
}

// NewInfo builds an info-severity Diagnostic, used for the advisory
// capability-manifest channel (spec.md §4.7 item 5, SPEC_FULL.md §5).
func NewInfo(code Code, span ast.Span, message string, args ...any) *Diagnostic {
	d := New(code, span, message, args...)
	d.Severity = Info
	return d
}

// WithRelated attaches related-information spans and returns the receiver
// for chaining at the call site.
func (d *Diagnostic) WithRelated(rel ...RelatedInformation) *Diagnostic {
	d.RelatedInformation = append(d.RelatedInformation, rel...)
	return d
}

// WithData attaches a single key/value pair to the diagnostic's Data map,
// e.g. {"channel": "manifest"} for advisory capability diagnostics.
func (d *Diagnostic) WithData(key string, value any) *Diagnostic {
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	d.Data[key] = value
	return d
}

// HasErrors reports whether any diagnostic in the list is Error severity.
// A checker result with HasErrors == true invalidates the compile for
// downstream code generation (spec.md §7).
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
