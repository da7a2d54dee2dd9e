package typecheck

import (
	"strings"

	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// piiOf walks a type for reachable PII, mirroring internal/lower's
// aggregatePii but over an arbitrary argument type rather than a function's
// full parameter/return list (spec.md §4.7 item 6 "PII taint propagates
// through Let, Set, pattern bindings, and field access").
func piiOf(t core.Type) (sensitivity string, category string, found bool) {
	switch n := t.(type) {
	case core.PiiType:
		return n.Sensitivity, n.Category, true
	case core.Result:
		if s, cat, ok := piiOf(n.Ok); ok {
			return s, cat, true
		}
		return piiOf(n.Err)
	case core.Maybe:
		return piiOf(n.Elem)
	case core.Option:
		return piiOf(n.Elem)
	case core.List:
		return piiOf(n.Elem)
	case core.Map:
		if s, cat, ok := piiOf(n.Key); ok {
			return s, cat, true
		}
		return piiOf(n.Value)
	}
	return "", "", false
}

// checkPiiLeak is pass 6 (spec.md §4.7 item 6). name is the dotted call
// target; cap is the capability the call requires, if any ("" for a
// capability-free builtin such as IO.print/Log.*, which can still leak PII
// into a log sink). This grammar has no "@pii-safe" exemption marker, so
// every capability-gated or logging call reaching a PII-typed argument is
// reported (see DESIGN.md for this reading of spec.md §4.7 item 6).
func (c *Checker) checkPiiLeak(name string, cap string, args []core.Type, span core.Node) {
	if !c.opts.enforcePii() {
		return
	}
	isSink := cap != "" || strings.HasPrefix(name, "Log.") || name == "IO.print"
	if !isSink {
		return
	}
	for _, argT := range args {
		sens, category, found := piiOf(argT)
		if !found {
			continue
		}
		code := diagnostic.PiiLeakGeneric
		switch {
		case cap == "Http":
			code = diagnostic.PiiLeakHTTP
		case strings.HasPrefix(name, "Log.") || name == "IO.print":
			code = diagnostic.PiiLeakLog
		}
		c.report(diagnostic.New(code, spanOf(span),
			"%s-sensitivity %q data reaches %s", sens, category, name))
	}
}
