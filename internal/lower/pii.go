package lower

import (
	"sort"

	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
)

var sensitivityRank = map[string]int{"L1": 1, "L2": 2, "L3": 3}

// aggregatePii computes a function's PiiSummary: the union of every PII
// category reachable from its parameters and return type, tagged with the
// highest sensitivity among them (spec.md §4.5 transformation 8, §9
// "PII category merge semantics").
func (lw *lowerer) aggregatePii(params []*core.Param, ret core.Type) *core.PiiSummary {
	sens := ""
	cats := map[string]bool{}
	for _, p := range params {
		collectPii(p.Type, &sens, cats)
	}
	collectPii(ret, &sens, cats)

	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)
	return &core.PiiSummary{Sensitivity: ast.PiiSensitivity(sens), Categories: names}
}

// collectPii descends through the container types lowering produces,
// flattening PII reachability through Result/Maybe/Option/List/Map/TypeApp/
// FuncType (spec.md §4.5 transformation 8).
func collectPii(t core.Type, sens *string, cats map[string]bool) {
	switch n := t.(type) {
	case core.PiiType:
		if sensitivityRank[n.Sensitivity] > sensitivityRank[*sens] {
			*sens = n.Sensitivity
		}
		cats[n.Category] = true
		collectPii(n.BaseType, sens, cats)
	case core.Result:
		collectPii(n.Ok, sens, cats)
		collectPii(n.Err, sens, cats)
	case core.Maybe:
		collectPii(n.Elem, sens, cats)
	case core.Option:
		collectPii(n.Elem, sens, cats)
	case core.List:
		collectPii(n.Elem, sens, cats)
	case core.Map:
		collectPii(n.Key, sens, cats)
		collectPii(n.Value, sens, cats)
	case core.TypeApp:
		for _, a := range n.Args {
			collectPii(a, sens, cats)
		}
	case core.FuncType:
		for _, p := range n.Params {
			collectPii(p, sens, cats)
		}
		collectPii(n.Ret, sens, cats)
	}
}
