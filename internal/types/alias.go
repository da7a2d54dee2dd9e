package types

import "github.com/aster-cloud/aster/internal/core"

// ExpandAlias recursively expands TypeName references found in aliases,
// descending into every child type, guarded by a visited set so a
// self-referential alias (directly or through a cycle) stops instead of
// recursing forever (spec.md §4.6 "Alias expansion").
func ExpandAlias(t core.Type, aliases map[string]core.Type) core.Type {
	return expand(t, aliases, map[string]bool{})
}

func expand(t core.Type, aliases map[string]core.Type, visited map[string]bool) core.Type {
	switch tt := t.(type) {
	case core.TypeName:
		target, ok := aliases[tt.Name]
		if !ok || visited[tt.Name] {
			return t
		}
		visited[tt.Name] = true
		return expand(target, aliases, visited)
	case core.Maybe:
		return core.Maybe{Elem: expand(tt.Elem, aliases, visited)}
	case core.Option:
		return core.Option{Elem: expand(tt.Elem, aliases, visited)}
	case core.Result:
		return core.Result{Ok: expand(tt.Ok, aliases, visited), Err: expand(tt.Err, aliases, visited)}
	case core.List:
		return core.List{Elem: expand(tt.Elem, aliases, visited)}
	case core.Map:
		return core.Map{Key: expand(tt.Key, aliases, visited), Value: expand(tt.Value, aliases, visited)}
	case core.TypeApp:
		args := make([]core.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = expand(a, aliases, visited)
		}
		return core.TypeApp{BaseName: tt.BaseName, Args: args}
	case core.Workflow:
		return core.Workflow{R: expand(tt.R, aliases, visited), E: expand(tt.E, aliases, visited)}
	case core.FuncType:
		params := make([]core.Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = expand(p, aliases, visited)
		}
		return core.FuncType{Params: params, Ret: expand(tt.Ret, aliases, visited), DeclaredEffects: tt.DeclaredEffects, EffectParams: tt.EffectParams}
	case core.PiiType:
		return core.PiiType{BaseType: expand(tt.BaseType, aliases, visited), Sensitivity: tt.Sensitivity, Category: tt.Category}
	default:
		return t
	}
}
