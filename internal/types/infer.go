package types

import "github.com/aster-cloud/aster/internal/core"

// Lookup resolves the declared type of a name, or reports it is unknown.
type Lookup func(name string) (core.Type, bool)

// InferStaticType covers literals, Ok/Err/Some/None, lambdas (as
// FuncType), constructions (as TypeName(typeName)), and annotated names;
// it returns Unknown for names without a recorded type (spec.md §4.6
// "Helpers"). Null lowers to Maybe<Unknown>; None to Option<Unknown>;
// Ok(e)/Err(e) to Result<type-of-e,Unknown> and symmetrically
// (spec.md §4.5 transformation 2) — that rule is implemented here so
// lowering and the type checker share one definition.
func InferStaticType(e core.Expr, lookup Lookup) core.Type {
	switch ex := e.(type) {
	case *core.Literal:
		switch ex.Kind {
		case core.BoolLit:
			return core.TypeName{Name: "Bool"}
		case core.IntLit:
			return core.TypeName{Name: "Int"}
		case core.LongLit:
			return core.TypeName{Name: "Long"}
		case core.FloatLit:
			return core.TypeName{Name: "Double"}
		case core.StringLit:
			return core.TypeName{Name: "Text"}
		case core.NullLit:
			return core.Maybe{Elem: Unknown}
		}
		return Unknown
	case *core.None:
		return core.Option{Elem: Unknown}
	case *core.Some:
		return core.Option{Elem: InferStaticType(ex.Value, lookup)}
	case *core.Ok:
		return core.Result{Ok: InferStaticType(ex.Value, lookup), Err: Unknown}
	case *core.Err:
		return core.Result{Ok: Unknown, Err: InferStaticType(ex.Value, lookup)}
	case *core.Lambda:
		params := make([]core.Type, len(ex.Params))
		for i, p := range ex.Params {
			params[i] = p.Type
		}
		ret := ex.RetType
		if ret == nil {
			ret = InferReturnType(ex.Body, lookup)
		}
		return core.FuncType{Params: params, Ret: ret}
	case *core.Construct:
		return core.TypeName{Name: ex.TypeName}
	case *core.Name:
		if t, ok := lookup(ex.String()); ok {
			return t
		}
		return Unknown
	case *core.Call:
		return inferCallType(ex, lookup)
	}
	return Unknown
}

// inferCallType covers the "common cases" of spec.md §4.5 transformation 3:
// arithmetic calls desugared to Call(Name("+"), ...) etc. infer Int;
// comparison and "not" infer Bool; Text.* calls fall through to the
// callee's declared return type via lookup; everything else is Unknown.
func inferCallType(c *core.Call, lookup Lookup) core.Type {
	name, ok := c.Target.(*core.Name)
	if !ok {
		return Unknown
	}
	switch name.String() {
	case "+", "-", "*", "/":
		return core.TypeName{Name: "Int"}
	case "<", ">", "<=", ">=", "==", "!=", "not", "and", "or":
		return core.TypeName{Name: "Bool"}
	}
	if t, ok := lookup(name.String()); ok {
		if ft, ok := t.(core.FuncType); ok {
			return ft.Ret
		}
	}
	return Unknown
}

// InferReturnType scans a block's statements for the last Return's
// inferred type (spec.md §4.6 "Helpers").
func InferReturnType(body *core.Block, lookup Lookup) core.Type {
	var last core.Type = Unknown
	for _, s := range body.Stmts {
		switch st := s.(type) {
		case *core.ReturnStmt:
			last = InferStaticType(st.Value, lookup)
		case *core.IfStmt:
			t := InferReturnType(st.Then, lookup)
			if st.Else != nil {
				t = CommonType([]core.Type{t, InferReturnType(st.Else, lookup)})
			}
			if !isUnknown(t) {
				last = t
			}
		}
	}
	return last
}

// CommonType returns the type shared by every element when all match,
// otherwise Unknown (spec.md §4.6 "Helpers": "A list-element inferrer").
func CommonType(types []core.Type) core.Type {
	if len(types) == 0 {
		return Unknown
	}
	first := types[0]
	for _, t := range types[1:] {
		if !Equal(first, t, true) {
			return Unknown
		}
	}
	return first
}
