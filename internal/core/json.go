package core

import (
	"fmt"

	"github.com/aster-cloud/aster/internal/ast"
)

// ToJSON renders a Module as the plain Go value (nested maps and slices)
// the schema package's deterministic marshaler expects — the "module"
// field of the Core IR JSON envelope (spec.md §6.3). Every node family is a
// tagged union on the wire ("kind"), since Decl/Stmt/Expr/Pattern/Type have
// no common concrete representation for encoding/json to discover on its
// own.
func ToJSON(m *Module) (map[string]any, error) {
	decls, err := encodeDecls(m.Decls)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"kind":  "Module",
		"id":    m.NodeID,
		"origin": encodeOrigin(m.Org),
		"name":  m.Name,
		"decls": decls,
	}, nil
}

// FromJSON rebuilds a Module from the decoded "module" field of the Core
// IR envelope. It rejects a missing/mistyped "kind" or non-array "decls"
// (spec.md §6.3 "Deserialization must reject ... non-array module.decls,
// or module.kind != Module").
func FromJSON(v any) (*Module, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: module must be a JSON object")
	}
	if kind, _ := m["kind"].(string); kind != "Module" {
		return nil, fmt.Errorf("core: module.kind must be %q, got %q", "Module", m["kind"])
	}
	rawDecls, ok := m["decls"].([]any)
	if !ok {
		return nil, fmt.Errorf("core: module.decls must be an array")
	}
	decls, err := decodeDecls(rawDecls)
	if err != nil {
		return nil, err
	}
	name, _ := m["name"].(string)
	mod := &Module{Name: name, Decls: decls}
	mod.NodeID = decodeID(m["id"])
	mod.Org = decodeOrigin(m["origin"])
	return mod, nil
}

func encodeOrigin(o Origin) map[string]any {
	return map[string]any{
		"file":  o.File,
		"start": map[string]any{"line": o.Start.Line, "col": o.Start.Col},
		"end":   map[string]any{"line": o.End.Line, "col": o.End.Col},
	}
}

func decodeOrigin(v any) Origin {
	m, ok := v.(map[string]any)
	if !ok {
		return Origin{}
	}
	file, _ := m["file"].(string)
	return Origin{File: file, Start: decodePos(m["start"]), End: decodePos(m["end"])}
}

func decodePos(v any) ast.Pos {
	m, ok := v.(map[string]any)
	if !ok {
		return ast.Pos{}
	}
	return ast.Pos{Line: int(asFloat(m["line"])), Col: int(asFloat(m["col"]))}
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func decodeID(v any) uint64 {
	return uint64(asFloat(v))
}

// decodeLiteralValue recovers the Go value a Literal held before it was
// serialized, using Kind to disambiguate JSON's single numeric type -
// otherwise an IntLit/LongLit value would come back as a float64 (spec.md
// §3 "Tokens": literal value is kind-dependent).
func decodeLiteralValue(kind LiteralKind, v any) any {
	switch kind {
	case BoolLit:
		b, _ := v.(bool)
		return b
	case IntLit, LongLit:
		return int64(asFloat(v))
	case FloatLit:
		return asFloat(v)
	case StringLit:
		s, _ := v.(string)
		return s
	case NullLit:
		return nil
	default:
		return v
	}
}

// ---- declarations ----

func encodeDecls(decls []Decl) ([]any, error) {
	out := make([]any, len(decls))
	for i, d := range decls {
		e, err := encodeDecl(d)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func encodeDecl(d Decl) (map[string]any, error) {
	switch v := d.(type) {
	case *ImportDecl:
		return map[string]any{
			"kind": "Import", "id": v.NodeID, "origin": encodeOrigin(v.Org),
			"name": v.Name, "asName": v.AsName,
		}, nil
	case *DataDecl:
		fields := make([]any, len(v.Fields))
		for i, f := range v.Fields {
			t, err := encodeType(f.Type)
			if err != nil {
				return nil, err
			}
			cs, err := encodeConstraints(f.Constraints)
			if err != nil {
				return nil, err
			}
			fields[i] = map[string]any{"name": f.Name, "type": t, "constraints": cs}
		}
		return map[string]any{
			"kind": "Data", "id": v.NodeID, "origin": encodeOrigin(v.Org),
			"name": v.Name, "fields": fields,
		}, nil
	case *EnumDecl:
		return map[string]any{
			"kind": "Enum", "id": v.NodeID, "origin": encodeOrigin(v.Org),
			"name": v.Name, "variants": toAnySlice(v.Variants),
		}, nil
	case *FuncDecl:
		return encodeFuncDecl(v)
	default:
		return nil, fmt.Errorf("core: unknown decl kind %T", d)
	}
}

func encodeFuncDecl(v *FuncDecl) (map[string]any, error) {
	params, err := encodeParams(v.Params)
	if err != nil {
		return nil, err
	}
	ret, err := encodeType(v.RetType)
	if err != nil {
		return nil, err
	}
	var body any
	if v.Body != nil {
		body, err = encodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
	}
	var pii any
	if v.Pii != nil {
		pii = map[string]any{"sensitivity": string(v.Pii.Sensitivity), "categories": toAnySlice(v.Pii.Categories)}
	}
	return map[string]any{
		"kind": "Func", "id": v.NodeID, "origin": encodeOrigin(v.Org),
		"name":               v.Name,
		"typeParams":         toAnySlice(v.TypeParams),
		"effectParams":       toAnySlice(v.EffectParams),
		"params":             params,
		"retType":            ret,
		"declaredEffects":    encodeEffectItems(v.DeclaredEffects),
		"effects":            toAnySlice(v.Effects),
		"effectCaps":         toAnySlice(v.EffectCaps),
		"effectCapsExplicit": v.EffectCapsExplicit,
		"body":               body,
		"pii":                pii,
	}, nil
}

func encodeEffectItems(items []EffectItem) []any {
	out := make([]any, len(items))
	for i, e := range items {
		out[i] = map[string]any{"name": e.Name, "isVar": e.IsVar}
	}
	return out
}

func decodeEffectItems(v any) []EffectItem {
	raw, _ := v.([]any)
	out := make([]EffectItem, len(raw))
	for i, r := range raw {
		m, _ := r.(map[string]any)
		name, _ := m["name"].(string)
		isVar, _ := m["isVar"].(bool)
		out[i] = EffectItem{Name: name, IsVar: isVar}
	}
	return out
}

func encodeParams(params []*Param) ([]any, error) {
	out := make([]any, len(params))
	for i, p := range params {
		t, err := encodeType(p.Type)
		if err != nil {
			return nil, err
		}
		cs, err := encodeConstraints(p.Constraints)
		if err != nil {
			return nil, err
		}
		out[i] = map[string]any{"name": p.Name, "type": t, "constraints": cs}
	}
	return out, nil
}

func decodeParams(v any) ([]*Param, error) {
	raw, _ := v.([]any)
	out := make([]*Param, len(raw))
	for i, r := range raw {
		m, _ := r.(map[string]any)
		name, _ := m["name"].(string)
		t, err := decodeType(m["type"])
		if err != nil {
			return nil, err
		}
		cs, err := decodeConstraints(m["constraints"])
		if err != nil {
			return nil, err
		}
		out[i] = &Param{Name: name, Type: t, Constraints: cs}
	}
	return out, nil
}

func decodeDecls(raw []any) ([]Decl, error) {
	out := make([]Decl, len(raw))
	for i, r := range raw {
		d, err := decodeDecl(r)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func decodeDecl(v any) (Decl, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: decl must be a JSON object")
	}
	kind, _ := m["kind"].(string)
	org := decodeOrigin(m["origin"])
	id := decodeID(m["id"])
	switch kind {
	case "Import":
		name, _ := m["name"].(string)
		asName, _ := m["asName"].(string)
		d := &ImportDecl{Name: name, AsName: asName}
		d.SetID(id)
		d.SetOrigin(org)
		return d, nil
	case "Data":
		name, _ := m["name"].(string)
		rawFields, _ := m["fields"].([]any)
		fields := make([]*DataField, len(rawFields))
		for i, rf := range rawFields {
			fm, _ := rf.(map[string]any)
			fname, _ := fm["name"].(string)
			t, err := decodeType(fm["type"])
			if err != nil {
				return nil, err
			}
			cs, err := decodeConstraints(fm["constraints"])
			if err != nil {
				return nil, err
			}
			fields[i] = &DataField{Name: fname, Type: t, Constraints: cs}
		}
		d := &DataDecl{Name: name, Fields: fields}
		d.SetID(id)
		d.SetOrigin(org)
		return d, nil
	case "Enum":
		name, _ := m["name"].(string)
		d := &EnumDecl{Name: name, Variants: toStringSlice(m["variants"])}
		d.SetID(id)
		d.SetOrigin(org)
		return d, nil
	case "Func":
		return decodeFuncDecl(m, id, org)
	default:
		return nil, fmt.Errorf("core: unknown decl kind %q", kind)
	}
}

func decodeFuncDecl(m map[string]any, id uint64, org Origin) (Decl, error) {
	name, _ := m["name"].(string)
	params, err := decodeParams(m["params"])
	if err != nil {
		return nil, err
	}
	retType, err := decodeType(m["retType"])
	if err != nil {
		return nil, err
	}
	var body *Block
	if m["body"] != nil {
		s, err := decodeStmt(m["body"])
		if err != nil {
			return nil, err
		}
		body, _ = s.(*Block)
	}
	var pii *PiiSummary
	if raw, ok := m["pii"].(map[string]any); ok {
		sens, _ := raw["sensitivity"].(string)
		pii = &PiiSummary{Sensitivity: ast.PiiSensitivity(sens), Categories: toStringSlice(raw["categories"])}
	}
	explicit, _ := m["effectCapsExplicit"].(bool)
	d := &FuncDecl{
		Name:               name,
		TypeParams:         toStringSlice(m["typeParams"]),
		EffectParams:       toStringSlice(m["effectParams"]),
		Params:             params,
		RetType:            retType,
		DeclaredEffects:    decodeEffectItems(m["declaredEffects"]),
		Effects:            toStringSlice(m["effects"]),
		EffectCaps:         toStringSlice(m["effectCaps"]),
		EffectCapsExplicit: explicit,
		Body:               body,
		Pii:                pii,
	}
	d.SetID(id)
	d.SetOrigin(org)
	return d, nil
}

// ---- statements ----

func encodeStmt(s Stmt) (map[string]any, error) {
	switch v := s.(type) {
	case *Block:
		stmts, err := encodeStmts(v.Stmts)
		if err != nil {
			return nil, err
		}
		return wrapStmt("Block", v, map[string]any{"stmts": stmts}), nil
	case *LetStmt:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapStmt("Let", v, map[string]any{"name": v.Name, "value": val}), nil
	case *SetStmt:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapStmt("Set", v, map[string]any{"name": v.Name, "value": val}), nil
	case *ReturnStmt:
		var val any
		if v.Value != nil {
			e, err := encodeExpr(v.Value)
			if err != nil {
				return nil, err
			}
			val = e
		}
		return wrapStmt("Return", v, map[string]any{"value": val}), nil
	case *IfStmt:
		cond, err := encodeExpr(v.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeStmt(v.Then)
		if err != nil {
			return nil, err
		}
		var els any
		if v.Else != nil {
			e, err := encodeStmt(v.Else)
			if err != nil {
				return nil, err
			}
			els = e
		}
		return wrapStmt("If", v, map[string]any{"cond": cond, "then": then, "else": els}), nil
	case *MatchStmt:
		scrut, err := encodeExpr(v.Scrutinee)
		if err != nil {
			return nil, err
		}
		arms := make([]any, len(v.Arms))
		for i, a := range v.Arms {
			pat, err := encodePattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := encodeStmt(a.Body)
			if err != nil {
				return nil, err
			}
			arms[i] = map[string]any{"pattern": pat, "body": body}
		}
		return wrapStmt("Match", v, map[string]any{"scrutinee": scrut, "arms": arms}), nil
	case *ScopeStmt:
		body, err := encodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return wrapStmt("Scope", v, map[string]any{"body": body}), nil
	case *StartStmt:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapStmt("Start", v, map[string]any{"name": v.Name, "value": val}), nil
	case *WaitStmt:
		return wrapStmt("Wait", v, map[string]any{"names": toAnySlice(v.Names)}), nil
	case *WorkflowStmt:
		return encodeWorkflowStmt(v)
	default:
		return nil, fmt.Errorf("core: unknown stmt kind %T", s)
	}
}

func wrapStmt(kind string, n Node, fields map[string]any) map[string]any {
	fields["kind"] = kind
	fields["id"] = n.ID()
	fields["origin"] = encodeOrigin(n.Origin())
	return fields
}

func encodeWorkflowStmt(v *WorkflowStmt) (map[string]any, error) {
	steps := make([]any, len(v.Steps))
	for i, st := range v.Steps {
		body, err := encodeStmt(st.Body)
		if err != nil {
			return nil, err
		}
		var comp any
		if st.Compensate != nil {
			c, err := encodeStmt(st.Compensate)
			if err != nil {
				return nil, err
			}
			comp = c
		}
		steps[i] = map[string]any{
			"name":         st.Name,
			"dependencies": toAnySlice(st.Dependencies),
			"body":         body,
			"compensate":   comp,
			"effectCaps":   toAnySlice(st.EffectCaps),
		}
	}
	var retry any
	if v.Retry != nil {
		retry = map[string]any{"maxAttempts": v.Retry.MaxAttempts, "backoff": v.Retry.Backoff}
	}
	var timeout any
	if v.Timeout != nil {
		timeout = map[string]any{"milliseconds": v.Timeout.Milliseconds}
	}
	return wrapStmt("Workflow", v, map[string]any{
		"steps":      steps,
		"effectCaps": toAnySlice(v.EffectCaps),
		"retry":      retry,
		"timeout":    timeout,
	}), nil
}

func encodeStmts(stmts []Stmt) ([]any, error) {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		e, err := encodeStmt(s)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodeStmts(v any) ([]Stmt, error) {
	raw, _ := v.([]any)
	out := make([]Stmt, len(raw))
	for i, r := range raw {
		s, err := decodeStmt(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func decodeStmt(v any) (Stmt, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: stmt must be a JSON object")
	}
	kind, _ := m["kind"].(string)
	id := decodeID(m["id"])
	org := decodeOrigin(m["origin"])
	switch kind {
	case "Block":
		stmts, err := decodeStmts(m["stmts"])
		if err != nil {
			return nil, err
		}
		s := &Block{Stmts: stmts}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Let":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		name, _ := m["name"].(string)
		s := &LetStmt{Name: name, Value: val}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Set":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		name, _ := m["name"].(string)
		s := &SetStmt{Name: name, Value: val}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Return":
		var val Expr
		if m["value"] != nil {
			v, err := decodeExpr(m["value"])
			if err != nil {
				return nil, err
			}
			val = v
		}
		s := &ReturnStmt{Value: val}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "If":
		cond, err := decodeExpr(m["cond"])
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(m["then"])
		if err != nil {
			return nil, err
		}
		thenBlock, _ := then.(*Block)
		var elseBlock *Block
		if m["else"] != nil {
			e, err := decodeStmt(m["else"])
			if err != nil {
				return nil, err
			}
			elseBlock, _ = e.(*Block)
		}
		s := &IfStmt{Cond: cond, Then: thenBlock, Else: elseBlock}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Match":
		scrut, err := decodeExpr(m["scrutinee"])
		if err != nil {
			return nil, err
		}
		rawArms, _ := m["arms"].([]any)
		arms := make([]*MatchArm, len(rawArms))
		for i, ra := range rawArms {
			am, _ := ra.(map[string]any)
			pat, err := decodePattern(am["pattern"])
			if err != nil {
				return nil, err
			}
			body, err := decodeStmt(am["body"])
			if err != nil {
				return nil, err
			}
			bodyBlock, _ := body.(*Block)
			arms[i] = &MatchArm{Pattern: pat, Body: bodyBlock}
		}
		s := &MatchStmt{Scrutinee: scrut, Arms: arms}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Scope":
		body, err := decodeStmt(m["body"])
		if err != nil {
			return nil, err
		}
		bodyBlock, _ := body.(*Block)
		s := &ScopeStmt{Body: bodyBlock}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Start":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		name, _ := m["name"].(string)
		s := &StartStmt{Name: name, Value: val}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Wait":
		s := &WaitStmt{Names: toStringSlice(m["names"])}
		s.SetID(id)
		s.SetOrigin(org)
		return s, nil
	case "Workflow":
		return decodeWorkflowStmt(m, id, org)
	default:
		return nil, fmt.Errorf("core: unknown stmt kind %q", kind)
	}
}

func decodeWorkflowStmt(m map[string]any, id uint64, org Origin) (Stmt, error) {
	rawSteps, _ := m["steps"].([]any)
	steps := make([]*WorkflowStep, len(rawSteps))
	for i, rs := range rawSteps {
		sm, _ := rs.(map[string]any)
		name, _ := sm["name"].(string)
		body, err := decodeStmt(sm["body"])
		if err != nil {
			return nil, err
		}
		bodyBlock, _ := body.(*Block)
		var comp *Block
		if sm["compensate"] != nil {
			c, err := decodeStmt(sm["compensate"])
			if err != nil {
				return nil, err
			}
			comp, _ = c.(*Block)
		}
		steps[i] = &WorkflowStep{
			Name:         name,
			Dependencies: toStringSlice(sm["dependencies"]),
			Body:         bodyBlock,
			Compensate:   comp,
			EffectCaps:   toStringSlice(sm["effectCaps"]),
		}
	}
	var retry *RetryPolicy
	if rm, ok := m["retry"].(map[string]any); ok {
		backoff, _ := rm["backoff"].(string)
		retry = &RetryPolicy{MaxAttempts: int(asFloat(rm["maxAttempts"])), Backoff: backoff}
	}
	var timeout *Timeout
	if tm, ok := m["timeout"].(map[string]any); ok {
		timeout = &Timeout{Milliseconds: int(asFloat(tm["milliseconds"]))}
	}
	s := &WorkflowStmt{
		Steps:      steps,
		EffectCaps: toStringSlice(m["effectCaps"]),
		Retry:      retry,
		Timeout:    timeout,
	}
	s.SetID(id)
	s.SetOrigin(org)
	return s, nil
}

// ---- expressions ----

func encodeExpr(e Expr) (map[string]any, error) {
	switch v := e.(type) {
	case *Name:
		return wrapExpr("Name", v, map[string]any{"parts": toAnySlice(v.Parts)}), nil
	case *Literal:
		return wrapExpr("Literal", v, map[string]any{"litKind": int(v.Kind), "value": v.Value}), nil
	case *Call:
		target, err := encodeExpr(v.Target)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(v.Args))
		for i, a := range v.Args {
			ae, err := encodeExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return wrapExpr("Call", v, map[string]any{"target": target, "args": args}), nil
	case *Construct:
		fields := make([]any, len(v.Fields))
		for i, f := range v.Fields {
			val, err := encodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = map[string]any{"name": f.Name, "value": val}
		}
		return wrapExpr("Construct", v, map[string]any{"typeName": v.TypeName, "fields": fields}), nil
	case *Ok:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapExpr("Ok", v, map[string]any{"value": val}), nil
	case *Err:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapExpr("Err", v, map[string]any{"value": val}), nil
	case *Some:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapExpr("Some", v, map[string]any{"value": val}), nil
	case *None:
		return wrapExpr("None", v, map[string]any{}), nil
	case *Await:
		val, err := encodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return wrapExpr("Await", v, map[string]any{"value": val}), nil
	case *Lambda:
		params, err := encodeParams(v.Params)
		if err != nil {
			return nil, err
		}
		ret, err := encodeType(v.RetType)
		if err != nil {
			return nil, err
		}
		body, err := encodeStmt(v.Body)
		if err != nil {
			return nil, err
		}
		return wrapExpr("Lambda", v, map[string]any{
			"params": params, "retType": ret, "body": body, "captures": toAnySlice(v.Captures),
		}), nil
	default:
		return nil, fmt.Errorf("core: unknown expr kind %T", e)
	}
}

func wrapExpr(kind string, n Node, fields map[string]any) map[string]any {
	fields["kind"] = kind
	fields["id"] = n.ID()
	fields["origin"] = encodeOrigin(n.Origin())
	return fields
}

func decodeExpr(v any) (Expr, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: expr must be a JSON object")
	}
	kind, _ := m["kind"].(string)
	id := decodeID(m["id"])
	org := decodeOrigin(m["origin"])
	switch kind {
	case "Name":
		e := &Name{Parts: toStringSlice(m["parts"])}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Literal":
		litKind := LiteralKind(int(asFloat(m["litKind"])))
		e := &Literal{Kind: litKind, Value: decodeLiteralValue(litKind, m["value"])}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Call":
		target, err := decodeExpr(m["target"])
		if err != nil {
			return nil, err
		}
		rawArgs, _ := m["args"].([]any)
		args := make([]Expr, len(rawArgs))
		for i, ra := range rawArgs {
			a, err := decodeExpr(ra)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		e := &Call{Target: target, Args: args}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Construct":
		typeName, _ := m["typeName"].(string)
		rawFields, _ := m["fields"].([]any)
		fields := make([]*ConstructField, len(rawFields))
		for i, rf := range rawFields {
			fm, _ := rf.(map[string]any)
			name, _ := fm["name"].(string)
			val, err := decodeExpr(fm["value"])
			if err != nil {
				return nil, err
			}
			fields[i] = &ConstructField{Name: name, Value: val}
		}
		e := &Construct{TypeName: typeName, Fields: fields}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Ok":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		e := &Ok{Value: val}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Err":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		e := &Err{Value: val}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Some":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		e := &Some{Value: val}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "None":
		e := &None{}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Await":
		val, err := decodeExpr(m["value"])
		if err != nil {
			return nil, err
		}
		e := &Await{Value: val}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	case "Lambda":
		params, err := decodeParams(m["params"])
		if err != nil {
			return nil, err
		}
		retType, err := decodeType(m["retType"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(m["body"])
		if err != nil {
			return nil, err
		}
		bodyBlock, _ := body.(*Block)
		e := &Lambda{Params: params, RetType: retType, Body: bodyBlock, Captures: toStringSlice(m["captures"])}
		e.SetID(id)
		e.SetOrigin(org)
		return e, nil
	default:
		return nil, fmt.Errorf("core: unknown expr kind %q", kind)
	}
}

// ---- patterns ----

func encodePattern(p Pattern) (map[string]any, error) {
	switch v := p.(type) {
	case PatNull:
		return map[string]any{"kind": "PatNull"}, nil
	case PatInt:
		return map[string]any{"kind": "PatInt", "value": v.Value}, nil
	case PatName:
		return map[string]any{"kind": "PatName", "name": v.Name}, nil
	case PatCtor:
		var args []any
		if v.Args != nil {
			args = make([]any, len(v.Args))
			for i, a := range v.Args {
				ae, err := encodePattern(a)
				if err != nil {
					return nil, err
				}
				args[i] = ae
			}
		}
		return map[string]any{
			"kind": "PatCtor", "typeName": v.TypeName, "names": toAnySliceOrNil(v.Names), "args": args,
		}, nil
	default:
		return nil, fmt.Errorf("core: unknown pattern kind %T", p)
	}
}

func decodePattern(v any) (Pattern, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: pattern must be a JSON object")
	}
	switch kind, _ := m["kind"].(string); kind {
	case "PatNull":
		return PatNull{}, nil
	case "PatInt":
		return PatInt{Value: int64(asFloat(m["value"]))}, nil
	case "PatName":
		name, _ := m["name"].(string)
		return PatName{Name: name}, nil
	case "PatCtor":
		typeName, _ := m["typeName"].(string)
		var args []Pattern
		if rawArgs, ok := m["args"].([]any); ok && len(rawArgs) > 0 {
			args = make([]Pattern, len(rawArgs))
			for i, ra := range rawArgs {
				a, err := decodePattern(ra)
				if err != nil {
					return nil, err
				}
				args[i] = a
			}
		}
		return PatCtor{TypeName: typeName, Names: toStringSlice(m["names"]), Args: args}, nil
	default:
		return nil, fmt.Errorf("core: unknown pattern kind %q", kind)
	}
}

// ---- types & constraints ----

func encodeType(t Type) (map[string]any, error) {
	if t == nil {
		return nil, nil
	}
	switch v := t.(type) {
	case TypeName:
		return map[string]any{"kind": "TypeName", "name": v.Name}, nil
	case TypeVar:
		return map[string]any{"kind": "TypeVar", "name": v.Name}, nil
	case EffectVar:
		return map[string]any{"kind": "EffectVar", "name": v.Name}, nil
	case Maybe:
		elem, err := encodeType(v.Elem)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "Maybe", "elem": elem}, nil
	case Option:
		elem, err := encodeType(v.Elem)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "Option", "elem": elem}, nil
	case Result:
		ok, err := encodeType(v.Ok)
		if err != nil {
			return nil, err
		}
		errT, err := encodeType(v.Err)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "Result", "ok": ok, "err": errT}, nil
	case List:
		elem, err := encodeType(v.Elem)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "List", "elem": elem}, nil
	case Map:
		key, err := encodeType(v.Key)
		if err != nil {
			return nil, err
		}
		val, err := encodeType(v.Value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "Map", "key": key, "value": val}, nil
	case TypeApp:
		args := make([]any, len(v.Args))
		for i, a := range v.Args {
			ae, err := encodeType(a)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		return map[string]any{"kind": "TypeApp", "baseName": v.BaseName, "args": args}, nil
	case Workflow:
		r, err := encodeType(v.R)
		if err != nil {
			return nil, err
		}
		e, err := encodeType(v.E)
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": "Workflow", "r": r, "e": e}, nil
	case FuncType:
		params := make([]any, len(v.Params))
		for i, p := range v.Params {
			pe, err := encodeType(p)
			if err != nil {
				return nil, err
			}
			params[i] = pe
		}
		ret, err := encodeType(v.Ret)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "FuncType", "params": params, "ret": ret,
			"declaredEffects": encodeEffectItems(v.DeclaredEffects),
			"effectParams":    toAnySlice(v.EffectParams),
		}, nil
	case PiiType:
		base, err := encodeType(v.BaseType)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind": "PiiType", "baseType": base, "sensitivity": v.Sensitivity, "category": v.Category,
		}, nil
	default:
		return nil, fmt.Errorf("core: unknown type kind %T", t)
	}
}

func decodeType(v any) (Type, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: type must be a JSON object")
	}
	kind, _ := m["kind"].(string)
	switch kind {
	case "TypeName":
		name, _ := m["name"].(string)
		return TypeName{Name: name}, nil
	case "TypeVar":
		name, _ := m["name"].(string)
		return TypeVar{Name: name}, nil
	case "EffectVar":
		name, _ := m["name"].(string)
		return EffectVar{Name: name}, nil
	case "Maybe":
		elem, err := decodeType(m["elem"])
		if err != nil {
			return nil, err
		}
		return Maybe{Elem: elem}, nil
	case "Option":
		elem, err := decodeType(m["elem"])
		if err != nil {
			return nil, err
		}
		return Option{Elem: elem}, nil
	case "Result":
		ok, err := decodeType(m["ok"])
		if err != nil {
			return nil, err
		}
		errT, err := decodeType(m["err"])
		if err != nil {
			return nil, err
		}
		return Result{Ok: ok, Err: errT}, nil
	case "List":
		elem, err := decodeType(m["elem"])
		if err != nil {
			return nil, err
		}
		return List{Elem: elem}, nil
	case "Map":
		key, err := decodeType(m["key"])
		if err != nil {
			return nil, err
		}
		val, err := decodeType(m["value"])
		if err != nil {
			return nil, err
		}
		return Map{Key: key, Value: val}, nil
	case "TypeApp":
		rawArgs, _ := m["args"].([]any)
		args := make([]Type, len(rawArgs))
		for i, ra := range rawArgs {
			a, err := decodeType(ra)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		baseName, _ := m["baseName"].(string)
		return TypeApp{BaseName: baseName, Args: args}, nil
	case "Workflow":
		r, err := decodeType(m["r"])
		if err != nil {
			return nil, err
		}
		e, err := decodeType(m["e"])
		if err != nil {
			return nil, err
		}
		return Workflow{R: r, E: e}, nil
	case "FuncType":
		rawParams, _ := m["params"].([]any)
		params := make([]Type, len(rawParams))
		for i, rp := range rawParams {
			p, err := decodeType(rp)
			if err != nil {
				return nil, err
			}
			params[i] = p
		}
		ret, err := decodeType(m["ret"])
		if err != nil {
			return nil, err
		}
		return FuncType{
			Params: params, Ret: ret,
			DeclaredEffects: decodeEffectItems(m["declaredEffects"]),
			EffectParams:    toStringSlice(m["effectParams"]),
		}, nil
	case "PiiType":
		base, err := decodeType(m["baseType"])
		if err != nil {
			return nil, err
		}
		sens, _ := m["sensitivity"].(string)
		cat, _ := m["category"].(string)
		return PiiType{BaseType: base, Sensitivity: sens, Category: cat}, nil
	default:
		return nil, fmt.Errorf("core: unknown type kind %q", kind)
	}
}

func encodeConstraints(cs []Constraint) ([]any, error) {
	out := make([]any, len(cs))
	for i, c := range cs {
		e, err := encodeConstraint(c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func encodeConstraint(c Constraint) (map[string]any, error) {
	switch v := c.(type) {
	case RequiredConstraint:
		return map[string]any{"kind": "Required"}, nil
	case BetweenConstraint:
		return map[string]any{"kind": "Between", "low": v.Low, "high": v.High}, nil
	case AtLeastConstraint:
		return map[string]any{"kind": "AtLeast", "n": v.N}, nil
	case AtMostConstraint:
		return map[string]any{"kind": "AtMost", "n": v.N}, nil
	case MatchingConstraint:
		return map[string]any{"kind": "Matching", "pattern": v.Pattern}, nil
	default:
		return nil, fmt.Errorf("core: unknown constraint kind %T", c)
	}
}

func decodeConstraints(v any) ([]Constraint, error) {
	raw, _ := v.([]any)
	out := make([]Constraint, len(raw))
	for i, r := range raw {
		c, err := decodeConstraint(r)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func decodeConstraint(v any) (Constraint, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: constraint must be a JSON object")
	}
	switch kind, _ := m["kind"].(string); kind {
	case "Required":
		return RequiredConstraint{}, nil
	case "Between":
		return BetweenConstraint{Low: asFloat(m["low"]), High: asFloat(m["high"])}, nil
	case "AtLeast":
		return AtLeastConstraint{N: asFloat(m["n"])}, nil
	case "AtMost":
		return AtMostConstraint{N: asFloat(m["n"])}, nil
	case "Matching":
		pattern, _ := m["pattern"].(string)
		return MatchingConstraint{Pattern: pattern}, nil
	default:
		return nil, fmt.Errorf("core: unknown constraint kind %q", kind)
	}
}

// ---- small helpers ----

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func toAnySliceOrNil(ss []string) []any {
	if ss == nil {
		return nil
	}
	return toAnySlice(ss)
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i], _ = r.(string)
	}
	return out
}
