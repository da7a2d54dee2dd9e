package typecheck

import "github.com/aster-cloud/aster/internal/core"

// builtinSig is one entry of the built-in function table consulted by pass 4
// (spec.md §4.7 item 4: "Text.*, List.*, Map.*, UUID.randomUUID, IO.*,
// Http.*, ..."). Effect and Capability are empty strings for a pure
// built-in; a non-empty Effect is unioned into the caller's effect summary
// the same way a user-defined callee's effects are (spec.md §4.7 item 4),
// and a non-empty Capability is subject to the same effectCaps subset check
// (spec.md §4.7 item 5).
type builtinSig struct {
	Params     []core.Type
	Ret        core.Type
	Effect     string // "", "io", or "cpu"
	Capability string // "" or one of effects.All
}

func tn(name string) core.Type { return core.TypeName{Name: name} }

var (
	textT = tn("Text")
	intT  = tn("Int")
	boolT = tn("Bool")
	unitT = tn("Unit")
	unk   = tn("Unknown")

	resultTextText = core.Result{Ok: textT, Err: textT}
)

// builtins is the fixed table of recognized namespaced function names.
// Namespaces that also appear in effects.CapabilityForPrefix's prefix map
// (Http, Db/Sql, Files/Fs, Secrets, Time/Clock, Ai, Payment, Inventory) tag
// their entries with the matching capability; Text, List, Map, UUID and IO
// are capability-free but still carry an effect where the source operation
// is not pure (spec.md §4.5 transformation 1, §4.7 item 4).
var builtins = map[string]*builtinSig{
	"Text.concat":   {Params: []core.Type{textT, textT}, Ret: textT},
	"Text.length":   {Params: []core.Type{textT}, Ret: intT},
	"Text.toUpper":  {Params: []core.Type{textT}, Ret: textT},
	"Text.toLower":  {Params: []core.Type{textT}, Ret: textT},
	"Text.trim":     {Params: []core.Type{textT}, Ret: textT},
	"Text.contains": {Params: []core.Type{textT, textT}, Ret: boolT},
	"Text.split":    {Params: []core.Type{textT, textT}, Ret: core.List{Elem: textT}},

	"List.length": {Params: []core.Type{core.List{Elem: unk}}, Ret: intT},
	"List.get":    {Params: []core.Type{core.List{Elem: unk}, intT}, Ret: core.Option{Elem: unk}},
	"List.append": {Params: []core.Type{core.List{Elem: unk}, unk}, Ret: core.List{Elem: unk}},

	"Map.get": {Params: []core.Type{core.Map{Key: unk, Value: unk}, unk}, Ret: core.Option{Elem: unk}},
	"Map.put": {Params: []core.Type{core.Map{Key: unk, Value: unk}, unk, unk}, Ret: core.Map{Key: unk, Value: unk}},

	"UUID.randomUUID": {Params: nil, Ret: textT, Effect: "cpu"},

	"IO.print":    {Params: []core.Type{textT}, Ret: unitT, Effect: "io"},
	"IO.readLine": {Params: nil, Ret: textT, Effect: "io"},

	"Log.info":  {Params: []core.Type{textT}, Ret: unitT, Effect: "io"},
	"Log.error": {Params: []core.Type{textT}, Ret: unitT, Effect: "io"},

	"Http.get":  {Params: []core.Type{textT}, Ret: resultTextText, Effect: "io", Capability: "Http"},
	"Http.post": {Params: []core.Type{textT, textT}, Ret: resultTextText, Effect: "io", Capability: "Http"},

	"Db.query":  {Params: []core.Type{textT}, Ret: core.Result{Ok: core.List{Elem: textT}, Err: textT}, Effect: "io", Capability: "Sql"},
	"Sql.query": {Params: []core.Type{textT}, Ret: core.Result{Ok: core.List{Elem: textT}, Err: textT}, Effect: "io", Capability: "Sql"},

	"Files.read":  {Params: []core.Type{textT}, Ret: resultTextText, Effect: "io", Capability: "Files"},
	"Files.write": {Params: []core.Type{textT, textT}, Ret: core.Result{Ok: unitT, Err: textT}, Effect: "io", Capability: "Files"},
	"Fs.read":     {Params: []core.Type{textT}, Ret: resultTextText, Effect: "io", Capability: "Files"},
	"Fs.write":    {Params: []core.Type{textT, textT}, Ret: core.Result{Ok: unitT, Err: textT}, Effect: "io", Capability: "Files"},

	"Secrets.get": {Params: []core.Type{textT}, Ret: resultTextText, Effect: "io", Capability: "Secrets"},

	"Time.now":  {Params: nil, Ret: intT, Effect: "io", Capability: "Time"},
	"Clock.now": {Params: nil, Ret: intT, Effect: "io", Capability: "Time"},

	"Ai.complete": {Params: []core.Type{textT}, Ret: resultTextText, Effect: "io", Capability: "AiModel"},

	"Payment.charge": {Params: []core.Type{textT, intT}, Ret: resultTextText, Effect: "io", Capability: "Payment"},

	"Inventory.reserve": {Params: []core.Type{textT, intT}, Ret: resultTextText, Effect: "io", Capability: "Inventory"},
}
