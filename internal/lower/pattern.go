package lower

import (
	"github.com/aster-cloud/aster/internal/ast"
	"github.com/aster-cloud/aster/internal/core"
	"github.com/aster-cloud/aster/internal/diagnostic"
)

// lowerPattern maps a surface pattern to its Core IR shape. An empty Names
// list is elided to nil (spec.md §4.5 transformation 5: "empty `names`
// lists are elided").
func (lw *lowerer) lowerPattern(p ast.Pattern) (core.Pattern, error) {
	switch n := p.(type) {
	case *ast.PatNull:
		return core.PatNull{}, nil

	case *ast.PatInt:
		return core.PatInt{Value: n.Value}, nil

	case *ast.PatName:
		return core.PatName{Name: n.Name}, nil

	case *ast.PatCtor:
		var names []string
		if len(n.Names) > 0 {
			names = append([]string{}, n.Names...)
		}
		args := make([]core.Pattern, len(n.Args))
		for i, a := range n.Args {
			la, err := lw.lowerPattern(a)
			if err != nil {
				return nil, err
			}
			args[i] = la
		}
		return core.PatCtor{TypeName: n.TypeName, Names: names, Args: args}, nil
	}

	return nil, diagnostic.NewFatal(diagnostic.UnknownPatKind, p.Span().Start, "unknown pattern kind %T", p)
}
