package lint

import (
	"flint/internal/ast"
	"flint/internal/diag"
)

// declareParams registers a function's parameters in the (already pushed)
// function frame and runs the signature checks: repeated names, variadic
// position, default ordering and keyword defaults.
func (a *Analyzer) declareParams(params *ast.Node) {
	if params == nil {
		return
	}
	seen := make(map[string]bool)
	sawDefault := false
	for i, param := range params.Args {
		if param.Kind != ast.KindParam || param.Name == "" {
			continue
		}
		if seen[param.Name] {
			a.report(diag.SevError, diag.ErrDupParam, param.Line, param.Name,
				"parameter "+param.Name+" is repeated")
		}
		seen[param.Name] = true

		if param.Variadic && i != len(params.Args)-1 {
			a.report(diag.SevError, diag.ErrVariadicNotLast, param.Line, param.Name,
				"variadic parameter "+param.Name+" must be last")
		}

		hasDefault := len(param.Args) > 0
		if param.Keyword {
			if !hasDefault {
				a.report(diag.SevError, diag.ErrKeywordNoDefault, param.Line, param.Name,
					"keyword parameter "+param.Name+" needs a default value")
			}
		} else {
			if hasDefault {
				sawDefault = true
			} else if sawDefault && !param.Variadic {
				a.report(diag.SevError, diag.ErrPositionalAfterDefault, param.Line, param.Name,
					"positional parameter "+param.Name+" follows a defaulted parameter")
			}
		}

		// defaults may reference earlier parameters
		if hasDefault {
			a.walk(param.Args[0])
		}
		a.stack.Declare(param.Name, param.TypeAnn, param.Line, true)
	}
}
