package lint

// builtins are names resolvable without any declaration. The set covers the
// common prelude the checks run into; anything else must be declared or
// imported.
var builtins = map[string]struct{}{
	"VERSION":    {},
	"Base":       {},
	"Core":       {},
	"Main":       {},
	"new":        {},
	"include":    {},
	"lintpragma": {},
	"println":    {},
	"print":      {},
	"show":       {},
	"error":      {},
	"throw":      {},
	"length":     {},
	"size":       {},
	"push!":      {},
	"pop!":       {},
	"get":        {},
	"haskey":     {},
	"keys":       {},
	"values":     {},
	"string":     {},
	"repr":       {},
	"typeof":     {},
	"isa":        {},
	"zero":       {},
	"one":        {},
	"abs":        {},
	"sqrt":       {},
	"min":        {},
	"max":        {},
	"sum":        {},
	"map":        {},
	"filter":     {},
	"sort":       {},
	"sort!":      {},
	"nothing":    {},
	"Inf":        {},
	"NaN":        {},
	"pi":         {},
}

// builtinReturns lists builtins with a stable concrete return type, used by
// best-effort inference.
var builtinReturns = map[string]string{
	"string": "String",
	"repr":   "String",
	"length": "Int",
	"typeof": "DataType",
	"isa":    "Bool",
	"haskey": "Bool",
	"sqrt":   "Float64",
	"abs":    "Int",
}

// deprecated maps retired API names to their replacements.
var deprecated = map[string]string{
	"int":     "Int",
	"uint":    "UInt",
	"float64": "Float64",
	"float32": "Float32",
	"char":    "Char",
	"uint8":   "UInt8",
	"int64":   "Int64",
}

// IsBuiltin reports whether name resolves in the builtin prelude.
func IsBuiltin(name string) bool {
	_, ok := builtins[rootSymbol(name)]
	return ok
}
