package lint

import (
	"flint/internal/diag"
)

// FrameKind enumerates the lexical regions that own a frame.
type FrameKind uint8

const (
	FrameGlobal FrameKind = iota
	FrameModule
	FrameFunction
	FrameType
	FrameBlock
)

func (k FrameKind) String() string {
	switch k {
	case FrameGlobal:
		return "global"
	case FrameModule:
		return "module"
	case FrameFunction:
		return "function"
	case FrameType:
		return "type"
	case FrameBlock:
		return "block"
	}
	return "invalid"
}

// VarInfo tracks one local binding inside a frame.
type VarInfo struct {
	DeclaredType string // annotation root, "" when unannotated
	Inferred     Type
	Line         int
	Used         bool
	IsArg        bool
}

// SuppressKind identifies a suppressible diagnostic family.
type SuppressKind uint8

const (
	SuppressUnused SuppressKind = iota
	SuppressUnstable
	SuppressUndefined
	SuppressDeprecated
	SuppressDeadCode
)

type supKey struct {
	kind SuppressKind
	sym  string
}

// Frame is one lexical scope's symbol table. Lookups fall through to outer
// frames explicitly; nothing is copied on push.
type Frame struct {
	Kind  FrameKind
	Vars  map[string]*VarInfo
	Funcs map[string]struct{}
	Types map[string]struct{}

	// Ext is reserved for extension-hook bookkeeping; the engine's own
	// checks never read it.
	Ext map[string]any

	sup map[supKey]struct{}
}

func newFrame(kind FrameKind) *Frame {
	return &Frame{
		Kind:  kind,
		Vars:  make(map[string]*VarInfo),
		Funcs: make(map[string]struct{}),
		Types: make(map[string]struct{}),
		Ext:   make(map[string]any),
		sup:   make(map[supKey]struct{}),
	}
}

// Stack is the call stack of frames. Index 0 is the module/global frame and
// persists for the whole file; the last frame is the innermost open scope.
type Stack struct {
	frames   []*Frame
	reporter diag.Reporter

	// muteUnused disables the unused sweep while popping frames opened
	// inside provably dead code.
	muteUnused int
}

func NewStack(reporter diag.Reporter) *Stack {
	st := &Stack{reporter: reporter}
	st.Push(FrameGlobal)
	return st
}

// Push opens a new frame. The new frame inherits no bindings.
func (st *Stack) Push(kind FrameKind) *Frame {
	fr := newFrame(kind)
	st.frames = append(st.frames, fr)
	return fr
}

// Pop closes the top frame. Every binding with Used == false and no active
// "ignore unused" suppression yields an unused diagnostic at its
// declaration line. Global and module frames are never swept: their
// bindings are visible to other files and cannot be proven dead here.
func (st *Stack) Pop() {
	if len(st.frames) == 0 {
		return
	}
	top := st.frames[len(st.frames)-1]
	if st.muteUnused == 0 && top.Kind != FrameGlobal && top.Kind != FrameModule {
		st.sweepUnused(top)
	}
	st.frames = st.frames[:len(st.frames)-1]
}

func (st *Stack) sweepUnused(fr *Frame) {
	for name, info := range fr.Vars {
		if info.Used {
			continue
		}
		if st.Suppressed(SuppressUnused, name) {
			continue
		}
		if info.IsArg {
			st.reporter.Report(diag.SevInfo, diag.InfoUnusedArg, info.Line, name,
				"unused function argument "+name)
		} else {
			st.reporter.Report(diag.SevInfo, diag.InfoUnusedVar, info.Line, name,
				"unused local variable "+name)
		}
	}
}

// Top returns the innermost open frame.
func (st *Stack) Top() *Frame {
	if len(st.frames) == 0 {
		return nil
	}
	return st.frames[len(st.frames)-1]
}

// Global returns frame 0.
func (st *Stack) Global() *Frame {
	if len(st.frames) == 0 {
		return nil
	}
	return st.frames[0]
}

func (st *Stack) Depth() int { return len(st.frames) }

// Resolve searches frames innermost to outermost and returns the first
// variable binding for name, or nil when undefined as a variable.
func (st *Stack) Resolve(name string) *VarInfo {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if info, ok := st.frames[i].Vars[name]; ok {
			return info
		}
	}
	return nil
}

// ResolveAny reports whether name is bound as a variable, function or type
// in any open frame.
func (st *Stack) ResolveAny(name string) bool {
	for i := len(st.frames) - 1; i >= 0; i-- {
		fr := st.frames[i]
		if _, ok := fr.Vars[name]; ok {
			return true
		}
		if _, ok := fr.Funcs[name]; ok {
			return true
		}
		if _, ok := fr.Types[name]; ok {
			return true
		}
	}
	return false
}

// Declare inserts a binding into the top frame. Reusing a name already
// bound in an enclosing frame of the same function body is reported as an
// INFO unless suppressed.
func (st *Stack) Declare(name, declaredType string, line int, isArg bool) *VarInfo {
	top := st.Top()
	if info, ok := top.Vars[name]; ok {
		// re-assignment in the same frame, not a fresh declaration
		return info
	}
	if st.reusesOuterLocal(name) && !st.Suppressed(SuppressUnused, name) {
		st.reporter.Report(diag.SevInfo, diag.InfoShadowOuter, line, name,
			"local variable "+name+" reuses a name from an outer scope")
	}
	info := &VarInfo{
		DeclaredType: declaredType,
		Inferred:     Unknown(),
		Line:         line,
		IsArg:        isArg,
	}
	top.Vars[name] = info
	return info
}

// reusesOuterLocal checks enclosing frames up to (and including) the
// nearest function boundary for an existing binding of name.
func (st *Stack) reusesOuterLocal(name string) bool {
	for i := len(st.frames) - 2; i >= 0; i-- {
		fr := st.frames[i]
		if fr.Kind == FrameGlobal || fr.Kind == FrameModule {
			// module-level bindings are not locals; reusing their names
			// inside a function is routine, not a shadow
			return false
		}
		if _, ok := fr.Vars[name]; ok {
			return true
		}
		if fr.Kind == FrameFunction {
			return false
		}
	}
	return false
}

// RecordAssignment updates the inferred type of name after an assignment
// observing observed. A transition between distinct, non-widening concrete
// types is reported as type instability unless suppressed per name.
func (st *Stack) RecordAssignment(name string, observed Type, line int) {
	info := st.Resolve(name)
	if info == nil {
		info = st.Declare(name, "", line, false)
	}
	if info.DeclaredType != "" {
		// explicit annotation wins; no instability tracking
		info.Inferred = observed
		return
	}
	prev := info.Inferred
	if prev.Tag == TypeConcrete && observed.Tag == TypeConcrete &&
		prev.Name != observed.Name && !Widens(prev, observed) {
		if !st.Suppressed(SuppressUnstable, name) {
			st.reporter.Report(diag.SevWarning, diag.WarnUnstableType, line, name,
				"variable "+name+" changes type from "+prev.Name+" to "+observed.Name)
		}
		info.Inferred = Top()
		return
	}
	if prev.Tag != TypeTop {
		info.Inferred = observed
	}
}

// Suppress registers a suppression key in the top frame. It stays active
// for the rest of that frame and is dropped at frame exit.
func (st *Stack) Suppress(kind SuppressKind, sym string) {
	st.Top().sup[supKey{kind: kind, sym: sym}] = struct{}{}
}

// Suppressed reports whether a suppression for kind+sym is in force in any
// open frame.
func (st *Stack) Suppressed(kind SuppressKind, sym string) bool {
	key := supKey{kind: kind, sym: sym}
	for i := len(st.frames) - 1; i >= 0; i-- {
		if _, ok := st.frames[i].sup[key]; ok {
			return true
		}
	}
	return false
}

// DeclareFunction registers a function name in the top frame.
func (st *Stack) DeclareFunction(name string) {
	st.Top().Funcs[name] = struct{}{}
}

// DeclareType registers a type's root symbol in the top frame.
func (st *Stack) DeclareType(root string) {
	st.Top().Types[root] = struct{}{}
}
