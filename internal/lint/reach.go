package lint

import (
	"strconv"
	"strings"

	"flint/internal/ast"
)

// Branch classifies a version-guarded conditional against the configured
// target version.
type Branch uint8

const (
	// BranchBoth means the test is not a recognized version guard;
	// analyze both branches (conservative default, no pruning).
	BranchBoth Branch = iota
	BranchLiveThen
	BranchLiveElse
)

func (b Branch) String() string {
	switch b {
	case BranchLiveThen:
		return "live-then"
	case BranchLiveElse:
		return "live-else"
	}
	return "both"
}

// Version is a parsed dotted version literal. Missing components are zero.
type Version struct {
	Major, Minor, Patch int
	ok                  bool
}

// ParseVersion parses "0.4", "0.4.0", "1.2.3-rc1" (suffix ignored).
func ParseVersion(text string) (Version, bool) {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, "-+"); i >= 0 {
		text = text[:i]
	}
	if text == "" {
		return Version{}, false
	}
	parts := strings.SplitN(text, ".", 3)
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], ok: true}, true
}

func (v Version) Valid() bool { return v.ok }

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	lhs := [3]int{v.Major, v.Minor, v.Patch}
	rhs := [3]int{o.Major, o.Minor, o.Patch}
	for i := 0; i < 3; i++ {
		if lhs[i] < rhs[i] {
			return -1
		}
		if lhs[i] > rhs[i] {
			return 1
		}
	}
	return 0
}

func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// Guard is a version comparison extracted from a conditional test.
type Guard struct {
	Op      string // one of == != < <= > >=
	Literal Version
}

// Holds evaluates the guard under a target version.
func (g Guard) Holds(target Version) bool {
	cmp := target.Compare(g.Literal)
	switch g.Op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}

// ExtractGuard recognizes a conditional test of exactly the reserved shape
//
//	VERSION <op> v"x.y.z"   or   v"x.y.z" <op> VERSION
//
// Any other test form yields no guard.
func ExtractGuard(test *ast.Node) (Guard, bool) {
	if test == nil || test.Kind != ast.KindCall || len(test.Args) != 2 {
		return Guard{}, false
	}
	op := test.Name
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
	default:
		return Guard{}, false
	}
	lhs, rhs := test.Args[0], test.Args[1]
	if isVersionIdent(lhs) && rhs.Kind == ast.KindVersion {
		lit, ok := ParseVersion(rhs.Str)
		if !ok {
			return Guard{}, false
		}
		return Guard{Op: op, Literal: lit}, true
	}
	if lhs.Kind == ast.KindVersion && isVersionIdent(rhs) {
		lit, ok := ParseVersion(lhs.Str)
		if !ok {
			return Guard{}, false
		}
		return Guard{Op: flipOp(op), Literal: lit}, true
	}
	return Guard{}, false
}

func isVersionIdent(n *ast.Node) bool {
	return n != nil && n.Kind == ast.KindIdent && n.Name == "VERSION"
}

func flipOp(op string) string {
	switch op {
	case "<":
		return ">"
	case "<=":
		return ">="
	case ">":
		return "<"
	case ">=":
		return "<="
	}
	return op
}

// Classify decides which branch of a conditional is live under target.
// Tests that are not version guards classify as BranchBoth.
func Classify(cond *ast.Node, target Version) Branch {
	guard, ok := ExtractGuard(cond)
	if !ok || !target.Valid() {
		return BranchBoth
	}
	if guard.Holds(target) {
		return BranchLiveThen
	}
	return BranchLiveElse
}
