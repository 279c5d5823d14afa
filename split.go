package refer

import "strings"

// SplitKind classifies a split query.
type SplitKind uint8

const (
	// SplitAny imposes no constraint.
	SplitAny SplitKind = iota
	// SplitExact matches "train" or "val" exactly.
	SplitExact
	// SplitTest matches every split containing "test".
	SplitTest
	// SplitSubset matches "testA", "testB" or "testC" by their final letter.
	SplitSubset
	// SplitCompound matches "testAB", "testBC" or "testAC" exactly.
	SplitCompound
)

func (k SplitKind) String() string {
	switch k {
	case SplitAny:
		return "any"
	case SplitExact:
		return "exact"
	case SplitTest:
		return "test"
	case SplitSubset:
		return "subset"
	case SplitCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// SplitQuery is a parsed split filter.
type SplitQuery struct {
	kind  SplitKind
	value string
}

// ParseSplit classifies s. Unrecognized names fail with *InvalidSplitError.
func ParseSplit(s string) (SplitQuery, error) {
	switch s {
	case "":
		return SplitQuery{kind: SplitAny}, nil
	case "train", "val":
		return SplitQuery{kind: SplitExact, value: s}, nil
	case "test":
		return SplitQuery{kind: SplitTest, value: s}, nil
	case "testA", "testB", "testC":
		return SplitQuery{kind: SplitSubset, value: s}, nil
	case "testAB", "testBC", "testAC":
		return SplitQuery{kind: SplitCompound, value: s}, nil
	default:
		return SplitQuery{}, &InvalidSplitError{Split: s}
	}
}

// Kind returns the query kind.
func (q SplitQuery) Kind() SplitKind { return q.kind }

// String returns the query as given.
func (q SplitQuery) String() string { return q.value }

// Matches reports whether a stored split value belongs to the query group.
func (q SplitQuery) Matches(split string) bool {
	switch q.kind {
	case SplitAny:
		return true
	case SplitExact, SplitCompound:
		return q.matchExact(split)
	case SplitTest:
		return q.matchTest(split)
	case SplitSubset:
		return q.matchSubset(split)
	default:
		return false
	}
}

func (q SplitQuery) matchExact(split string) bool {
	return split == q.value
}

func (q SplitQuery) matchTest(split string) bool {
	return strings.Contains(split, "test")
}

// matchSubset is a substring test on the final letter, so "testA" also
// matches a stored "testAB" (and any other value containing "A").
func (q SplitQuery) matchSubset(split string) bool {
	return strings.Contains(split, q.value[len(q.value)-1:])
}
