package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a comparison operator accepted by the filter builders. Only the
// members below are rendered into SQL; anything else is rejected at build
// time, so caller input can never smuggle SQL into a query.
type Op string

const (
	OpEq   Op = "="
	OpNe   Op = "!="
	OpLt   Op = "<"
	OpGt   Op = ">"
	OpLe   Op = "<="
	OpGe   Op = ">="
	OpLike Op = "LIKE"
)

var validOps = map[Op]bool{
	OpEq: true, OpNe: true, OpLt: true, OpGt: true,
	OpLe: true, OpGe: true, OpLike: true,
}

// ParseOp maps an API string to an Op
func ParseOp(s string) (Op, bool) {
	op := Op(strings.ToUpper(s))
	if s == "" {
		return OpEq, true
	}
	return op, validOps[op]
}

type condKind int

const (
	condCompare condKind = iota
	condNull
	condSubquery
)

type cond struct {
	kind   condKind
	column string
	op     Op
	value  any
	// subquery fragment with exactly one placeholder, used for
	// membership predicates (cast, collection, genre)
	sub string
}

// filter accumulates conditions for one entity view. Invalid operators are
// remembered and reported once at build time.
type filter struct {
	conds []cond
	err   error
}

func (f *filter) compare(column string, op Op, value any) {
	if !validOps[op] {
		f.err = fmt.Errorf("store: invalid operator %q for column %s", op, column)
		return
	}
	f.conds = append(f.conds, cond{kind: condCompare, column: column, op: op, value: value})
}

func (f *filter) null(column string) {
	f.conds = append(f.conds, cond{kind: condNull, column: column})
}

func (f *filter) subquery(sub string, value any) {
	f.conds = append(f.conds, cond{kind: condSubquery, sub: sub, value: value})
}

// build renders the WHERE fragment (without the WHERE keyword) and its bind
// parameters. An empty filter yields an empty fragment.
func (f *filter) build() (string, []any, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	var parts []string
	var args []any
	for _, c := range f.conds {
		switch c.kind {
		case condNull:
			parts = append(parts, c.column+" IS NULL")
		case condSubquery:
			parts = append(parts, c.sub)
			args = append(args, c.value)
		default:
			parts = append(parts, fmt.Sprintf("%s %s ?", c.column, c.op))
			args = append(args, c.value)
		}
	}
	return strings.Join(parts, " AND "), args, nil
}

// SplitConcat splits a GROUP_CONCAT aggregate back into its elements. An
// empty or NULL aggregate yields an empty slice, never an error.
func SplitConcat(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// SplitConcatIDs splits a GROUP_CONCAT aggregate of integer IDs. Elements
// that do not parse are dropped.
func SplitConcatIDs(s string) []uint64 {
	parts := SplitConcat(s)
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
