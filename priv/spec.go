package priv

import (
	"fmt"
	"strings"
)

// SetSpec is the parsed form of a ppriv(1)-style privilege set
// modification: the target set types, an operation, and a privilege
// specification in the format accepted by priv_str_to_set(3C), such as
// "basic,!proc_fork" or "all".
type SetSpec struct {
	// Sets are the process privilege sets the operation applies to, in
	// application order.
	Sets []SetType
	// Op is how Privs combines with each target set.
	Op Op
	// Privs is the textual privilege specification.
	Privs string
}

var setLetters = map[byte]SetType{
	'E': Effective,
	'I': Inheritable,
	'P': Permitted,
	'L': Limit,
}

// ParseSetSpec parses a privilege set modification of the form
//
//	[AEIPL...](+|-|=)privilege[,privilege...]
//
// The leading letters select the target sets; 'A', or no letters at
// all, selects all four. '+' turns the listed privileges on, '-' turns
// them off, and '=' replaces the set contents. The privilege list
// itself is validated by the system when the spec is applied, so names
// like "basic", "all", "zone" and negations like "!proc_fork" pass
// through untouched.
//
// Apply modifies the sets in the order given. Raising privileges in the
// effective set requires the permitted set to be raised first, so specs
// that grow both should name P before E.
func ParseSetSpec(spec string) (*SetSpec, error) {
	i := strings.IndexAny(spec, "+-=")
	if i < 0 {
		return nil, fmt.Errorf("invalid privilege spec %q: no operation, want one of + - =", spec)
	}
	res := &SetSpec{Privs: spec[i+1:]}
	switch spec[i] {
	case '+':
		res.Op = OpOn
	case '-':
		res.Op = OpOff
	case '=':
		res.Op = OpSet
	}

	seen := make(map[SetType]bool)
	for j := 0; j < i; j++ {
		c := spec[j]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'A' {
			for _, st := range SetTypes() {
				if !seen[st] {
					seen[st] = true
					res.Sets = append(res.Sets, st)
				}
			}
			continue
		}
		st, ok := setLetters[c]
		if !ok {
			return nil, fmt.Errorf("invalid privilege spec %q: unknown set letter %q", spec, string(spec[j]))
		}
		if !seen[st] {
			seen[st] = true
			res.Sets = append(res.Sets, st)
		}
	}
	if len(res.Sets) == 0 {
		res.Sets = SetTypes()
	}

	if res.Privs == "" {
		return nil, fmt.Errorf("invalid privilege spec %q: empty privilege list", spec)
	}
	for _, name := range strings.Split(res.Privs, ",") {
		if name == "" {
			return nil, fmt.Errorf("invalid privilege spec %q: empty privilege name", spec)
		}
	}
	return res, nil
}

// String renders the spec back in the form ParseSetSpec accepts.
func (sp *SetSpec) String() string {
	var b strings.Builder
	for _, st := range sp.Sets {
		b.WriteByte(st[0])
	}
	switch sp.Op {
	case OpOn:
		b.WriteByte('+')
	case OpOff:
		b.WriteByte('-')
	case OpSet:
		b.WriteByte('=')
	}
	b.WriteString(sp.Privs)
	return b.String()
}
