package priv

import "fmt"

// SetType names one of the privilege sets a process carries. The values
// are the set names understood by setppriv(2) and priv_getsetbyname(3C).
type SetType string

const (
	// Effective is the set of privileges currently in effect.
	Effective SetType = "Effective"
	// Inheritable is the set of privileges that comes into effect on
	// exec.
	Inheritable SetType = "Inheritable"
	// Permitted is the set of privileges a process can put into its
	// effective set without restriction.
	Permitted SetType = "Permitted"
	// Limit is the upper bound of privileges the process and its
	// offspring can obtain.
	Limit SetType = "Limit"
)

// SetTypes returns the four standard privilege sets in set number
// order. SetNames reports what the running kernel implements, which may
// include more.
func SetTypes() []SetType {
	return []SetType{Effective, Inheritable, Permitted, Limit}
}

// Op selects how Apply combines a Set with a process privilege set. The
// values match priv_op_t of <sys/priv.h>.
type Op int

const (
	// OpOn turns on the privileges named in the set (PRIV_ON).
	OpOn Op = iota
	// OpOff turns off the privileges named in the set (PRIV_OFF).
	OpOff
	// OpSet replaces the target set with the given set (PRIV_SET).
	OpSet
)

// String implements fmt.Stringer.
func (o Op) String() string {
	switch o {
	case OpOn:
		return "on"
	case OpOff:
		return "off"
	case OpSet:
		return "set"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Flag is a per-process privilege flag, read with GetFlag and written
// with SetFlag. The values match <sys/priv.h>. A Flag value may also
// hold a combination of flags, as found in a decoded /proc record.
type Flag uint

const (
	// FlagDebug makes the kernel report privilege failures of the
	// process on its controlling terminal (PRIV_DEBUG).
	FlagDebug Flag = 0x0001
	// FlagAware marks the process as privilege-aware, disabling the
	// uid 0 special case (PRIV_AWARE).
	FlagAware Flag = 0x0002
	// FlagAwareInherit keeps privilege awareness across exec
	// (PRIV_AWARE_INHERIT). It cannot be modified directly.
	FlagAwareInherit Flag = 0x0004
	// FlagMacAware lets the process bypass multi-level directory
	// restrictions under Trusted Extensions (NET_MAC_AWARE).
	FlagMacAware Flag = 0x0010
	// FlagMacAwareInherit propagates FlagMacAware across exec
	// (NET_MAC_AWARE_INHERIT).
	FlagMacAwareInherit Flag = 0x0020
	// FlagXPolicy enables extended policy enforcement (PRIV_XPOLICY).
	FlagXPolicy Flag = 0x0080
	// FlagPFExec requests profile-based execution on the next exec, as
	// pfexec(1) does (PRIV_PFEXEC).
	FlagPFExec Flag = 0x0100
	// FlagAwareReset resets privilege awareness on the next uid-setting
	// exec (PRIV_AWARE_RESET).
	FlagAwareReset Flag = 0x0200
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagDebug, "PRIV_DEBUG"},
	{FlagAware, "PRIV_AWARE"},
	{FlagAwareInherit, "PRIV_AWARE_INHERIT"},
	{FlagMacAware, "NET_MAC_AWARE"},
	{FlagMacAwareInherit, "NET_MAC_AWARE_INHERIT"},
	{FlagXPolicy, "PRIV_XPOLICY"},
	{FlagPFExec, "PRIV_PFEXEC"},
	{FlagAwareReset, "PRIV_AWARE_RESET"},
}

// KnownFlags returns the per-process privilege flags this package knows,
// in ascending bit order.
func KnownFlags() []Flag {
	res := make([]Flag, 0, len(flagNames))
	for _, fn := range flagNames {
		res = append(res, fn.flag)
	}
	return res
}

// String renders the flag, or combination of flags, under the names
// <sys/priv.h> gives them. Unknown bits are rendered in hex.
func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var (
		out  string
		rest = f
	)
	for _, fn := range flagNames {
		if rest&fn.flag == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += fn.name
		rest &^= fn.flag
	}
	if rest != 0 {
		if out != "" {
			out += "|"
		}
		out += fmt.Sprintf("0x%x", uint(rest))
	}
	return out
}

// StrFormat selects the rendering style of Set.Format, matching the
// flag argument of priv_set_to_str(3C).
type StrFormat int

const (
	// StrPortable folds the basic set into the "basic" keyword where
	// applicable (PRIV_STR_PORT).
	StrPortable StrFormat = iota
	// StrLiteral spells out every privilege by name (PRIV_STR_LIT).
	StrLiteral
	// StrShort produces the shortest representation, using "all",
	// "zone" and negation where that helps (PRIV_STR_SHORT).
	StrShort
)

// ImplInfo describes the privilege implementation of the running
// system, from getprivimplinfo(2).
type ImplInfo struct {
	// Flags holds implementation details of the privilege subsystem.
	Flags uint
	// NSets is the number of privilege sets each process carries.
	NSets int
	// SetSize is the size of each set, in 32-bit words.
	SetSize int
	// NPrivs is the upper bound of valid privilege numbers.
	NPrivs int
	// InfoSize is the size of the per-process additional information.
	InfoSize int
	// GlobalInfoSize is the size of the global additional information.
	GlobalInfoSize int
}
