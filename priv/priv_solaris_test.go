//go:build solaris && cgo

package priv

import (
	"errors"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func emptySet(t *testing.T) *Set {
	t.Helper()
	s, err := NewEmptySet()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	return s
}

func basicSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewBasicSet()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	return s
}

func fullSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewFullSet()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	return s
}

// saveEffective snapshots the effective set and restores it when the
// test finishes, so privilege-dropping tests cannot poison the rest of
// the run. Only the effective set may be modified under it: dropping
// from the permitted set cannot be undone.
func saveEffective(t *testing.T) {
	t.Helper()
	orig, err := Current(Effective)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := Apply(OpSet, Effective, orig); err != nil {
			t.Errorf("restore effective set: %v", err)
		}
		orig.Release()
	})
}

func TestEmptySet(t *testing.T) {
	s := emptySet(t)
	empty, err := s.IsEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if !empty {
		t.Fatal("new empty set is not empty")
	}
	for _, p := range KnownPrivileges() {
		member, err := s.IsMember(p)
		if err != nil {
			t.Fatal(err)
		}
		if member {
			t.Errorf("empty set contains %q", p)
		}
	}
}

func TestBasicSet(t *testing.T) {
	s := basicSet(t)
	if empty, _ := s.IsEmpty(); empty {
		t.Fatal("basic set is empty")
	}
	for _, p := range BasicPrivileges() {
		member, err := s.IsMember(p)
		if err != nil {
			t.Fatal(err)
		}
		if !member {
			t.Errorf("basic set should contain %q but does not", p)
		}
	}
	if member, _ := s.IsMember(SysAdmin); member {
		t.Error("basic set should not contain sys_admin")
	}

	fromMethod := emptySet(t)
	if err := fromMethod.Basic(); err != nil {
		t.Fatal(err)
	}
	if eq, _ := fromMethod.Equal(s); !eq {
		t.Error("Basic() disagrees with NewBasicSet()")
	}
}

func TestAddDelete(t *testing.T) {
	s := emptySet(t)
	if err := s.Add(ProcFork); err != nil {
		t.Fatal(err)
	}
	if member, _ := s.IsMember(ProcFork); !member {
		t.Fatal("proc_fork not present after Add")
	}
	// Adding a privilege twice is not an error.
	if err := s.Add(ProcFork); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ProcFork); err != nil {
		t.Fatal(err)
	}
	if member, _ := s.IsMember(ProcFork); member {
		t.Fatal("proc_fork still present after Delete")
	}
	if err := s.Delete(ProcFork); err != nil {
		t.Fatal(err)
	}
	if empty, _ := s.IsEmpty(); !empty {
		t.Fatal("set not empty after deleting its only member")
	}
}

func TestUnknownName(t *testing.T) {
	s := emptySet(t)
	err := s.Add("no_such_privilege")
	if !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("Add error = %v, want ErrUnknownPrivilege", err)
	}
	err = s.Delete("no_such_privilege")
	if !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("Delete error = %v, want ErrUnknownPrivilege", err)
	}
	if _, err := NewSet(ProcFork, "no_such_privilege"); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("NewSet error = %v, want ErrUnknownPrivilege", err)
	}
}

func TestSetAlgebra(t *testing.T) {
	empty := emptySet(t)
	basic := basicSet(t)
	full := fullSet(t)

	if full2, _ := full.IsFull(); !full2 {
		t.Fatal("full set does not report IsFull")
	}
	if sub, _ := empty.IsSubset(basic); !sub {
		t.Error("empty set should be a subset of basic")
	}
	if sub, _ := basic.IsSubset(full); !sub {
		t.Error("basic set should be a subset of full")
	}
	if sub, _ := full.IsSubset(basic); sub {
		t.Error("full set must not be a subset of basic")
	}

	u := emptySet(t)
	if err := u.Union(basic); err != nil {
		t.Fatal(err)
	}
	if eq, _ := u.Equal(basic); !eq {
		t.Error("union of empty and basic should equal basic")
	}

	i := fullSet(t)
	if err := i.Intersect(basic); err != nil {
		t.Fatal(err)
	}
	if eq, _ := i.Equal(basic); !eq {
		t.Error("intersection of full and basic should equal basic")
	}

	inv := basicSet(t)
	if err := inv.Inverse(); err != nil {
		t.Fatal(err)
	}
	if member, _ := inv.IsMember(ProcFork); member {
		t.Error("complement of basic still contains proc_fork")
	}
	if member, _ := inv.IsMember(SysAdmin); !member {
		t.Error("complement of basic should contain sys_admin")
	}
	if err := inv.Inverse(); err != nil {
		t.Fatal(err)
	}
	if eq, _ := inv.Equal(basic); !eq {
		t.Error("double inverse should restore the basic set")
	}
}

func TestNewSetPrivileges(t *testing.T) {
	s, err := NewSet(ProcFork, DtraceUser)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()
	privs, err := s.Privileges()
	if err != nil {
		t.Fatal(err)
	}
	if len(privs) != 2 {
		t.Fatalf("Privileges() = %v, want two entries", privs)
	}
	seen := map[Privilege]bool{}
	for _, p := range privs {
		seen[p] = true
	}
	if !seen[ProcFork] || !seen[DtraceUser] {
		t.Errorf("Privileges() = %v, want proc_fork and dtrace_user", privs)
	}

	none, err := NewSet()
	if err != nil {
		t.Fatal(err)
	}
	defer none.Release()
	if empty, _ := none.IsEmpty(); !empty {
		t.Error("NewSet() with no arguments should be empty")
	}
}

func TestCloneCopy(t *testing.T) {
	basic := basicSet(t)
	c, err := basic.Clone()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Release()
	if eq, _ := c.Equal(basic); !eq {
		t.Fatal("clone differs from its source")
	}
	if err := c.Delete(ProcFork); err != nil {
		t.Fatal(err)
	}
	if eq, _ := c.Equal(basic); eq {
		t.Fatal("mutating the clone changed the source")
	}
	if err := c.CopyFrom(basic); err != nil {
		t.Fatal(err)
	}
	if eq, _ := c.Equal(basic); !eq {
		t.Fatal("CopyFrom did not restore equality")
	}
}

func TestReleased(t *testing.T) {
	s, err := NewBasicSet()
	if err != nil {
		t.Fatal(err)
	}
	s.Release()
	s.Release()

	if err := s.Add(ProcFork); !errors.Is(err, ErrReleased) {
		t.Errorf("Add error = %v, want ErrReleased", err)
	}
	if _, err := s.IsEmpty(); !errors.Is(err, ErrReleased) {
		t.Errorf("IsEmpty error = %v, want ErrReleased", err)
	}
	if _, err := s.Clone(); !errors.Is(err, ErrReleased) {
		t.Errorf("Clone error = %v, want ErrReleased", err)
	}
	if _, err := s.Format(StrPortable); !errors.Is(err, ErrReleased) {
		t.Errorf("Format error = %v, want ErrReleased", err)
	}
	if got := s.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	if err := Apply(OpSet, Effective, s); !errors.Is(err, ErrReleased) {
		t.Errorf("Apply error = %v, want ErrReleased", err)
	}
	live := emptySet(t)
	if err := live.CopyFrom(s); !errors.Is(err, ErrReleased) {
		t.Errorf("CopyFrom error = %v, want ErrReleased", err)
	}
}

func TestFormatParse(t *testing.T) {
	basic := basicSet(t)
	str, err := basic.Format(StrPortable)
	if err != nil {
		t.Fatal(err)
	}
	if str != "basic" {
		t.Errorf("portable format of the basic set = %q, want \"basic\"", str)
	}
	lit, err := basic.Format(StrLiteral)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(lit, string(ProcFork)) {
		t.Errorf("literal format %q does not spell out proc_fork", lit)
	}

	parsed, err := ParseSet(str)
	if err != nil {
		t.Fatal(err)
	}
	defer parsed.Release()
	if eq, _ := parsed.Equal(basic); !eq {
		t.Error("parsing the formatted set did not round trip")
	}

	noFork, err := ParseSet("basic,!proc_fork")
	if err != nil {
		t.Fatal(err)
	}
	defer noFork.Release()
	if member, _ := noFork.IsMember(ProcFork); member {
		t.Error("negation did not remove proc_fork")
	}
	if member, _ := noFork.IsMember(ProcExec); !member {
		t.Error("negation removed more than proc_fork")
	}

	all, err := ParseSet("all")
	if err != nil {
		t.Fatal(err)
	}
	defer all.Release()
	if full, _ := all.IsFull(); !full {
		t.Error(`"all" did not parse to the full set`)
	}

	none, err := ParseSet("none")
	if err != nil {
		t.Fatal(err)
	}
	defer none.Release()
	if empty, _ := none.IsEmpty(); !empty {
		t.Error(`"none" did not parse to the empty set`)
	}

	if _, err := ParseSet("basic,not_a_priv"); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("ParseSet error = %v, want ErrUnknownPrivilege", err)
	} else if !strings.Contains(err.Error(), "not_a_priv") {
		t.Errorf("ParseSet error %q does not name the bad privilege", err)
	}
}

func TestCurrentApply(t *testing.T) {
	saveEffective(t)

	cur, err := Current(Effective)
	if err != nil {
		t.Fatal(err)
	}
	defer cur.Release()
	if member, _ := cur.IsMember(ProcFork); !member {
		t.Skip("proc_fork not in effect; cannot exercise a drop")
	}

	want, err := cur.Clone()
	if err != nil {
		t.Fatal(err)
	}
	defer want.Release()
	if err := want.Delete(ProcFork); err != nil {
		t.Fatal(err)
	}
	if err := Apply(OpSet, Effective, want); err != nil {
		t.Fatal(err)
	}

	again, err := Current(Effective)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Release()
	if eq, _ := again.Equal(want); !eq {
		t.Error("effective set does not match what was applied")
	}
	if InEffect(ProcFork) {
		t.Error("proc_fork still in effect after the drop")
	}

	if _, err := Current(SetType("Bogus")); err == nil {
		t.Error("Current of a bogus set name should fail")
	}
}

func TestDropForkExec(t *testing.T) {
	saveEffective(t)

	if _, err := exec.Command("ls").Output(); err != nil {
		t.Skipf("cannot run ls before the drop: %v", err)
	}

	s := basicSet(t)
	if err := s.Delete(ProcFork); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ProcExec); err != nil {
		t.Fatal(err)
	}
	if err := Apply(OpSet, Effective, s); err != nil {
		t.Fatal(err)
	}

	_, err := exec.Command("ls").Output()
	if err == nil {
		t.Fatal("ls ran without proc_fork and proc_exec")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("ls error = %v, want a permission error", err)
	}
}

func TestApplyPermission(t *testing.T) {
	saveEffective(t)

	full := fullSet(t)
	err := Apply(OpOn, Effective, full)
	if err == nil {
		t.Skip("process is allowed to raise to the full set")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("raising beyond permitted: error = %v, want a permission error", err)
	}
}

func TestSetSpecApplyProcess(t *testing.T) {
	saveEffective(t)

	if !InEffect(ProcInfo) {
		t.Skip("proc_info not in effect")
	}
	drop, err := ParseSetSpec("E-proc_info")
	if err != nil {
		t.Fatal(err)
	}
	if err := drop.Apply(); err != nil {
		t.Fatal(err)
	}
	if InEffect(ProcInfo) {
		t.Fatal("proc_info still in effect after E-proc_info")
	}

	raise, err := ParseSetSpec("E+proc_info")
	if err != nil {
		t.Fatal(err)
	}
	if err := raise.Apply(); err != nil {
		t.Fatal(err)
	}
	if !InEffect(ProcInfo) {
		t.Error("proc_info not back in effect after E+proc_info")
	}

	bad, err := ParseSetSpec("E+made_up_priv")
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.Apply(); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("applying a bogus privilege: error = %v, want ErrUnknownPrivilege", err)
	}
}

func TestImplementation(t *testing.T) {
	info, err := Implementation()
	if err != nil {
		t.Fatal(err)
	}
	if info.NSets < 4 {
		t.Errorf("NSets = %d, want at least 4", info.NSets)
	}
	if info.SetSize < 1 {
		t.Errorf("SetSize = %d, want at least 1", info.SetSize)
	}
	if info.NPrivs < 1 {
		t.Errorf("NPrivs = %d, want at least 1", info.NPrivs)
	}

	names, err := Names()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 {
		t.Fatal("Names() returned nothing")
	}
	if len(names) > info.NPrivs {
		t.Errorf("Names() returned %d privileges, more than NPrivs %d", len(names), info.NPrivs)
	}

	sets, err := SetNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != info.NSets {
		t.Errorf("SetNames() returned %d sets, want %d", len(sets), info.NSets)
	}
	for _, want := range SetTypes() {
		found := false
		for _, st := range sets {
			if st == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("SetNames() lacks %q", want)
		}
	}
}

func TestNumbers(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatal(err)
	}
	for i, name := range names {
		n, err := Number(name)
		if err != nil {
			t.Fatal(err)
		}
		if n != i {
			t.Errorf("Number(%q) = %d, want %d", name, n, i)
		}
		back, err := ByNumber(i)
		if err != nil {
			t.Fatal(err)
		}
		if back != name {
			t.Errorf("ByNumber(%d) = %q, want %q", i, back, name)
		}
	}

	// The native lookup ignores case.
	lower, err := Number(ProcFork)
	if err != nil {
		t.Fatal(err)
	}
	upper, err := Number("PROC_FORK")
	if err != nil {
		t.Fatal(err)
	}
	if lower != upper {
		t.Errorf("case-insensitive lookup disagrees: %d vs %d", lower, upper)
	}

	if _, err := Number("bogus_priv"); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("Number error = %v, want ErrUnknownPrivilege", err)
	}
	if _, err := ByNumber(-1); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("ByNumber(-1) error = %v, want ErrUnknownPrivilege", err)
	}

	if n, err := SetNumber(Effective); err != nil || n != 0 {
		t.Errorf("SetNumber(Effective) = %d, %v, want 0", n, err)
	}
	if n, err := SetNumber(Limit); err != nil || n != 3 {
		t.Errorf("SetNumber(Limit) = %d, %v, want 3", n, err)
	}
	if _, err := SetNumber(SetType("Bogus")); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("SetNumber error = %v, want ErrUnknownPrivilege", err)
	}
}

func TestDescription(t *testing.T) {
	text, err := Description(ProcFork)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.ToLower(text), "fork") {
		t.Errorf("description of proc_fork does not mention fork: %q", text)
	}
	if _, err := Description("bogus_priv"); !errors.Is(err, ErrUnknownPrivilege) {
		t.Errorf("Description error = %v, want ErrUnknownPrivilege", err)
	}
}

func TestFlags(t *testing.T) {
	v, err := GetFlag(FlagAware)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 && v != 1 {
		t.Errorf("GetFlag(FlagAware) = %d, want 0 or 1", v)
	}

	orig, err := GetFlag(FlagDebug)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := SetFlag(FlagDebug, orig); err != nil {
			t.Errorf("restore PRIV_DEBUG: %v", err)
		}
	})
	if err := SetFlag(FlagDebug, 1); err != nil {
		t.Fatal(err)
	}
	if v, _ := GetFlag(FlagDebug); v != 1 {
		t.Errorf("PRIV_DEBUG = %d after setting it, want 1", v)
	}

	if _, err := GetFlag(Flag(0x40000000)); err == nil {
		t.Error("GetFlag of an invalid flag should fail")
	}
}

func TestReadProcessSelf(t *testing.T) {
	pp, err := ReadProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if pp.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", pp.PID, os.Getpid())
	}

	eff, ok := pp.Sets[Effective]
	if !ok {
		t.Fatal("record lacks the effective set")
	}
	cur, err := Current(Effective)
	if err != nil {
		t.Fatal(err)
	}
	defer cur.Release()
	want, err := cur.Privileges()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(eff, want) {
		t.Errorf("effective set from /proc = %v, from getppriv = %v", eff, want)
	}

	aware, err := GetFlag(FlagAware)
	if err != nil {
		t.Fatal(err)
	}
	if got := pp.Flags&FlagAware != 0; got != (aware == 1) {
		t.Errorf("PRIV_AWARE from /proc = %v, from getpflags = %v", got, aware == 1)
	}

	if _, err := ReadProcess(1 << 30); err == nil {
		t.Error("ReadProcess of an absent pid should fail")
	}
}

func TestConcurrentQueries(t *testing.T) {
	s := basicSet(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if member, err := s.IsMember(ProcFork); err != nil || !member {
					t.Errorf("IsMember = %v, %v", member, err)
					return
				}
				if _, err := s.Privileges(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
