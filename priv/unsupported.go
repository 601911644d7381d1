//go:build !solaris || !cgo

package priv

// Set is an inert handle on systems without illumos privilege sets.
// Constructors fail with ErrUnsupported, so none of the methods can be
// reached with a live Set.
type Set struct{}

// NewEmptySet fails with ErrUnsupported on this platform.
func NewEmptySet() (*Set, error) { return nil, ErrUnsupported }

// NewBasicSet fails with ErrUnsupported on this platform.
func NewBasicSet() (*Set, error) { return nil, ErrUnsupported }

// NewFullSet fails with ErrUnsupported on this platform.
func NewFullSet() (*Set, error) { return nil, ErrUnsupported }

// NewSet fails with ErrUnsupported on this platform.
func NewSet(privs ...Privilege) (*Set, error) { return nil, ErrUnsupported }

// ParseSet fails with ErrUnsupported on this platform. ParseSetSpec
// still works: only the privilege list inside a spec needs the system's
// parser.
func ParseSet(spec string) (*Set, error) { return nil, ErrUnsupported }

// Release is a no-op on this platform.
func (s *Set) Release() {}

// String renders the empty string on this platform.
func (s *Set) String() string { return "" }

func (s *Set) Add(p Privilege) error      { return ErrUnsupported }
func (s *Set) Delete(p Privilege) error   { return ErrUnsupported }
func (s *Set) Clear() error               { return ErrUnsupported }
func (s *Set) Fill() error                { return ErrUnsupported }
func (s *Set) Basic() error               { return ErrUnsupported }
func (s *Set) CopyFrom(src *Set) error    { return ErrUnsupported }
func (s *Set) Union(other *Set) error     { return ErrUnsupported }
func (s *Set) Intersect(other *Set) error { return ErrUnsupported }
func (s *Set) Inverse() error             { return ErrUnsupported }

func (s *Set) Clone() (*Set, error)               { return nil, ErrUnsupported }
func (s *Set) IsMember(p Privilege) (bool, error) { return false, ErrUnsupported }
func (s *Set) IsEmpty() (bool, error)             { return false, ErrUnsupported }
func (s *Set) IsFull() (bool, error)              { return false, ErrUnsupported }
func (s *Set) Equal(other *Set) (bool, error)     { return false, ErrUnsupported }
func (s *Set) IsSubset(other *Set) (bool, error)  { return false, ErrUnsupported }
func (s *Set) Privileges() ([]Privilege, error)   { return nil, ErrUnsupported }
func (s *Set) Format(style StrFormat) (string, error) {
	return "", ErrUnsupported
}

// Apply fails with ErrUnsupported on this platform.
func Apply(op Op, which SetType, s *Set) error { return ErrUnsupported }

// Current fails with ErrUnsupported on this platform.
func Current(which SetType) (*Set, error) { return nil, ErrUnsupported }

// InEffect reports false on this platform.
func InEffect(p Privilege) bool { return false }

func SetFlag(f Flag, val uint) error       { return ErrUnsupported }
func GetFlag(f Flag) (uint, error)         { return 0, ErrUnsupported }
func Implementation() (ImplInfo, error)    { return ImplInfo{}, ErrUnsupported }
func Names() ([]Privilege, error)          { return nil, ErrUnsupported }
func SetNames() ([]SetType, error)         { return nil, ErrUnsupported }
func Number(p Privilege) (int, error)      { return -1, ErrUnsupported }
func ByNumber(n int) (Privilege, error)    { return "", ErrUnsupported }
func SetNumber(which SetType) (int, error) { return -1, ErrUnsupported }
func Description(p Privilege) (string, error) {
	return "", ErrUnsupported
}

// Apply fails with ErrUnsupported on this platform.
func (sp *SetSpec) Apply() error { return ErrUnsupported }

// ReadProcess fails with ErrUnsupported on this platform.
func ReadProcess(pid int) (*ProcessPrivileges, error) { return nil, ErrUnsupported }
