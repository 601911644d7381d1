//go:build solaris && cgo

package priv

/*
#include <stdlib.h>
#include <priv.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Set owns a native priv_set_t. The native structure is modified in
// place, so mutators hold the handle's write lock for the duration of
// the call and queries hold the read lock. Two goroutines must not
// mutate the same pair of Sets through each other at the same time.
//
// The zero value is not usable: construct Sets with NewEmptySet and
// friends, and free the native allocation with Release when done. A
// finalizer reclaims sets that are garbage collected unreleased.
type Set struct {
	mu    sync.RWMutex
	ptr   *C.priv_set_t
	valid bool
}

func newSet() (*Set, error) {
	ptr, err := C.priv_allocset()
	if ptr == nil {
		if err == nil {
			err = unix.ENOMEM
		}
		return nil, os.NewSyscallError("priv_allocset", err)
	}
	s := &Set{ptr: ptr, valid: true}
	runtime.SetFinalizer(s, (*Set).Release)
	return s, nil
}

// sysErr wraps a failing native call. The calls report failure through
// their return value; errno can legitimately be unset, so default it
// rather than returning a nil error.
func sysErr(call string, err error) error {
	if err == nil {
		err = unix.EINVAL
	}
	return os.NewSyscallError(call, err)
}

// nameErr converts a failing by-name lookup into ErrUnknownPrivilege.
// The native calls report an unrecognized name as EINVAL.
func nameErr(call, name string, err error) error {
	if err == nil || errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("%s %q: %w", call, name, ErrUnknownPrivilege)
	}
	return os.NewSyscallError(call, err)
}

// NewEmptySet allocates a Set containing no privileges.
func NewEmptySet() (*Set, error) {
	s, err := newSet()
	if err != nil {
		return nil, err
	}
	C.priv_emptyset(s.ptr)
	return s, nil
}

// NewBasicSet allocates a Set holding the basic privileges, the ones
// unprivileged processes are accustomed to having.
func NewBasicSet() (*Set, error) {
	s, err := newSet()
	if err != nil {
		return nil, err
	}
	C.priv_basicset(s.ptr)
	return s, nil
}

// NewFullSet allocates a Set holding every privilege the running system
// implements.
func NewFullSet() (*Set, error) {
	s, err := newSet()
	if err != nil {
		return nil, err
	}
	C.priv_fillset(s.ptr)
	return s, nil
}

// NewSet allocates a Set holding exactly the given privileges. On
// failure the partial allocation is released before returning.
func NewSet(privs ...Privilege) (*Set, error) {
	s, err := NewEmptySet()
	if err != nil {
		return nil, err
	}
	for _, p := range privs {
		if err := s.Add(p); err != nil {
			s.Release()
			return nil, err
		}
	}
	return s, nil
}

// Release frees the native privilege set. It is safe to call more than
// once; every other use of the Set after Release fails with
// ErrReleased.
func (s *Set) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return
	}
	s.valid = false
	runtime.SetFinalizer(s, nil)
	C.priv_freeset(s.ptr)
	s.ptr = nil
}

// Add adds the named privilege to the set.
func (s *Set) Add(p Privilege) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	if ret, err := C.priv_addset(s.ptr, cp); ret != 0 {
		return nameErr("priv_addset", string(p), err)
	}
	return nil
}

// Delete removes the named privilege from the set.
func (s *Set) Delete(p Privilege) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	if ret, err := C.priv_delset(s.ptr, cp); ret != 0 {
		return nameErr("priv_delset", string(p), err)
	}
	return nil
}

// Clear removes every privilege from the set.
func (s *Set) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	C.priv_emptyset(s.ptr)
	return nil
}

// Fill replaces the contents of the set with all privileges.
func (s *Set) Fill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	C.priv_fillset(s.ptr)
	return nil
}

// Basic replaces the contents of the set with the basic privilege set.
func (s *Set) Basic() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	C.priv_basicset(s.ptr)
	return nil
}

// CopyFrom replaces the contents of the set with those of src.
func (s *Set) CopyFrom(src *Set) error {
	if s == src {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.valid {
			return ErrReleased
		}
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	src.mu.RLock()
	defer src.mu.RUnlock()
	if !src.valid {
		return ErrReleased
	}
	C.priv_copyset(src.ptr, s.ptr)
	return nil
}

// Union adds every privilege in other to the set.
func (s *Set) Union(other *Set) error {
	if s == other {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.valid {
			return ErrReleased
		}
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	if !other.valid {
		return ErrReleased
	}
	C.priv_union(other.ptr, s.ptr)
	return nil
}

// Intersect removes every privilege not also present in other.
func (s *Set) Intersect(other *Set) error {
	if s == other {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.valid {
			return ErrReleased
		}
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	if !other.valid {
		return ErrReleased
	}
	C.priv_intersect(other.ptr, s.ptr)
	return nil
}

// Inverse replaces the set with its complement.
func (s *Set) Inverse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return ErrReleased
	}
	C.priv_inverse(s.ptr)
	return nil
}

// Clone allocates a new Set with the same contents.
func (s *Set) Clone() (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return nil, ErrReleased
	}
	c, err := newSet()
	if err != nil {
		return nil, err
	}
	C.priv_copyset(s.ptr, c.ptr)
	return c, nil
}

// IsMember reports whether the named privilege is a member of the set.
func (s *Set) IsMember(p Privilege) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return false, ErrReleased
	}
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	return C.priv_ismember(s.ptr, cp) != 0, nil
}

// IsEmpty reports whether the set contains no privileges.
func (s *Set) IsEmpty() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return false, ErrReleased
	}
	return C.priv_isemptyset(s.ptr) != 0, nil
}

// IsFull reports whether the set contains every privilege.
func (s *Set) IsFull() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return false, ErrReleased
	}
	return C.priv_isfullset(s.ptr) != 0, nil
}

// Equal reports whether the set and other hold exactly the same
// privileges.
func (s *Set) Equal(other *Set) (bool, error) {
	if s == other {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.valid {
			return false, ErrReleased
		}
		return true, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return false, ErrReleased
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	if !other.valid {
		return false, ErrReleased
	}
	return C.priv_isequalset(s.ptr, other.ptr) != 0, nil
}

// IsSubset reports whether every privilege in the set is also present
// in other.
func (s *Set) IsSubset(other *Set) (bool, error) {
	if s == other {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.valid {
			return false, ErrReleased
		}
		return true, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return false, ErrReleased
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	if !other.valid {
		return false, ErrReleased
	}
	return C.priv_issubset(s.ptr, other.ptr) != 0, nil
}

// Privileges returns the members of the set, in privilege number order.
func (s *Set) Privileges() ([]Privilege, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return nil, ErrReleased
	}
	var res []Privilege
	for i := 0; ; i++ {
		// priv_getbynum returns a pointer into the static name table;
		// it must not be freed.
		name := C.priv_getbynum(C.int(i))
		if name == nil {
			break
		}
		if C.priv_ismember(s.ptr, name) != 0 {
			res = append(res, Privilege(C.GoString(name)))
		}
	}
	return res, nil
}
