//go:build solaris && cgo

package priv

/*
#include <stdlib.h>
#include <priv.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Format renders the set as a comma separated string in the given
// style, using priv_set_to_str(3C).
func (s *Set) Format(style StrFormat) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return "", ErrReleased
	}
	cstr, err := C.priv_set_to_str(s.ptr, C.char(','), C.int(style))
	if cstr == nil {
		return "", sysErr("priv_set_to_str", err)
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), nil
}

// String implements fmt.Stringer in the portable format. A released
// set renders as an empty string.
func (s *Set) String() string {
	str, err := s.Format(StrPortable)
	if err != nil {
		return ""
	}
	return str
}

// ParseSet parses a privilege specification such as "basic,!proc_fork"
// or "all" into a freshly allocated Set, using priv_str_to_set(3C).
// Privilege names may be separated by commas or spaces.
func ParseSet(spec string) (*Set, error) {
	cs := C.CString(spec)
	defer C.free(unsafe.Pointer(cs))
	sep := C.CString(", ")
	defer C.free(unsafe.Pointer(sep))

	var end *C.char
	ptr, err := C.priv_str_to_set(cs, sep, &end)
	if ptr == nil {
		// A parse failure points end at the offending name; an
		// allocation failure leaves it nil.
		if end != nil {
			return nil, fmt.Errorf("privilege spec %q: %q: %w", spec, C.GoString(end), ErrUnknownPrivilege)
		}
		return nil, sysErr("priv_str_to_set", err)
	}
	s := &Set{ptr: ptr, valid: true}
	runtime.SetFinalizer(s, (*Set).Release)
	return s, nil
}
