//go:build solaris && cgo

package priv

/*
#include <stdlib.h>
#include <priv.h>
*/
import "C"

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// Apply combines s with one of the calling process's privilege sets
// according to op, using setppriv(2). An attempt to grow a set beyond
// what the process is allowed fails with an error matching
// os.ErrPermission.
func Apply(op Op, which SetType, s *Set) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid {
		return ErrReleased
	}
	cw := C.CString(string(which))
	defer C.free(unsafe.Pointer(cw))
	if ret, err := C.setppriv(C.priv_op_t(op), C.priv_ptype_t(unsafe.Pointer(cw)), s.ptr); ret != 0 {
		return sysErr("setppriv", err)
	}
	return nil
}

// Current returns the calling process's privilege set identified by
// which, using getppriv(2). The Set is allocated before the native call
// so that a failed call still releases the allocation.
func Current(which SetType) (*Set, error) {
	s, err := newSet()
	if err != nil {
		return nil, err
	}
	cw := C.CString(string(which))
	defer C.free(unsafe.Pointer(cw))
	ret, err := C.getppriv(C.priv_ptype_t(unsafe.Pointer(cw)), s.ptr)
	if ret != 0 {
		s.Release()
		return nil, sysErr("getppriv", err)
	}
	return s, nil
}

// InEffect reports whether the named privilege is in the calling
// process's effective set, using priv_ineffect(3C).
func InEffect(p Privilege) bool {
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	return C.priv_ineffect(cp) != 0
}

// SetFlag sets a per-process privilege flag to val, using setpflags(2).
// The valid values are 0 and 1 for most flags; FlagDebug also accepts
// 2 for verbose reporting.
func SetFlag(f Flag, val uint) error {
	if ret, err := C.setpflags(C.uint_t(f), C.uint_t(val)); ret != 0 {
		return sysErr("setpflags", err)
	}
	return nil
}

// GetFlag returns the value of a per-process privilege flag, using
// getpflags(2).
func GetFlag(f Flag) (uint, error) {
	v, err := C.getpflags(C.uint_t(f))
	if v == ^C.uint_t(0) {
		return 0, sysErr("getpflags", err)
	}
	return uint(v), nil
}

// Implementation describes the privilege implementation of the running
// system, from getprivimplinfo(2).
func Implementation() (ImplInfo, error) {
	info, err := C.getprivimplinfo()
	if info == nil {
		return ImplInfo{}, sysErr("getprivimplinfo", err)
	}
	return ImplInfo{
		Flags:          uint(info.priv_flags),
		NSets:          int(info.priv_nsets),
		SetSize:        int(info.priv_setsize),
		NPrivs:         int(info.priv_max),
		InfoSize:       int(info.priv_infosize),
		GlobalInfoSize: int(info.priv_globalinfosize),
	}, nil
}

// Names returns the privileges the running system implements, in
// privilege number order.
func Names() ([]Privilege, error) {
	var res []Privilege
	for i := 0; ; i++ {
		name := C.priv_getbynum(C.int(i))
		if name == nil {
			break
		}
		res = append(res, Privilege(C.GoString(name)))
	}
	return res, nil
}

// SetNames returns the privilege set names the running system
// implements, in set number order.
func SetNames() ([]SetType, error) {
	var res []SetType
	for i := 0; ; i++ {
		name := C.priv_getsetbynum(C.int(i))
		if name == nil {
			break
		}
		res = append(res, SetType(C.GoString(name)))
	}
	return res, nil
}

// Number returns the privilege number for p, using priv_getbyname(3C).
// The lookup ignores case and an optional "priv_" prefix.
func Number(p Privilege) (int, error) {
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	n, err := C.priv_getbyname(cp)
	if n < 0 {
		return -1, nameErr("priv_getbyname", string(p), err)
	}
	return int(n), nil
}

// ByNumber returns the privilege with number n, using priv_getbynum(3C).
func ByNumber(n int) (Privilege, error) {
	name := C.priv_getbynum(C.int(n))
	if name == nil {
		return "", fmt.Errorf("privilege number %d: %w", n, ErrUnknownPrivilege)
	}
	return Privilege(C.GoString(name)), nil
}

// SetNumber returns the set number for the named privilege set, using
// priv_getsetbyname(3C).
func SetNumber(which SetType) (int, error) {
	cw := C.CString(string(which))
	defer C.free(unsafe.Pointer(cw))
	n, err := C.priv_getsetbyname(cw)
	if n < 0 {
		return -1, nameErr("priv_getsetbyname", string(which), err)
	}
	return int(n), nil
}

// Description returns the descriptive text the running system carries
// for p, using priv_gettext(3C).
func Description(p Privilege) (string, error) {
	cp := C.CString(string(p))
	defer C.free(unsafe.Pointer(cp))
	text, err := C.priv_gettext(cp)
	if text == nil {
		return "", nameErr("priv_gettext", string(p), err)
	}
	defer C.free(unsafe.Pointer(text))
	return C.GoString(text), nil
}

// Apply performs the modification the spec describes on the calling
// process, set by set in the order the spec lists them.
func (sp *SetSpec) Apply() error {
	set, err := ParseSet(sp.Privs)
	if err != nil {
		return err
	}
	defer set.Release()
	for _, which := range sp.Sets {
		if err := Apply(sp.Op, which, set); err != nil {
			return fmt.Errorf("turn %v %q in %s set: %w", sp.Op, sp.Privs, which, err)
		}
	}
	return nil
}

// ReadProcess reads and decodes /proc/<pid>/priv. Unlike Current it
// works on other processes, given the privileges /proc demands.
// Privilege numbers and set numbers the system cannot name are skipped
// with a warning.
func ReadProcess(pid int) (*ProcessPrivileges, error) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "priv"))
	if err != nil {
		return nil, err
	}
	pp, err := ParseProcPriv(data)
	if err != nil {
		return nil, fmt.Errorf("parse priv record of pid %d: %w", pid, err)
	}

	res := &ProcessPrivileges{
		PID:   pid,
		Sets:  make(map[SetType][]Privilege, len(pp.Sets)),
		Flags: pp.Flags,
	}
	for i := range pp.Sets {
		sname := C.priv_getsetbynum(C.int(i))
		if sname == nil {
			logrus.Warnf("skipping unnamed privilege set %d of pid %d", i, pid)
			continue
		}
		which := SetType(C.GoString(sname))
		privs := []Privilege{}
		for n := 0; n < pp.SetSize*32; n++ {
			if !pp.Member(i, n) {
				continue
			}
			pname := C.priv_getbynum(C.int(n))
			if pname == nil {
				logrus.Warnf("skipping unknown privilege number %d in %s set of pid %d", n, which, pid)
				continue
			}
			privs = append(privs, Privilege(C.GoString(pname)))
		}
		res.Sets[which] = privs
	}
	return res, nil
}
