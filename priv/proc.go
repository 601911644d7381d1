package priv

import (
	"encoding/binary"
	"fmt"
)

// Layout of the prpriv_t record read from /proc/<pid>/priv, from
// <sys/procfs.h>: three uint32 counters, pr_nsets sets of pr_setsize
// uint32 words each, then pr_infosize bytes of priv_info records. All
// words are in the byte order of the kernel that wrote the record.
const (
	prprivHeaderLen = 12
	privInfoLen     = 8

	// PRIV_INFO_FLAGS of <sys/priv.h>; its payload is the process
	// privilege flag word.
	privInfoFlags = 0x0004
)

// ProcPriv is a decoded process privilege record: the raw bitset words
// of every privilege set the process carries, plus the per-process
// privilege flags when the record includes them.
type ProcPriv struct {
	// SetSize is the size of each set in 32-bit words.
	SetSize int
	// Sets holds one word slice per privilege set, in set number order.
	// On current kernels that order is effective, inheritable,
	// permitted, limit.
	Sets [][]uint32
	// Flags is the process privilege flag word, zero when the record
	// carries none.
	Flags Flag
}

// ParseProcPriv decodes a prpriv_t record as read from /proc/<pid>/priv.
func ParseProcPriv(data []byte) (*ProcPriv, error) {
	if len(data) < prprivHeaderLen {
		return nil, fmt.Errorf("short prpriv record: %d bytes", len(data))
	}
	ord := binary.NativeEndian
	nsets := int(ord.Uint32(data[0:]))
	setSize := int(ord.Uint32(data[4:]))
	infoSize := int(ord.Uint32(data[8:]))
	if nsets == 0 || setSize == 0 || nsets > 64 || setSize > 1024 {
		return nil, fmt.Errorf("implausible prpriv header: nsets=%d setsize=%d", nsets, setSize)
	}
	need := prprivHeaderLen + nsets*setSize*4
	if len(data) < need {
		return nil, fmt.Errorf("short prpriv record: %d bytes, want at least %d", len(data), need)
	}

	pp := &ProcPriv{
		SetSize: setSize,
		Sets:    make([][]uint32, nsets),
	}
	off := prprivHeaderLen
	for i := range pp.Sets {
		words := make([]uint32, setSize)
		for j := range words {
			words[j] = ord.Uint32(data[off:])
			off += 4
		}
		pp.Sets[i] = words
	}

	// The trailing priv_info records are type/size framed; only the
	// flag word is interesting here, the rest are skipped.
	info := data[off:]
	if infoSize < len(info) {
		info = info[:infoSize]
	}
	for len(info) >= privInfoLen {
		typ := ord.Uint32(info[0:])
		size := int(ord.Uint32(info[4:]))
		if size < privInfoLen || size > len(info) {
			break
		}
		if typ == privInfoFlags && size >= privInfoLen+4 {
			pp.Flags = Flag(ord.Uint32(info[privInfoLen:]))
		}
		info = info[size:]
	}
	return pp, nil
}

// Member reports whether privilege number n is present in set number
// set of the record. Out of range arguments report false.
func (pp *ProcPriv) Member(set, n int) bool {
	if set < 0 || set >= len(pp.Sets) || n < 0 {
		return false
	}
	word, bit := n/32, uint(n%32)
	if word >= len(pp.Sets[set]) {
		return false
	}
	return pp.Sets[set][word]&(1<<bit) != 0
}

// ProcessPrivileges is the privilege state of a process as decoded from
// /proc by ReadProcess: the members of each named privilege set, plus
// the per-process privilege flags.
type ProcessPrivileges struct {
	// PID is the process the record was read from.
	PID int
	// Sets maps each privilege set the process carries to its members,
	// in privilege number order.
	Sets map[SetType][]Privilege
	// Flags is the process privilege flag word.
	Flags Flag
}
