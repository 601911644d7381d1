// Package priv manipulates illumos process privileges.
//
// illumos divides the powers traditionally reserved for the superuser
// into a set of fine-grained privileges. Each process carries four
// privilege sets (effective, inheritable, permitted and limit), and
// possession of a privilege in the effective set is what allows a
// process to perform the corresponding restricted operation. See
// PRIVILEGES(7) for the model and the full list of privileges.
//
// A Set wraps the opaque priv_set_t of <priv.h>: it is allocated with
// priv_allocset(3C), manipulated with the priv_addset(3C) family, and
// freed with priv_freeset(3C) when Release is called. The process-level
// calls setppriv(2), getppriv(2), getpflags(2) and setpflags(2) are
// exposed as Apply, Current, GetFlag and SetFlag.
//
// Removing the ability to fork from the running process looks like:
//
//	set, err := priv.NewBasicSet()
//	if err != nil {
//		return err
//	}
//	defer set.Release()
//	if err := set.Delete(priv.ProcFork); err != nil {
//		return err
//	}
//	if err := priv.Apply(priv.OpSet, priv.Effective, set); err != nil {
//		return err
//	}
//
// On systems without illumos privilege sets the package still compiles,
// but every operation fails with ErrUnsupported. The name tables
// (KnownPrivileges, BasicPrivileges), the spec parser (ParseSetSpec)
// and the /proc record decoder (ParseProcPriv) work everywhere.
package priv
