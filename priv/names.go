package priv

// Privilege is the name of a single process privilege, in the lowercase
// form understood by priv_addset(3C) and listed in PRIVILEGES(7).
//
// Values outside this package's tables are legal: the running kernel is
// the authority on which privileges exist, and names it does not
// recognize are reported through ErrUnknownPrivilege at call time.
type Privilege string

const (
	// Process contract privileges; see contract(5).
	ContractEvent    Privilege = "contract_event"
	ContractIdentity Privilege = "contract_identity"
	ContractObserver Privilege = "contract_observer"

	// CPU performance counter access.
	CpcCPU Privilege = "cpc_cpu"

	// DTrace providers; see dtrace(8).
	DtraceKernel Privilege = "dtrace_kernel"
	DtraceProc   Privilege = "dtrace_proc"
	DtraceUser   Privilege = "dtrace_user"

	// File system privileges.
	FileChown       Privilege = "file_chown"
	FileChownSelf   Privilege = "file_chown_self"
	FileDacExecute  Privilege = "file_dac_execute"
	FileDacRead     Privilege = "file_dac_read"
	FileDacSearch   Privilege = "file_dac_search"
	FileDacWrite    Privilege = "file_dac_write"
	FileDowngradeSL Privilege = "file_downgrade_sl"
	FileFlagSet     Privilege = "file_flag_set"
	FileLinkAny     Privilege = "file_link_any"
	FileOwner       Privilege = "file_owner"
	FileRead        Privilege = "file_read"
	FileSetid       Privilege = "file_setid"
	FileUpgradeSL   Privilege = "file_upgrade_sl"
	FileWrite       Privilege = "file_write"

	// Direct graphics access.
	GraphicsAccess Privilege = "graphics_access"
	GraphicsMap    Privilege = "graphics_map"

	// hyprlofs file system management.
	HyprlofsControl Privilege = "hyprlofs_control"

	// System V IPC privileges.
	IpcDacRead  Privilege = "ipc_dac_read"
	IpcDacWrite Privilege = "ipc_dac_write"
	IpcOwner    Privilege = "ipc_owner"

	// Networking privileges.
	NetAccess        Privilege = "net_access"
	NetBindMLP       Privilege = "net_bindmlp"
	NetICMPAccess    Privilege = "net_icmpaccess"
	NetMacAware      Privilege = "net_mac_aware"
	NetMacImplicit   Privilege = "net_mac_implicit"
	NetObservability Privilege = "net_observability"
	NetPrivAddr      Privilege = "net_privaddr"
	NetRawAccess     Privilege = "net_rawaccess"

	// Process privileges. ProcFork, ProcExec, ProcInfo, ProcSecflags
	// and ProcSession are part of the basic set.
	ProcAudit        Privilege = "proc_audit"
	ProcChroot       Privilege = "proc_chroot"
	ProcClockHighres Privilege = "proc_clock_highres"
	ProcExec         Privilege = "proc_exec"
	ProcFork         Privilege = "proc_fork"
	ProcInfo         Privilege = "proc_info"
	ProcLockMemory   Privilege = "proc_lock_memory"
	ProcOwner        Privilege = "proc_owner"
	ProcPriocntl     Privilege = "proc_priocntl"
	ProcSecflags     Privilege = "proc_secflags"
	ProcSession      Privilege = "proc_session"
	ProcSetid        Privilege = "proc_setid"
	ProcTaskid       Privilege = "proc_taskid"
	ProcZone         Privilege = "proc_zone"

	// System administration privileges.
	SysAcct        Privilege = "sys_acct"
	SysAdmin       Privilege = "sys_admin"
	SysAudit       Privilege = "sys_audit"
	SysConfig      Privilege = "sys_config"
	SysDevices     Privilege = "sys_devices"
	SysDLConfig    Privilege = "sys_dl_config"
	SysFlowConfig  Privilege = "sys_flow_config"
	SysIPConfig    Privilege = "sys_ip_config"
	SysIPTunConfig Privilege = "sys_iptun_config"
	SysLinkdir     Privilege = "sys_linkdir"
	SysMount       Privilege = "sys_mount"
	SysNetConfig   Privilege = "sys_net_config"
	SysNFS         Privilege = "sys_nfs"
	SysPPPConfig   Privilege = "sys_ppp_config"
	SysResBind     Privilege = "sys_res_bind"
	SysResConfig   Privilege = "sys_res_config"
	SysResource    Privilege = "sys_resource"
	SysSMB         Privilege = "sys_smb"
	SysSuserCompat Privilege = "sys_suser_compat"
	SysTime        Privilege = "sys_time"
	SysTransLabel  Privilege = "sys_trans_label"

	// Virtualization management.
	VirtManage Privilege = "virt_manage"

	// Trusted Extensions windowing privileges.
	WinColormap    Privilege = "win_colormap"
	WinConfig      Privilege = "win_config"
	WinDacRead     Privilege = "win_dac_read"
	WinDacWrite    Privilege = "win_dac_write"
	WinDevices     Privilege = "win_devices"
	WinDGA         Privilege = "win_dga"
	WinDowngradeSL Privilege = "win_downgrade_sl"
	WinFontpath    Privilege = "win_fontpath"
	WinMacRead     Privilege = "win_mac_read"
	WinMacWrite    Privilege = "win_mac_write"
	WinSelection   Privilege = "win_selection"
	WinUpgradeSL   Privilege = "win_upgrade_sl"

	// xVM hypervisor control.
	XVMControl Privilege = "xvm_control"
)

// allPrivileges lists every privilege this package was compiled against,
// in the order PRIVILEGES(7) documents them. Names reports what the
// running kernel actually implements, which wins on disagreement.
var allPrivileges = []Privilege{
	ContractEvent,
	ContractIdentity,
	ContractObserver,
	CpcCPU,
	DtraceKernel,
	DtraceProc,
	DtraceUser,
	FileChown,
	FileChownSelf,
	FileDacExecute,
	FileDacRead,
	FileDacSearch,
	FileDacWrite,
	FileDowngradeSL,
	FileFlagSet,
	FileLinkAny,
	FileOwner,
	FileRead,
	FileSetid,
	FileUpgradeSL,
	FileWrite,
	GraphicsAccess,
	GraphicsMap,
	HyprlofsControl,
	IpcDacRead,
	IpcDacWrite,
	IpcOwner,
	NetAccess,
	NetBindMLP,
	NetICMPAccess,
	NetMacAware,
	NetMacImplicit,
	NetObservability,
	NetPrivAddr,
	NetRawAccess,
	ProcAudit,
	ProcChroot,
	ProcClockHighres,
	ProcExec,
	ProcFork,
	ProcInfo,
	ProcLockMemory,
	ProcOwner,
	ProcPriocntl,
	ProcSecflags,
	ProcSession,
	ProcSetid,
	ProcTaskid,
	ProcZone,
	SysAcct,
	SysAdmin,
	SysAudit,
	SysConfig,
	SysDevices,
	SysDLConfig,
	SysFlowConfig,
	SysIPConfig,
	SysIPTunConfig,
	SysLinkdir,
	SysMount,
	SysNetConfig,
	SysNFS,
	SysPPPConfig,
	SysResBind,
	SysResConfig,
	SysResource,
	SysSMB,
	SysSuserCompat,
	SysTime,
	SysTransLabel,
	VirtManage,
	WinColormap,
	WinConfig,
	WinDacRead,
	WinDacWrite,
	WinDevices,
	WinDGA,
	WinDowngradeSL,
	WinFontpath,
	WinMacRead,
	WinMacWrite,
	WinSelection,
	WinUpgradeSL,
	XVMControl,
}

// basicPrivileges is the basic set, the privileges unprivileged
// processes are accustomed to having.
var basicPrivileges = []Privilege{
	FileLinkAny,
	FileRead,
	FileWrite,
	NetAccess,
	ProcExec,
	ProcFork,
	ProcInfo,
	ProcSecflags,
	ProcSession,
}

var knownPrivileges = make(map[Privilege]struct{}, len(allPrivileges))

func init() {
	for _, p := range allPrivileges {
		knownPrivileges[p] = struct{}{}
	}
}

// KnownPrivileges returns the privileges this package was compiled
// against. Unlike Names it does not consult the running system, so it
// works on any platform.
func KnownPrivileges() []Privilege {
	res := make([]Privilege, len(allPrivileges))
	copy(res, allPrivileges)
	return res
}

// BasicPrivileges returns the members of the basic privilege set.
func BasicPrivileges() []Privilege {
	res := make([]Privilege, len(basicPrivileges))
	copy(res, basicPrivileges)
	return res
}

// Known reports whether p is in this package's privilege table. The
// kernel may implement privileges the table lacks; Known returning
// false only means the name is not compiled in.
func (p Privilege) Known() bool {
	_, ok := knownPrivileges[p]
	return ok
}

// String implements fmt.Stringer.
func (p Privilege) String() string {
	return string(p)
}
