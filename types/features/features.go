// Package features provides the JSON structure printed by
// `gopriv features`, so that other tools can discover what the binary
// and the running system support. The structure is experimental and may
// gain fields.
package features

// Features is the top-level object of the features output.
type Features struct {
	// Version is the version of the gopriv binary.
	Version string `json:"version,omitempty"`

	// Implementation describes the privilege implementation of the
	// running system. Nil means the system carries none and the lists
	// below come from the compiled-in tables.
	Implementation *Implementation `json:"implementation,omitempty"`

	// Sets is the list of privilege set names, in set number order.
	Sets []string `json:"sets,omitempty"`

	// Privileges is the list of privilege names, in privilege number
	// order.
	Privileges []string `json:"privileges,omitempty"`

	// Basic is the list of privileges in the basic set.
	Basic []string `json:"basic,omitempty"`

	// Flags is the list of per-process privilege flag names.
	Flags []string `json:"flags,omitempty"`
}

// Implementation mirrors the fields of getprivimplinfo(2).
type Implementation struct {
	// NSets is the number of privilege sets each process carries.
	NSets int `json:"nsets"`

	// SetSize is the size of each set, in 32-bit words.
	SetSize int `json:"setSize"`

	// NPrivs is the upper bound of valid privilege numbers.
	NPrivs int `json:"nprivs"`

	// InfoSize is the size of the per-process additional information.
	InfoSize int `json:"infoSize"`

	// GlobalInfoSize is the size of the global additional information.
	GlobalInfoSize int `json:"globalInfoSize"`

	// Flags holds implementation details of the privilege subsystem.
	Flags uint `json:"flags"`
}
