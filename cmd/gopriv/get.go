package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/TritonDataCenter/go-illumos-priv/priv"
)

var getCommand = cli.Command{
	Name:  "get",
	Usage: "show the privilege sets of processes",
	ArgsUsage: `[pid...]

Where "<pid>" is a process id to inspect. Without arguments the calling
process is shown. Examining another process requires proc_owner or the
usual /proc ownership rules.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "spell out every privilege instead of folding the basic set",
		},
	},
	Action: func(context *cli.Context) error {
		pids := []int{os.Getpid()}
		if context.NArg() > 0 {
			pids = pids[:0]
			for _, arg := range context.Args() {
				pid, err := parsePid(arg)
				if err != nil {
					return err
				}
				pids = append(pids, pid)
			}
		}
		for _, pid := range pids {
			pp, err := priv.ReadProcess(pid)
			if err != nil {
				return fmt.Errorf("examine pid %d: %w", pid, err)
			}
			printProcess(pp, context.Bool("verbose"))
		}
		return nil
	},
}

func printProcess(pp *priv.ProcessPrivileges, verbose bool) {
	fmt.Printf("%d:\n", pp.PID)
	if pp.Flags != 0 {
		fmt.Printf("\tflags = %s\n", pp.Flags)
	}
	for _, st := range priv.SetTypes() {
		privs, ok := pp.Sets[st]
		if !ok {
			continue
		}
		fmt.Printf("\t%c: %s\n", st[0], formatPrivs(privs, verbose))
	}
	// Sets beyond the standard four would be a kernel extension; show
	// them after the usual ones.
	for st, privs := range pp.Sets {
		if st == priv.Effective || st == priv.Inheritable || st == priv.Permitted || st == priv.Limit {
			continue
		}
		fmt.Printf("\t%s: %s\n", st, formatPrivs(privs, verbose))
	}
}

// formatPrivs renders a privilege list the way ppriv(1) does: the
// basic set folded into the "basic" keyword unless verbose output is
// asked for.
func formatPrivs(privs []priv.Privilege, verbose bool) string {
	if len(privs) == 0 {
		return "none"
	}
	members := make(map[priv.Privilege]bool, len(privs))
	for _, p := range privs {
		members[p] = true
	}

	var out []string
	if !verbose {
		basic := priv.BasicPrivileges()
		haveBasic := true
		for _, p := range basic {
			if !members[p] {
				haveBasic = false
				break
			}
		}
		if haveBasic {
			out = append(out, "basic")
			for _, p := range basic {
				delete(members, p)
			}
		}
	}
	for _, p := range privs {
		if members[p] {
			out = append(out, string(p))
		}
	}
	return strings.Join(out, ",")
}
