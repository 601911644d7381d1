package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/moby/sys/user"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sys/unix"

	"github.com/TritonDataCenter/go-illumos-priv/priv"
)

var execCommand = cli.Command{
	Name:  "exec",
	Usage: "run a command with modified privilege sets",
	ArgsUsage: `<command> [arg...]

Where "<command>" is the program to run after applying every --set
specification, in order, to the calling process. The command is run
directly in place of gopriv, not as a child.`,
	Flags: []cli.Flag{
		cli.StringSliceFlag{
			Name:  "set, s",
			Usage: "privilege spec '[AEIPL...](+|-|=)priv[,priv...]' to apply (can be repeated)",
		},
		cli.StringFlag{
			Name:  "user, u",
			Usage: "switch to the given user ('uid[:gid]' or a user name) before applying the specs",
		},
		cli.BoolFlag{
			Name:  "pfexec",
			Usage: "set the PRIV_PFEXEC flag so profiles apply on exec, like pfexec(1)",
		},
		cli.BoolFlag{
			Name:  "priv-debug, D",
			Usage: "set the PRIV_DEBUG flag so missing privileges are reported",
		},
	},
	SkipArgReorder: true,
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 1, minArgs); err != nil {
			return err
		}

		specs := make([]*priv.SetSpec, 0, len(context.StringSlice("set")))
		for _, arg := range context.StringSlice("set") {
			sp, err := priv.ParseSetSpec(arg)
			if err != nil {
				return err
			}
			specs = append(specs, sp)
		}

		if userSpec := context.String("user"); userSpec != "" {
			if err := setupUser(userSpec); err != nil {
				return fmt.Errorf("switch to user %q: %w", userSpec, err)
			}
		}
		if context.Bool("priv-debug") {
			if err := priv.SetFlag(priv.FlagDebug, 1); err != nil {
				return err
			}
		}
		if context.Bool("pfexec") {
			if err := priv.SetFlag(priv.FlagPFExec, 1); err != nil {
				return err
			}
		}
		for _, sp := range specs {
			if err := sp.Apply(); err != nil {
				return err
			}
		}

		name, err := exec.LookPath(context.Args().First())
		if err != nil {
			return err
		}
		logrus.Debugf("executing %s with modified privileges", name)
		return execv(name, context.Args(), os.Environ())
	},
}

// setupUser switches credentials before the privilege specs are
// applied, so the specs constrain what the target user ends up with.
func setupUser(spec string) error {
	defaults := &user.ExecUser{
		Uid: os.Getuid(),
		Gid: os.Getgid(),
	}
	execUser, err := user.GetExecUserPath(spec, defaults, "/etc/passwd", "/etc/group")
	if err != nil {
		return err
	}
	if len(execUser.Sgids) > 0 {
		if err := unix.Setgroups(execUser.Sgids); err != nil {
			return os.NewSyscallError("setgroups", err)
		}
	}
	if err := unix.Setgid(execUser.Gid); err != nil {
		return os.NewSyscallError("setgid", err)
	}
	if err := unix.Setuid(execUser.Uid); err != nil {
		return os.NewSyscallError("setuid", err)
	}
	if execUser.Home != "" {
		return os.Setenv("HOME", execUser.Home)
	}
	return nil
}

// execv replaces the current process, retrying on EINTR.
func execv(name string, args, env []string) error {
	for {
		err := unix.Exec(name, args, env)
		if !errors.Is(err, unix.EINTR) {
			return &os.PathError{Op: "exec", Path: name, Err: err}
		}
	}
}
