package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/TritonDataCenter/go-illumos-priv/priv"
)

var listCommand = cli.Command{
	Name:      "list",
	Usage:     "list the privileges the running system implements",
	ArgsUsage: "",
	Description: `The list command prints every privilege the running system
implements, one per line and in privilege number order. On systems
without privilege sets the table compiled into the library is printed
instead.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "include the system's description of each privilege",
		},
		cli.BoolFlag{
			Name:  "sets",
			Usage: "list privilege set names instead of privileges",
		},
	},
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 0, exactArgs); err != nil {
			return err
		}
		if context.Bool("sets") {
			sets, err := priv.SetNames()
			if err != nil {
				logrus.Debugf("falling back to the compiled-in set names: %v", err)
				sets = priv.SetTypes()
			}
			for _, st := range sets {
				fmt.Println(st)
			}
			return nil
		}

		privs, err := priv.Names()
		if err != nil {
			logrus.Debugf("falling back to the compiled-in privilege table: %v", err)
			privs = priv.KnownPrivileges()
		}
		if !context.Bool("verbose") {
			for _, p := range privs {
				fmt.Println(p)
			}
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
		fmt.Fprint(w, "PRIVILEGE\tDESCRIPTION\n")
		for _, p := range privs {
			desc, err := priv.Description(p)
			if err != nil {
				desc = "-"
			}
			fmt.Fprintf(w, "%s\t%s\n", p, firstLine(desc))
		}
		return w.Flush()
	},
}
