package main

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/TritonDataCenter/go-illumos-priv/priv"
	"github.com/TritonDataCenter/go-illumos-priv/types/features"
)

var featuresCommand = cli.Command{
	Name:      "features",
	Usage:     "show the privilege facilities of the running system (experimental)",
	ArgsUsage: "",
	Description: `The features command shows, as JSON, the privilege implementation
of the running system: its privilege sets, the privileges it implements,
and the per-process flags the library knows. The types are defined in
the types/features package. On systems without privilege sets the
compiled-in tables are reported instead.`,
	Action: func(context *cli.Context) error {
		if err := checkArgs(context, 0, exactArgs); err != nil {
			return err
		}

		feat := features.Features{
			Version: version,
			Basic:   privStrings(priv.BasicPrivileges()),
		}
		for _, f := range priv.KnownFlags() {
			feat.Flags = append(feat.Flags, f.String())
		}

		if info, err := priv.Implementation(); err == nil {
			feat.Implementation = &features.Implementation{
				NSets:          info.NSets,
				SetSize:        info.SetSize,
				NPrivs:         info.NPrivs,
				InfoSize:       info.InfoSize,
				GlobalInfoSize: info.GlobalInfoSize,
				Flags:          info.Flags,
			}
		} else {
			logrus.Debugf("no native privilege implementation: %v", err)
		}

		if names, err := priv.Names(); err == nil {
			feat.Privileges = privStrings(names)
		} else {
			feat.Privileges = privStrings(priv.KnownPrivileges())
		}
		if sets, err := priv.SetNames(); err == nil {
			feat.Sets = setStrings(sets)
		} else {
			feat.Sets = setStrings(priv.SetTypes())
		}

		enc := json.NewEncoder(context.App.Writer)
		enc.SetIndent("", "    ")
		return enc.Encode(feat)
	},
}

func privStrings(privs []priv.Privilege) []string {
	res := make([]string, len(privs))
	for i, p := range privs {
		res[i] = string(p)
	}
	return res
}

func setStrings(sets []priv.SetType) []string {
	res := make([]string, len(sets))
	for i, st := range sets {
		res[i] = string(st)
	}
	return res
}
