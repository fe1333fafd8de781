package main

import (
	"fmt"
	"runtime/debug"

	"github.com/scott-cotton/cli"
)

func version(cfg *VersionConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Version.Parse(cc, args); err != nil {
		return err
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Fprintln(cc.Out, "tgl (unknown build)")
		return nil
	}
	ver := bi.Main.Version
	if ver == "" || ver == "(devel)" {
		ver = "devel"
	}
	fmt.Fprintf(cc.Out, "tgl %s %s\n", ver, bi.GoVersion)
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.time":
			fmt.Fprintf(cc.Out, "  %s %s\n", s.Key, s.Value)
		}
	}
	return nil
}
