package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kovidgoyal/imagemeta"
)

type showCommand struct {
	format string
}

func (*showCommand) Name() string     { return "show" }
func (*showCommand) Synopsis() string { return "print image metadata" }
func (*showCommand) Usage() string {
	return `show [-format TEMPLATE] <path>...:
	Print the metadata of each image. In TEMPLATE, %w, %h, %a and %f are
	replaced by the width, height, animation frame count and format.

`
}

func (cmd *showCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.format, "format", "", "Template to print for each image")
}

func (cmd *showCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "No paths supplied")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, p := range fs.Args() {
		md, err := imagemeta.Open(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v: %v\n", p, err)
			status = subcommands.ExitFailure
			continue
		}
		if cmd.format == "" {
			fmt.Println(md)
			continue
		}
		s, err := expandTemplate(cmd.format, md)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Println(s)
	}
	return status
}
