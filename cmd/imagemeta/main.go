package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kovidgoyal/imagemeta"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage %v: [flag]... <command> [flag]... <path>...\n"+
			"Prints the dimensions, color model and animation frame count of images.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	version := flag.Bool("version", false, "Print the version and exit")

	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&showCommand{}, "")
	subcommands.Register(&scanCommand{}, "")

	flag.Parse()
	if *version {
		fmt.Println(imagemeta.Version)
		os.Exit(0)
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}
