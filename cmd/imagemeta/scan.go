package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kovidgoyal/imagemeta"
	"github.com/kovidgoyal/imagemeta/meta"
)

type scanCommand struct {
	json bool
	jobs int
}

func (*scanCommand) Name() string     { return "scan" }
func (*scanCommand) Synopsis() string { return "read metadata of many images concurrently" }
func (*scanCommand) Usage() string {
	return `scan [-json] [-jobs N] <path>...:
	Read the metadata of all images concurrently and print one line per image.

`
}

func (cmd *scanCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.json, "json", false, "Print one JSON object per image")
	f.IntVar(&cmd.jobs, "jobs", 0, "Number of files read concurrently (0 for one per CPU)")
}

type scanRecord struct {
	Path            string      `json:"path"`
	Format          string      `json:"format,omitempty"`
	Width           uint32      `json:"width,omitempty"`
	Height          uint32      `json:"height,omitempty"`
	Color           *meta.Color `json:"color,omitempty"`
	AnimationFrames uint        `json:"animationFrames,omitempty"`
	Error           string      `json:"error,omitempty"`
}

func newScanRecord(r imagemeta.Result) scanRecord {
	rec := scanRecord{Path: r.Path}
	if r.Err != nil {
		rec.Error = r.Err.Error()
		return rec
	}
	md := r.Metadata
	rec.Format = md.Format.String()
	rec.Width, rec.Height = md.Dimensions.Width, md.Dimensions.Height
	rec.Color = &md.Color
	rec.AnimationFrames = md.AnimationFrames
	return rec
}

func (cmd *scanCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "No paths supplied")
		return subcommands.ExitUsageError
	}
	results, err := imagemeta.OpenAll(fs.Args(), imagemeta.Parallelism(cmd.jobs))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed reading images:", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		if r.Err != nil {
			status = subcommands.ExitFailure
		}
		if cmd.json {
			if err := enc.Encode(newScanRecord(r)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
			continue
		}
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%v: %v\n", r.Path, r.Err)
		} else {
			fmt.Printf("%v: %v\n", r.Path, r.Metadata)
		}
	}
	return status
}
