package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nvr-ai/go-cvkit/bbox"
	"github.com/nvr-ai/go-cvkit/config"
	"github.com/pkg/errors"
)

const usage = `usage: cvkit [-config file.yaml] <command> [flags]

commands:
  list    list files recursively and dump the list
  split   split a list dump into chunk files
  stitch  stitch images into a grid
  mask    write the binary mask of a rectangle
  draw    draw a resized rectangle onto an image
  crop    crop and resize an image region through a (C, H, W) tensor
`

// command is a subcommand entry point. args excludes the command name.
type command func(cfg config.Config, args []string) error

var commands = map[string]command{
	"list":   runList,
	"split":  runSplit,
	"stitch": runStitch,
	"mask":   runMask,
	"draw":   runDraw,
	"crop":   runCrop,
}

func main() {
	log.SetFlags(log.LstdFlags)
	if err := run(os.Args[1:]); err != nil {
		log.Printf("⚠️  %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("cvkit", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", "", "Path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return errors.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	return errors.Wrap(cmd(cfg, fs.Args()[1:]), name)
}

// parseBox parses "xMin,yMin,xMax,yMax".
func parseBox(s string) (bbox.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bbox.Rectangle{}, errors.Errorf("box %q must be xMin,yMin,xMax,yMax", s)
	}

	var coords [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return bbox.Rectangle{}, errors.Wrapf(err, "box %q", s)
		}
		coords[i] = v
	}
	return bbox.NewRectangle(coords[0], coords[1], coords[2], coords[3]), nil
}

// parseExtensions parses a comma separated list, adding missing leading dots.
func parseExtensions(s string) []string {
	var exts []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
