package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive session, one operation per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTree()
			if err != nil {
				return err
			}
			steps, err := loadScript(script)
			if err != nil {
				return err
			}
			applyScript(tr, steps)
			return runRepl(tr.Create, tr.Remove, tr.List, tr.Move, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML script of prior operations to replay before the session starts")
	return cmd
}

// runRepl reads one command per line in the form "create /a/", "remove
// /a/", "list /a/" or "move /a/ /b/", matching original_source/main.c's
// scripted exercise of the tree but taken interactively from a reader
// instead of hardcoded in source.
func runRepl(create, remove func(string) error, list func(string) (string, error), move func(string, string) error, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		op := fields[0]
		args := fields[1:]

		var err error
		switch op {
		case "create":
			if len(args) != 1 {
				err = fmt.Errorf("create takes exactly one path")
			} else {
				err = create(args[0])
			}
		case "remove":
			if len(args) != 1 {
				err = fmt.Errorf("remove takes exactly one path")
			} else {
				err = remove(args[0])
			}
		case "list":
			if len(args) != 1 {
				err = fmt.Errorf("list takes exactly one path")
			} else {
				var listing string
				listing, err = list(args[0])
				if err == nil {
					fmt.Fprintln(out, listing)
				}
			}
		case "move":
			if len(args) != 2 {
				err = fmt.Errorf("move takes exactly two paths")
			} else {
				err = move(args[0], args[1])
			}
		default:
			err = fmt.Errorf("unknown command %q", op)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			log.WithError(err).WithField("line", line).Debug("nstreed: repl command failed")
		}
	}
	return scanner.Err()
}
