package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create an empty directory at path",
		Args:  cobra.ExactArgs(1),
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
			return tr.Create(args[0])
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML script of prior operations to replay before running this one")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove an empty directory at path",
		Args:  cobra.ExactArgs(1),
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
			return tr.Remove(args[0])
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML script of prior operations to replay before running this one")
	return cmd
}

func newListCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List the immediate children of path",
		Args:  cobra.ExactArgs(1),
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
			listing, err := tr.List(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), listing)
			return nil
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML script of prior operations to replay before running this one")
	return cmd
}

func newMoveCmd() *cobra.Command {
	var script string
	cmd := &cobra.Command{
		Use:   "move <source> <target>",
		Short: "Move the directory at source to target",
		Args:  cobra.ExactArgs(2),
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
			return tr.Move(args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "YAML script of prior operations to replay before running this one")
	return cmd
}
