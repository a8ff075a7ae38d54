package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pddlc/format"
	"github.com/dhamidi/pddlc/pddl/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var showSpans bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a PDDL file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			file, err := parser.ParseFile(data, args[0])
			if err != nil {
				return err
			}

			fmt.Print(format.ASTText(file, showSpans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSpans, "spans", false, "annotate nodes with source spans")

	return cmd
}
