package main

import (
	"errors"
	"os"

	"github.com/dhamidi/pddlc/pddl"
	"github.com/dhamidi/pddlc/pddl/parser"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "pddlc",
		Short: "A PDDL compiler front-end",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newGroundCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// Exit codes distinguish the error kinds for scripted callers.
func exitCode(err error) int {
	var lexErr *parser.LexError
	var parseErr *parser.ParseError
	var semanticErr *pddl.SemanticError
	var normalizerErr *pddl.NormalizerError

	switch {
	case errors.As(err, &lexErr):
		return 2
	case errors.As(err, &parseErr):
		return 3
	case errors.As(err, &semanticErr):
		return 4
	case errors.As(err, &normalizerErr):
		return 5
	}
	return 1
}
