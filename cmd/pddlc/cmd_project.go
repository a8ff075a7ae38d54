package main

import (
	"fmt"

	"github.com/dhamidi/pddlc/project"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Work with plan.yaml project manifests",
	}

	cmd.AddCommand(newProjectCheckCmd())

	return cmd
}

func newProjectCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Check every problem in the project against its domain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			proj, err := project.LoadFrom(dir)
			if err != nil {
				return err
			}

			var firstErr error
			for _, problemFile := range proj.Problems {
				problem, err := compilePair(proj.Resolve(proj.Domain), proj.Resolve(problemFile))
				if err != nil {
					fmt.Printf("FAIL %s: %s\n", problemFile, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				fmt.Printf("ok   %s (%d actions, %d init literals)\n",
					problemFile, len(problem.Actions), len(problem.Init))
			}
			return firstErr
		},
	}
}
