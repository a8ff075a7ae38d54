package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pddlc/ground"
	"github.com/spf13/cobra"
)

func newGroundCmd() *cobra.Command {
	var horizon int
	var output string

	cmd := &cobra.Command{
		Use:   "ground <domain> <problem>",
		Short: "Ground a problem and emit a bounded-horizon DIMACS CNF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := compilePair(args[0], args[1])
			if err != nil {
				return err
			}

			grounding, err := ground.Ground(problem)
			if err != nil {
				return err
			}
			cnf, err := grounding.Encode(horizon)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return grounding.WriteDIMACS(out, cnf)
		},
	}

	cmd.Flags().IntVar(&horizon, "horizon", 10, "plan length bound")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
