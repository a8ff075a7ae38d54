package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pddlc/format"
	"github.com/dhamidi/pddlc/pddl"
	"github.com/dhamidi/pddlc/pddl/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "check <domain> <problem>",
		Short: "Validate and normalize a domain/problem pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := compilePair(args[0], args[1])
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(problem); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

// loadPair parses the domain and problem files. Either file may contain
// both definitions; the first domain and first problem found win.
func loadPair(domainPath, problemPath string) (*parser.Domain, *parser.Problem, error) {
	var domain *parser.Domain
	var problem *parser.Problem

	for _, path := range []string{domainPath, problemPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read file: %w", err)
		}
		file, err := parser.ParseFile(data, path)
		if err != nil {
			return nil, nil, err
		}
		if file.Domain != nil && domain == nil {
			domain = file.Domain
		}
		if file.Problem != nil && problem == nil {
			problem = file.Problem
		}
	}

	if domain == nil {
		return nil, nil, fmt.Errorf("%s: no domain definition", domainPath)
	}
	if problem == nil {
		return nil, nil, fmt.Errorf("%s: no problem definition", problemPath)
	}
	return domain, problem, nil
}

func compilePair(domainPath, problemPath string) (*pddl.Problem, error) {
	domain, problem, err := loadPair(domainPath, problemPath)
	if err != nil {
		return nil, err
	}
	abstract, err := pddl.Build(domain, problem)
	if err != nil {
		return nil, err
	}
	return pddl.Normalize(abstract)
}
