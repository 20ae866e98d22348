package main

import (
	"fmt"
	"strconv"

	"github.com/lucasbrandao/repmaze/pkg/errs"
	"github.com/lucasbrandao/repmaze/pkg/mazeio"
	"github.com/lucasbrandao/repmaze/pkg/orchestrate"
	"github.com/spf13/cobra"
)

var normCmd = &cobra.Command{
	Use:   "norm <n> <maze-string>",
	Args:  cobra.ExactArgs(2),
	Short: "Print a maze's canonical form",
	RunE:  runNorm,
}

func runNorm(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 2 {
		return fmt.Errorf("invalid n %q: must be an integer >= 2: %w", args[0], errs.ErrInvalidArgument)
	}

	pc, err := mazeio.Parse(n, args[1])
	if err != nil {
		return fmt.Errorf("failed to parse maze string: %w", err)
	}

	canonical := orchestrate.Normalize(pc)
	fmt.Println(mazeio.String(canonical))
	return nil
}
