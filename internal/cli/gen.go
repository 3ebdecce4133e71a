// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspbb/instance"
)

// genCommand creates the gen command.
func (c *CLI) genCommand() *cobra.Command {
	var (
		seed   int64
		count  int
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gen [cities]",
		Short: "Write random Euclidean instances",
		Long: `Write random Euclidean instances.

Cities are placed on an integer grid; costs are rounded Euclidean distances.
The same seed always yields the same instance. With --count, a series of
instances with derived seeds is written as <output>-<i><ext>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("cities: %w", err)
			}
			return c.runGen(n, seed, count, output, format)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&count, "count", 1, "number of instances to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; extension selects the format (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "stdout format: text, json, yaml, toml")

	return cmd
}

// runGen writes count instances of n cities.
func (c *CLI) runGen(n int, seed int64, count int, output, format string) error {
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	seeds := []int64{seed}
	if count > 1 {
		seeds = instance.SeriesSeeds(seed, count)
	}
	for i, s := range seeds {
		f, err := instance.Generate(n, s)
		if err != nil {
			return err
		}
		if output == "" {
			ft, err := instance.ParseFormat(format)
			if err != nil {
				return err
			}
			if err = instance.Encode(c.Out, f, ft); err != nil {
				return err
			}
			continue
		}
		path := output
		if count > 1 {
			ext := filepath.Ext(output)
			path = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(output, ext), i, ext)
		}
		if err = instance.Save(path, f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Info("wrote instance", "path", path, "cities", n, "seed", s)
	}

	return nil
}
