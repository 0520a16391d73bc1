package cli

import (
	"context"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/tester"
)

// testOpts holds the command-line flags for the test command.
type testOpts struct {
	filter string // regular expression selecting package names
	jobs   int    // packages in flight, 0 uses the configured concurrency
}

// testCommand creates the test command.
func (c *CLI) testCommand() *cobra.Command {
	var opts testOpts

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Install, compile and lint every package",
		Long: `Test checks every package under the types root. All dependencies are
installed first; then each package's tsconfig.json and package.json are
validated, the package is compiled and, when it has a tslint.json, linted.

Every failing package is reported and the command exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTest(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "only test packages whose name matches this regular expression")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "packages tested in parallel (default from config)")

	return cmd
}

func (c *CLI) runTest(ctx context.Context, opts testOpts) error {
	logger := loggerFromContext(ctx)

	var filter *regexp.Regexp
	if opts.filter != "" {
		re, err := regexp.Compile(opts.filter)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--filter")
		}
		filter = re
	}
	jobs := c.config.Concurrency
	if opts.jobs != 0 {
		jobs = opts.jobs
	}

	all, err := c.newStore().ReadAll(ctx)
	if err != nil {
		return err
	}
	pkgs := tester.Select(all.Typings, filter)
	if len(pkgs) == 0 {
		printWarning("No packages to test")
		return nil
	}

	t := tester.New(tester.Options{
		TypesRoot: c.config.TypesRoot,
		Tools:     tester.Tools(c.config.Tools),
		Logger:    logger,
	})

	prog := newProgress(logger)
	outcomes, err := t.RunAll(ctx, pkgs, jobs)
	if err != nil {
		return err
	}
	prog.donef("Tested %d packages", len(pkgs))

	passed := 0
	for _, o := range outcomes {
		if o.OK() {
			passed++
		}
	}
	if err := tester.Aggregate(outcomes); err != nil {
		printError("%d of %d packages passed", passed, len(outcomes))
		return err
	}
	printSuccess("All %d packages passed", passed)
	return nil
}
