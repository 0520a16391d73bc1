package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typespub/pkg/versions"
)

// calculateOpts holds the command-line flags for the calculate-versions command.
type calculateOpts struct {
	forceUpdate bool // treat every live package as changed
	noCache     bool // do not record registry responses in the cache
}

// calculateVersionsCommand creates the calculate-versions command.
func (c *CLI) calculateVersionsCommand() *cobra.Command {
	var opts calculateOpts

	cmd := &cobra.Command{
		Use:   "calculate-versions",
		Short: "Compute the next version of every package",
		Long: `Calculate-versions compares every package with its latest publication on
the registry and writes versions.json, version-changes.json and
version-additions.json to the data directory.

Nothing is written when any registry lookup fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCalculateVersions(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.forceUpdate, "force-update", false, "publish every live package regardless of content")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not record registry responses in the cache")

	return cmd
}

func (c *CLI) runCalculateVersions(ctx context.Context, opts calculateOpts) error {
	logger := loggerFromContext(ctx)

	all, err := c.newStore().ReadAll(ctx)
	if err != nil {
		return err
	}
	registry, err := c.newRegistry(opts.noCache)
	if err != nil {
		return err
	}

	r := versions.NewResolver(versions.Options{
		Fetcher:     registry,
		Scope:       c.config.Scope,
		Concurrency: c.config.RegistryConcurrency,
		Logger:      logger,
	})

	prog := newProgress(logger)
	res, err := r.DetermineAndSave(ctx, all, opts.forceUpdate, c.config.DataDir)
	if err != nil {
		return err
	}
	prog.donef("Calculated %d versions", len(res.Versions))

	printSuccess("Calculated versions for %d packages", len(res.Versions))
	printCount("changes", len(res.Changes))
	printCount("additions", len(res.Additions))
	printDetail("Directory: %s", c.config.DataDir)
	return nil
}
