package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/integrations"
	"github.com/matzehuels/typespub/pkg/integrations/npm"
	"github.com/matzehuels/typespub/pkg/packages"
	"github.com/matzehuels/typespub/pkg/semver"
	"github.com/matzehuels/typespub/pkg/versions"
)

// infoOpts holds the command-line flags for the info command.
type infoOpts struct {
	refresh bool // bypass the response cache
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var opts infoOpts

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show a package's local state and its registry publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")

	return cmd
}

func (c *CLI) runInfo(ctx context.Context, name string, opts infoOpts) error {
	all, err := c.newStore().ReadAll(ctx)
	if err != nil {
		return err
	}
	fullName := packages.FullNpmName(c.config.Scope, name)

	printTitle(fullName)
	if d, ok := all.Find(name); ok {
		c.printTypings(d)
	} else if n, ok := all.FindNotNeeded(name); ok {
		printNotNeeded(n)
	} else {
		return errors.New(errors.ErrCodeNotFound, "package %s not found in %s", name, c.config.DataDir)
	}

	registry, err := c.newRegistry(false)
	if err != nil {
		return err
	}
	doc, err := registry.FetchPackument(ctx, fullName, opts.refresh)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", fullName)
	}
	printPackument(doc)

	if v, err := versions.Load(c.config.DataDir); err == nil {
		if e, err := v.VersionInfo(name); err == nil {
			printKeyValue("next", e.Version.String())
		}
	}
	return nil
}

func (c *CLI) printTypings(d *packages.TypingsData) {
	printKeyValue("declared", d.Declared().String())
	printKeyValue("directory", d.Dir())
	printKeyValue("content hash", d.ContentHash)
	printCount("files", len(d.Files))
	printCount("dependencies", len(d.Dependencies))

	hash, err := packages.Fingerprint(os.DirFS(c.config.TypesRoot), d)
	switch {
	case err != nil:
		printWarning("Cannot fingerprint files: %s", errors.UserMessage(err))
	case hash != d.ContentHash:
		printWarning("Files changed since %s was generated", packages.TypesDataFile)
	}
}

func printNotNeeded(n *packages.NotNeeded) {
	printKeyValue("status", "not needed")
	printKeyValue("library", n.LibraryName)
	if repo := integrations.NormalizeRepoURL(n.SourceRepoURL); repo != "" {
		printKeyValue("repository", repo)
	}
	if n.AsOfVersion != "" {
		printKeyValue("as of", n.AsOfVersion)
	}
}

func printPackument(doc *npm.Packument) {
	if doc == nil {
		printInfo("Not published")
		return
	}
	latest := doc.Latest()
	printKeyValue("latest", latest)
	printCount("published", len(doc.Versions))
	if meta, ok := doc.Versions[latest]; ok {
		if meta.ContentHash != "" {
			printKeyValue("published hash", meta.ContentHash)
		}
		if meta.Deprecated.IsSet() {
			printWarning("Deprecated: %s", string(meta.Deprecated))
		}
	}
	if _, ok := semver.TryParse(latest); !ok {
		printWarning("Latest tag %q is not a release version", latest)
	}
}
