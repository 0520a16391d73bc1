package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/typespub/pkg/versions"
)

// versionsCommand creates the versions command for inspecting computed versions.
func (c *CLI) versionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Inspect the computed versions",
	}

	cmd.AddCommand(c.versionsShowCommand())

	return cmd
}

// versionsShowCommand creates the "versions show" subcommand.
func (c *CLI) versionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print the computed version of one or all packages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := versions.Load(c.config.DataDir)
			if err != nil {
				return err
			}

			names := v.Names()
			if len(args) == 1 {
				names = args
			}
			for _, name := range names {
				e, err := v.VersionInfo(name)
				if err != nil {
					return err
				}
				value := e.Version.String()
				if e.Deprecated {
					value += styleDim.Render(" (deprecated)")
				}
				printKeyValue(name, value)
			}

			changes, err := versions.ReadChanges(c.config.DataDir)
			if err == nil && len(args) == 0 {
				printCount("changes", len(changes))
			}
			return nil
		},
	}
}
