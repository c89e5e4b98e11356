package cmd

import "github.com/spf13/cobra"

// NewRootCmd wires every subcommand under the backoffice root. run is the
// action for the bare command.
func NewRootCmd(run func() error) *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Backoffice - delivery admin panel",
		Long:  "Backoffice CLI: manage orders, users, couriers, businesses, and the catalog of a delivery platform.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(LoginCmd())
	root.AddCommand(LogoutCmd())
	root.AddCommand(WhoamiCmd())
	root.AddCommand(ListCmd())
	root.AddCommand(DeleteCmd())
	root.AddCommand(StatusCmd())
	root.AddCommand(MockServerCmd())
	return root
}
