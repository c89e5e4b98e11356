package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/backoffice/cli/internal/catalog"
)

// WhoamiCmd returns the `backoffice whoami` command.
func WhoamiCmd() *cobra.Command {
	var showPermissions bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and what they can access",
		RunE: func(c *cobra.Command, _ []string) error {
			rt, err := openRuntime(c.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.requireSession()
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "user:     %s\n", sess.Username)
			fmt.Fprintf(out, "server:   %s\n", rt.cfg.BaseURL)
			if sess.ExpiresAt.IsZero() {
				fmt.Fprintln(out, "expires:  never")
			} else {
				fmt.Fprintf(out, "expires:  %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}

			var keys []string
			for _, e := range catalog.Default().Visible(sess.Gate()) {
				keys = append(keys, e.Key)
			}
			if len(keys) == 0 {
				fmt.Fprintln(out, "sections: none")
			} else {
				fmt.Fprintf(out, "sections: %s\n", strings.Join(keys, ", "))
			}

			if showPermissions {
				fmt.Fprintln(out, "permissions:")
				for _, code := range sess.Gate().Codes() {
					fmt.Fprintf(out, "  %s\n", code)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showPermissions, "permissions", "p", false, "list every permission code")
	return cmd
}
