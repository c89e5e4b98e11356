package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gravitrone/backoffice/cli/internal/catalog"
	"github.com/gravitrone/backoffice/cli/internal/listctl"
	"github.com/gravitrone/backoffice/cli/internal/logging"
)

// DeleteCmd returns the `backoffice delete <resource> <id>` command.
func DeleteCmd() *cobra.Command {
	var yes bool
	reg := catalog.Default()
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete one row",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			entry, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			if entry.Delete == nil {
				return fmt.Errorf("%s cannot be deleted", entry.Key)
			}
			if !yes {
				ok, err := confirm(c.InOrStdin(), c.OutOrStdout(), fmt.Sprintf("Delete %s %s? This cannot be undone.", entry.Key, args[1]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.OutOrStdout(), "cancelled")
					return nil
				}
			}
			return runMutation(c, entry, entry.Perms.Delete, func(ctx context.Context, rt *runtime) catalog.Result {
				return entry.Delete(ctx, rt.client, args[1])
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// StatusCmd returns the `backoffice status <resource> <id>` command.
func StatusCmd() *cobra.Command {
	reg := catalog.Default()
	return &cobra.Command{
		Use:   "status <resource> <id>",
		Short: "Toggle a row between active and inactive",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			entry, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			if entry.ToggleStatus == nil {
				return fmt.Errorf("%s has no status", entry.Key)
			}
			return runMutation(c, entry, entry.Perms.Status, func(ctx context.Context, rt *runtime) catalog.Result {
				return entry.ToggleStatus(ctx, rt.client, args[1])
			})
		},
	}
}

// runMutation checks the session and permission, runs fn, and reports the
// outcome message.
func runMutation(c *cobra.Command, entry catalog.Entry, permission string, fn func(context.Context, *runtime) catalog.Result) error {
	rt, err := openRuntime(c.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, err := rt.requireSession()
	if err != nil {
		return err
	}
	if !sess.Gate().Has(permission) {
		return fmt.Errorf("your role cannot do this on %s (%s)", entry.Key, permission)
	}

	ctx, cancel := context.WithTimeout(c.Context(), rt.timeout())
	defer cancel()
	res := fn(ctx, rt)
	logging.Info("cli mutation", "resource", entry.Key, "kind", res.Kind, "err", res.Err)

	switch res.Kind {
	case listctl.OutcomeOK:
		fmt.Fprintln(c.OutOrStdout(), res.Message)
		return nil
	case listctl.OutcomeUnauthorized:
		return rt.rejectSession(c.Context())
	}
	if res.Message == "" && res.Err != nil {
		return res.Err
	}
	return errors.New(res.Message)
}

func confirm(in io.Reader, out io.Writer, title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithInput(in).
		WithOutput(out)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	return ok, nil
}
