package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/userdesk/internal/domain"
	"github.com/nfrund/userdesk/internal/ui/userdetail"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/nfrund/userdesk/internal/view"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// errActionFailed is returned after the view has already printed the reason.
var errActionFailed = errors.New("action failed")

func newUsersCmd(open serviceOpener) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List, inspect, delete and email user records",
	}

	var page, pageSize int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users ordered by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			list, err := svc.List(cmd.Context(), pageSize, (page-1)*pageSize)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tDISPLAY NAME")
			for _, u := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.Key(), u.Email, u.DisplayName)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			message.NewPrinter(language.English).Fprintf(cmd.OutOrStdout(), "\n%d users on page %d\n", len(list), page)
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	listCmd.Flags().IntVar(&pageSize, "page-size", domain.DefaultPageSize, "users per page")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every attribute of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			user, err := svc.Get(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNotFound) {
				return users.NotFoundError(args[0])
			} else if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, f := range userdetail.Fields(user) {
				fmt.Fprintf(w, "%s:\t%s\n", f.Label, f.Text)
			}
			return w.Flush()
		},
	}

	usersCmd.AddCommand(listCmd, showCmd,
		newActionCmd(open, "delete", "Delete a user after confirmation", (*userdetail.View).OnDeleteClick),
		newActionCmd(open, "email", "Send the notification email to a user after confirmation", (*userdetail.View).OnEmailClick),
	)
	return usersCmd
}

type click = func(v *userdetail.View, ctx context.Context, id string) userdetail.Outcome

// newActionCmd runs one of the record detail actions with terminal
// capabilities: the prompt is read from stdin unless --yes is given.
func newActionCmd(open serviceOpener, name, short string, run click) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			nav := &view.RecordingNavigator{}
			v := userdetail.New(svc, userdetail.Capabilities{
				Notifier:  view.TerminalNotifier{Out: cmd.OutOrStdout()},
				Navigator: nav,
				Confirmer: &view.PromptConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), AssumeYes: yes},
			})
			defer v.Unmount()

			// A declined prompt does nothing and prints nothing.
			if run(v, cmd.Context(), args[0]) == userdetail.Failed {
				return errActionFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

var _ userdetail.Mutations = (*users.Service)(nil)
