package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	var birthday string

	cmd := &cobra.Command{
		Use:   "add NAME [PHONE]",
		Short: "Add a contact, or add a phone to an existing contact",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var result *types.Record
			created := false

			err := a.withDirectory(true, func(d *types.Directory) error {
				r, ok := d.Find(name)
				if !ok {
					created = true
					var err error
					if birthday != "" {
						r, err = types.NewRecordWithBirthday(name, birthday)
						if err != nil {
							return err
						}
					} else {
						r = types.NewRecord(name)
					}
				} else if birthday != "" {
					if err := r.AddBirthday(birthday); err != nil {
						return err
					}
				}
				if len(args) == 2 {
					if err := r.AddPhone(args[1]); err != nil {
						return err
					}
				}
				if created {
					d.AddRecord(r)
				}
				result = r
				return nil
			})
			if err != nil {
				return err
			}

			a.logger.Info("contact saved", zap.String("contact", name), zap.Bool("created", created))
			msg := "Contact updated."
			if created {
				msg = "Contact added."
			}
			return a.printResult(cmd.OutOrStdout(), newContactView(result), msg)
		},
	}

	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday as DD.MM.YYYY")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withDirectory(true, func(d *types.Directory) error {
				return d.Delete(args[0])
			})
			if err != nil {
				return err
			}
			a.logger.Info("contact deleted", zap.String("contact", args[0]))
			return a.printResult(cmd.OutOrStdout(), map[string]string{"deleted": args[0]}, "Contact deleted.")
		},
	}
}

func (a *app) newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []*types.Record
			err := a.withDirectory(false, func(d *types.Directory) error {
				records = d.Records()
				return nil
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				views := make([]contactView, 0, len(records))
				for _, r := range records {
					views = append(views, newContactView(r))
				}
				return printJSON(w, views)
			}
			if len(records) == 0 {
				fmt.Fprintln(w, "No contacts.")
				return nil
			}
			for _, r := range records {
				fmt.Fprintln(w, r.String())
			}
			return nil
		},
	}
}
