package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// referenceDateLayout is the layout accepted by "birthdays --date".
const referenceDateLayout = "2006-01-02"

func (a *app) newAddBirthdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-birthday NAME DD.MM.YYYY",
		Short: "Set or replace a contact's birthday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.Record
			err := a.withDirectory(true, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				result = r
				return r.AddBirthday(args[1])
			})
			if err != nil {
				return err
			}
			a.logger.Info("birthday set", zap.String("contact", args[0]))
			return a.printResult(cmd.OutOrStdout(), newContactView(result), "Birthday added.")
		},
	}
}

func (a *app) newShowBirthdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-birthday NAME",
		Short: "Show a contact's birthday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var birthday string
			err := a.withDirectory(false, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				b, ok := r.Birthday()
				if !ok {
					return fmt.Errorf("%w for %q", errNoBirthday, args[0])
				}
				birthday = b.String()
				return nil
			})
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), map[string]string{"birthday": birthday}, birthday)
		},
	}
}

func (a *app) newBirthdaysCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "List birthdays in the next seven days by weekday",
		Long: `List the contacts whose birthday falls within the seven days after today,
grouped Monday through Friday. Weekend birthdays are listed under Monday.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			if date != "" {
				parsed, err := time.ParseInLocation(referenceDateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("%w: %q", errInvalidDate, date)
				}
				now = parsed
			}

			var week types.BirthdayWeek
			err := a.withDirectory(false, func(d *types.Directory) error {
				week = d.BirthdaysPerWeek(now)
				return nil
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(w, week)
			}
			for _, b := range week {
				fmt.Fprintf(w, "%s: %s\n", b.Day, strings.Join(b.Names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "reference date as YYYY-MM-DD (default: now)")
	return cmd
}
