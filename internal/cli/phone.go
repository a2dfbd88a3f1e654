package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newChangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change NAME OLD_PHONE NEW_PHONE",
		Short: "Replace a contact's phone number",
		Long: `Replace every occurrence of OLD_PHONE with a single NEW_PHONE.
NEW_PHONE is added even when OLD_PHONE is not present.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.Record
			err := a.withDirectory(true, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				result = r
				return r.EditPhone(args[1], args[2])
			})
			if err != nil {
				return err
			}
			a.logger.Info("phone changed", zap.String("contact", args[0]))
			return a.printResult(cmd.OutOrStdout(), newContactView(result), "Phone changed.")
		},
	}
}

func (a *app) newPhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phone NAME",
		Short: "Show a contact's phone numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.Record
			err := a.withDirectory(false, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				result = r
				return err
			})
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), result.Phones(), result.DescribePhones())
		},
	}
}

func (a *app) newFindPhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-phone NAME PHONE",
		Short: "Check whether a contact has a phone number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var found string
			err := a.withDirectory(false, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				p, ok := r.FindPhone(args[1])
				if !ok {
					return fmt.Errorf("%w: %s", errPhoneNotFound, args[1])
				}
				found = p
				return nil
			})
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), map[string]string{"phone": found}, found)
		},
	}
}

func (a *app) newDeletePhoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-phone NAME PHONE",
		Short: "Remove every occurrence of a phone number from a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.Record
			err := a.withDirectory(true, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				r.DeletePhone(args[1])
				result = r
				return nil
			})
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), newContactView(result), "Phone deleted.")
		},
	}
}

func (a *app) newDeletePhonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-phones NAME",
		Short: "Remove all phone numbers from a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *types.Record
			err := a.withDirectory(true, func(d *types.Directory) error {
				r, err := findRecord(d, args[0])
				if err != nil {
					return err
				}
				r.DeletePhones()
				result = r
				return nil
			})
			if err != nil {
				return err
			}
			return a.printResult(cmd.OutOrStdout(), newContactView(result), "Phones deleted.")
		},
	}
}
