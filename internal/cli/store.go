package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/store"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored layout sets",
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// withStore opens the configured store backend, runs fn, and closes it.
func (c *CLI) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	st, err := c.newStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layout sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				names, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					printInfo("No layout sets stored")
					return nil
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

// storeShowCommand creates the "store show" subcommand.
func (c *CLI) storeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored layout set as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				set, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(set, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			})
		},
	}
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <file>",
		Short: "Create or replace a layout set from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read set: %w", err)
			}
			var set store.LayoutSet
			if err := json.Unmarshal(data, &set); err != nil {
				return fmt.Errorf("parse set %s: %w", args[1], err)
			}
			set.Name = args[0]

			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Save(cmd.Context(), &set); err != nil {
					return err
				}
				printSuccess("Saved %q with %d breakpoints", set.Name, len(set.Breakpoints))
				printNextStep("Render it", fmt.Sprintf("%s render --set %s", appName, set.Name))
				return nil
			})
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored layout set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %q", args[0])
				return nil
			})
		},
	}
}
