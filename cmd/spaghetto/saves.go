package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/persist"
	"github.com/spaghetto/manager/internal/restaurant"
)

func savesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}
	cmd.AddCommand(savesListCmd())
	cmd.AddCommand(savesDeleteCmd())
	cmd.AddCommand(savesExportCmd())
	cmd.AddCommand(savesImportCmd())
	return cmd
}

func savesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			infos, err := store.ListSaves(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println(SubtleStyle.Render("No saves yet."))
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s: %d bytes, updated %s\n",
					BoldStyle.Render(info.Slot), info.Size,
					info.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func savesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSave(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted slot %q.", args[0])))
			return nil
		},
	}
}

func savesExportCmd() *cobra.Command {
	var wrapped bool
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the current slot to a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				document, err := persist.Marshal(r.Snapshot())
				if err != nil {
					return err
				}
				if wrapped {
					document = persist.Wrap(document)
				}
				if err := os.WriteFile(args[0], document, 0600); err != nil {
					return fmt.Errorf("failed to write save file: %w", err)
				}
				fmt.Println(SuccessStyle.Render("Successfully saved!"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&wrapped, "wrapped", false, "apply the text-safe encoding layer")
	return cmd
}

func savesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a save file into the current slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read save file: %w", err)
			}

			// Raw or wrapped, Unmarshal doesn't care.
			state, err := persist.Unmarshal(data)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("%q is not a valid save file", args[0]), err)
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			document, err := persist.Marshal(state)
			if err != nil {
				return err
			}
			if err := store.PutSave(cmd.Context(), viper.GetString("save.slot"), document); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Successfully loaded!"))
			return nil
		},
	}
}
