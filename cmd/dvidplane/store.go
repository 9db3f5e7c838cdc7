package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/janelia-flyem/dvidplane/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import <file.dcm>",
	Short: "Import a DICOM file as a new pixel set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			id, err := s.ImportDICOM(ctx, args[0], viper.GetString("import.name"), viper.GetBool("import.stats"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored pixel sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			infos, err := s.Store().List(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED\tPIXELS")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.ID, info.Name, humanize.Time(info.Created), info.Set)
			}
			return w.Flush()
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete pixel sets and their planes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			for _, id := range args {
				if err := s.Store().Delete(ctx, id); err != nil {
					return fmt.Errorf("deleting %s: %w", id, err)
				}
			}
			return nil
		})
	},
}

func init() {
	importCmd.Flags().String("name", "", "name of the new pixel set (defaults to the file name)")
	importCmd.Flags().Bool("stats", false, "compute channel statistics from the pixels")
	viper.BindPFlag("import.name", importCmd.Flags().Lookup("name"))
	viper.BindPFlag("import.stats", importCmd.Flags().Lookup("stats"))

	rootCmd.AddCommand(importCmd, listCmd, deleteCmd)
}
