package main

import (
	"log"
	"os"

	"ngi/config"
	"ngi/services"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "ngi",
		Short: "Guesthouse booking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	rootCmd.AddCommand(
		serveCmd(cfg),
		migrateCmd(cfg),
		exportCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func serveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			log.Println("Migration completed")
			return nil
		},
	}
}

func exportCmd(cfg *config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "export <collection>",
		Short:     "Write a collection as CSV",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: services.ExportCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return services.NewExportService(db).WriteCSV(cmd.Context(), w, args[0])
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write, stdout when empty")
	return cmd
}
