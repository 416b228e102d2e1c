package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/app"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/model"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/service"
	"github.com/gramtop961/backend-repo-yn7l2phg-bsg8iw/internal/store"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "shopearn-admin",
		Short: "Maintenance commands for the Shopearn API database",
	}
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(linksCmd())
	rootCmd.AddCommand(sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg := app.LoadConfig()
	return store.Open(store.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Silent: true})
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer store.Close(db)
			fmt.Println("migration complete")
			return nil
		},
	}
}

func linksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Show or change vendor affiliate links",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current vendor links as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer store.Close(db)
			st, err := service.NewVendorLinkService(db).Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set vendor=url [vendor=url...]",
		Short: "Set links; an empty url clears the vendor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd, err := parseLinks(args)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer store.Close(db)
			st, err := service.NewVendorLinkService(db).Save(cmd.Context(), upd)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	})
	return cmd
}

func parseLinks(args []string) (service.AdminSettingUpdate, error) {
	var upd service.AdminSettingUpdate
	for _, a := range args {
		name, link, ok := strings.Cut(a, "=")
		if !ok {
			return upd, fmt.Errorf("expected vendor=url, got %q", a)
		}
		v, ok := model.ParseVendor(name)
		if !ok || !upd.Set(v, link) {
			return upd, fmt.Errorf("unknown vendor %q", name)
		}
	}
	return upd, nil
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Turn ads back on for users whose subscriptions have expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer store.Close(db)
			n, err := service.SweepExpired(cmd.Context(), db, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d users updated\n", n)
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
