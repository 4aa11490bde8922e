package main

import (
	"fmt"

	"github.com/jrsteele09/photo-wall/internal/config"
	"github.com/jrsteele09/photo-wall/internal/db/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrate.Up, migrate.Down},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := migrate.Run(c.GetDatabaseURL(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: ok\n", args[0])
			return nil
		},
	}
}
