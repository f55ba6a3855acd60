package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hireloop/intervue/pkg/server"
)

func NewRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the interview roles the backend knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bold := color.New(color.Bold)
			bold.Fprintln(cmd.OutOrStdout(), "Available interview roles:")
			for _, role := range server.Roles() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", color.CyanString("•"), role)
			}
			return nil
		},
	}
}
