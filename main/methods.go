package main

import (
	"fmt"

	"github.com/adammck/grfm"
	"github.com/spf13/cobra"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the total reaction estimation methods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range []grfm.Method{grfm.NewtonEuler, grfm.InverseDynamics} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %v\n", m, grfm.MethodAliases(m))
		}
	},
}
