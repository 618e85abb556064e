package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/config"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/strategies"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cepgroup",
		Short:         "Group school sites for CEP reimbursement",
		Long:          "Evaluate site grouping strategies under the Community Eligibility Provision and report the best one.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		newEvaluateCmd(),
		newStrategiesCmd(),
		newSampleRosterCmd(),
	)

	return root
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List registered strategy identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range strategies.Default(nil).IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newSampleRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-roster",
		Short: "Print the built-in sample roster as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.SampleRoster().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
