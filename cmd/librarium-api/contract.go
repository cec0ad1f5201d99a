package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/librarium/backend/internal/server"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Inspect the API contract",
}

var contractCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the API contract",
	Long:  `Load the API contract the server would enforce and report whether it is a valid OpenAPI 3 document.`,
	RunE:  runContractCheck,
}

var contractLocation string

func init() {
	contractCheckCmd.Flags().StringVarP(&contractLocation, "contract", "c", "", "Contract file path or URL (default: embedded contract)")
	contractCmd.AddCommand(contractCheckCmd)
}

func runContractCheck(cmd *cobra.Command, args []string) error {
	contract, err := server.LoadContract(cmd.Context(), contractLocation)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s, %d operations\n",
		contract.Source(), contract.Title(), contract.Version(), contract.Operations())
	return nil
}
