package main

import (
	"context"

	"GridProverHost/modules/prover"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	proverBin   string
	circuitFile string
	proofOut    string
)

func init() {
	hostCmd.AddCommand(proveCmd)
	proveCmd.PersistentFlags().StringVar(&proverBin, "prover-bin", "", "The external prover executable.")
	proveCmd.PersistentFlags().StringVar(&circuitFile, "circuit", "", "The compiled circuit reference handed to the external toolchain.")
	proveCmd.PersistentFlags().StringVar(&proofOut, "proof-out", "proof.bin", "The proof artifact output file.")

	proveCmd.MarkPersistentFlagRequired("prover-bin")
	proveCmd.MarkPersistentFlagRequired("circuit")
}

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Assemble a grid program and hand it to the external prover",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ProveImpl()
	},
}

func ProveImpl() {
	log := logger.Logger().With().Str("cmd", "prove").Logger()

	AssembleImpl()

	runner := prover.Runner{
		ProverBin:   proverBin,
		CircuitPath: circuitFile,
		Log:         log,
	}
	if err := runner.Prove(context.Background(), outputFile, proofOut); err != nil {
		panic(err.Error())
	}

	log.Info().Str("proof", proofOut).Msg("proof generated")
}
