package main

import (
	"context"
	"fmt"

	"GridProverHost/modules/prover"
	"GridProverHost/modules/proverabi"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var executorBin string

func init() {
	hostCmd.AddCommand(executeCmd)
	executeCmd.PersistentFlags().StringVar(&executorBin, "executor-bin", "", "The external dry-run executor executable.")
	executeCmd.PersistentFlags().StringVar(&circuitFile, "circuit", "", "The compiled circuit reference handed to the external toolchain.")

	executeCmd.MarkPersistentFlagRequired("executor-bin")
}

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Dry-run the program through the external executor and cross-check its root",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ExecuteImpl()
	},
}

// ExecuteImpl is the pre-proof sanity check: the executor re-derives the
// commitment from the program words, and a root mismatch here is the only
// local signal that the configured commitment scheme does not match the
// verifier deployment.
func ExecuteImpl() {
	log := logger.Logger().With().Str("cmd", "execute").Logger()

	hostRoot := AssembleImpl()

	runner := prover.Runner{
		ExecutorBin: executorBin,
		CircuitPath: circuitFile,
		Log:         log,
	}
	output, err := runner.Execute(context.Background(), outputFile)
	if err != nil {
		panic(err.Error())
	}

	scraped, err := prover.ScrapeRoot(output)
	if err != nil {
		panic(err.Error())
	}

	if !prover.RootsEqual(scraped, hostRoot[:]) {
		panic(fmt.Sprintf("root mismatch: executor %s, host %s - commitment scheme likely differs from the verifier",
			proverabi.FormatRoot(scraped), proverabi.FormatRoot(hostRoot[:])))
	}

	log.Info().Str("root", proverabi.FormatRoot(hostRoot[:])).Msg("executor root matches host commitment")
}
