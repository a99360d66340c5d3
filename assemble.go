package main

import (
	"os"

	"GridProverHost/modules/assembler"
	"GridProverHost/modules/commitment"
	"GridProverHost/modules/proverabi"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

func init() {
	hostCmd.AddCommand(assembleCmd)
}

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a grid program and write the public-argument document",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		AssembleImpl()
	},
}

// AssembleImpl runs the full assembly pipeline: parse, encode, commit,
// build the argument vector, write the args file. It returns the
// host-computed root so the prove/execute commands can reuse it.
func AssembleImpl() [32]byte {
	log := logger.Logger().With().Str("cmd", "assemble").Logger()

	src, err := os.ReadFile(programFile)
	if err != nil {
		panic(err.Error())
	}

	grid, err := assembler.Assemble(string(src))
	if err != nil {
		panic(err.Error())
	}

	words := grid.EncodeImage()

	scheme, err := commitment.FromName(schemeName)
	if err != nil {
		panic(err.Error())
	}
	root := scheme.Commit(grid.NodeWords())

	inputs, expected := loadChallengeValues()

	var inlined []byte
	if inlineRoot {
		inlined = root[:]
	}
	args := proverabi.Build(inputs, expected, inlined, words)

	out, err := os.Create(outputFile)
	if err != nil {
		panic(err.Error())
	}
	defer out.Close()

	if err := proverabi.WriteJSON(out, args); err != nil {
		panic(err.Error())
	}

	log.Info().
		Str("program", programFile).
		Int("words", len(words)).
		Str("scheme", scheme.Name()).
		Str("root", proverabi.FormatRoot(root[:])).
		Str("output", outputFile).
		Msg("assembled program image")

	return root
}
