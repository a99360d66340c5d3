package main

import (
	"fmt"
	"os"

	"GridProverHost/modules/challenge"
	"GridProverHost/modules/commitment"

	"github.com/spf13/cobra"
)

var (
	programFile   string
	challengeFile string
	inputsList    string
	expectedList  string
	outputFile    string
	schemeName    string
	inlineRoot    bool
)

func init() {
	hostCmd.PersistentFlags().StringVar(&programFile, "program", "", "The grid assembly source file to compile.")
	hostCmd.PersistentFlags().StringVar(&challengeFile, "challenge", "", "The challenge document with inputs and expected outputs.")
	hostCmd.PersistentFlags().StringVar(&inputsList, "inputs", "", "Comma-separated challenge input values, overriding the challenge document.")
	hostCmd.PersistentFlags().StringVar(&expectedList, "expected", "", "Comma-separated expected output values, overriding the challenge document.")
	hostCmd.PersistentFlags().StringVar(&outputFile, "output", "args.json", "The public-argument document output file.")
	hostCmd.PersistentFlags().StringVar(&schemeName, "commitment", commitment.FieldSchemeName, "The commitment scheme - one of mimc-bn254/keccak256, must match the verifier deployment.")
	hostCmd.PersistentFlags().BoolVar(&inlineRoot, "inline-root", true, "Embed the host-computed root in the argument document; disable when the consumer re-derives it from the program words.")

	hostCmd.MarkPersistentFlagRequired("program")
}

var hostCmd = &cobra.Command{
	Use:   "grid-host",
	Short: "Compile grid assembly into a committed program image and prover arguments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := hostCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

// loadChallengeValues resolves the challenge document and the inline flag
// overrides into the input and expected value lists.
func loadChallengeValues() (inputs, expected []uint32) {
	if challengeFile != "" {
		ch, err := challenge.Load(challengeFile)
		if err != nil {
			panic(err.Error())
		}
		inputs, expected = ch.Inputs, ch.Expected
	}

	if inputsList != "" {
		values, err := challenge.ParseValueList(inputsList)
		if err != nil {
			panic(err.Error())
		}
		inputs = values
	}
	if expectedList != "" {
		values, err := challenge.ParseValueList(expectedList)
		if err != nil {
			panic(err.Error())
		}
		expected = values
	}

	return inputs, expected
}
