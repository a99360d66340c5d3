// Package prover drives the external proving and dry-run executables. It
// contributes no algorithmic value of its own: the host's contract is the
// argument document it hands over, everything past that point belongs to
// the external toolchain.
package prover

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Runner locates the external executables for one deployment.
type Runner struct {
	ProverBin   string
	ExecutorBin string
	CircuitPath string

	Log zerolog.Logger
}

// Prove invokes the external prover on the argument document, writing the
// proof artifact to proofOut. The call blocks until the process exits; a
// non-zero exit status fails the run, with no retry and no timeout beyond
// whatever the caller's context imposes.
func (r *Runner) Prove(ctx context.Context, argsPath, proofOut string) error {
	cmd := exec.CommandContext(ctx, r.ProverBin,
		"--circuit", r.CircuitPath,
		"--args", argsPath,
		"--out", proofOut,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Log.Info().Str("bin", r.ProverBin).Str("args", argsPath).Msg("invoking prover")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("prover failed: %w\n%s", err, stderr.String())
	}
	r.Log.Info().Str("proof", proofOut).Msg("prover finished")

	return nil
}

// Execute runs the external dry-run executor on the argument document and
// returns its raw textual output for scraping. Used only as a pre-proof
// sanity check.
func (r *Runner) Execute(ctx context.Context, argsPath string) (string, error) {
	cmd := exec.CommandContext(ctx, r.ExecutorBin,
		"--circuit", r.CircuitPath,
		"--args", argsPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Log.Info().Str("bin", r.ExecutorBin).Str("args", argsPath).Msg("invoking executor")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("executor failed: %w\n%s", err, stderr.String())
	}

	return stdout.String(), nil
}

var rootLine = regexp.MustCompile(`(?mi)^\s*(?:program[ _-])?(?:merkle[ _-])?root\s*[:=]\s*(0x[0-9a-fA-F]+)\s*$`)

// ScrapeRoot pulls the computed commitment root out of the executor's
// textual output. The executor prints it as a `root: 0x…` line; this is
// brittle glue by nature and errors when no such line exists.
func ScrapeRoot(output string) ([]byte, error) {
	m := rootLine.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no root line found in executor output")
	}

	digits := strings.TrimPrefix(m[1], "0x")
	if len(digits) > 64 {
		return nil, fmt.Errorf("scraped root %s exceeds 32 bytes", m[1])
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("scraped root %s: %w", m[1], err)
	}

	// left-pad to the fixed 32-byte root width
	root := make([]byte, 32)
	copy(root[32-len(raw):], raw)
	return root, nil
}

// RootsEqual compares a scraped root against the host-computed one as field
// values, so formatting differences in leading zeros cannot cause a false
// mismatch.
func RootsEqual(a, b []byte) bool {
	return new(big.Int).SetBytes(a).Cmp(new(big.Int).SetBytes(b)) == 0
}
