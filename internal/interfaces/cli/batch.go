package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/rdktools-go/internal/descriptors"
	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdktools-go/pkg/errors"
)

var (
	batchInputPath  string
	batchSize       int
	batchConcurrent int
	batchRadius     int
	batchFPBits     int
)

// batchRow is one line of batch output. The descriptor fields of an invalid
// row stay zero, since JSON cannot carry the NaN values the descriptor
// collaborator returns for it.
type batchRow struct {
	SMILES          string  `json:"smiles"`
	Valid           bool    `json:"valid"`
	Canonical       string  `json:"canonical"`
	MolecularWeight float64 `json:"molecular_weight"`
	LogP            float64 `json:"logp"`
	TPSA            float64 `json:"tpsa"`
}

type batchOutput struct {
	Rows       []batchRow `json:"rows"`
	TotalCount int        `json:"total_count"`
	ValidCount int        `json:"valid_count"`
}

// NewBatchCmd creates the "batch" subcommand: run the concurrent descriptor
// collaborator over a newline-delimited SMILES file.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate descriptors and validity for a newline-delimited SMILES file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd)
		},
	}

	cmd.Flags().StringVar(&batchInputPath, "input", "", "path to a newline-delimited SMILES file (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "batch size; 0 uses the configured default")
	cmd.Flags().IntVar(&batchConcurrent, "concurrency", 0, "worker concurrency; 0 uses the configured default")
	cmd.Flags().IntVar(&batchRadius, "radius", 2, "fingerprint radius")
	cmd.Flags().IntVar(&batchFPBits, "fingerprint-bits", 256, "fingerprint width in bits")

	return cmd
}

func runBatch(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	logger := cliCtx.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	if batchInputPath == "" {
		return errors.InvalidParam("--input is required")
	}

	smiles, err := readLines(batchInputPath)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidParam, "failed to read input file")
	}

	opts := descriptors.BatchOptions{
		BatchSize:   batchSize,
		Concurrency: batchConcurrent,
		Radius:      batchRadius,
		NBits:       batchFPBits,
	}
	if opts.BatchSize == 0 && cliCtx.Config != nil {
		opts.BatchSize = cliCtx.Config.Descriptors.BatchSize
	}
	if opts.Concurrency == 0 && cliCtx.Config != nil {
		opts.Concurrency = cliCtx.Config.Descriptors.Concurrency
	}

	logger.Info("running batch descriptor calculation",
		logging.Int("count", len(smiles)),
		logging.Int("batch_size", opts.BatchSize))

	result, err := descriptors.BatchProcess(cmd.Context(), smiles, opts)
	if err != nil {
		logger.WithError(err).Error("batch processing failed")
		return err
	}

	out := batchOutput{
		Rows:       make([]batchRow, len(smiles)),
		TotalCount: len(smiles),
	}
	for i, s := range smiles {
		out.Rows[i] = batchRow{
			SMILES:    s,
			Valid:     result.Valid[i],
			Canonical: result.Canonical[i],
		}
		if result.Valid[i] {
			out.Rows[i].MolecularWeight = result.Descriptors[i].MolecularWeight
			out.Rows[i].LogP = result.Descriptors[i].LogP
			out.Rows[i].TPSA = result.Descriptors[i].TPSA
			out.ValidCount++
		}
	}

	return PrintResult(cmd, out)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
