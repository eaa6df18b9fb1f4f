// Package molecule coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/08 10:05
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : batch.go
// @Software: GoLand
package molecule

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of parsing one input of a batch.
type BatchResult struct {
	Index    int
	Input    string
	Molecule *Molecule
	Err      error
}

// BatchOptions configures ParseBatchWithOptions.
type BatchOptions struct {
	// Workers caps the number of concurrent parsers; 0 means GOMAXPROCS.
	Workers int
	// Logger records per-input failures at debug level; nil disables logging.
	Logger *zap.Logger
}

// ParseBatch parses many SMILES strings concurrently. Results preserve the
// input order; each carries its own error, and one bad input never aborts
// the rest.
func ParseBatch(inputs []string) []BatchResult {
	return ParseBatchWithOptions(inputs, BatchOptions{})
}

// ParseBatchWithOptions is ParseBatch with an explicit worker count and an
// optional logger.
func ParseBatchWithOptions(inputs []string, opts BatchOptions) []BatchResult {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			mol, err := Parse(input)
			if err != nil {
				logger.Debug("smiles parse failed",
					zap.Int("index", i),
					zap.String("input", input),
					zap.Error(err))
			}
			results[i] = BatchResult{Index: i, Input: input, Molecule: mol, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// ParseBatchOK parses many SMILES strings concurrently and keeps only the
// successfully parsed molecules, in input order.
func ParseBatchOK(inputs []string) []*Molecule {
	results := ParseBatch(inputs)
	molecules := make([]*Molecule, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			molecules = append(molecules, r.Molecule)
		}
	}
	return molecules
}

// BatchStats summarises a batch run.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// StatsOf tallies the outcomes of a batch.
func StatsOf(results []BatchResult) BatchStats {
	stats := BatchStats{Total: len(results)}
	for _, r := range results {
		if r.Err == nil {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	return stats
}
