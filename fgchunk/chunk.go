// Package fgchunk splits a byte buffer into equal-size chunks
// suitable for Merkle tree construction,
// with optional Reed-Solomon parity chunks appended
// so damaged chunks can be reconstructed later.
package fgchunk

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Config is the configuration for [Split].
type Config struct {
	// Desired maximum size of one chunk, in bytes. Required.
	ChunkSize int

	// ParityRatio indicates the desired ratio of
	// parity chunks to data chunks.
	// For example, ParityRatio=0.25 means there will be
	// one parity chunk for every four data chunks.
	// The parity count is rounded down
	// if the ratio does not result in a whole number.
	// Zero disables parity.
	ParityRatio float32
}

// Result is the value returned by [Split].
type Result struct {
	// The number of data and parity chunks.
	NumData, NumParity int

	// The data chunks followed by the parity chunks.
	// All chunks have equal length;
	// the final data chunk is zero-padded to match.
	Chunks [][]byte
}

// Split divides data into equal-size chunks per cfg.
//
// Splitting an empty buffer is valid and yields zero chunks.
// Configuration errors cause a panic.
func Split(data []byte, cfg Config) (Result, error) {
	if cfg.ChunkSize <= 0 {
		panic(fmt.Errorf(
			"BUG: ChunkSize must be positive (got %d)", cfg.ChunkSize,
		))
	}
	if cfg.ParityRatio < 0 {
		panic(fmt.Errorf(
			"BUG: ParityRatio must be non-negative (got %g)", cfg.ParityRatio,
		))
	}

	if len(data) == 0 {
		return Result{}, nil
	}

	nData := len(data) / cfg.ChunkSize
	if len(data)%cfg.ChunkSize > 0 {
		nData++
	}
	nParity := int(cfg.ParityRatio * float32(nData))

	res := Result{
		NumData:   nData,
		NumParity: nParity,
	}

	enc, err := reedsolomon.New(
		nData, nParity,
		reedsolomon.WithAutoGoroutines(cfg.ChunkSize),
	)
	if err != nil {
		return res, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	chunks, err := enc.Split(data)
	if err != nil {
		return res, fmt.Errorf(
			"failed to split data into chunks: %w", err,
		)
	}

	if nParity > 0 {
		if err := enc.Encode(chunks); err != nil {
			return res, fmt.Errorf(
				"failed to generate parity chunks: %w", err,
			)
		}
	}

	res.Chunks = chunks
	return res, nil
}
