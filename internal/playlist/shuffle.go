/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package playlist

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// Shuffle returns a stable pseudo-random permutation of files. The seed
// string (a channel identifier) is hashed with SHA-256 and the first 128
// bits initialize a PCG generator, so the same seed and input always
// produce the same order, in any process. The input slice is not mutated.
func Shuffle(files []string, seed string) []string {
	out := make([]string, len(files))
	copy(out, files)

	sum := sha256.Sum256([]byte(seed))
	rng := rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[0:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
