// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package urlmapping

// FNV-1a hash constants for inline hashing.
//
// FNV-1a is implemented inline instead of through hash/fnv for
// zero-allocation lookups: fnv.New64a() returns an interface whose Write
// call cannot be inlined and requires a []byte conversion of the path.
const (
	fnvOffsetBasis = 14695981039346656037 // FNV-1a 64-bit offset basis
	fnvPrime       = 1099511628211        // FNV-1a 64-bit prime
)

// hashPath computes the FNV-1a hash of a normalized path.
func hashPath(path string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(path) {
		hash ^= uint64(path[i])
		hash *= fnvPrime
	}
	return hash
}

// bloomFilter answers "definitely not a static path" without touching the
// static index. False positives fall through to the index lookup; false
// negatives cannot happen.
//
// Multiple hash functions are derived from one FNV-1a base hash by XORing
// per-function seeds, so membership tests never re-hash the path.
type bloomFilter struct {
	bits  []uint64 // Bit array (each uint64 holds 64 bits)
	size  uint64   // Total number of bits
	seeds []uint64 // Hash seeds for multiple hash functions
}

// optimalBloomFilterSize calculates the bloom filter size from the static
// path count. Uses 10 bits per path for approximately 1% false positive rate
// (m = -n*ln(p) / ln(2)^2 with p = 0.01), clamped to avoid degenerate sizes.
func optimalBloomFilterSize(staticCount int) uint64 {
	if staticCount <= 0 {
		return defaultBloomFilterSize
	}
	size := uint64(staticCount * 10)
	if size < 100 {
		return 100
	}
	if size > 1000000 {
		return 1000000
	}
	return size
}

func newBloomFilter(size uint64, numHashFuncs int) *bloomFilter {
	bf := &bloomFilter{
		bits:  make([]uint64, (size+63)/64), // Round up to nearest 64-bit boundary
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		bf.seeds[i] = uint64(i + 1)
	}
	return bf
}

// addHash records a path by its precomputed FNV-1a hash.
func (bf *bloomFilter) addHash(baseHash uint64) {
	for _, seed := range bf.seeds {
		pos := (baseHash ^ seed) % bf.size
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// testHash reports whether a path with the given precomputed hash might be
// present. Exits on the first unset bit since misses dominate lookups.
func (bf *bloomFilter) testHash(baseHash uint64) bool {
	for _, seed := range bf.seeds {
		pos := (baseHash ^ seed) % bf.size
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
