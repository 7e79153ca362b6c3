package noise

// Select maps a cell coordinate to a deterministic pseudo-random value.
// The same (x, y, frame, extra) always produces the same result, within a
// run and across runs, so rendered frames are fully reproducible. Callers
// take the result mod a small divisor for density gating or symbol choice.
//
// The mix is the murmur3 64-bit finalizer over the four inputs, each spread
// by its own odd multiplier so that neighbouring letters sharing (x, y) do
// not produce correlated patterns.
func Select(x, y, frame, extra int) uint32 {
	h := uint64(int64(x))*0x9e3779b185ebca87 ^
		uint64(int64(y))*0xc2b2ae3d27d4eb4f ^
		uint64(int64(frame))*0x165667b19e3779f9 ^
		uint64(int64(extra))*0x27d4eb2f165667c5

	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33

	return uint32(h)
}
