package utils

import "hash/fnv"

// FingerprintString returns the FNV-64a hash of s.
func FingerprintString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
