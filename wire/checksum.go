// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "crypto/sha256"

// doubleSHA256 calculates sha256(sha256(b)) and returns the resulting 32
// bytes, the checksum used to detect corrupted message payloads.
func doubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// CheckSum returns the first four bytes of doubleSHA256(payload), the value
// a heading's checksum field must match for the payload to be accepted.
// Exported so callers framing reads themselves (the channel proxy) can
// verify a payload against the heading they already decoded.
func CheckSum(payload []byte) [4]byte {
	var sum [4]byte
	copy(sum[:], doubleSHA256(payload)[:4])
	return sum
}
