// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

func TestVarIntWire(t *testing.T) {
	tests := []struct {
		val  uint64
		size int
	}{
		{0, 1},
		{0xfc, 1},
		{0xfd, 3},
		{0xffff, 3},
		{0x10000, 5},
		{0xffffffff, 5},
		{0x100000000, 9},
	}

	for i, test := range tests {
		if got := VarIntSerializeSize(test.val); got != test.size {
			t.Errorf("VarIntSerializeSize #%d: got %d want %d", i, got, test.size)
		}

		var buf bytes.Buffer
		if err := WriteVarInt(&buf, test.val); err != nil {
			t.Errorf("WriteVarInt #%d error %v", i, err)
			continue
		}
		if buf.Len() != test.size {
			t.Errorf("WriteVarInt #%d: wrote %d bytes want %d", i, buf.Len(), test.size)
		}

		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Errorf("ReadVarInt #%d error %v", i, err)
			continue
		}
		if got != test.val {
			t.Errorf("ReadVarInt #%d: got %d want %d", i, got, test.val)
		}
	}
}

func TestVarIntNonCanonical(t *testing.T) {
	// 0xfd discriminant followed by a 2-byte value that fits in a single
	// byte is a non-canonical encoding and must be rejected.
	buf := bytes.NewReader([]byte{0xfd, 0x01, 0x00})
	if _, err := ReadVarInt(buf); err != errNonCanonicalVarInt {
		t.Fatalf("ReadVarInt: got %v want %v", err, errNonCanonicalVarInt)
	}
}

func TestVarStringWire(t *testing.T) {
	tests := []string{"", "a", "the quick brown fox"}

	for i, s := range tests {
		var buf bytes.Buffer
		if err := WriteVarString(&buf, s); err != nil {
			t.Errorf("WriteVarString #%d error %v", i, err)
			continue
		}
		got, err := ReadVarString(&buf)
		if err != nil {
			t.Errorf("ReadVarString #%d error %v", i, err)
			continue
		}
		if got != s {
			t.Errorf("ReadVarString #%d: got %q want %q", i, got, s)
		}
	}
}
