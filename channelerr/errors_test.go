// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channelerr

import (
	"errors"
	"io"
	"testing"
)

func TestIsMatchesByCodeOnly(t *testing.T) {
	wrapped := Wrap(TransportError, io.ErrClosedPipe)
	if !errors.Is(wrapped, ErrTransportError) {
		t.Fatal("errors.Is: expected wrapped TransportError to match sentinel")
	}
	if errors.Is(wrapped, ErrBadStream) {
		t.Fatal("errors.Is: wrapped TransportError should not match BadStream")
	}
}

func TestUnwrapReachesCause(t *testing.T) {
	wrapped := Wrap(ParseError, io.EOF)
	if !errors.Is(wrapped, io.EOF) {
		t.Fatal("errors.Is: expected Unwrap to expose the wrapped cause")
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Wrap(BadStream, errors.New("checksum mismatch"))
	want := "bad stream: checksum mismatch"
	if got := err.Error(); got != want {
		t.Fatalf("Error(): got %q want %q", got, want)
	}
}

func TestNewHasNoCause(t *testing.T) {
	err := New(ChannelStopped)
	if err.Error() != "channel stopped" {
		t.Fatalf("Error(): got %q want %q", err.Error(), "channel stopped")
	}
	if err.Unwrap() != nil {
		t.Fatal("Unwrap: expected nil cause")
	}
}
