// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	littleEndian = binary.LittleEndian
	bigEndian    = binary.BigEndian
)

// uint32Time represents a unix timestamp encoded with a 4-byte unsigned
// integer. It is used as a helper when reading the 4-byte timestamps
// already embedded in several message types via readElement; writers
// encode those timestamps as a plain uint32.
type uint32Time time.Time

// readElement reads a single value from r using little endian byte order.
func readElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint32:
		buf := make([]byte, 4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = littleEndian.Uint32(buf)
		return nil

	case *uint64:
		buf := make([]byte, 8)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = littleEndian.Uint64(buf)
		return nil

	case *int32:
		buf := make([]byte, 4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = int32(littleEndian.Uint32(buf))
		return nil

	case *int64:
		buf := make([]byte, 8)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = int64(littleEndian.Uint64(buf))
		return nil

	case *bool:
		buf := make([]byte, 1)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = buf[0] != 0x00
		return nil

	case *ServiceFlag:
		buf := make([]byte, 8)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = ServiceFlag(littleEndian.Uint64(buf))
		return nil

	case *BitcoinNet:
		buf := make([]byte, 4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = BitcoinNet(littleEndian.Uint32(buf))
		return nil

	case *uint32Time:
		buf := make([]byte, 4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		*e = uint32Time(time.Unix(int64(littleEndian.Uint32(buf)), 0))
		return nil

	case *[4]byte:
		_, err := io.ReadFull(r, e[:])
		return err

	case *[16]byte:
		_, err := io.ReadFull(r, e[:])
		return err

	case *[12]byte:
		_, err := io.ReadFull(r, e[:])
		return err
	}

	return fmt.Errorf("readElement: unhandled type %T", element)
}

// readElements reads multiple values from r using readElement.
func readElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := readElement(r, element); err != nil {
			return err
		}
	}
	return nil
}

// writeElement writes a single value to w using little endian byte order.
func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case uint32:
		buf := make([]byte, 4)
		littleEndian.PutUint32(buf, e)
		_, err := w.Write(buf)
		return err

	case uint64:
		buf := make([]byte, 8)
		littleEndian.PutUint64(buf, e)
		_, err := w.Write(buf)
		return err

	case int32:
		buf := make([]byte, 4)
		littleEndian.PutUint32(buf, uint32(e))
		_, err := w.Write(buf)
		return err

	case int64:
		buf := make([]byte, 8)
		littleEndian.PutUint64(buf, uint64(e))
		_, err := w.Write(buf)
		return err

	case bool:
		buf := make([]byte, 1)
		if e {
			buf[0] = 0x01
		}
		_, err := w.Write(buf)
		return err

	case ServiceFlag:
		buf := make([]byte, 8)
		littleEndian.PutUint64(buf, uint64(e))
		_, err := w.Write(buf)
		return err

	case BitcoinNet:
		buf := make([]byte, 4)
		littleEndian.PutUint32(buf, uint32(e))
		_, err := w.Write(buf)
		return err

	case [4]byte:
		_, err := w.Write(e[:])
		return err

	case [12]byte:
		_, err := w.Write(e[:])
		return err

	case [16]byte:
		_, err := w.Write(e[:])
		return err
	}

	return fmt.Errorf("writeElement: unhandled type %T", element)
}

// writeElements writes multiple values to w using writeElement.
func writeElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := writeElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

// errNonCanonicalVarInt is the error returned when a variable length integer
// is decoded from a shorter-than-necessary encoding.
var errNonCanonicalVarInt = errors.New("non-canonical varint")

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64, following the same minimal-encoding rules the Bitcoin wire
// protocol uses for transaction and address counts.
func ReadVarInt(r io.Reader) (uint64, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	discriminant := b[0]

	switch discriminant {
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		rv := littleEndian.Uint64(buf[:])
		if rv < 0x100000000 {
			return 0, errNonCanonicalVarInt
		}
		return rv, nil

	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		rv := uint64(littleEndian.Uint32(buf[:]))
		if rv < 0x10000 {
			return 0, errNonCanonicalVarInt
		}
		return rv, nil

	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		rv := uint64(littleEndian.Uint16(buf[:]))
		if rv < 0xfd {
			return 0, errNonCanonicalVarInt
		}
		return rv, nil
	}

	return uint64(discriminant), nil
}

// WriteVarInt writes val to w using the minimal variable length integer
// encoding.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		_, err := w.Write([]byte{byte(val)})
		return err
	}
	return writeVarIntLarge(w, val)
}

func writeVarIntLarge(w io.Writer, val uint64) error {
	switch {
	case val <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		buf := make([]byte, 2)
		littleEndian.PutUint16(buf, uint16(val))
		_, err := w.Write(buf)
		return err

	case val <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		buf := make([]byte, 4)
		littleEndian.PutUint32(buf, uint32(val))
		_, err := w.Write(buf)
		return err

	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		buf := make([]byte, 8)
		littleEndian.PutUint64(buf, val)
		_, err := w.Write(buf)
		return err
	}
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would use to
// serialize val.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// ReadVarString reads a variable length string from r, prefixed by a
// variable length integer giving the string's length in bytes.
func ReadVarString(r io.Reader) (string, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}

	// Limit the read so a forged length can't force a huge allocation;
	// the caller still rejects any message exceeding max_payload well
	// before this point, this is a last-ditch backstop.
	if count > MaxMessagePayload {
		return "", fmt.Errorf("variable length string is too long "+
			"[count %d, max %d]", count, MaxMessagePayload)
	}

	buf := make([]byte, count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteVarString writes str to w prefixed with its length as a variable
// length integer.
func WriteVarString(w io.Writer, str string) error {
	if err := WriteVarInt(w, uint64(len(str))); err != nil {
		return err
	}
	_, err := w.Write([]byte(str))
	return err
}
