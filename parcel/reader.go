// Package parcel decodes Android Binder transaction payloads. A Parcel
// is a little-endian byte stream in which every primitive is padded to
// a 4-byte boundary; strings are UTF-16 by default. Decoding is driven
// by compiled definitions from the definition package.
package parcel

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode"
	"unicode/utf16"
)

// Reader reads aligned little-endian values from a Parcel payload. The
// first failure latches: every later read returns a zero value and
// Err() keeps reporting the original error.
type Reader struct {
	data []byte
	off  int
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the bytes that have not been consumed yet.
func (r *Reader) Remaining() []byte {
	if r.off >= len(r.data) {
		return nil
	}
	return r.data[r.off:]
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = fmt.Errorf("parcel: short read at offset %d: need %d bytes, have %d", r.off, n, len(r.data)-r.off)
		return nil
	}
	buf := r.data[r.off : r.off+n]
	r.off += n
	return buf
}

// align skips padding up to the next multiple of n.
func (r *Reader) align(n int) {
	if r.err != nil {
		return
	}
	if rem := r.off % n; rem != 0 {
		r.take(n - rem)
	}
}

func (r *Reader) Uint32() uint32 {
	buf := r.take(4)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

func (r *Reader) Uint64() uint64 {
	buf := r.take(8)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Int16 reads a short and skips its padding.
func (r *Reader) Int16() int16 {
	buf := r.take(2)
	r.align(4)
	if buf == nil {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(buf))
}

// Byte reads a single byte and skips its padding.
func (r *Reader) Byte() byte {
	b := r.ByteUnaligned()
	r.align(4)
	return b
}

// ByteUnaligned reads a single byte without consuming padding. Byte
// vectors pack their elements tightly.
func (r *Reader) ByteUnaligned() byte {
	buf := r.take(1)
	if buf == nil {
		return 0
	}
	return buf[0]
}

// Char reads a character stored as an int32. Values outside the
// Unicode code space latch an error.
func (r *Reader) Char() rune {
	n := r.Int32()
	if r.err == nil && (n < 0 || n > unicode.MaxRune) {
		r.err = fmt.Errorf("parcel: character value %d out of range at offset %d", n, r.off-4)
	}
	return rune(n)
}

// Bool reads a boolean stored as an int32.
func (r *Reader) Bool() bool {
	return r.Int32() != 0
}

// String16 reads a length-prefixed UTF-16-LE string: a code-unit count,
// the units plus a NUL terminator, then padding.
func (r *Reader) String16() string {
	count := r.Uint32()
	if r.err != nil {
		return ""
	}
	buf := r.take(int(count)*2 + 2)
	r.align(4)
	if buf == nil {
		return ""
	}
	units := make([]uint16, count)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return string(utf16.Decode(units))
}

// String8 reads a length-prefixed UTF-8 string: a byte count, the
// bytes plus a NUL terminator, then padding.
func (r *Reader) String8() string {
	count := r.Int32()
	if r.err != nil {
		return ""
	}
	buf := r.take(int(count))
	r.take(1)
	r.align(4)
	if buf == nil {
		return ""
	}
	return string(buf)
}

// Count reads a vector length prefix.
func (r *Reader) Count() int {
	n := r.Int32()
	if n < 0 {
		if r.err == nil {
			r.err = fmt.Errorf("parcel: negative vector length %d at offset %d", n, r.off-4)
		}
		return 0
	}
	return int(n)
}

// BinderObject is a flat_binder_object as written into a Parcel.
type BinderObject struct {
	Type   uint32 `json:"type"`
	Flags  uint32 `json:"flags"`
	Handle uint64 `json:"handle"`
	Cookie uint64 `json:"cookie"`
	Status uint32 `json:"status,omitempty"`
}

// StrongBinder reads a flat_binder_object. Android versions after 9
// append a status word.
func (r *Reader) StrongBinder(androidVersion int) BinderObject {
	obj := BinderObject{
		Type:   r.Uint32(),
		Flags:  r.Uint32(),
		Handle: r.Uint64(),
		Cookie: r.Uint64(),
	}
	if androidVersion > 9 {
		obj.Status = r.Uint32()
	}
	return obj
}
