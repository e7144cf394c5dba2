// Package cobs implements Consistent Overhead Byte Stuffing. An encoded
// frame contains no zero bytes, so 0x00 can delimit frames in a stream.
package cobs

import "errors"

var (
	// ErrZeroByte is returned when an encoded frame contains 0x00.
	ErrZeroByte = errors.New("cobs: zero byte in encoded frame")
	// ErrTruncated is returned when a block code points past the end of the frame.
	ErrTruncated = errors.New("cobs: truncated frame")
)

// Delimiter terminates frames on the wire.
const Delimiter byte = 0x00

// Encode stuffs src. The result is at most len(src)+len(src)/254+1 bytes.
func Encode(src []byte) []byte {
	dst := make([]byte, len(src)+len(src)/254+1)
	codeIdx, write := 0, 1
	dst[codeIdx] = 1
	for _, b := range src {
		if b == 0 {
			codeIdx = write
			write++
			dst[codeIdx] = 1
			continue
		}
		dst[codeIdx]++
		dst[write] = b
		write++
		if dst[codeIdx] == 0xff {
			codeIdx = write
			write++
			dst[codeIdx] = 1
		}
	}
	return dst[:write]
}

// Decode reverses Encode. src must not include the frame delimiter.
func Decode(src []byte) ([]byte, error) {
	dst := make([]byte, 0, len(src))
	var code byte
	zeroSeg := false
	for _, b := range src {
		if b == 0 {
			return nil, ErrZeroByte
		}
		if code == 0 {
			if zeroSeg {
				dst = append(dst, 0)
			}
			zeroSeg = b < 0xff
			code = b - 1
			continue
		}
		dst = append(dst, b)
		code--
	}
	if code != 0 {
		return nil, ErrTruncated
	}
	return dst, nil
}
