// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedMessage indicates that a DNS message could not be decoded.
var ErrMalformedMessage = errors.New("malformed DNS message")

// pointerTag marks a length byte whose top two bits are set, turning the
// byte pair into a 14-bit compression pointer.
const pointerTag = 0xC0

// maxPointerJumps caps the number of compression jumps while decoding a
// single name, so a pointer loop fails instead of spinning forever.
const maxPointerJumps = 128

// decodeName decodes the possibly compressed domain name starting at off
// inside msg. It returns the name with its labels joined by dots, in
// original order and case, together with the offset of the first byte
// after the field the name occupied at off: after the two pointer bytes
// when the field starts with a pointer, after the terminating zero byte
// otherwise. The first pointer encountered fixes that resume offset; any
// nested pointers keep redirecting without perturbing it.
func decodeName(msg []byte, off int) (string, int, error) {
	var labels []string
	resume := -1
	jumps := 0
	for {
		if off < 0 || off >= len(msg) {
			return "", 0, errors.Wrap(ErrMalformedMessage, "name offset out of range")
		}
		length := int(msg[off])
		switch {
		case length&pointerTag == pointerTag:
			if off+1 >= len(msg) {
				return "", 0, errors.Wrap(ErrMalformedMessage, "truncated compression pointer")
			}
			if jumps++; jumps > maxPointerJumps {
				return "", 0, errors.Wrap(ErrMalformedMessage, "compression pointer loop")
			}
			if resume < 0 {
				resume = off + 2
			}
			off = (length&^pointerTag)<<8 | int(msg[off+1])
		case length == 0:
			if resume < 0 {
				resume = off + 1
			}
			return strings.Join(labels, "."), resume, nil
		default:
			if off+1+length > len(msg) {
				return "", 0, errors.Wrap(ErrMalformedMessage, "truncated label")
			}
			labels = append(labels, string(msg[off+1:off+1+length]))
			off += 1 + length
		}
	}
}
