// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"encoding/binary"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

// queryFlags marks a standard query with recursion desired.
const queryFlags = 0x0100

// Query is a DNS question asking for the A records of a domain name.
//
// Construct using [NewQuery] or set the fields directly.
type Query struct {
	// ID is the 16-bit transaction identifier.
	ID uint16

	// Name is the domain name to query.
	Name string
}

// NewQuery constructs a [*Query] for name with a randomized transaction ID.
func NewQuery(name string) *Query {
	return &Query{
		ID:   dns.Id(),
		Name: name,
	}
}

// Pack serializes the query into wire format: the 12-byte header followed
// by a single question with length-prefixed labels, qtype A, and class IN.
//
// The name is IDNA-mapped to ASCII like a stock client would do. Because
// the wire format itself does not validate labels, a name that fails the
// mapping is encoded with its original spelling, and an oversized label
// silently miscodes rather than producing an error.
func (q *Query) Pack() []byte {
	name := q.Name
	if mapped, err := idna.Lookup.ToASCII(name); err == nil {
		name = mapped
	}
	name = strings.TrimSuffix(name, ".")

	buf := make([]byte, 0, headerSize+len(name)+6)
	buf = binary.BigEndian.AppendUint16(buf, q.ID)
	buf = binary.BigEndian.AppendUint16(buf, queryFlags)
	buf = binary.BigEndian.AppendUint16(buf, 1) // QDCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ANCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // NSCOUNT
	buf = binary.BigEndian.AppendUint16(buf, 0) // ARCOUNT

	for _, label := range strings.Split(name, ".") {
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	buf = append(buf, 0)

	buf = binary.BigEndian.AppendUint16(buf, dns.TypeA)
	buf = binary.BigEndian.AppendUint16(buf, dns.ClassINET)
	return buf
}
