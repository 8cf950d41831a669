// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"encoding/binary"
	"net"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// headerSize is the size of the fixed DNS message header.
const headerSize = 12

// ResourceRecord is a single decoded resource record.
//
// The rdata is a tagged variant: exactly one of Addr, Target, and Data is
// populated, selected by Type and RDLength as documented on each field.
type ResourceRecord struct {
	// Name is the owner name of the record.
	Name string

	// Type is the numeric record type.
	Type uint16

	// Class is the numeric record class.
	Class uint16

	// TTL is the time to live in seconds.
	TTL uint32

	// RDLength is the declared length of the rdata in bytes.
	RDLength uint16

	// Addr is the dotted-quad IPv4 address when Type is A and RDLength is 4.
	Addr string

	// Target is the name-server domain name when Type is NS.
	Target string

	// Data is the raw rdata for every other record type.
	Data []byte
}

// Response is a decoded DNS response message.
//
// Construct using [DecodeResponse].
type Response struct {
	// ID is the transaction identifier echoed by the server.
	ID uint16

	// Flags is the flags field, passed through uninterpreted.
	Flags uint16

	// Answers contains the answer section records in wire order.
	Answers []ResourceRecord

	// Authorities contains the authority section records in wire order.
	Authorities []ResourceRecord

	// Additionals contains the additional section records in wire order.
	Additionals []ResourceRecord
}

// DecodeResponse decodes a raw DNS response message.
func DecodeResponse(msg []byte) (*Response, error) {
	if len(msg) < headerSize {
		return nil, errors.Wrap(ErrMalformedMessage, "short header")
	}
	resp := &Response{
		ID:    binary.BigEndian.Uint16(msg[0:]),
		Flags: binary.BigEndian.Uint16(msg[2:]),
	}
	qdcount := int(binary.BigEndian.Uint16(msg[4:]))
	ancount := int(binary.BigEndian.Uint16(msg[6:]))
	nscount := int(binary.BigEndian.Uint16(msg[8:]))
	arcount := int(binary.BigEndian.Uint16(msg[10:]))

	// Skip the echoed question entries: a compressed name plus the
	// 2-byte qtype and 2-byte qclass each.
	off := headerSize
	for i := 0; i < qdcount; i++ {
		_, next, err := decodeName(msg, off)
		if err != nil {
			return nil, err
		}
		off = next + 4
		if off > len(msg) {
			return nil, errors.Wrap(ErrMalformedMessage, "truncated question")
		}
	}

	var err error
	if resp.Answers, off, err = decodeRecords(msg, ancount, off); err != nil {
		return nil, err
	}
	if resp.Authorities, off, err = decodeRecords(msg, nscount, off); err != nil {
		return nil, err
	}
	if resp.Additionals, _, err = decodeRecords(msg, arcount, off); err != nil {
		return nil, err
	}
	return resp, nil
}

// decodeRecords decodes count consecutive resource records starting at off
// and returns them along with the offset past the last record.
func decodeRecords(msg []byte, count, off int) ([]ResourceRecord, int, error) {
	records := make([]ResourceRecord, 0, count)
	for i := 0; i < count; i++ {
		name, next, err := decodeName(msg, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if off+10 > len(msg) {
			return nil, 0, errors.Wrap(ErrMalformedMessage, "truncated resource record header")
		}
		rr := ResourceRecord{
			Name:     name,
			Type:     binary.BigEndian.Uint16(msg[off:]),
			Class:    binary.BigEndian.Uint16(msg[off+2:]),
			TTL:      binary.BigEndian.Uint32(msg[off+4:]),
			RDLength: binary.BigEndian.Uint16(msg[off+8:]),
		}
		off += 10
		rdata := off
		if rdata+int(rr.RDLength) > len(msg) {
			return nil, 0, errors.Wrap(ErrMalformedMessage, "truncated rdata")
		}
		switch {
		case rr.Type == dns.TypeA && rr.RDLength == 4:
			rr.Addr = net.IP(msg[rdata : rdata+4]).String()
		case rr.Type == dns.TypeNS:
			target, _, err := decodeName(msg, rdata)
			if err != nil {
				return nil, 0, err
			}
			rr.Target = target
		default:
			rr.Data = append([]byte(nil), msg[rdata:rdata+int(rr.RDLength)]...)
		}
		// The cursor advances by the declared rdata length no matter how
		// the rdata was interpreted, so a compressed NS target or an
		// unknown type cannot desynchronize the records that follow.
		off = rdata + int(rr.RDLength)
		records = append(records, rr)
	}
	return records, off, nil
}

// AnswerAddrs returns the IPv4 addresses carried by the A records in the
// answer section, in wire order.
func (r *Response) AnswerAddrs() []string {
	var out []string
	for _, rr := range r.Answers {
		if rr.Type == dns.TypeA && rr.Addr != "" {
			out = append(out, rr.Addr)
		}
	}
	return out
}
