// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnswalk resolves a domain name to IPv4 addresses by speaking the
// DNS wire protocol over UDP and walking the delegation hierarchy manually
// (root, then TLD, then authoritative) instead of asking a recursive
// resolver to do the work.
//
// [NewQuery] and [*Query] construct and pack an A-record query message.
// [DecodeResponse] and [*Response] unpack a raw reply, including names
// using DNS compression. [*Resolver] drives the iterative walk over a
// [Transport] such as [*UDPTransport].
//
// This package implements the wire codec from scratch on purpose. It
// interprets A and NS records only and preserves every other rdata as
// opaque bytes. We still use [github.com/miekg/dns] for transaction-ID
// generation and for the standard numeric constants.
package dnswalk
