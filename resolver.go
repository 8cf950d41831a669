// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// State is a resolver engine state.
type State int

const (
	// StateQuerying means the engine is about to send the next query.
	StateQuerying State = iota

	// StateAnswered is the terminal success state: the answer section
	// of the latest response contained at least one A record.
	StateAnswered

	// StateNoProgress is the terminal failure state: the walk stopped
	// because of a timeout, a malformed reply, or a referral without a
	// usable next-server address.
	StateNoProgress
)

// ErrNoNextServer indicates a referral carrying no additional-section A
// record from which to pick the next server to query.
var ErrNoNextServer = errors.New("no next server found")

// ErrHopLimit indicates that the optional hop cap was exhausted before
// the walk terminated on its own.
var ErrHopLimit = errors.New("hop limit reached")

// Result describes how a resolution run terminated.
type Result struct {
	// State is the terminal state of the run.
	State State

	// Server is the last server queried.
	Server string

	// Addrs contains the resolved IPv4 addresses when State is
	// [StateAnswered] and is empty otherwise.
	Addrs []string
}

// Resolver walks the DNS delegation hierarchy iteratively: it queries the
// current server, and either collects the answer or follows the referral
// glue to the next server. Exactly one query is outstanding at any time.
//
// The zero value is not usable: set Transport first.
type Resolver struct {
	// Transport is the MANDATORY datagram transport.
	Transport Transport

	// NewID OPTIONALLY overrides transaction-ID generation, which
	// defaults to [dns.Id]. Tests use this to make queries
	// deterministic.
	NewID func() uint16

	// MaxHops OPTIONALLY caps how many servers the walk may query.
	// Zero or negative means no cap, which is the faithful behavior:
	// termination then relies on the delegation hierarchy converging
	// or on a query timing out.
	MaxHops int

	// OnQuery is OPTIONALLY invoked before each query is sent.
	OnQuery func(server string)

	// OnResponse is OPTIONALLY invoked for every decoded response.
	OnResponse func(server string, resp *Response)
}

// Run resolves domain starting from server, an IPv4 address in dotted-quad
// form, and follows referrals until the walk terminates.
//
// The returned [*Result] is always non-nil and records the terminal state
// and the last server queried. A non-nil error means the run ended in
// [StateNoProgress] and wraps [ErrReplyTimeout], [ErrMalformedMessage],
// [ErrNoNextServer], or [ErrHopLimit] accordingly.
//
// Replies are accepted without matching their transaction ID against the
// query. Cross-checking the ID would harden the engine against spoofed or
// stale datagrams and is left to the caller's threat model.
func (r *Resolver) Run(domain, server string) (*Result, error) {
	for hops := 0; ; hops++ {
		if r.MaxHops > 0 && hops >= r.MaxHops {
			return &Result{State: StateNoProgress, Server: server},
				errors.Wrapf(ErrHopLimit, "gave up after %d servers", hops)
		}

		query := NewQuery(domain)
		if r.NewID != nil {
			query.ID = r.NewID()
		}
		if r.OnQuery != nil {
			r.OnQuery(server)
		}
		if err := r.Transport.Send(query.Pack(), server); err != nil {
			return &Result{State: StateNoProgress, Server: server}, err
		}

		payload, err := r.Transport.Recv()
		if err != nil {
			return &Result{State: StateNoProgress, Server: server}, err
		}
		resp, err := DecodeResponse(payload)
		if err != nil {
			return &Result{State: StateNoProgress, Server: server}, err
		}
		if r.OnResponse != nil {
			r.OnResponse(server, resp)
		}

		if addrs := resp.AnswerAddrs(); len(addrs) > 0 {
			return &Result{State: StateAnswered, Server: server, Addrs: addrs}, nil
		}

		next, ok := chooseNextServer(resp)
		if !ok {
			return &Result{State: StateNoProgress, Server: server},
				errors.WithStack(ErrNoNextServer)
		}
		server = next
	}
}

// chooseNextServer picks the address of the next server to query from a
// referral response. It prefers the additional-section A record whose
// owner name exactly matches an authority NS target, scanning NS records
// in section order and, for each, the additional A records in section
// order. When no owner name matches it falls back to the first additional
// A record. The second return value is false when the additional section
// carries no A record at all.
func chooseNextServer(resp *Response) (string, bool) {
	var glue []ResourceRecord
	for _, rr := range resp.Additionals {
		if rr.Type == dns.TypeA && rr.Addr != "" {
			glue = append(glue, rr)
		}
	}
	for _, ns := range resp.Authorities {
		if ns.Type != dns.TypeNS {
			continue
		}
		for _, rr := range glue {
			if rr.Name == ns.Target {
				return rr.Addr, true
			}
		}
	}
	if len(glue) > 0 {
		return glue[0].Addr, true
	}
	return "", false
}
