// SPDX-License-Identifier: GPL-3.0-or-later

package dnswalk

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// dnsPort is the standard DNS port.
const dnsPort = 53

// maxDatagramSize is the standard unextended DNS datagram size.
const maxDatagramSize = 512

// DefaultTimeout is the default receive timeout of [*UDPTransport].
const DefaultTimeout = 5 * time.Second

// ErrReplyTimeout indicates that no reply arrived within the timeout window.
var ErrReplyTimeout = errors.New("reply timed out")

// Transport exchanges raw DNS datagrams with name servers.
//
// [*UDPTransport] is the production implementation. Tests substitute
// in-memory implementations replaying canned replies.
type Transport interface {
	// Send transmits payload to the DNS port of server, an IPv4 address
	// in dotted-quad form.
	Send(payload []byte, server string) error

	// Recv waits for the next datagram. It returns an error wrapping
	// [ErrReplyTimeout] when the timeout window expires first.
	Recv() ([]byte, error)
}

// UDPTransport is a [Transport] over a single unconnected IPv4 UDP socket.
//
// Construct using [NewUDPTransport].
type UDPTransport struct {
	// Timeout is the receive timeout fixed at construction.
	Timeout time.Duration

	// Port OPTIONALLY overrides the destination port. Zero means the
	// standard DNS port.
	Port int

	conn net.PacketConn
}

// NewUDPTransport opens an IPv4 UDP socket bound to an ephemeral local
// port. A nonpositive timeout means [DefaultTimeout].
func NewUDPTransport(timeout time.Duration) (*UDPTransport, error) {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, errors.Wrap(err, "open UDP socket")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &UDPTransport{Timeout: timeout, conn: conn}, nil
}

// Send implements [Transport].
func (t *UDPTransport) Send(payload []byte, server string) error {
	ip := net.ParseIP(server)
	if ip == nil {
		return errors.Errorf("invalid server address: %q", server)
	}
	port := t.Port
	if port == 0 {
		port = dnsPort
	}
	_, err := t.conn.WriteTo(payload, &net.UDPAddr{IP: ip, Port: port})
	return errors.Wrapf(err, "send to %s", server)
}

// Recv implements [Transport]. Each call arms the read deadline anew
// using the configured timeout and reads at most [maxDatagramSize] bytes.
func (t *UDPTransport) Recv() ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.Timeout)); err != nil {
		return nil, errors.Wrap(err, "set read deadline")
	}
	buf := make([]byte, maxDatagramSize)
	n, _, err := t.conn.ReadFrom(buf)
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return nil, errors.WithStack(ErrReplyTimeout)
		}
		return nil, errors.Wrap(err, "receive")
	}
	return buf[:n], nil
}

// Close releases the underlying socket.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
