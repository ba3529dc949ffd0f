package probe

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/rileyhilliard/pingdeck/internal/errors"
	"github.com/rileyhilliard/pingdeck/internal/stats"
)

// IANA protocol numbers for icmp.ParseMessage.
const (
	protocolICMP     = 1
	protocolIPv6ICMP = 58
)

// payloadSize matches the default payload of the ping utility.
const payloadSize = 56

// Pinger sends ICMP echo requests to a single host over its own socket.
type Pinger struct {
	ip         net.IP
	dst        net.Addr
	conn       *icmp.PacketConn
	proto      int
	echoType   icmp.Type
	replyType  icmp.Type
	privileged bool
	timeout    time.Duration

	id  int
	seq uint16
}

// NewPinger resolves addr and opens an ICMP socket. Privileged mode uses raw
// sockets; otherwise unprivileged datagram sockets are used, which on Linux
// requires the group to be allowed by net.ipv4.ping_group_range.
func NewPinger(addr string, timeout time.Duration, privileged bool) (*Pinger, error) {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}

	ipAddr, err := net.ResolveIPAddr("ip", addr)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProbe,
			fmt.Sprintf("Cannot resolve %s", addr),
			"Check the host list for typos")
	}

	p := &Pinger{
		ip:         ipAddr.IP,
		privileged: privileged,
		timeout:    timeout,
		id:         rand.IntN(1 << 16),
	}

	network, listen := p.configure(ipAddr)

	conn, err := icmp.ListenPacket(network, listen)
	if err != nil {
		suggestion := "Set privileged: false to use unprivileged ICMP sockets"
		if !privileged {
			suggestion = "Allow unprivileged ping with sysctl net.ipv4.ping_group_range, or run with privileges"
		}
		return nil, errors.WrapWithCode(err, errors.ErrProbe,
			fmt.Sprintf("Cannot open ICMP socket for %s", addr), suggestion)
	}
	p.conn = conn

	return p, nil
}

// configure picks the socket family and message types for the target and
// returns the network and listen address for icmp.ListenPacket.
func (p *Pinger) configure(ipAddr *net.IPAddr) (network, listen string) {
	v4 := ipAddr.IP.To4() != nil

	if v4 {
		p.proto = protocolICMP
		p.echoType = ipv4.ICMPTypeEcho
		p.replyType = ipv4.ICMPTypeEchoReply
		listen = "0.0.0.0"
		network = "udp4"
		if p.privileged {
			network = "ip4:icmp"
		}
	} else {
		p.proto = protocolIPv6ICMP
		p.echoType = ipv6.ICMPTypeEchoRequest
		p.replyType = ipv6.ICMPTypeEchoReply
		listen = "::"
		network = "udp6"
		if p.privileged {
			network = "ip6:ipv6-icmp"
		}
	}

	if p.privileged {
		p.dst = &net.IPAddr{IP: ipAddr.IP, Zone: ipAddr.Zone}
	} else {
		p.dst = &net.UDPAddr{IP: ipAddr.IP, Zone: ipAddr.Zone}
	}
	return network, listen
}

// Probe sends one echo request and waits for the matching reply until the
// timeout or ctx ends. Every failure is reported as no-reply.
func (p *Pinger) Probe(ctx context.Context) stats.Outcome {
	if ctx.Err() != nil {
		return stats.Failure(time.Now(), 0, stats.FailNoReply, "")
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.seq++
	seq := int(p.seq)

	msg := icmp.Message{
		Type: p.echoType,
		Code: 0,
		Body: &icmp.Echo{
			ID:   p.id,
			Seq:  seq,
			Data: make([]byte, payloadSize),
		},
	}
	b, err := msg.Marshal(nil)
	if err != nil {
		return stats.Failure(time.Now(), 0, stats.FailNoReply, err.Error())
	}

	deadline, _ := ctx.Deadline()
	if err := p.conn.SetReadDeadline(deadline); err != nil {
		return stats.Failure(time.Now(), 0, stats.FailNoReply, err.Error())
	}
	stop := context.AfterFunc(ctx, func() {
		_ = p.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	start := time.Now()
	if _, err := p.conn.WriteTo(b, p.dst); err != nil {
		return stats.Failure(time.Now(), time.Since(start), stats.FailNoReply, "")
	}

	buf := make([]byte, 1500)
	for {
		n, peer, err := p.conn.ReadFrom(buf)
		if err != nil {
			return stats.Failure(time.Now(), time.Since(start), stats.FailNoReply, "")
		}
		rtt := time.Since(start)

		reply, err := icmp.ParseMessage(p.proto, buf[:n])
		if err != nil {
			continue
		}
		if p.matches(reply, peer, seq) {
			return stats.Success(time.Now(), rtt)
		}
	}
}

// matches reports whether reply answers the request with sequence seq.
// Unprivileged sockets have their identifier rewritten by the kernel, so the
// identifier is only compared for raw sockets.
func (p *Pinger) matches(reply *icmp.Message, peer net.Addr, seq int) bool {
	if reply.Type != p.replyType {
		return false
	}
	echo, ok := reply.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq {
		return false
	}
	if p.privileged && echo.ID != p.id {
		return false
	}

	switch a := peer.(type) {
	case *net.IPAddr:
		return a.IP.Equal(p.ip)
	case *net.UDPAddr:
		return a.IP.Equal(p.ip)
	default:
		return false
	}
}

// Close closes the socket.
func (p *Pinger) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
