package reachability

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var echoPayload = []byte("landevlist")

// ICMPProbe sends a single ICMP echo request from the current process.
// Every call opens its own socket.
type ICMPProbe struct {
	Timeout    time.Duration
	Privileged bool

	seq atomic.Uint32
}

// Probe sends one echo request to ip and waits for the matching reply
func (p *ICMPProbe) Probe(ctx context.Context, ip string) bool {
	if ctx.Err() != nil {
		return false
	}
	dst := net.ParseIP(ip).To4()
	if dst == nil {
		return false
	}

	network := "udp4"
	if p.Privileged {
		network = "ip4:icmp"
	}
	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return false
	}
	defer func() {
		_ = conn.Close()
	}()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false
	}

	id := os.Getpid() & 0xffff
	seq := int(p.seq.Add(1) & 0xffff)
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: echoPayload,
		},
	}
	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return false
	}

	var target net.Addr = &net.IPAddr{IP: dst}
	if !p.Privileged {
		target = &net.UDPAddr{IP: dst}
	}
	if _, err := conn.WriteTo(msgBytes, target); err != nil {
		return false
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			// deadline reached
			return false
		}
		if matchesEcho(reply[:n], peer, dst, id, seq, p.Privileged) {
			return true
		}
	}
}

// matchesEcho reports whether raw is the echo reply to our request.
// Datagram sockets rewrite the echo ID, so it is only checked on raw sockets.
func matchesEcho(raw []byte, peer net.Addr, dst net.IP, id, seq int, checkID bool) bool {
	rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), raw)
	if err != nil || rm.Type != ipv4.ICMPTypeEchoReply {
		return false
	}
	echo, ok := rm.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq {
		return false
	}
	if checkID && echo.ID != id {
		return false
	}

	switch addr := peer.(type) {
	case *net.IPAddr:
		return addr.IP.Equal(dst)
	case *net.UDPAddr:
		return addr.IP.Equal(dst)
	default:
		return false
	}
}
