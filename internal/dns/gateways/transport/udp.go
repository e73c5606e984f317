// Package transport serves DNS queries over UDP sockets.
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/okvist/authdns/internal/dns/common/log"
	"github.com/okvist/authdns/internal/dns/domain"
	"github.com/okvist/authdns/internal/dns/gateways/wire"
	"github.com/okvist/authdns/internal/dns/services/resolver"
)

// maxUDPPayload is the classic RFC 1035 limit for DNS over UDP.
const maxUDPPayload = 512

// Handler resolves one query into an answer.
type Handler interface {
	Resolve(ctx context.Context, query domain.Message, client net.Addr) resolver.Answer
}

// Recorder receives transport-level events the resolver never sees.
type Recorder interface {
	QueryReceived()
	QueryDropped()
}

// UDPTransport listens on a single UDP socket and answers each datagram
// in its own goroutine. Run one instance per address family.
type UDPTransport struct {
	network string
	addr    string
	codec   wire.Codec
	handler Handler
	logger  log.Logger
	stats   Recorder

	mu      sync.Mutex
	conn    *net.UDPConn
	running bool
	wg      sync.WaitGroup
}

// Options carries the collaborators a UDPTransport needs. Network must be
// "udp4" or "udp6" so the two listeners never shadow each other.
type Options struct {
	Network string
	Addr    string
	Codec   wire.Codec
	Handler Handler
	Logger  log.Logger
	Stats   Recorder
}

// NewUDP constructs a transport. It does not open the socket; call Start.
func NewUDP(opts Options) (*UDPTransport, error) {
	if opts.Network != "udp4" && opts.Network != "udp6" {
		return nil, fmt.Errorf("transport: unsupported network %q", opts.Network)
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("transport: codec is required")
	}
	if opts.Handler == nil {
		return nil, fmt.Errorf("transport: handler is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &UDPTransport{
		network: opts.Network,
		addr:    opts.Addr,
		codec:   opts.Codec,
		handler: opts.Handler,
		logger:  logger,
		stats:   opts.Stats,
	}, nil
}

// Start binds the socket and begins serving. It returns once the listen
// loop is running; serving continues until Stop or ctx cancellation.
func (t *UDPTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return fmt.Errorf("transport: already started on %s", t.addr)
	}

	udpAddr, err := net.ResolveUDPAddr(t.network, t.addr)
	if err != nil {
		return fmt.Errorf("transport: resolve %s %q: %w", t.network, t.addr, err)
	}
	conn, err := net.ListenUDP(t.network, udpAddr)
	if err != nil {
		return fmt.Errorf("transport: listen %s %q: %w", t.network, t.addr, err)
	}

	t.conn = conn
	t.running = true
	t.logger.Info(map[string]any{
		"network": t.network,
		"addr":    conn.LocalAddr().String(),
	}, "listening")

	t.wg.Add(1)
	go t.listenLoop(ctx, conn)

	// Closing the socket is what unblocks the reader on cancellation.
	go func() {
		<-ctx.Done()
		t.Stop()
	}()

	return nil
}

// Stop closes the socket and waits for in-flight handlers to finish.
// It is safe to call more than once.
func (t *UDPTransport) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	conn := t.conn
	t.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	t.wg.Wait()
	t.logger.Info(map[string]any{
		"network": t.network,
		"addr":    t.addr,
	}, "stopped")
}

// Address reports the bound address. Useful when listening on port 0.
func (t *UDPTransport) Address() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

func (t *UDPTransport) listenLoop(ctx context.Context, conn *net.UDPConn) {
	defer t.wg.Done()
	buf := make([]byte, maxUDPPayload)
	for {
		n, client, err := conn.ReadFromUDP(buf)
		if err != nil {
			t.mu.Lock()
			running := t.running
			t.mu.Unlock()
			if running {
				t.logger.Error(map[string]any{
					"network": t.network,
					"error":   err.Error(),
				}, "read failed")
			}
			return
		}
		packet := make([]byte, n)
		copy(packet, buf[:n])

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.handlePacket(ctx, conn, packet, client)
		}()
	}
}

// handlePacket decodes, resolves, and answers one datagram. Datagrams that
// are not well-formed queries are dropped without a reply.
func (t *UDPTransport) handlePacket(ctx context.Context, conn *net.UDPConn, packet []byte, client *net.UDPAddr) {
	query, err := t.codec.DecodeMessage(packet)
	if err != nil {
		t.drop(client, "malformed packet", err)
		return
	}
	if query.Response {
		t.drop(client, "ignoring response message", nil)
		return
	}
	if len(query.Questions) == 0 {
		t.drop(client, "query without question", nil)
		return
	}
	if t.stats != nil {
		t.stats.QueryReceived()
	}

	answer := t.handler.Resolve(ctx, query, client)

	var reply []byte
	if answer.RCode == domain.RCodeNoError {
		reply, err = t.codec.EncodeResponse(query, answer.Answers, answer.Authority)
	} else {
		reply, err = t.codec.EncodeError(query, answer.RCode)
	}
	if err != nil {
		t.logger.Error(map[string]any{
			"client": client.String(),
			"error":  err.Error(),
		}, "encode failed")
		if t.stats != nil {
			t.stats.QueryDropped()
		}
		return
	}

	if _, err := conn.WriteToUDP(reply, client); err != nil {
		t.logger.Error(map[string]any{
			"client": client.String(),
			"error":  err.Error(),
		}, "write failed")
	}
}

func (t *UDPTransport) drop(client *net.UDPAddr, reason string, err error) {
	if t.stats != nil {
		t.stats.QueryDropped()
	}
	fields := map[string]any{"client": client.String()}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.logger.Debug(fields, reason)
}
