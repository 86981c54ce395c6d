// Package load implements a least-connections load balancer.
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/KiaFarhang/atomiccounter/internal/log"
	"github.com/KiaFarhang/atomiccounter/lib/atomiccounter"
	"github.com/KiaFarhang/atomiccounter/lib/refcount"
)

const (
	internalServerErrorMessage          string        = "Internal server error"
	connectionToUpstreamTimedOutMessage string        = "Timed out connecting to upstream"
	maxConnectionTimeout                time.Duration = 3 * time.Second
)

// ErrBalancerClosed is returned by HandleConnection once Close has been called.
var ErrBalancerClosed = errors.New("load balancer is closed")

// host is an individual server that can take traffic from the load balancer.
type host struct {
	address         *net.TCPAddr
	connectionCount atomiccounter.Counter
}

// HostStats is a point-in-time view of one upstream host.
type HostStats struct {
	Address           string
	ActiveConnections atomiccounter.ValueType
}

/*
Balancer is a least-connections load balancer. It keeps track of the number
of connections to a group of hosts, and routes a request to whichever host has the fewest
at the time the request is processed.

If two hosts have the same number of connections, the Balancer will always select whichever
host had the lower index in the list of hosts originally passed to it.
*/
type Balancer struct {
	hosts  []*host
	dialer *net.Dialer

	closed atomic.Bool
	// inFlight holds one reference for the Balancer itself plus one per
	// connection being handled. done is closed when it drops to zero.
	inFlight *refcount.Object
	done     chan struct{}
}

// Option configures a Balancer.
type Option func(*Balancer)

// WithDialTimeout bounds how long the Balancer waits to connect to a host.
func WithDialTimeout(timeout time.Duration) Option {
	return func(lb *Balancer) {
		lb.dialer.Timeout = timeout
	}
}

/*
NewLoadBalancer constructs a new least-connections load balancer to route
requests to the slice of TCP addresses provided. Clients should construct a separate
Balancer for each upstream application they wish to load balance.

An error is returned in any of the following scenarios:

- The slice of addresses passed is empty
- The slice of addresses passed is nil
- The slice of addresses contains only nil entries

Duplicate addresses are ignored. If two addresses passed share the same IP, zone and port they
will be treated as a single host when performing load balancing.
*/
func NewLoadBalancer(addresses []*net.TCPAddr, opts ...Option) (*Balancer, error) {
	validatedAddresses, err := validateAndRemoveDuplicateAddresses(addresses)
	if err != nil {
		return nil, err
	}

	hosts := make([]*host, 0, len(validatedAddresses))
	for _, address := range validatedAddresses {
		hosts = append(hosts, &host{address: address})
	}

	// When both a context and a dialer have a timeout the shorter value
	// is respected; this protects us from clients passing in a no-timeout context
	// and our dial hanging when we can't connect to the upstream.
	lb := &Balancer{
		hosts:  hosts,
		dialer: &net.Dialer{Timeout: maxConnectionTimeout},
		done:   make(chan struct{}),
	}
	lb.inFlight = refcount.New(func() { close(lb.done) })

	for _, opt := range opts {
		opt(lb)
	}

	return lb, nil
}

/*
HandleConnection takes a TCP connection, finds a suitable host to handle it,
then connects to the host and streams data between the connection and host until
both sides of the connection are closed.

If the connection to the host fails, HandleConnection will write an error message
to the incoming net.Conn and close it. It will also close the net.Conn if the communication
with the host succeeds; callers of HandleConnection do not need to close the net.Conn
they pass in.
*/
func (lb *Balancer) HandleConnection(ctx context.Context, conn net.Conn) error {
	lb.inFlight.Duplicate()
	defer lb.inFlight.Release()

	if lb.closed.Load() {
		conn.Close()
		return ErrBalancerClosed
	}

	host := lb.findHostWithLeastConnections()

	active := host.connectionCount.Increment()
	defer host.connectionCount.Decrement()

	log.Debugf("Routing %s to %s (%d active)", conn.RemoteAddr(), host.address, active)

	connectionToHost, err := lb.dialer.DialContext(ctx, "tcp", host.address.String())
	if err != nil {
		select {
		case <-ctx.Done():
			conn.Write([]byte(connectionToUpstreamTimedOutMessage))
		default:
			conn.Write([]byte(internalServerErrorMessage))
		}
		if closeErr := conn.Close(); closeErr != nil {
			log.Errorf("Error closing connection after dial failure. Dial error: %s, connection close error: %s", err, closeErr)
		}
		return fmt.Errorf("dial upstream %s: %w", host.address, err)
	}

	var group errgroup.Group

	group.Go(func() error {
		defer conn.Close()
		_, err := io.Copy(conn, connectionToHost)
		return ignoreClosed(err)
	})

	group.Go(func() error {
		defer connectionToHost.Close()
		_, err := io.Copy(connectionToHost, conn)
		return ignoreClosed(err)
	})

	return group.Wait()
}

// Close stops the Balancer from accepting new connections. Connections
// already being handled are left to finish; Done reports when they have.
func (lb *Balancer) Close() {
	if lb.closed.CompareAndSwap(false, true) {
		lb.inFlight.Release()
	}
}

// Done returns a channel that is closed once the Balancer is closed and every
// connection it was handling has finished.
func (lb *Balancer) Done() <-chan struct{} {
	return lb.done
}

// Stats returns the active connection count of every host, in host order.
func (lb *Balancer) Stats() []HostStats {
	stats := make([]HostStats, 0, len(lb.hosts))
	for _, h := range lb.hosts {
		stats = append(stats, HostStats{
			Address:           h.address.String(),
			ActiveConnections: h.connectionCount.Value(),
		})
	}
	return stats
}

func (lb *Balancer) findHostWithLeastConnections() *host {
	host := lb.hosts[0]
	least := host.connectionCount.Value()

	for _, h := range lb.hosts[1:] {
		if count := h.connectionCount.Value(); count < least {
			host, least = h, count
		}
	}

	return host
}

// One side of the pipe closing the other is the normal way a proxied
// connection ends.
func ignoreClosed(err error) error {
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}
