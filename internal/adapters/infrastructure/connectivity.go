package infrastructure

import (
	"context"
	"net"
	"time"
)

const (
	defaultProbeAddr    = "1.1.1.1:53"
	defaultProbeTimeout = 2 * time.Second
)

// DialConnectivityChecker implements the ConnectivityChecker port with a
// short TCP dial to a well-known endpoint. A failed dial means the device is
// treated as offline and cached data is served instead.
type DialConnectivityChecker struct {
	addr    string
	timeout time.Duration
	dialer  *net.Dialer
}

// NewDialConnectivityChecker creates a checker probing addr; empty addr and
// zero timeout fall back to defaults.
func NewDialConnectivityChecker(addr string, timeout time.Duration) *DialConnectivityChecker {
	if addr == "" {
		addr = defaultProbeAddr
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &DialConnectivityChecker{
		addr:    addr,
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

func (c *DialConnectivityChecker) IsOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// StaticConnectivityChecker reports a fixed state. Useful for wiring the
// client in environments without a probe target.
type StaticConnectivityChecker struct {
	Online bool
}

func (c StaticConnectivityChecker) IsOnline(_ context.Context) bool {
	return c.Online
}
