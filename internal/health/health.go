// Package health reports backend readiness over the standard gRPC health
// protocol.
package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ServiceName   = "storefront"
	ProbeInterval = 10 * time.Second
	probeTimeout  = 2 * time.Second
)

// Pinger is a dependency whose availability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Checker struct {
	server   *health.Server
	deps     map[string]Pinger
	interval time.Duration
	log      logrus.FieldLogger
}

func NewChecker(deps map[string]Pinger, log logrus.FieldLogger) *Checker {
	srv := health.NewServer()
	srv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &Checker{
		server:   srv,
		deps:     deps,
		interval: ProbeInterval,
		log:      log.WithField("component", "health"),
	}
}

func (c *Checker) Server() grpc_health_v1.HealthServer {
	return c.server
}

// Probe pings every dependency once and updates the serving status.
func (c *Checker) Probe(ctx context.Context) bool {
	healthy := true
	for name, dep := range c.deps {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := dep.Ping(pctx)
		cancel()
		if err != nil {
			healthy = false
			c.log.WithError(err).WithField("dependency", name).Warn("health probe failed")
		}
	}

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if !healthy {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus(ServiceName, status)
	c.server.SetServingStatus("", status)
	return healthy
}

// Run probes immediately and then every interval until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	c.Probe(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Probe(ctx)
		case <-ctx.Done():
			c.server.Shutdown()
			return
		}
	}
}

// Serve registers the health service on a new gRPC server listening on port.
// The returned server is stopped by the caller.
func Serve(port string, checker *Checker, log logrus.FieldLogger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
	}

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, checker.Server())

	go func() {
		log.WithField("port", port).Info("gRPC health server listening")
		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Error("gRPC health server stopped")
		}
	}()
	return srv, nil
}
