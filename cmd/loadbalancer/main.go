package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KiaFarhang/atomiccounter/internal/config"
	"github.com/KiaFarhang/atomiccounter/internal/log"
	"github.com/KiaFarhang/atomiccounter/lib/atomiccounter"
	"github.com/KiaFarhang/atomiccounter/lib/load"
)

var configFile = flag.String("config", "config.yml", "Load balancer configuration filename")

func main() {
	flag.Parse()

	log.Infof("Loading config: %s", *configFile)
	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		log.Fatalf("error while loading config: %s", err)
	}
	log.SetDebug(cfg.LogDebug)

	upstreams, err := cfg.Upstreams()
	if err != nil {
		log.Fatalf("error while resolving upstreams: %s", err)
	}

	lb, err := load.NewLoadBalancer(upstreams, load.WithDialTimeout(cfg.DialTimeout))
	if err != nil {
		log.Fatalf("error while creating load balancer: %s", err)
	}

	if len(cfg.MetricsAddr) != 0 {
		registerMetrics(lb)
		go serveMetrics(cfg.MetricsAddr)
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("cannot listen for %q: %s", cfg.ListenAddr, err)
	}
	log.Infof("Balancing %d upstreams on %q using %s counters", len(upstreams), cfg.ListenAddr, atomiccounter.Strategy())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Infof("Shutting down, waiting for in-flight connections")
		lb.Close()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			log.Errorf("Error accepting TCP connection: %s", err)
			continue
		}

		go handleRequest(lb, conn)
	}

	<-lb.Done()
	log.Infof("All connections finished")
}

func handleRequest(lb *load.Balancer, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log.Debugf("Handling request from %s", remote)

	err := lb.HandleConnection(context.Background(), conn)
	switch {
	case err == nil:
		connectionsHandled.Inc()
	case errors.Is(err, load.ErrBalancerClosed):
		connectionsRejected.Inc()
	default:
		connectionErrors.Inc()
		log.Errorf("Error handling request from %s: %s", remote, err)
	}

	log.Debugf("Done handling request from %s", remote)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Infof("Serving metrics on %q", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("metrics server error on %q: %s", addr, err)
	}
}
