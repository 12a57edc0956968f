// Command chromafpd serves the fingerprinting pipeline over HTTP.
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vividhyeok/chromafp/internal/config"
	"github.com/vividhyeok/chromafp/server"
)

func main() {
	var (
		addr    = pflag.String("addr", ":8080", "address to listen on")
		cfgPath = pflag.String("config", "", "path to a YAML params file overriding the fixed constants")
		verbose = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	params := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal("failed to load config", "path", *cfgPath, "err", err)
		}
		params = loaded
	}

	srv := server.New(params)

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal("listen failed", "addr", *addr, "err", err)
	}

	httpServer := &http.Server{Handler: srv.Handler()}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	log.Info("listening", "addr", listener.Addr().String())
	if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		log.Fatal("serve failed", "err", err)
	}
}
