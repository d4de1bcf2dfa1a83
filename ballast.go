package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chrissnell/ballast/internal/constants"
	"github.com/chrissnell/ballast/internal/log"
	"github.com/chrissnell/ballast/internal/restserver"
	"github.com/chrissnell/ballast/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "profile.yaml", "Path to dive profile file (default: ./profile.yaml)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(constants.Version)
		return
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("can't initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := config.Load(filename)
	if err != nil {
		log.Errorf("error reading dive profile. Did you pass the -config flag? Run with -h for help: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Infof("shutdown signal received, initiating graceful shutdown...")
		cancel()
	}()

	srv := restserver.New(cfg)
	if err := srv.Start(ctx); err != nil {
		log.Errorf("REST server error: %v", err)
		os.Exit(1)
	}
	log.Infof("shutdown complete")
}
