package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/palettekit/palette-server/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("palette-server %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("palette-server - HTTP service for image palette extraction")
			fmt.Println()
			fmt.Println("Usage: palette-server [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PALETTE_LISTEN_ADDR=:8080       Listen address")
			fmt.Println("  PALETTE_DATA_DIR=./data         Upload and record directory")
			fmt.Println("  PALETTE_MAX_DIMENSION=512       Downscale bound for unmasked runs")
			fmt.Println("  PALETTE_LOG_LEVEL=debug         Enable debug logging")
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	addr := os.Getenv("PALETTE_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("PALETTE_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	maxDim := 0
	if raw := os.Getenv("PALETTE_MAX_DIMENSION"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid PALETTE_MAX_DIMENSION %q: %v", raw, err)
		}
		maxDim = parsed
	}

	if os.Getenv("PALETTE_LOG_LEVEL") == "debug" {
		log.Printf("palette-server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Data directory: %s", dataDir)
	}

	srv, err := server.New(server.Config{
		DataDir:      dataDir,
		MaxDimension: maxDim,
	})
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}

	log.Printf("Listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
