package main

import (
	"flag"
	"log"

	"github.com/voxpipe/voxpipe/internal/config"
)

// dumpconfig prints the effective merged configuration, which is handy when
// debugging YAML/env precedence on a deployment box.
func main() {
	file := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(config.Options{ConfigFile: *file})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	log.Printf("server: %+v", cfg.Server)
	log.Printf("pipeline: %+v", cfg.Pipeline)
	log.Printf("ffmpeg: %+v", cfg.FFmpeg)
	log.Printf("google: credentials_file=%q", cfg.Google.CredentialsFile)
	log.Printf("observability: %+v", cfg.Observability)
}
