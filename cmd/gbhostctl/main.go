package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/gbhost/internal/bus"
	"github.com/danmuck/gbhost/internal/config"
	"github.com/danmuck/gbhost/internal/manifest"
	"github.com/danmuck/gbhost/internal/observability"
	"github.com/danmuck/gbhost/internal/status"
)

func main() {
	configPath := flag.String("config", "cmd/gbhostctl/config.toml", "host config path")
	manifestPath := flag.String("manifest", "", "module manifest blob to parse and register")
	flag.Parse()

	logger := observability.InitLogger("gbhost")

	cfg, err := config.LoadHostConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load host config")
	}
	log.Info().Str("path", *configPath).Msg("loaded host config")

	loopback := bus.NewLoopback()
	host := bus.NewHost(bus.Config{
		CPortMax:         cfg.CPortMax,
		OperationTimeout: cfg.OperationTimeout.Duration,
	}, loopback, logger)
	loopback.Attach(host)

	if *manifestPath != "" {
		blob, err := os.ReadFile(*manifestPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read manifest")
		}
		parsed, err := manifest.Parse(blob, logger)
		if err != nil {
			observability.RecordManifestParse("error")
			log.Fatal().Err(err).Msg("manifest rejected")
		}
		observability.RecordManifestParse("ok")
		log.Info().
			Uint16("vendor", parsed.Module.Vendor).
			Uint16("product", parsed.Module.Product).
			Str("vendor_string", parsed.Module.VendorString).
			Str("product_string", parsed.Module.ProductString).
			Int("cports", len(parsed.CPorts)).
			Int("functions", len(parsed.Functions)).
			Msg("manifest parsed")

		intf := host.RegisterInterface(0, parsed)
		for _, decl := range parsed.CPorts {
			conn, err := host.CreateConnection(intf, decl.Number, bus.ProtocolControl)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create connection")
			}
			resp, err := conn.SendAndAwait(context.Background(), 0x01, []byte("ping"))
			if err != nil {
				log.Fatal().Err(err).Uint16("cport", conn.LocalCPort()).Msg("echo failed")
			}
			log.Info().
				Uint16("local_cport", conn.LocalCPort()).
				Uint16("remote_cport", conn.RemoteCPort()).
				Bytes("response", resp).
				Msg("loopback echo ok")
		}
	}

	server := status.New(cfg.Name, cfg.StatusAddr, cfg.CorsOrigins)
	server.AddHost(host)
	log.Info().Str("name", cfg.Name).Str("addr", cfg.StatusAddr).Msg("gbhost started")
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("status server stopped")
	}
}
