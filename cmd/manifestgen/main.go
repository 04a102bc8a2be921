package main

import (
	"flag"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/danmuck/gbhost/internal/config"
	"github.com/danmuck/gbhost/internal/manifest"
)

func main() {
	kind := flag.String("kind", "manifest", "artifact kind: manifest|config")
	output := flag.String("output", "", "output path")
	validate := flag.Bool("validate", false, "validate an existing artifact instead of writing one")
	input := flag.String("input", "", "artifact path for validation")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			log.Fatal("validation requires -input")
		}
		switch *kind {
		case "manifest":
			blob, err := os.ReadFile(path)
			if err != nil {
				log.Fatal(err)
			}
			parsed, err := manifest.Parse(blob, zerolog.Nop())
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("Validated manifest at %s: vendor=0x%04x product=0x%04x cports=%d",
				path, parsed.Module.Vendor, parsed.Module.Product, len(parsed.CPorts))
		case "config":
			if _, err := config.LoadHostConfig(path); err != nil {
				log.Fatal(err)
			}
			log.Printf("Validated host config at %s", path)
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
		return
	}

	target := *output
	switch *kind {
	case "manifest":
		if target == "" {
			target = "sample-manifest.bin"
		}
		if !*force {
			if _, err := os.Stat(target); err == nil {
				log.Fatalf("%s exists (use -force to overwrite)", target)
			}
		}
		blob := sampleManifest()
		if err := os.WriteFile(target, blob, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %d-byte sample manifest to %s", len(blob), target)
	case "config":
		if target == "" {
			target = "cmd/gbhostctl/config.toml"
		}
		if err := config.WriteTemplate(target, *force); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote host config template to %s", target)
	default:
		log.Fatalf("unknown kind: %s", *kind)
	}
}

func sampleManifest() []byte {
	return manifest.NewBuilder().
		Module(0x1234, 0x5678, 1, 1, 2, 0x0102030405060708).
		String(1, "Sample Vendor").
		String(2, "Sample Module").
		CPort(0, 1).
		CPort(1, 1).
		Function(0, 0, manifest.FunctionGPIO, 0, 0).
		Function(1, 1, manifest.FunctionUART, 0, 0).
		Bytes()
}
