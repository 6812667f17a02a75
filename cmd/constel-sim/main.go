package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jeongseonghan/constel/internal/channel"
	"github.com/jeongseonghan/constel/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Constellation config file (YAML)")
	snrStart := flag.Float64("snr-start", 0, "First Es/N0 in dB")
	snrStop := flag.Float64("snr-stop", 12, "Last Es/N0 in dB")
	snrStep := flag.Float64("snr-step", 2, "Es/N0 step in dB")
	symbols := flag.Int("symbols", 100000, "Symbols per SNR point")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("missing -config")
	}
	if *snrStep <= 0 {
		log.Fatal("-snr-step must be positive")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	decider, soft, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to build decider: %v", err)
	}

	c := decider.Constellation()
	fmt.Printf("constellation: arity=%d dim=%d rot=%d scale=%.6f\n",
		c.Arity(), c.Dimensionality(), c.RotationalSymmetry(), c.ScaleFactor())
	if soft != nil {
		fmt.Printf("soft decision: lut=%v precision=%d\n", soft.HasLUT(), soft.Precision())
	}

	fmt.Printf("%8s %10s %10s %12s %14s\n",
		"Es/N0", "symbols", "errors", "SER", "mean|phErr|")
	for snr := *snrStart; snr <= *snrStop; snr += *snrStep {
		ch := channel.NewAWGNSeeded(snr, *seed)
		res := channel.Measure(decider, ch, *symbols, *seed)
		fmt.Printf("%8.1f %10d %10d %12.3e %14.4f\n",
			res.EsN0dB, res.Symbols, res.Errors, res.SER, res.MeanAbsPhaseError)
	}
}
