package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/frkovo/rhythmc-converter/internal/service"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
)

var (
	inputDir      string
	outputDir     string
	playerdataDir string
	startSongID   int
	startArenaID  int
	noIndex       bool
)

func init() {
	flag.StringVar(&inputDir, "input", getEnvOrDefault("RHYTHMC_INPUT_DIR", service.DefaultInputDir), "Directory holding the v1 corpus (Charts, Arenas, ArenaSchematics, rmc-b)")
	flag.StringVar(&outputDir, "output", getEnvOrDefault("RHYTHMC_OUTPUT_DIR", service.DefaultOutputDir), "Directory to write the v2 corpus into")
	flag.StringVar(&playerdataDir, "playerdata", getEnvOrDefault("RHYTHMC_PLAYERDATA_DIR", service.DefaultPlayerdataDir), "Directory of playerdata NBT files for UUID resolution")
	flag.IntVar(&startSongID, "start-song-id", service.StartSongID, "First song ID to assign")
	flag.IntVar(&startArenaID, "start-arena-id", service.StartArenaID, "First arena ID to assign")
	flag.BoolVar(&noIndex, "no-index", false, "Skip writing the run index database")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	flag.Parse()

	log := logger.GetLogger()

	printBanner()
	log.Infof("=== RhythMC Chart Converter ===")
	log.Infof("Converting charts from %s to %s", inputDir, outputDir)

	opts := []service.Option{
		service.WithInputDir(inputDir),
		service.WithOutputDir(outputDir),
		service.WithPlayerdataDir(playerdataDir),
		service.WithStartSongID(startSongID),
		service.WithStartArenaID(startArenaID),
	}
	if noIndex {
		opts = append(opts, service.WithoutIndex())
	}

	if err := service.New(opts...).Run(); err != nil {
		log.Warnf("Conversion failed: %v", err)
		os.Exit(1)
	}

	log.Infof("=== Conversion Complete ===")
}

func printBanner() {
	banner := `
 ____  _           _   _     __  __  ____
|  _ \| |__  _   _| |_| |__ |  \/  |/ ___|
| |_) | '_ \| | | | __| '_ \| |\/| | |
|  _ <| | | | |_| | |_| | | | |  | | |___
|_| \_\_| |_|\__, |\__|_| |_|_|  |_|\____|
             |___/     Chart Converter
`
	fmt.Println(banner)
}
