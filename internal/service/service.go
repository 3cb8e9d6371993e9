// Package service orchestrates a full conversion run: resolver bulk load,
// output directory setup, then the chart, arena and resource pack phases.
// Per-item failures are logged at the item boundary and never abort the
// batch.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frkovo/rhythmc-converter/internal/convert"
	"github.com/frkovo/rhythmc-converter/internal/resolver"
	"github.com/frkovo/rhythmc-converter/internal/storage"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
	"github.com/frkovo/rhythmc-converter/pkg/utils"
)

type Converter struct {
	cfg        *Config
	resolver   *resolver.Resolver
	correlator *convert.Correlator
	index      *storage.IndexDB
	log        *logger.Logger
}

func New(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Converter{
		cfg:        cfg,
		resolver:   resolver.New(cfg.PlayerdataDir),
		correlator: convert.NewCorrelator(cfg.StartSongID, cfg.StartArenaID),
		log:        logger.GetLogger(),
	}
}

// Run executes the whole conversion. Only setup failures (unusable output
// directories) are returned; everything downstream degrades per item.
func (c *Converter) Run() error {
	c.resolver.LoadAll()

	if err := c.createOutputDirectories(); err != nil {
		return err
	}

	c.openIndex()
	defer c.closeIndex()

	c.convertCharts()
	c.convertArenas()
	c.convertResourcePacks()

	return nil
}

func (c *Converter) createOutputDirectories() error {
	for _, dir := range []string{
		filepath.Join(c.cfg.OutputDir, "Charts"),
		filepath.Join(c.cfg.OutputDir, "Arenas"),
	} {
		if err := utils.MakeDir(dir); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	c.log.Infof("Created output directories")
	return nil
}

// openIndex opens the run index database. The index is an audit artifact,
// so a failure only downgrades to a warning.
func (c *Converter) openIndex() {
	if c.cfg.IndexPath == "" {
		return
	}
	index, err := storage.Open(c.cfg.IndexPath)
	if err != nil {
		c.log.Warnf("Run index unavailable: %v", err)
		return
	}
	c.index = index
}

func (c *Converter) closeIndex() {
	if c.index != nil {
		if err := c.index.Close(); err != nil {
			c.log.Warnf("Failed to close run index: %v", err)
		}
	}
}

func (c *Converter) convertCharts() {
	chartsInput := filepath.Join(c.cfg.InputDir, "Charts")

	entries, err := os.ReadDir(chartsInput)
	if err != nil {
		c.log.Warnf("Charts input directory not found: %s", chartsInput)
		return
	}

	chartConverter := convert.NewChartConverter(c.cfg.OutputDir, c.resolver)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sha := entry.Name()
		c.log.Infof("Converting chart: %s", sha)

		ok, difficulties, err := chartConverter.Convert(filepath.Join(chartsInput, sha), c.correlator.NextSongID())
		if err != nil {
			c.log.Warnf("Failed to convert chart %s: %v", sha, err)
			continue
		}
		if !ok {
			continue
		}

		songID := c.correlator.CommitSong(sha)
		c.recordSong(sha, songID, difficulties)
	}

	c.log.Infof("Converted %d charts", c.correlator.SongCount())
}

func (c *Converter) recordSong(sha string, songID, difficulties int) {
	if c.index == nil {
		return
	}
	if err := c.index.RecordSong(sha, songID, sha, difficulties); err != nil {
		c.log.Warnf("Failed to record song %d in run index: %v", songID, err)
	}
}

func (c *Converter) convertArenas() {
	arenasInput := filepath.Join(c.cfg.InputDir, "Arenas")
	schematicsInput := filepath.Join(c.cfg.InputDir, "ArenaSchematics")

	entries, err := os.ReadDir(arenasInput)
	if err != nil {
		c.log.Warnf("Arenas input directory not found: %s", arenasInput)
		return
	}

	arenaConverter := convert.NewArenaConverter(schematicsInput, c.cfg.OutputDir, c.correlator)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		c.log.Infof("Converting arena: %s", entry.Name())

		name, err := arenaConverter.Convert(filepath.Join(arenasInput, entry.Name()))
		if err != nil {
			c.log.Warnf("Failed to convert arena %s: %v", entry.Name(), err)
			continue
		}

		if c.index != nil {
			if err := c.index.RecordArena(name, c.correlator.NextArenaID()-1); err != nil {
				c.log.Warnf("Failed to record arena %s in run index: %v", name, err)
			}
		}
	}

	c.log.Infof("Converted %d arenas", c.correlator.ArenaCount())
}

func (c *Converter) convertResourcePacks() {
	rmcBDir := filepath.Join(c.cfg.InputDir, "rmc-b")

	if _, err := os.Stat(rmcBDir); err != nil {
		c.log.Warnf("Resource pack input directory not found: %s", rmcBDir)
		return
	}

	if c.correlator.SongCount() == 0 {
		c.log.Warnf("No charts converted, skipping resource pack conversion")
		return
	}

	packConverter := convert.NewResourcePackConverter(c.correlator.SHAMap())
	outputZip, err := packConverter.Convert(rmcBDir, c.cfg.OutputDir)
	if err != nil {
		c.log.Warnf("Failed to convert resource packs: %v", err)
		return
	}
	c.log.Infof("Created combined resource pack: %s", outputZip)
}
