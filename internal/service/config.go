package service

import "path/filepath"

const (
	DefaultInputDir      = "ToConvert"
	DefaultOutputDir     = "Converted"
	DefaultPlayerdataDir = "playerdata"

	StartSongID  = 10001
	StartArenaID = 10000
)

type Config struct {
	InputDir      string
	OutputDir     string
	PlayerdataDir string
	StartSongID   int
	StartArenaID  int
	IndexPath     string // empty disables the run index
}

type Option func(*Config)

func WithInputDir(dir string) Option {
	return func(c *Config) {
		c.InputDir = dir
	}
}

func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
		c.IndexPath = filepath.Join(dir, "index.db")
	}
}

func WithPlayerdataDir(dir string) Option {
	return func(c *Config) {
		c.PlayerdataDir = dir
	}
}

func WithStartSongID(id int) Option {
	return func(c *Config) {
		c.StartSongID = id
	}
}

func WithStartArenaID(id int) Option {
	return func(c *Config) {
		c.StartArenaID = id
	}
}

func WithIndexPath(path string) Option {
	return func(c *Config) {
		c.IndexPath = path
	}
}

func WithoutIndex() Option {
	return func(c *Config) {
		c.IndexPath = ""
	}
}

func defaultConfig() *Config {
	return &Config{
		InputDir:      DefaultInputDir,
		OutputDir:     DefaultOutputDir,
		PlayerdataDir: DefaultPlayerdataDir,
		StartSongID:   StartSongID,
		StartArenaID:  StartArenaID,
		IndexPath:     filepath.Join(DefaultOutputDir, "index.db"),
	}
}
