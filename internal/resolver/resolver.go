// Package resolver maps player UUIDs to display names using the server's
// playerdata NBT files.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/frkovo/rhythmc-converter/internal/nbtree"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
)

// Resolver is the UUID -> display-name lookup cache. It is bulk-loaded
// once at startup and read-only afterwards.
type Resolver struct {
	playerdataDir string
	cache         map[string]string
	log           *logger.Logger
}

func New(playerdataDir string) *Resolver {
	return &Resolver{
		playerdataDir: playerdataDir,
		cache:         make(map[string]string),
		log:           logger.GetLogger(),
	}
}

// LoadAll reads every playerdata file and builds the UUID -> name mapping.
// A missing directory degrades to an empty cache, so every identifier
// resolves to itself.
func (r *Resolver) LoadAll() {
	entries, err := os.ReadDir(r.playerdataDir)
	if err != nil {
		r.log.Warnf("Playerdata directory not found: %s", r.playerdataDir)
		return
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".dat")
		name, err := readLastKnownName(filepath.Join(r.playerdataDir, entry.Name()))
		if err != nil {
			r.log.Debugf("Failed to read playerdata file: %s", entry.Name())
			continue
		}
		if name != "" {
			r.cache[normalize(id)] = name
			loaded++
		}
	}

	r.log.Infof("Loaded %d UUID->Name mappings from playerdata", loaded)
}

// readLastKnownName extracts bukkit.lastKnownName from a playerdata file.
func readLastKnownName(path string) (string, error) {
	tree, err := nbtree.ReadFile(path)
	if err != nil {
		return "", err
	}
	return tree.Child("bukkit").Child("lastKnownName").Text(), nil
}

// Resolve returns the display name for a UUID, or the original string when
// no mapping exists. Empty input resolves to "Unknown".
func (r *Resolver) Resolve(id string) string {
	if id == "" {
		return "Unknown"
	}
	if name, ok := r.cache[normalize(id)]; ok {
		return name
	}
	r.log.Debugf("UUID not found in playerdata: %s", id)
	return id
}

// CacheSize returns the number of loaded mappings.
func (r *Resolver) CacheSize() int {
	return len(r.cache)
}

// IsUUID reports whether a string is UUID-shaped: 32 hex characters, with
// or without dashes.
func IsUUID(s string) bool {
	if len(strings.ReplaceAll(s, "-", "")) != 32 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// normalize strips dashes so dashed and undashed forms share cache keys.
func normalize(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
