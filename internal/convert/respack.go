package convert

import (
	"archive/zip"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/frkovo/rhythmc-converter/internal/model"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
	"github.com/frkovo/rhythmc-converter/pkg/utils"
)

const (
	// legacyMusicPath is where every v1 pack hid its song audio.
	legacyMusicPath = "assets/minecraft/sounds/mob/horse/death.ogg"

	soundsPathPrefix = "assets/rhythmc/sounds"
	soundsJSONPath   = "assets/rhythmc/sounds.json"
	outputPackName   = "RhythMC_Resource_Pack.zip"
)

// ResourcePackConverter extracts the audio asset from every correlated
// per-hash archive and repackages everything into one combined resource
// pack with a synthesized sound registry.
type ResourcePackConverter struct {
	shaToSongID map[string]int
	log         *logger.Logger
}

func NewResourcePackConverter(shaToSongID map[string]int) *ResourcePackConverter {
	return &ResourcePackConverter{
		shaToSongID: shaToSongID,
		log:         logger.GetLogger(),
	}
}

// Convert processes every content-hash subdirectory of rmcBDir and returns
// the path of the combined archive. Subdirectories without a correlated
// song, without an archive, or whose archive lacks the audio asset are
// skipped with a diagnostic. The temporary working area is always removed.
func (r *ResourcePackConverter) Convert(rmcBDir, outputDir string) (string, error) {
	tempDir, err := os.MkdirTemp("", "rhythmc_resource_pack")
	if err != nil {
		return "", fmt.Errorf("failed to create working directory: %w", err)
	}
	defer func() {
		if err := utils.DeleteDir(tempDir); err != nil {
			r.log.Warnf("Failed to clean up working directory %s: %v", tempDir, err)
		}
	}()

	soundsDir := filepath.Join(tempDir, soundsPathPrefix)
	if err := utils.MakeDir(soundsDir); err != nil {
		return "", fmt.Errorf("failed to create sounds directory: %w", err)
	}

	registry := model.SoundRegistry{}

	entries, err := os.ReadDir(rmcBDir)
	if err != nil {
		return "", fmt.Errorf("failed to list resource pack input: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sha := entry.Name()

		songID, ok := r.shaToSongID[sha]
		if !ok {
			r.log.Warnf("No songId mapping found for SHA: %s", sha)
			continue
		}

		archivePath, found := findArchive(filepath.Join(rmcBDir, sha))
		if !found {
			r.log.Warnf("No zip file found in SHA folder: %s", sha)
			continue
		}

		if err := r.extractMusic(archivePath, soundsDir, songID, registry); err != nil {
			r.log.Warnf("Error processing SHA folder %s: %v", sha, err)
		}
	}

	if err := writeJSON(filepath.Join(tempDir, soundsJSONPath), registry); err != nil {
		return "", fmt.Errorf("failed to write sounds.json: %w", err)
	}
	if err := writeJSON(filepath.Join(tempDir, "pack.mcmeta"), packMeta()); err != nil {
		return "", fmt.Errorf("failed to write pack.mcmeta: %w", err)
	}

	outputZip := filepath.Join(outputDir, outputPackName)
	if err := createZip(tempDir, outputZip); err != nil {
		return "", fmt.Errorf("failed to create resource pack archive: %w", err)
	}

	r.log.Infof("Created resource pack: %s", outputZip)
	return outputZip, nil
}

// findArchive returns the first zip file in a content-hash folder.
func findArchive(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".zip") {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

// extractMusic pulls the fixed legacy audio asset out of one archive,
// renames it by song ID and registers its sound event.
func (r *ResourcePackConverter) extractMusic(archivePath, soundsDir string, songID int, registry model.SoundRegistry) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	newFileName := fmt.Sprintf("s%d.ogg", songID)

	for _, f := range zr.File {
		if f.Name != legacyMusicPath {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open archive entry: %w", err)
		}
		defer rc.Close()

		out, err := os.Create(filepath.Join(soundsDir, newFileName))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", newFileName, err)
		}
		defer out.Close()

		if _, err := io.Copy(out, rc); err != nil {
			return fmt.Errorf("failed to extract %s: %w", newFileName, err)
		}

		registry[fmt.Sprintf("sounds.music.s%d", songID)] = soundEvent(songID)
		r.log.Infof("Extracted music for song %d: %s", songID, newFileName)
		return nil
	}

	r.log.Warnf("Music file not found in zip: %s", archivePath)
	return nil
}

// soundEvent builds the registry entry for one song: stream-mode playback
// with fixed attenuation, volume, pitch and weight.
func soundEvent(songID int) model.SoundEvent {
	return model.SoundEvent{
		Replace: true,
		Sounds: []model.Sound{{
			Name:                fmt.Sprintf("rhythmc:s%d", songID),
			Type:                "file",
			Volume:              1.0,
			Pitch:               1.0,
			Weight:              1,
			Stream:              true,
			AttenuationDistance: 16,
			Preload:             false,
		}},
		Subtitle: fmt.Sprintf("RhythMC Song %d", songID),
	}
}

func packMeta() model.PackMeta {
	return model.PackMeta{
		Pack: model.PackInfo{
			Description:      "RhythMC-Test",
			PackFormat:       9999,
			SupportedFormats: []int{0, 9999},
			MinFormat:        0,
			MaxFormat:        9999,
		},
	}
}

func writeJSON(path string, v any) error {
	if err := utils.MakeDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// createZip packages a directory tree into one archive using maximum
// compression.
func createZip(sourceDir, outputZip string) error {
	out, err := os.Create(outputZip)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
	if err != nil {
		zw.Close()
		out.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
