package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frkovo/rhythmc-converter/internal/mapper"
	"github.com/frkovo/rhythmc-converter/internal/model"
	"github.com/frkovo/rhythmc-converter/internal/resolver"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
	"github.com/frkovo/rhythmc-converter/pkg/utils"
)

// DifficultyFiles are the canonical per-difficulty chart files of a song
// folder, in uid order.
var DifficultyFiles = []string{"world.json", "nether.json", "end.json", "void.json"}

const (
	// BaseBPM makes one legacy tick equal one beat.
	BaseBPM = 1200.0

	// MsPerTick converts the legacy 20-ticks-per-second clock to
	// milliseconds.
	MsPerTick = 50
)

// ChartConverter rebuilds one legacy song folder as a v2 song: one
// manifest plus up to four .rmcc chart documents.
type ChartConverter struct {
	outputDir string
	resolver  *resolver.Resolver
	log       *logger.Logger
}

func NewChartConverter(outputDir string, res *resolver.Resolver) *ChartConverter {
	return &ChartConverter{
		outputDir: outputDir,
		resolver:  res,
		log:       logger.GetLogger(),
	}
}

// Convert transcodes one song folder under the assigned song ID. A missing
// metadata.yml fails soft: the song is skipped with ok=false and the
// caller does not commit the ID. A malformed or unwritable difficulty file
// only skips that difficulty.
func (c *ChartConverter) Convert(chartFolder string, songID int) (ok bool, difficulties int, err error) {
	metadataPath := filepath.Join(chartFolder, "metadata.yml")
	if _, statErr := os.Stat(metadataPath); statErr != nil {
		c.log.Warnf("metadata.yml not found in %s", filepath.Base(chartFolder))
		return false, 0, nil
	}

	oldMeta, err := model.LoadSongMetadata(metadataPath)
	if err != nil {
		return false, 0, err
	}

	outputFolder := filepath.Join(c.outputDir, "Charts", strconv.Itoa(songID))
	if err := utils.MakeDir(outputFolder); err != nil {
		return false, 0, fmt.Errorf("failed to create song output folder: %w", err)
	}

	if err := c.writeManifest(oldMeta, songID, outputFolder); err != nil {
		return false, 0, err
	}

	for _, difficultyFile := range DifficultyFiles {
		chartPath := filepath.Join(chartFolder, difficultyFile)
		if _, statErr := os.Stat(chartPath); statErr != nil {
			continue
		}
		oldChart, loadErr := model.LoadChart(chartPath)
		if loadErr != nil {
			c.log.Warnf("Skipping %s in %s: %v", difficultyFile, filepath.Base(chartFolder), loadErr)
			continue
		}
		difficulty := strings.TrimSuffix(difficultyFile, ".json")
		if convErr := c.convertChart(oldMeta, oldChart, difficulty, outputFolder); convErr != nil {
			c.log.Warnf("Failed to convert %s in %s: %v", difficultyFile, filepath.Base(chartFolder), convErr)
			continue
		}
		difficulties++
	}

	c.log.Infof("Converted chart: %s -> %d", oldMeta.Name, songID)
	return true, difficulties, nil
}

// writeManifest emits the v2 manifest.yml. The extension lists are
// reserved for later tooling and always written empty.
func (c *ChartConverter) writeManifest(old *model.LegacySongMetadata, songID int, outputFolder string) error {
	manifest := model.SongManifest{
		Name:         defaultString(old.Name, "Unknown"),
		Composer:     defaultString(old.Composer, "Unknown"),
		Icon:         defaultString(old.Icon, "NOTE_BLOCK"),
		Alias:        old.Alias,
		Length:       old.Length * MsPerTick,
		BaseBPM:      BaseBPM,
		RespackSHA1:  old.RespackSHA1,
		Description:  "",
		SongID:       songID,
		Version:      defaultString(old.Version, "1.0"),
		Comments:     []string{},
		PlayerAlias:  []string{},
		Tags:         []string{},
		UnlockSong:   []any{},
		UnlockWorld:  []any{},
		UnlockNether: []any{},
		UnlockVoid:   []any{},
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(outputFolder, "manifest.yml"), data, 0644)
}

func (c *ChartConverter) convertChart(om *model.LegacySongMetadata, oldChart *model.LegacyChart, difficulty string, outputFolder string) error {
	newChart := model.Chart{
		Meta:    c.convertChartMeta(oldChart.Meta, difficulty),
		Tracks:  []model.Track{buildTrack(oldChart.Frames, float64(om.Length))},
		Effects: convertEffects(oldChart.Effects),
	}

	data, err := json.MarshalIndent(&newChart, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize chart: %w", err)
	}
	return os.WriteFile(filepath.Join(outputFolder, difficulty+".rmcc"), data, 0644)
}

func (c *ChartConverter) convertChartMeta(old *model.LegacyChartMeta, difficulty string) model.ChartMeta {
	meta := model.ChartMeta{
		Charters: []string{},
		Level:    1.0,
		UID:      100000 + difficultyIndex(difficulty),
		Comments: []string{},
		BPMs:     []model.BPMEntry{{Beat: 0, BPM: BaseBPM}},
	}

	if old != nil {
		if old.CharterAlias != nil {
			meta.Charters = append(meta.Charters, *old.CharterAlias)
		} else if old.Charter != "" {
			meta.Charters = append(meta.Charters, c.resolveCharter(old.Charter))
		}
		for _, coop := range old.CoopCharters {
			meta.Charters = append(meta.Charters, c.resolveCharter(coop))
		}

		if old.Level > 0 {
			meta.Level = math.Round(old.Level*10) / 10
		}
		meta.Offset = old.Offset * MsPerTick
		meta.Comments = append(meta.Comments, old.Comments...)
		if old.InitialArena != nil {
			meta.InitialArena = *old.InitialArena
		}
	}

	if len(meta.Charters) == 0 {
		meta.Charters = append(meta.Charters, "Unknown")
	}
	return meta
}

// resolveCharter turns UUID-shaped charter identifiers into display names;
// anything else passes through unchanged.
func (c *ChartConverter) resolveCharter(charter string) string {
	if c.resolver != nil && resolver.IsUUID(charter) {
		return c.resolver.Resolve(charter)
	}
	return charter
}

// difficultyIndex yields the uid suffix for a difficulty: world=1,
// nether=2, end=3, void=4, anything else 1.
func difficultyIndex(difficulty string) int {
	switch strings.ToLower(difficulty) {
	case "world":
		return 1
	case "nether":
		return 2
	case "end":
		return 3
	case "void":
		return 4
	default:
		return 1
	}
}

// buildTrack collects every frame's notes into the single track 0 with
// default interpolation channels spanning the whole song. Legacy frames
// are not guaranteed sorted and hold expansion interleaves beats, so the
// note list is stably re-sorted by beat at the end.
func buildTrack(frames []model.LegacyFrame, endBeat float64) model.Track {
	notes := []model.Note{}
	for _, frame := range frames {
		for i := range frame.Notes {
			notes = append(notes, convertNote(&frame.Notes[i], frame.JudgeTick)...)
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Beat < notes[j].Beat
	})

	return model.Track{
		ID:               0,
		SpeedEvents:      model.FlatEvent(endBeat, 1.0),
		XTransformEvents: model.FlatEvent(endBeat, 0.0),
		YTransformEvents: model.FlatEvent(endBeat, 0.0),
		ZTransformEvents: model.FlatEvent(endBeat, 0.0),
		XRotateEvents:    model.FlatEvent(endBeat, 0.0),
		YRotateEvents:    model.FlatEvent(endBeat, 0.0),
		ZRotateEvents:    model.FlatEvent(endBeat, 0.0),
		XScaleEvents:     model.FlatEvent(endBeat, 1.0),
		YScaleEvents:     model.FlatEvent(endBeat, 1.0),
		ZScaleEvents:     model.FlatEvent(endBeat, 1.0),
		Notes:            notes,
	}
}

// convertNote expands a HOLD note of length L into L+1 notes, one per
// beat, each at the fixed sentinel position (0,-1,0); the legacy hold
// geometry is not carried over. Other note types map 1:1 keeping their
// (x,y) with z=0.
func convertNote(old *model.LegacyNote, judgeTick int64) []model.Note {
	noteType := mapper.MapNoteType(old.Type)

	if noteType == mapper.HOLD && old.Length != nil && *old.Length >= 0 {
		length := *old.Length
		notes := make([]model.Note, 0, length+1)
		for i := int64(0); i <= length; i++ {
			notes = append(notes, model.Note{
				NoteType: noteType,
				Beat:     float64(judgeTick + i), // tick = beat when BPM = 1200
				Pos:      [3]float64{0, -1, 0},
				Scale:    [3]float64{1, 1, 1},
			})
		}
		return notes
	}

	return []model.Note{{
		NoteType: noteType,
		Beat:     float64(judgeTick),
		Pos:      [3]float64{old.PosX(), old.PosY(), 0},
		Scale:    [3]float64{1, 1, 1},
	}}
}

// convertEffects maps the legacy effects in input order, dropping the ones
// the new engine has no equivalent for.
func convertEffects(effects []model.LegacyEffect) []model.Effect {
	out := []model.Effect{}
	for i := range effects {
		if mapped := mapper.MapEffect(&effects[i]); mapped != nil {
			out = append(out, *mapped)
		}
	}
	return out
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
