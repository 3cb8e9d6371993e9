package convert

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/frkovo/rhythmc-converter/internal/model"
)

// writeSongFolder lays out a v1 song folder with the given difficulty
// documents.
func writeSongFolder(t *testing.T, metadata string, charts map[string]string) string {
	t.Helper()

	folder := t.TempDir()
	if err := os.WriteFile(filepath.Join(folder, "metadata.yml"), []byte(metadata), 0644); err != nil {
		t.Fatalf("Failed to write metadata.yml: %v", err)
	}
	for name, content := range charts {
		if err := os.WriteFile(filepath.Join(folder, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return folder
}

func readChart(t *testing.T, path string) *model.Chart {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var chart model.Chart
	if err := json.Unmarshal(data, &chart); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return &chart
}

func TestConvertEndToEnd(t *testing.T) {
	folder := writeSongFolder(t,
		"name: Test\ncomposer: Someone\nlength: 1000\nrespack_sha1: abc123\n",
		map[string]string{
			"world.json": `{
				"meta": {"charter-alias": "Charter", "level": 5.25, "offset": 10},
				"frames": [{"judge-tick": 100, "notes": [{"type": "NOTE_CLICK", "pos": [1, 2]}]}],
				"effects": []
			}`,
		})

	outputDir := t.TempDir()
	converter := NewChartConverter(outputDir, nil)

	ok, difficulties, err := converter.Convert(folder, 10001)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected conversion to succeed")
	}
	if difficulties != 1 {
		t.Fatalf("Expected 1 difficulty, got %d", difficulties)
	}

	// Manifest checks.
	manifestData, err := os.ReadFile(filepath.Join(outputDir, "Charts", "10001", "manifest.yml"))
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	var manifest model.SongManifest
	if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}
	if manifest.Name != "Test" {
		t.Errorf("manifest name = %q, want Test", manifest.Name)
	}
	if manifest.Length != 50000 {
		t.Errorf("manifest length = %d, want 50000", manifest.Length)
	}
	if manifest.BaseBPM != 1200.0 {
		t.Errorf("manifest base_bpm = %v, want 1200", manifest.BaseBPM)
	}
	if manifest.SongID != 10001 {
		t.Errorf("manifest song_id = %d, want 10001", manifest.SongID)
	}
	if manifest.RespackSHA1 != "abc123" {
		t.Errorf("manifest respack_sha1 = %q, want abc123", manifest.RespackSHA1)
	}

	// Chart checks.
	chart := readChart(t, filepath.Join(outputDir, "Charts", "10001", "world.rmcc"))
	if len(chart.Tracks) != 1 {
		t.Fatalf("Expected 1 track, got %d", len(chart.Tracks))
	}
	track := chart.Tracks[0]
	if track.ID != 0 {
		t.Errorf("track id = %d, want 0", track.ID)
	}
	if len(track.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(track.Notes))
	}
	note := track.Notes[0]
	if note.NoteType != 0 {
		t.Errorf("noteType = %d, want 0 (TAP)", note.NoteType)
	}
	if note.Beat != 100 {
		t.Errorf("beat = %v, want 100", note.Beat)
	}
	if note.Pos != [3]float64{1, 2, 0} {
		t.Errorf("pos = %v, want [1 2 0]", note.Pos)
	}

	// Default channels span the whole song at their neutral value.
	if len(track.SpeedEvents) != 1 || track.SpeedEvents[0].EndBeat != 1000 || track.SpeedEvents[0].StartValue != 1.0 {
		t.Errorf("unexpected speed events: %+v", track.SpeedEvents)
	}
	if len(track.XTransformEvents) != 1 || track.XTransformEvents[0].StartValue != 0.0 {
		t.Errorf("unexpected x transform events: %+v", track.XTransformEvents)
	}
	if len(track.ZScaleEvents) != 1 || track.ZScaleEvents[0].StartValue != 1.0 {
		t.Errorf("unexpected z scale events: %+v", track.ZScaleEvents)
	}

	// Meta checks.
	if len(chart.Meta.Charters) != 1 || chart.Meta.Charters[0] != "Charter" {
		t.Errorf("charters = %v, want [Charter]", chart.Meta.Charters)
	}
	if chart.Meta.Level != 5.3 {
		t.Errorf("level = %v, want 5.3", chart.Meta.Level)
	}
	if chart.Meta.Offset != 500 {
		t.Errorf("offset = %d, want 500", chart.Meta.Offset)
	}
	if chart.Meta.UID != 100001 {
		t.Errorf("uid = %d, want 100001", chart.Meta.UID)
	}
	if len(chart.Meta.BPMs) != 1 || chart.Meta.BPMs[0].BPM != 1200.0 || chart.Meta.BPMs[0].Beat != 0 {
		t.Errorf("bpms = %v, want single 1200 at beat 0", chart.Meta.BPMs)
	}
}

func TestConvertMissingMetadata(t *testing.T) {
	folder := t.TempDir()
	converter := NewChartConverter(t.TempDir(), nil)

	ok, _, err := converter.Convert(folder, 10001)
	if err != nil {
		t.Fatalf("Expected soft failure, got error: %v", err)
	}
	if ok {
		t.Fatal("Expected ok=false for missing metadata")
	}
}

func TestConvertDifficultyUIDs(t *testing.T) {
	chartJSON := `{"meta": {}, "frames": [], "effects": []}`
	folder := writeSongFolder(t, "name: UIDs\nlength: 10\n", map[string]string{
		"world.json":  chartJSON,
		"nether.json": chartJSON,
		"end.json":    chartJSON,
		"void.json":   chartJSON,
	})

	outputDir := t.TempDir()
	converter := NewChartConverter(outputDir, nil)

	ok, difficulties, err := converter.Convert(folder, 10002)
	if err != nil || !ok {
		t.Fatalf("Convert failed: ok=%v err=%v", ok, err)
	}
	if difficulties != 4 {
		t.Fatalf("Expected 4 difficulties, got %d", difficulties)
	}

	wantUIDs := map[string]int{"world": 100001, "nether": 100002, "end": 100003, "void": 100004}
	for difficulty, wantUID := range wantUIDs {
		chart := readChart(t, filepath.Join(outputDir, "Charts", "10002", difficulty+".rmcc"))
		if chart.Meta.UID != wantUID {
			t.Errorf("%s uid = %d, want %d", difficulty, chart.Meta.UID, wantUID)
		}
		// No charter entries at all falls back to Unknown.
		if len(chart.Meta.Charters) != 1 || chart.Meta.Charters[0] != "Unknown" {
			t.Errorf("%s charters = %v, want [Unknown]", difficulty, chart.Meta.Charters)
		}
		// Non-positive level defaults to 1.0.
		if chart.Meta.Level != 1.0 {
			t.Errorf("%s level = %v, want 1.0", difficulty, chart.Meta.Level)
		}
	}
}

func TestConvertNoteHoldExpansion(t *testing.T) {
	length := int64(3)
	notes := convertNote(&model.LegacyNote{Type: "NOTE_HOLD", Pos: []float64{4, 5}, Length: &length}, 10)

	if len(notes) != 4 {
		t.Fatalf("Expected 4 notes (L+1), got %d", len(notes))
	}
	for i, note := range notes {
		if note.Beat != float64(10+i) {
			t.Errorf("note %d beat = %v, want %d", i, note.Beat, 10+i)
		}
		if note.Pos != [3]float64{0, -1, 0} {
			t.Errorf("note %d pos = %v, want sentinel (0,-1,0)", i, note.Pos)
		}
		if note.NoteType != 2 {
			t.Errorf("note %d type = %d, want 2 (HOLD)", i, note.NoteType)
		}
	}
}

func TestConvertNoteHoldZeroLength(t *testing.T) {
	length := int64(0)
	notes := convertNote(&model.LegacyNote{Type: "NOTE_HOLD", Pos: []float64{4, 5}, Length: &length}, 7)

	if len(notes) != 1 {
		t.Fatalf("Expected 1 note for L=0, got %d", len(notes))
	}
	if notes[0].Beat != 7 || notes[0].Pos != [3]float64{0, -1, 0} {
		t.Errorf("L=0 hold note = %+v, want beat 7 at sentinel position", notes[0])
	}
}

func TestBuildTrackOrdersNotesByBeat(t *testing.T) {
	frames := []model.LegacyFrame{
		{JudgeTick: 5, Notes: []model.LegacyNote{{Type: "NOTE_CLICK", Pos: []float64{0, 0}}}},
		{JudgeTick: 3, Notes: []model.LegacyNote{{Type: "NOTE_CLICK", Pos: []float64{1, 1}}}},
	}

	track := buildTrack(frames, 100)
	if len(track.Notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(track.Notes))
	}
	if track.Notes[0].Beat != 3 || track.Notes[1].Beat != 5 {
		t.Errorf("notes ordered %v, %v; want beats 3, 5", track.Notes[0].Beat, track.Notes[1].Beat)
	}
}

func TestConvertEffectsDropsAbsent(t *testing.T) {
	visible := false
	effects := convertEffects([]model.LegacyEffect{
		{StartTick: 1, EffectType: "SPEED"},
		{StartTick: 2, EffectType: "VISIBLE", Visible: &visible},
		{StartTick: 3, EffectType: "JUDGEDOT"},
	})

	if len(effects) != 1 {
		t.Fatalf("Expected 1 surviving effect, got %d", len(effects))
	}
	if effects[0].EffectType != "HIDE_NOTES" || effects[0].Beat != 2 {
		t.Errorf("surviving effect = %+v, want HIDE_NOTES at beat 2", effects[0])
	}
}
