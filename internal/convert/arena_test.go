package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"gopkg.in/yaml.v3"

	"github.com/frkovo/rhythmc-converter/internal/model"
)

type schematicMetadata struct {
	WorldEdit struct {
		Offset []int32 `nbt:"Offset"`
	} `nbt:"WorldEdit"`
}

type schematicBody struct {
	Width    int16             `nbt:"Width"`
	Height   int16             `nbt:"Height"`
	Length   int16             `nbt:"Length"`
	Metadata schematicMetadata `nbt:"Metadata"`
}

type schematicRoot struct {
	Schematic schematicBody `nbt:"Schematic"`
}

// writeSchematic emits a minimal schematic tag tree.
func writeSchematic(t *testing.T, dir, name string, width, height, length int16, offset []int32) {
	t.Helper()

	root := schematicRoot{}
	root.Schematic.Width = width
	root.Schematic.Height = height
	root.Schematic.Length = length
	root.Schematic.Metadata.WorldEdit.Offset = offset

	data, err := nbt.Marshal(root)
	if err != nil {
		t.Fatalf("Failed to marshal schematic: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("Failed to write schematic: %v", err)
	}
}

func writeArenaFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write arena file: %v", err)
	}
	return path
}

func readArenaManifest(t *testing.T, path string) *model.ArenaManifest {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read arena manifest: %v", err)
	}
	var manifest model.ArenaManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("Failed to parse arena manifest: %v", err)
	}
	return &manifest
}

func TestArenaConvert(t *testing.T) {
	schematicsDir := t.TempDir()
	writeSchematic(t, schematicsDir, "sky.schem", 32, 16, 48, []int32{-1, 60, 2})

	arenaFile := writeArenaFile(t, t.TempDir(), "sky.yml", `
arena-name: Sky.yml
arena-displayname: The Sky
arena-icon: DIAMOND_BLOCK
schematic-file: sky.schem
can-buy: true
price: 50
effects:
  normal-judge-box-material: QUARTZ_BLOCK
`)

	outputDir := t.TempDir()
	correlator := NewCorrelator(10001, 10000)
	converter := NewArenaConverter(schematicsDir, outputDir, correlator)

	name, err := converter.Convert(arenaFile)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if name != "sky" {
		t.Fatalf("normalized name = %q, want sky", name)
	}
	if correlator.ArenaCount() != 1 {
		t.Errorf("ArenaCount = %d, want 1", correlator.ArenaCount())
	}

	manifest := readArenaManifest(t, filepath.Join(outputDir, "Arenas", "sky", "metadata.yml"))
	if manifest.Name != "sky" {
		t.Errorf("name = %q, want sky", manifest.Name)
	}
	if manifest.DisplayName != "The Sky" {
		t.Errorf("display-name = %q, want The Sky", manifest.DisplayName)
	}
	if manifest.Author != "Unknown" {
		t.Errorf("author = %q, want Unknown", manifest.Author)
	}
	if manifest.Icon != "DIAMOND_BLOCK" {
		t.Errorf("icon = %q, want DIAMOND_BLOCK", manifest.Icon)
	}
	if manifest.Border != "QUARTZ_BLOCK" {
		t.Errorf("border = %q, want QUARTZ_BLOCK", manifest.Border)
	}
	if manifest.Schematic != "sky.schem" {
		t.Errorf("schematic = %q, want sky.schem", manifest.Schematic)
	}
	if manifest.Hide {
		t.Error("hide = true, want false")
	}

	// Purchasable with a positive price unlocks with money.
	if len(manifest.UnlockMethods) != 1 {
		t.Fatalf("Expected 1 unlock method, got %d", len(manifest.UnlockMethods))
	}
	if manifest.UnlockMethods[0].Type != "money" {
		t.Errorf("unlock type = %q, want money", manifest.UnlockMethods[0].Type)
	}
	if value, ok := manifest.UnlockMethods[0].Value.(float64); !ok || value != 50.0 {
		t.Errorf("unlock value = %v, want 50.0", manifest.UnlockMethods[0].Value)
	}

	// The money value must stay a float scalar in the document itself.
	raw, err := os.ReadFile(filepath.Join(outputDir, "Arenas", "sky", "metadata.yml"))
	if err != nil {
		t.Fatalf("Failed to read arena manifest: %v", err)
	}
	if !strings.Contains(string(raw), "value: 50.0") {
		t.Errorf("manifest does not carry the price as 50.0:\n%s", raw)
	}

	// Geometry recovered from the schematic tag tree.
	wantDims := []int{32, 16, 48}
	wantOffset := []int{-1, 60, 2}
	for i := range wantDims {
		if manifest.SchematicInfo.Dimensions[i] != wantDims[i] {
			t.Errorf("dimensions = %v, want %v", manifest.SchematicInfo.Dimensions, wantDims)
			break
		}
	}
	for i := range wantOffset {
		if manifest.SchematicInfo.Offset[i] != wantOffset[i] {
			t.Errorf("offset = %v, want %v", manifest.SchematicInfo.Offset, wantOffset)
			break
		}
	}

	// Schematic copied under its normalized name.
	if _, err := os.Stat(filepath.Join(outputDir, "Arenas", "sky", "sky.schem")); err != nil {
		t.Errorf("Expected copied schematic: %v", err)
	}
}

func TestArenaConvertPermissionUnlock(t *testing.T) {
	arenaFile := writeArenaFile(t, t.TempDir(), "void.yml", `
arena-name: Void
can-buy: false
schematic-file: missing.schem
`)

	outputDir := t.TempDir()
	converter := NewArenaConverter(t.TempDir(), outputDir, NewCorrelator(10001, 10000))

	name, err := converter.Convert(arenaFile)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if name != "void" {
		t.Fatalf("normalized name = %q, want void", name)
	}

	manifest := readArenaManifest(t, filepath.Join(outputDir, "Arenas", "void", "metadata.yml"))
	if len(manifest.UnlockMethods) != 1 {
		t.Fatalf("Expected 1 unlock method, got %d", len(manifest.UnlockMethods))
	}
	if manifest.UnlockMethods[0].Type != "permission" {
		t.Errorf("unlock type = %q, want permission", manifest.UnlockMethods[0].Type)
	}
	if manifest.UnlockMethods[0].Value != "rhythmc.arena.void" {
		t.Errorf("unlock value = %v, want rhythmc.arena.void", manifest.UnlockMethods[0].Value)
	}

	// Missing schematic degrades to zeroed geometry, no copied file.
	for _, d := range manifest.SchematicInfo.Dimensions {
		if d != 0 {
			t.Errorf("dimensions = %v, want zeros", manifest.SchematicInfo.Dimensions)
			break
		}
	}
	if _, err := os.Stat(filepath.Join(outputDir, "Arenas", "void", "void.schem")); err == nil {
		t.Error("Expected no copied schematic for missing source")
	}
}

func TestArenaConvertFreePurchaseUnlock(t *testing.T) {
	arenaFile := writeArenaFile(t, t.TempDir(), "lobby.yml", `
arena-name: Lobby
can-buy: true
price: 0
`)

	outputDir := t.TempDir()
	converter := NewArenaConverter(t.TempDir(), outputDir, NewCorrelator(10001, 10000))

	if _, err := converter.Convert(arenaFile); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	manifest := readArenaManifest(t, filepath.Join(outputDir, "Arenas", "lobby", "metadata.yml"))
	if manifest.UnlockMethods[0].Type != "permission" || manifest.UnlockMethods[0].Value != "default" {
		t.Errorf("unlock = %+v, want permission/default", manifest.UnlockMethods[0])
	}
}

func TestNormalizeArenaName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sky.yml", "sky"},
		{"Sky.YML", "sky"},
		{"Void", "void"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		if got := normalizeArenaName(tc.in); got != tc.want {
			t.Errorf("normalizeArenaName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
