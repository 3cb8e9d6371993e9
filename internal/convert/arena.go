package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frkovo/rhythmc-converter/internal/model"
	"github.com/frkovo/rhythmc-converter/internal/nbtree"
	"github.com/frkovo/rhythmc-converter/pkg/logger"
	"github.com/frkovo/rhythmc-converter/pkg/utils"
)

// ArenaConverter rebuilds one legacy arena YAML plus its schematic as a v2
// arena folder: metadata.yml and a renamed .schem copy with the geometry
// recovered from the schematic tag tree.
type ArenaConverter struct {
	schematicsDir string
	outputDir     string
	correlator    *Correlator
	log           *logger.Logger
}

func NewArenaConverter(schematicsDir, outputDir string, correlator *Correlator) *ArenaConverter {
	return &ArenaConverter{
		schematicsDir: schematicsDir,
		outputDir:     outputDir,
		correlator:    correlator,
		log:           logger.GetLogger(),
	}
}

// Convert transcodes one arena file and returns the normalized arena name.
// A missing schematic degrades to zeroed geometry and no copied file, not
// an error.
func (a *ArenaConverter) Convert(arenaFile string) (string, error) {
	oldArena, err := model.LoadArena(arenaFile)
	if err != nil {
		return "", err
	}

	arenaName := normalizeArenaName(oldArena.Name)

	outputFolder := filepath.Join(a.outputDir, "Arenas", arenaName)
	if err := utils.MakeDir(outputFolder); err != nil {
		return "", fmt.Errorf("failed to create arena output folder: %w", err)
	}

	displayName := oldArena.DisplayName
	if displayName == "" {
		displayName = oldArena.Name
	}

	manifest := model.ArenaManifest{
		Name:          arenaName,
		DisplayName:   displayName,
		Author:        "Unknown",
		Description:   "",
		Icon:          defaultString(oldArena.Icon, "GRASS_BLOCK"),
		Border:        defaultString(oldArena.NormalJudgeBoxMaterial(), "CYAN_CONCRETE"),
		Schematic:     arenaName + ".schem",
		Hide:          false,
		UnlockMethods: unlockMethods(oldArena, arenaName),
		SchematicInfo: a.readSchematicBounds(oldArena.SchematicFile),
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return "", fmt.Errorf("failed to serialize arena manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputFolder, "metadata.yml"), data, 0644); err != nil {
		return "", err
	}

	a.copySchematic(oldArena.SchematicFile, outputFolder, arenaName)

	a.correlator.CommitArena()
	a.log.Infof("Converted arena: %s -> %s", filepath.Base(arenaFile), arenaName)
	return arenaName, nil
}

// normalizeArenaName strips a trailing .yml (case-insensitive) and
// lowercases; a missing name defaults to "unknown".
func normalizeArenaName(name string) string {
	if name == "" {
		return "unknown"
	}
	if strings.HasSuffix(strings.ToLower(name), ".yml") {
		name = name[:len(name)-4]
	}
	return strings.ToLower(name)
}

// unlockMethods derives the arena unlock list: purchasable with a positive
// price unlocks with money, purchasable for free falls back to the default
// permission, anything else needs the per-arena permission. The money
// value is forced to a float scalar so the manifest reads 50.0, not 50.
func unlockMethods(old *model.LegacyArena, arenaName string) []model.UnlockMethod {
	switch {
	case old.CanBuy && old.Price > 0:
		price := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: strconv.FormatFloat(float64(old.Price), 'f', 1, 64),
		}
		return []model.UnlockMethod{{Type: "money", Value: price}}
	case old.CanBuy:
		return []model.UnlockMethod{{Type: "permission", Value: "default"}}
	default:
		return []model.UnlockMethod{{Type: "permission", Value: "rhythmc.arena." + arenaName}}
	}
}

// readSchematicBounds recovers width/height/length and the WorldEdit
// offset from the schematic tag tree. Any missing branch yields zeros;
// geometry extraction never fails the arena conversion.
func (a *ArenaConverter) readSchematicBounds(schematicFile string) model.SchematicBounds {
	bounds := model.SchematicBounds{
		Dimensions: []int{0, 0, 0},
		Offset:     []int{0, 0, 0},
	}

	if schematicFile == "" {
		return bounds
	}

	tree, err := nbtree.ReadFile(filepath.Join(a.schematicsDir, schematicFile))
	if err != nil {
		a.log.Warnf("Failed to read schematic %s: %v", schematicFile, err)
		return bounds
	}

	schematic := tree.Child("Schematic")
	bounds.Dimensions = []int{
		int(schematic.Child("Width").Short()),
		int(schematic.Child("Height").Short()),
		int(schematic.Child("Length").Short()),
	}
	if offset := schematic.Child("Metadata").Child("WorldEdit").Child("Offset").Ints(); len(offset) == 3 {
		bounds.Offset = offset
	}
	return bounds
}

func (a *ArenaConverter) copySchematic(schematicFile, outputFolder, arenaName string) {
	if schematicFile == "" {
		a.log.Warnf("No schematic file specified for arena: %s", arenaName)
		return
	}

	src := filepath.Join(a.schematicsDir, schematicFile)
	if _, err := os.Stat(src); err != nil {
		a.log.Warnf("Schematic file not found: %s", schematicFile)
		return
	}

	if err := utils.CopyFile(src, filepath.Join(outputFolder, arenaName+".schem")); err != nil {
		a.log.Warnf("Failed to copy schematic %s: %v", schematicFile, err)
	}
}
