package arena

import (
	"castle-fight/assets"
	"castle-fight/internal/blueprint"
	"castle-fight/internal/config"
	"castle-fight/internal/level"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadContent loads the faction catalog and level named by cfg. Empty paths
// select the embedded defaults.
func LoadContent(cfg config.Config, logger *slog.Logger) (*blueprint.Catalog, *level.Level, error) {
	var (
		factionFS  fs.FS = assets.Data
		factionDir       = assets.FactionsDir
	)
	if cfg.FactionsDir != "" {
		factionFS, factionDir = os.DirFS(cfg.FactionsDir), "."
	}
	cat, err := blueprint.LoadDir(factionFS, factionDir)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range cat.Factions() {
		logger.Info("faction loaded", "id", f.ID, "buildings", len(f.Buildings), "units", len(f.Units))
	}

	var (
		levelFS   fs.FS = assets.Data
		levelName       = assets.DefaultLevel
	)
	if cfg.Level != "" {
		levelFS, levelName = os.DirFS(filepath.Dir(cfg.Level)), filepath.Base(cfg.Level)
	}
	lvl, err := level.Load(levelFS, levelName)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("level loaded", "name", lvl.Name, "castles", len(lvl.Castles), "waypoints", len(lvl.Waypoints))
	return cat, lvl, nil
}
