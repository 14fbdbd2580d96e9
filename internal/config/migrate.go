package config

import "fmt"

// migrate brings a loaded config up to CurrentVersion. A file without a
// version field is treated as the first version, so hand-written configs
// do not need one.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade todocurses)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 0 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		fn(cfg)
	}
	return nil
}

// migrations maps each version to the function that moves it one forward.
var migrations = map[int]func(*Config){
	0: migrateUnversioned,
}

// migrateUnversioned fills in what an unversioned file may have left out.
func migrateUnversioned(cfg *Config) {
	if cfg.ArchiveFile == "" {
		cfg.ArchiveFile = DefaultArchiveFile
	}
	cfg.Version = 1
}
