package armory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownWeapon is returned when neither a weapon file nor a variant
// file exists for the requested name.
var ErrUnknownWeapon = errors.New("unknown weapon")

// Paths helper for default/weapon/variant files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "weapons", "default.yaml")
}
func (p Paths) WeaponPath(weapon string) string {
	return filepath.Join(p.BaseDir, "weapons", weapon+".yaml")
}
func (p Paths) VariantPath(weapon, variant string) string {
	return filepath.Join(p.BaseDir, "weapons", weapon, "variants", variant+".yaml")
}

// Loader reads YAML weapon records and merges default → weapon → variant.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "weapon" or "weapon/variant"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

func cacheKey(weapon, variant string) string {
	if variant == "" {
		return weapon
	}
	return weapon + "/" + variant
}

// LoadMerged loads and merges default → weapon → variant (variant optional).
// It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(weapon, variant string) (RawConfig, error) {
	if !validName(weapon) || (variant != "" && !validName(variant)) {
		return RawConfig{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, cacheKey(weapon, variant))
	}
	key := cacheKey(weapon, variant)

	l.mu.RLock()
	cfg, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	defCfg, _, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	weaponCfg, found, err := readYAML(l.paths.WeaponPath(weapon))
	if err != nil {
		return RawConfig{}, fmt.Errorf("read weapon %s: %w", weapon, err)
	}
	if !found {
		return RawConfig{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, weapon)
	}
	var variantCfg RawConfig
	if variant != "" {
		variantCfg, found, err = readYAML(l.paths.VariantPath(weapon, variant))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read variant %s: %w", key, err)
		}
		if !found {
			return RawConfig{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, key)
		}
	}

	// default <- weapon <- variant
	merged := mergeRaw(mergeRaw(defCfg, weaponCfg), variantCfg)

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// Weapons lists the weapon names that have a record under BaseDir.
func (l *Loader) Weapons() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.paths.BaseDir, "weapons", "*.yaml"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		name := filepath.Base(m)
		name = name[:len(name)-len(".yaml")]
		if name == "default" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// validName keeps lookups inside the weapons directory.
func validName(s string) bool {
	if s == "" || s == "default" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// readYAML loads a YAML file. Missing files return a zero cfg and found=false.
func readYAML(path string) (cfg RawConfig, found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, true, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, true, nil
}

// mergeRaw overlays b on a: every field set in b wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Mode != "" {
		out.Mode = b.Mode
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Gravity != nil {
		out.Gravity = b.Gravity
	}

	// arc
	if b.Arc != nil {
		c := ArcConfig{}
		if out.Arc != nil {
			c = *out.Arc
		}
		if b.Arc.ApexHeight != nil {
			c.ApexHeight = b.Arc.ApexHeight
		}
		if b.Arc.Flatten != nil {
			c.Flatten = b.Arc.Flatten
		}
		out.Arc = &c
	}

	// speed
	if b.Speed != nil {
		c := SpeedConfig{}
		if out.Speed != nil {
			c = *out.Speed
		}
		if b.Speed.InitialSpeed != nil {
			c.InitialSpeed = b.Speed.InitialSpeed
		}
		out.Speed = &c
	}

	// preview
	if b.Preview != nil {
		c := PreviewConfig{}
		if out.Preview != nil {
			c = *out.Preview
		}
		if b.Preview.Samples != nil {
			c.Samples = b.Preview.Samples
		}
		out.Preview = &c
	}

	return out
}
