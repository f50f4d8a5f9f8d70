package battlefield

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// yamlFile is the top-level YAML structure for battlefield files.
type yamlFile struct {
	Battlefield yamlBattlefield `yaml:"battlefield"`
}

// yamlBattlefield uses plain ints so out-of-range values surface as validation
// errors instead of decoder errors.
type yamlBattlefield struct {
	Name       string          `yaml:"name"`
	Width      int             `yaml:"width"`
	Height     int             `yaml:"height"`
	Combatants []yamlCombatant `yaml:"combatants"`
}

type yamlCombatant struct {
	Name string `yaml:"name"`
	HP   int    `yaml:"hp"`
	Dmg  int    `yaml:"dmg"`
}

// Named is a validated battlefield together with the name it was stored under.
type Named struct {
	Name        string
	Battlefield combat.Battlefield
}

// LoadFromFile reads and validates a single battlefield YAML file.
//
// Precondition: path must point to a YAML battlefield file.
// Postcondition: Returns a validated battlefield or a non-nil error.
func LoadFromFile(path string) (*Named, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading battlefield file %s: %w", path, err)
	}
	named, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	if named.Name == "" {
		named.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return named, nil
}

// LoadFromBytes parses and validates a battlefield from YAML bytes.
//
// Postcondition: Returns a validated battlefield, a parse error, or an error
// wrapping ErrInvalidBattlefield.
func LoadFromBytes(data []byte) (*Named, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing battlefield YAML: %w", err)
	}
	named, err := convert(file.Battlefield)
	if err != nil {
		return nil, err
	}
	if err := Validate(named.Battlefield); err != nil {
		return nil, fmt.Errorf("validating battlefield: %w", err)
	}
	return named, nil
}

// LoadFromDir loads every .yaml/.yml file in dir, sorted by file name.
//
// Postcondition: Returns all validated battlefields or the first error encountered.
func LoadFromDir(dir string) ([]*Named, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading battlefield directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []*Named
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		bf, err := LoadFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading battlefield from %s: %w", name, err)
		}
		out = append(out, bf)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no battlefield files found in %s", dir)
	}
	return out, nil
}

// convert narrows the parsed YAML into kernel types.
func convert(yb yamlBattlefield) (*Named, error) {
	var errs []error
	w, err := narrowUint8("width", yb.Width)
	errs = append(errs, err)
	h, err := narrowUint8("height", yb.Height)
	errs = append(errs, err)

	bf := combat.Battlefield{Width: w, Height: h, Combatants: make([]combat.Combatant, 0, len(yb.Combatants))}
	for i, yc := range yb.Combatants {
		hp, err := narrowUint16(fmt.Sprintf("combatants[%d].hp", i), yc.HP)
		errs = append(errs, err)
		dmg, err := narrowUint16(fmt.Sprintf("combatants[%d].dmg", i), yc.Dmg)
		errs = append(errs, err)
		bf.Combatants = append(bf.Combatants, combat.Combatant{
			Name: strings.TrimSpace(yc.Name),
			HP:   hp,
			Dmg:  dmg,
		})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBattlefield, err)
	}
	return &Named{Name: yb.Name, Battlefield: bf}, nil
}
