package battlefield_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/battlefield"
)

const validBattlefieldYAML = `
battlefield:
  name: three_way
  width: 10
  height: 10
  combatants:
    - name: test1
      hp: 15
      dmg: 2
    - name: test2
      hp: 10
      dmg: 4
    - name: test3
      hp: 15
      dmg: 2
`

func TestLoadFromBytes_Valid(t *testing.T) {
	named, err := battlefield.LoadFromBytes([]byte(validBattlefieldYAML))
	require.NoError(t, err)

	assert.Equal(t, "three_way", named.Name)
	bf := named.Battlefield
	assert.Equal(t, uint8(10), bf.Width)
	assert.Equal(t, uint8(10), bf.Height)
	require.Len(t, bf.Combatants, 3)
	assert.Equal(t, "test2", bf.Combatants[1].Name)
	assert.Equal(t, uint16(10), bf.Combatants[1].HP)
	assert.Equal(t, uint16(4), bf.Combatants[1].Dmg)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"width out of range", `
battlefield:
  width: 300
  height: 5
  combatants: [{name: a, hp: 1}, {name: b, hp: 1}]
`},
		{"zero height", `
battlefield:
  width: 5
  height: 0
  combatants: [{name: a, hp: 1}, {name: b, hp: 1}]
`},
		{"negative hp", `
battlefield:
  width: 5
  height: 5
  combatants: [{name: a, hp: -1}, {name: b, hp: 1}]
`},
		{"hp overflow", `
battlefield:
  width: 5
  height: 5
  combatants: [{name: a, hp: 70000}, {name: b, hp: 1}]
`},
		{"duplicate names", `
battlefield:
  width: 5
  height: 5
  combatants: [{name: a, hp: 1}, {name: a, hp: 2}]
`},
		{"blank name", `
battlefield:
  width: 5
  height: 5
  combatants: [{name: "  ", hp: 1}, {name: b, hp: 2}]
`},
		{"lone combatant", `
battlefield:
  width: 5
  height: 5
  combatants: [{name: a, hp: 1}]
`},
		{"over capacity", `
battlefield:
  width: 1
  height: 2
  combatants: [{name: a, hp: 1}, {name: b, hp: 1}, {name: c, hp: 1}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := battlefield.LoadFromBytes([]byte(tt.yaml))
			assert.ErrorIs(t, err, battlefield.ErrInvalidBattlefield)
		})
	}
}

func TestLoadFromBytes_MalformedYAML(t *testing.T) {
	_, err := battlefield.LoadFromBytes([]byte("battlefield: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, battlefield.ErrInvalidBattlefield)
}

func TestLoadFromFile_NameFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	content := `
battlefield:
  width: 4
  height: 4
  combatants: [{name: a, hp: 1, dmg: 1}, {name: b, hp: 1, dmg: 1}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	named, err := battlefield.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "arena", named.Name)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := battlefield.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(validBattlefieldYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte(`
battlefield:
  width: 2
  height: 2
  combatants: [{name: x, hp: 3}, {name: y, hp: 3}]
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	all, err := battlefield.LoadFromDir(dir)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "three_way", all[1].Name)
}

func TestLoadFromDir_Empty(t *testing.T) {
	_, err := battlefield.LoadFromDir(t.TempDir())
	assert.Error(t, err)
}
