package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/api"
	"github.com/cory-johannsen/skirmish/internal/game/battlefield"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/grid"
)

const createBody = `{"battlefield":{"height":10,"width":10,"combatants":[
	{"name":"test1","hp":15,"dmg":2},
	{"name":"test2","hp":10,"dmg":4},
	{"name":"test3","hp":15,"dmg":2}]}}`

func TestParseCreateBattle(t *testing.T) {
	bf, err := api.ParseCreateBattle([]byte(createBody))
	require.NoError(t, err)
	assert.Equal(t, uint8(10), bf.Width)
	assert.Equal(t, uint8(10), bf.Height)
	require.Len(t, bf.Combatants, 3)
	assert.Equal(t, combat.Combatant{Name: "test2", HP: 10, Dmg: 4}, bf.Combatants[1])
}

func TestParseCreateBattle_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"not json":        `{battlefield`,
		"width overflow":  `{"battlefield":{"height":1,"width":256,"combatants":[]}}`,
		"negative hp":     `{"battlefield":{"height":2,"width":2,"combatants":[{"name":"a","hp":-1,"dmg":1},{"name":"b","hp":1,"dmg":1}]}}`,
		"duplicate names": `{"battlefield":{"height":2,"width":2,"combatants":[{"name":"a","hp":1,"dmg":1},{"name":"a","hp":1,"dmg":1}]}}`,
		"empty map":       `{"battlefield":{"height":0,"width":0,"combatants":[{"name":"a","hp":1,"dmg":1},{"name":"b","hp":1,"dmg":1}]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := api.ParseCreateBattle([]byte(body))
			assert.ErrorIs(t, err, battlefield.ErrInvalidBattlefield)
		})
	}
}

func TestFromAction_ExternallyTagged(t *testing.T) {
	move := combat.MoveAction{
		Round:     2,
		Combatant: "a",
		Start:     grid.NewPoint(0, 0),
		End:       grid.NewPoint(0, 2),
		Path:      []grid.Point{grid.NewPoint(0, 1), grid.NewPoint(0, 2)},
	}
	data, err := json.Marshal(api.FromAction(move))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Move":{"round":2,"combatant":"a","start":{"x":0,"y":0},"end":{"x":0,"y":2},
		"path":[{"x":0,"y":1},{"x":0,"y":2}]}}`, string(data))

	attack := combat.AttackAction{
		Round:     3,
		Assailant: combat.Combatant{Name: "a", HP: 9, Dmg: 4},
		Victim:    combat.Combatant{Name: "b", HP: 1, Dmg: 2},
		Damage:    4,
	}
	data, err = json.Marshal(api.FromAction(attack))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Attack":{"round":3,"attacker":"a","attacked":"b","dmg":4,"remaining_hp":1}}`, string(data))
}

func TestFromResult(t *testing.T) {
	bf, err := api.ParseCreateBattle([]byte(createBody))
	require.NoError(t, err)
	eng, err := combat.NewEngine(bf, combat.DefaultConfig(), dice.NewSeededSource(11), zap.NewNop())
	require.NoError(t, err)
	res, err := eng.Start()
	require.NoError(t, err)

	out := api.FromResult(res)
	assert.Len(t, out.Combatants, 3)
	assert.Len(t, out.Actions, len(res.Actions))
	assert.Equal(t, res.RoundsPlayed(), out.RoundNumber)
	assert.Equal(t, uint8(10), out.Map.Width)
	assert.Len(t, out.Map.Pois, res.Map.Len())
	if res.Winner != nil {
		require.NotNil(t, out.Winner)
		assert.Equal(t, res.Winner.Name, out.Winner.Name)
	}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	for _, key := range []string{"combatants", "map", "actions", "round_number", "winner"} {
		assert.Contains(t, generic, key)
	}

	var back api.BattleResultContract
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, out, back)
}

func TestFromBattlefield_RoundTrip(t *testing.T) {
	bf := combat.Battlefield{Width: 3, Height: 4, Combatants: []combat.Combatant{{Name: "x", HP: 2, Dmg: 1}}}
	assert.Equal(t, bf, api.FromBattlefield(bf).ToBattlefield())
}
