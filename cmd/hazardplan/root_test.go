package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"hazardplan/internal/app/evaluate"
	"hazardplan/internal/domain/hazard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPunctual_PrintsPlan(t *testing.T) {
	out, err := execute(t, "punctual", "--energy", "99", "--damage", "25", "--hits", "2")
	require.NoError(t, err)

	var resp evaluate.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Plan.Survivable)
	assert.Equal(t, -50, resp.Plan.Delta.Get(hazard.RegularEnergy))
	require.NotNil(t, resp.After)
	assert.Equal(t, 49, resp.After.Energy)
}

func TestContinuous_UnsurvivableWithoutReserves(t *testing.T) {
	out, err := execute(t, "continuous", "--energy", "40", "--dpf", "1", "--frames", "60")
	require.NoError(t, err)

	var resp evaluate.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Plan.Survivable)
	assert.Nil(t, resp.After)
}

func TestContinuous_RejectsUnknownKind(t *testing.T) {
	_, err := execute(t, "continuous", "--kind", "lavaa", "--dpf", "1", "--frames", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, hazard.ErrUnknownKind)
	assert.Contains(t, err.Error(), `did you mean "lava"`)
}

func TestKinds_ListsInterrupting(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "crystal_flash (interrupting)\n")
	assert.Contains(t, out, "lava\n")
}
