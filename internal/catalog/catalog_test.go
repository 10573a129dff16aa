package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssdcollector/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	batteries := c.Batteries()
	require.Len(t, batteries, 2)
	assert.Equal(t, "taapu", batteries[0].ID)
	assert.Equal(t, "gfta_klpa", batteries[1].ID)

	taapu, err := c.Battery("taapu")
	require.NoError(t, err)
	assert.Equal(t, "Urdu", taapu.Language)
	assert.Len(t, taapu.Protocols, 6)

	gfta, err := c.Battery("gfta_klpa")
	require.NoError(t, err)
	assert.Equal(t, "English", gfta.Language)
	assert.Len(t, gfta.Protocols, 6)
}

func TestDefaultCatalogSharesWordsAcrossProtocols(t *testing.T) {
	c := Default()

	fronting, err := c.Protocol("taapu", "fronting")
	require.NoError(t, err)
	rDisorder, err := c.Protocol("taapu", "r_disorder")
	require.NoError(t, err)

	assert.True(t, fronting.HasWord("Bikri"))
	assert.True(t, rDisorder.HasWord("Bikri"))
}

func TestBatteryLookupErrors(t *testing.T) {
	c := Default()

	_, err := c.Battery("nope")
	assert.True(t, errors.Is(err, ErrBatteryNotFound))

	_, err = c.Protocol("taapu", "nope")
	assert.True(t, errors.Is(err, ErrProtocolNotFound))

	_, err = c.Protocol("nope", "fronting")
	assert.True(t, errors.Is(err, ErrBatteryNotFound))
}

func TestTotalWordCount(t *testing.T) {
	c := Default()
	taapu, err := c.Battery("taapu")
	require.NoError(t, err)

	sum := 0
	for _, p := range taapu.Protocols {
		sum += len(p.Words)
	}
	assert.Equal(t, sum, TotalWordCount(taapu))
	assert.Equal(t, sum, taapu.TotalWords())
	assert.Len(t, AllWords(taapu), sum)
}

func TestNewValidation(t *testing.T) {
	word := []models.Word{{ID: 1, Word: "cat"}}

	tests := []struct {
		name      string
		batteries []models.TestBattery
		wantErr   bool
	}{
		{
			name:      "valid",
			batteries: []models.TestBattery{{ID: "t1", Protocols: []models.Protocol{{ID: "p1", Words: word}}}},
		},
		{
			name:      "missing battery id",
			batteries: []models.TestBattery{{Protocols: []models.Protocol{{ID: "p1", Words: word}}}},
			wantErr:   true,
		},
		{
			name: "duplicate battery",
			batteries: []models.TestBattery{
				{ID: "t1", Protocols: []models.Protocol{{ID: "p1", Words: word}}},
				{ID: "t1", Protocols: []models.Protocol{{ID: "p1", Words: word}}},
			},
			wantErr: true,
		},
		{
			name:      "no protocols",
			batteries: []models.TestBattery{{ID: "t1"}},
			wantErr:   true,
		},
		{
			name: "duplicate protocol",
			batteries: []models.TestBattery{{ID: "t1", Protocols: []models.Protocol{
				{ID: "p1", Words: word},
				{ID: "p1", Words: word},
			}}},
			wantErr: true,
		},
		{
			name:      "empty protocol",
			batteries: []models.TestBattery{{ID: "t1", Protocols: []models.Protocol{{ID: "p1"}}}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.batteries...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBatteriesReturnsCopy(t *testing.T) {
	c := Default()
	list := c.Batteries()
	list[0].ID = "mutated"

	again := c.Batteries()
	assert.Equal(t, "taapu", again[0].ID)
}
