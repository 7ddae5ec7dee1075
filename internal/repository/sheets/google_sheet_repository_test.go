package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

type fakeWriter struct {
	sheetRange string
	values     []interface{}
	err        error
}

func (f *fakeWriter) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	f.sheetRange = sheetRange
	f.values = values
	return f.err
}

func TestSaveSimulation(t *testing.T) {
	writer := &fakeWriter{}
	repo := NewRepository(writer, "Simulations!A:AC")

	record := models.SimulationRecord{
		ID:        "sim-1",
		CreatedAt: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
		Renderer:  "native",
		Inputs:    models.Inputs{StandardFeedCost: 1, CowCount: 100, MilkPrice: 2},
		Results:   models.Results{NetProfit: 4.05, ROI: models.Some(3.5)},
	}

	require.NoError(t, repo.SaveSimulation(context.Background(), record))
	assert.Equal(t, "Simulations!A:AC", writer.sheetRange)
	require.Len(t, writer.values, 29)
	assert.Equal(t, "sim-1", writer.values[0])
	assert.Equal(t, "2026-10-14T12:00:00Z", writer.values[1])
	assert.Equal(t, "native", writer.values[2])
	assert.Equal(t, 1.0, writer.values[3])
	assert.Equal(t, 100, writer.values[6])
	assert.Equal(t, "", writer.values[16], "undefined current efficiency")
	assert.Equal(t, 4.05, writer.values[24])
	assert.Equal(t, 3.5, writer.values[28])
}

func TestSaveSimulation_Error(t *testing.T) {
	boom := errors.New("quota exceeded")
	repo := NewRepository(&fakeWriter{err: boom}, "Simulations!A:AC")

	err := repo.SaveSimulation(context.Background(), models.SimulationRecord{ID: "sim-2"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sim-2")
}
