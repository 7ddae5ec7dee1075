package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inmilk/internal/domain/models"
	"github.com/mamadbah2/inmilk/internal/service/calculator"
	"github.com/mamadbah2/inmilk/internal/service/reporting"
)

type mockRenderer struct {
	renderFunc func(ctx context.Context, report models.Report) ([]byte, error)
	calls      int
}

func (m *mockRenderer) Name() string { return "mock" }

func (m *mockRenderer) Render(ctx context.Context, report models.Report) ([]byte, error) {
	m.calls++
	if m.renderFunc != nil {
		return m.renderFunc(ctx, report)
	}
	return []byte("%PDF-1.4 mock"), nil
}

type mockStore struct {
	puts     int
	filename string
	ttl      time.Duration
}

func (m *mockStore) Put(content []byte, filename, contentType string, ttl time.Duration) (string, time.Time) {
	m.puts++
	m.filename = filename
	m.ttl = ttl
	return "token-1", time.Date(2026, time.October, 14, 12, 15, 0, 0, time.UTC)
}

type mockArchive struct {
	records []models.SimulationRecord
	err     error
}

func (m *mockArchive) SaveSimulation(ctx context.Context, record models.SimulationRecord) error {
	m.records = append(m.records, record)
	return m.err
}

func validRaw() models.RawInputs {
	return models.RawInputs{
		StandardFeedCost:  "1,00",
		DryMatterIntake:   "18",
		FeedIntake:        "6",
		CowCount:          "100",
		IntakeIncrease:    "0,5",
		AdditiveFeedCost:  "1,20",
		DryMatterCost:     "0,80",
		CurrentMilkYield:  "25",
		FatPremium:        "0,10",
		MilkYieldIncrease: "1,5",
		MilkPrice:         "2,00",
	}
}

func newTestService(renderer reporting.Renderer, store DownloadStore, archive Archive) *Service {
	loc := time.FixedZone("BRT", -3*3600)
	svc := NewService(renderer, store, archive, Options{
		Labels:   reporting.MustCatalog("pt"),
		Location: loc,
		Filename: "relatorio_inmilk.pdf",
		TTL:      15 * time.Minute,
	}, nil)
	svc.now = func() time.Time { return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "sim-1" }
	return svc
}

func TestRun_Success(t *testing.T) {
	renderer := &mockRenderer{}
	store := &mockStore{}
	archive := &mockArchive{}
	svc := newTestService(renderer, store, archive)

	sim, err := svc.Run(context.Background(), validRaw())
	require.NoError(t, err)

	assert.Equal(t, "sim-1", sim.ID)
	assert.Equal(t, "Data de geração: 14/10/2026 09:00", sim.Report.Timestamp)
	assert.InDelta(t, 405.0, sim.Results.BatchGain, 1e-7)
	assert.Len(t, sim.Dashboard.Columns, 3)
	assert.Equal(t, "%PDF-1.4 mock", string(sim.Document))
	assert.Equal(t, "token-1", sim.DownloadToken)
	assert.False(t, sim.ExpiresAt.IsZero())

	assert.Equal(t, 1, store.puts)
	assert.Equal(t, "relatorio_inmilk.pdf", store.filename)
	assert.Equal(t, 15*time.Minute, store.ttl)

	require.Len(t, archive.records, 1)
	assert.Equal(t, "sim-1", archive.records[0].ID)
	assert.Equal(t, "mock", archive.records[0].Renderer)
	assert.Equal(t, 100, archive.records[0].Inputs.CowCount)
}

func TestRun_InvalidInputStopsEarly(t *testing.T) {
	renderer := &mockRenderer{}
	store := &mockStore{}
	archive := &mockArchive{}
	svc := newTestService(renderer, store, archive)

	raw := validRaw()
	raw.MilkPrice = ""
	_, err := svc.Run(context.Background(), raw)
	assert.ErrorIs(t, err, calculator.ErrMissingField)

	raw = validRaw()
	raw.MilkPrice = "abc"
	_, err = svc.Run(context.Background(), raw)
	assert.ErrorIs(t, err, calculator.ErrInvalidNumber)

	assert.Zero(t, renderer.calls)
	assert.Zero(t, store.puts)
	assert.Empty(t, archive.records)
}

func TestRun_RenderFailure(t *testing.T) {
	boom := errors.New("converter down")
	renderer := &mockRenderer{renderFunc: func(context.Context, models.Report) ([]byte, error) { return nil, boom }}
	store := &mockStore{}
	archive := &mockArchive{}
	svc := newTestService(renderer, store, archive)

	_, err := svc.Run(context.Background(), validRaw())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.puts)
	assert.Empty(t, archive.records)
}

func TestRun_ArchiveFailureIsIgnored(t *testing.T) {
	archive := &mockArchive{err: errors.New("mongo unavailable")}
	svc := newTestService(&mockRenderer{}, &mockStore{}, archive)

	sim, err := svc.Run(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Equal(t, "token-1", sim.DownloadToken)
	assert.Len(t, archive.records, 1)
}

func TestRun_WithoutStoreOrArchive(t *testing.T) {
	svc := newTestService(&mockRenderer{}, nil, nil)

	sim, err := svc.Run(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Empty(t, sim.DownloadToken)
	assert.NotEmpty(t, sim.Document)
}

func TestRun_NativeRenderer(t *testing.T) {
	svc := newTestService(reporting.NewNativeRenderer(), nil, nil)

	sim, err := svc.Run(context.Background(), validRaw())
	require.NoError(t, err)
	assert.True(t, reporting.IsPDF(sim.Document))
	assert.Equal(t, "native", svc.RendererName())
}
