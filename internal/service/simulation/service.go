// Package simulation runs one calculate action end to end: parse, compute,
// format, render, keep the document for download and archive the outcome.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/domain/models"
	"github.com/mamadbah2/inmilk/internal/service/calculator"
	"github.com/mamadbah2/inmilk/internal/service/reporting"
)

const archiveTimeout = 5 * time.Second

// Archive persists successful simulations.
type Archive interface {
	SaveSimulation(ctx context.Context, record models.SimulationRecord) error
}

// DownloadStore keeps rendered documents until they are fetched.
type DownloadStore interface {
	Put(content []byte, filename, contentType string, ttl time.Duration) (string, time.Time)
}

// Options tune report content and download lifetime.
type Options struct {
	Labels   reporting.Labels
	Location *time.Location
	Filename string
	TTL      time.Duration
}

// Service orchestrates simulations.
type Service struct {
	renderer reporting.Renderer
	store    DownloadStore
	archive  Archive
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a simulation service. store and archive may be nil: without
// a store no download token is issued, without an archive nothing is persisted.
func NewService(renderer reporting.Renderer, store DownloadStore, archive Archive, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		renderer: renderer,
		store:    store,
		archive:  archive,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Labels returns the strings the page and the report are rendered with.
func (s *Service) Labels() reporting.Labels { return s.opts.Labels }

// RendererName identifies the configured renderer.
func (s *Service) RendererName() string { return s.renderer.Name() }

// Run performs one calculation. Missing and invalid inputs are returned as the
// calculator's errors before anything is rendered.
func (s *Service) Run(ctx context.Context, raw models.RawInputs) (*models.Simulation, error) {
	in, res, err := calculator.Calculate(raw)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().In(s.opts.Location)
	sim := &models.Simulation{
		ID:        s.newID(),
		CreatedAt: createdAt,
		Inputs:    in,
		Results:   res,
		Dashboard: reporting.BuildDashboard(res, s.opts.Labels),
		Report:    reporting.BuildReport(in, res, s.opts.Labels, createdAt),
	}

	doc, err := s.renderer.Render(ctx, sim.Report)
	if err != nil {
		return nil, fmt.Errorf("render report with %s: %w", s.renderer.Name(), err)
	}
	sim.Document = doc

	if s.store != nil {
		sim.DownloadToken, sim.ExpiresAt = s.store.Put(doc, s.opts.Filename, reporting.ContentType, s.opts.TTL)
	}

	s.archiveSimulation(ctx, sim)

	s.logger.Info("simulation completed",
		zap.String("id", sim.ID),
		zap.String("renderer", s.renderer.Name()),
		zap.Int("document_bytes", len(doc)),
		zap.Float64("net_profit", res.NetProfit))

	return sim, nil
}

func (s *Service) archiveSimulation(ctx context.Context, sim *models.Simulation) {
	if s.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	record := models.SimulationRecord{
		ID:        sim.ID,
		CreatedAt: sim.CreatedAt,
		Renderer:  s.renderer.Name(),
		Inputs:    sim.Inputs,
		Results:   sim.Results,
	}
	if err := s.archive.SaveSimulation(ctx, record); err != nil {
		s.logger.Warn("failed to archive simulation", zap.String("id", sim.ID), zap.Error(err))
	}
}
