package pokedex

import (
	"context"
	"errors"
	"image"

	"go.uber.org/zap"
)

type Catalog interface {
	FetchPokemon(ctx context.Context, name string) ([]byte, error)
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

type RecordSaver interface {
	Save(record Record) error
}

type CardRenderer interface {
	Render(record Record, bitmap image.Image) (*image.RGBA, error)
}

type CardDisplay interface {
	Show(ctx context.Context, record Record, card image.Image) error
	CardPath(record Record) string
}

type Publisher interface {
	Publish(ctx context.Context, record Record, card image.Image) error
}

// Service runs a single lookup from catalog fetch to card display.
type Service struct {
	catalog   Catalog
	store     RecordSaver
	exporters []RecordSaver
	renderer  CardRenderer
	display   CardDisplay
	publisher Publisher
	moveLimit int
	sugar     *zap.SugaredLogger
}

type ServiceOption func(*Service)

func WithExporters(exporters ...RecordSaver) ServiceOption {
	return func(s *Service) {
		s.exporters = append(s.exporters, exporters...)
	}
}

func WithPublisher(publisher Publisher) ServiceOption {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMoveLimit(limit int) ServiceOption {
	return func(s *Service) {
		s.moveLimit = limit
	}
}

func NewService(sugar *zap.SugaredLogger,
	catalog Catalog,
	store RecordSaver,
	renderer CardRenderer,
	display CardDisplay,
	opts ...ServiceOption) *Service {
	s := &Service{
		catalog:   catalog,
		store:     store,
		renderer:  renderer,
		display:   display,
		moveLimit: DefaultMoveLimit,
		sugar:     sugar,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup fetches, extracts, stores and displays one creature. Nothing is written
// to disk unless the catalog entry and its image were both retrieved.
func (s *Service) Lookup(ctx context.Context, name string) (Record, error) {
	s.sugar.Infof("Looking up %s", name)
	doc, err := s.catalog.FetchPokemon(ctx, name)
	if err != nil {
		return Record{}, err
	}
	record, err := Extract(doc, s.moveLimit)
	if err != nil {
		s.sugar.Errorf("Failed to extract record for %s: %s", name, err)
		return Record{}, err
	}
	bitmap, err := s.catalog.FetchImage(ctx, record.ImageURL)
	if err != nil {
		s.sugar.Errorf("Failed to fetch image for %s: %s", name, err)
		return Record{}, err
	}
	if err := s.store.Save(record); err != nil {
		return Record{}, err
	}
	if err := s.export(record); err != nil {
		return Record{}, err
	}
	card, err := s.renderer.Render(record, bitmap)
	if err != nil {
		return Record{}, &RenderError{Err: err}
	}
	if err := s.display.Show(ctx, record, card); err != nil {
		return Record{}, &RenderError{Err: err}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, record, card); err != nil {
			s.sugar.Errorf("Failed to publish %s: %s", record.Name, err)
			return record, err
		}
	}
	return record, nil
}

// CardPath reports where the display writes the card for record.
func (s *Service) CardPath(record Record) string {
	return s.display.CardPath(record)
}

func (s *Service) export(record Record) error {
	var errs []error
	for _, exporter := range s.exporters {
		if err := exporter.Save(record); err != nil {
			s.sugar.Errorf("Export failed: %s", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
