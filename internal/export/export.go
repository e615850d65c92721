// Package export drives one export run: fetch tours from Komoot, filter
// them, convert matches to GPX, and hand the batch to a storage adapter.
package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tourdrop/tourdrop/internal/fault"
	"github.com/tourdrop/tourdrop/internal/gpx"
	"github.com/tourdrop/tourdrop/internal/komoot"
	"github.com/tourdrop/tourdrop/internal/storage"
)

// Exporter runs export invocations. It is safe for concurrent use: each
// run carries its own session and shares nothing with other runs.
type Exporter struct {
	komoot *komoot.Client
	logger *slog.Logger
}

func New(client *komoot.Client, logger *slog.Logger) *Exporter {
	return &Exporter{komoot: client, logger: logger}
}

var dateBoundLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDateBound(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateBoundLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Run executes one export and returns the localized count-bearing
// confirmation message. Every failure is a typed *fault.Error; zero
// matching tours is the typed NoTracksFound error, never a silent success.
func (e *Exporter) Run(ctx context.Context, cfg Config) (string, error) {
	if cfg.StartDate == "" || cfg.EndDate == "" {
		return "", fault.WithDetail(fault.InvalidConfig, "start date and end date are required")
	}
	if cfg.Email == "" || cfg.Password == "" {
		return "", fault.WithDetail(fault.InvalidConfig, "Komoot credentials are required")
	}
	start, err := parseDateBound(cfg.StartDate)
	if err != nil {
		return "", fault.WithDetail(fault.InvalidConfig, "invalid start date")
	}
	end, err := parseDateBound(cfg.EndDate)
	if err != nil {
		return "", fault.WithDetail(fault.InvalidConfig, "invalid end date")
	}

	lang := cfg.Lang
	if lang == "" {
		lang = fault.DefaultLang
	}

	runID := uuid.New().String()
	log := e.logger.With("run_id", runID)
	log.Info("export starting",
		"destination", cfg.Destination.Kind,
		"start", cfg.StartDate,
		"end", cfg.EndDate,
		"complete_only", cfg.CompleteOnly,
		"sport", cfg.Sport,
	)

	tracks, err := e.collect(ctx, cfg, start, end, log)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		log.Info("no tours matched")
		return "", fault.New(fault.NoTracksFound)
	}

	kind := cfg.Destination.Kind
	if !storage.Known(kind) {
		return "", fault.WithDetail(fault.UnknownDestinationKind, string(kind))
	}
	write, ok := storage.Lookup(kind)
	if !ok {
		return "", fault.WithDetail(fault.CapabilityUnavailable, string(kind))
	}

	if err := write(ctx, cfg.Destination, tracks, cfg.ExportName); err != nil {
		log.Warn("storage write failed", "destination", kind, "error", err)
		return "", err
	}

	log.Info("export complete", "destination", kind, "count", len(tracks))
	return fault.ExportedMessage(string(kind), len(tracks), lang), nil
}

// collect pages through the tour list, filters each page, and converts
// every match to GPX. Paging stops at the first empty or short page.
func (e *Exporter) collect(ctx context.Context, cfg Config, start, end time.Time, log *slog.Logger) ([]storage.Track, error) {
	session, err := e.komoot.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return nil, err
	}

	var tracks []storage.Track
	for page := 0; ; page++ {
		tours, err := e.komoot.ListTours(ctx, session, page)
		if err != nil {
			return nil, err
		}
		if len(tours) == 0 {
			break
		}

		for _, tour := range tours {
			if !keepTour(tour, start, end, cfg.CompleteOnly, cfg.Sport) {
				continue
			}
			detail, err := e.komoot.TourDetail(ctx, session, tour.ID)
			if err != nil {
				return nil, err
			}
			tracks = append(tracks, storage.Track{
				Name: tour.Name,
				GPX:  gpx.FromTour(detail),
			})
		}

		if len(tours) < komoot.PageSize {
			break
		}
	}

	log.Info("tours collected", "count", len(tracks))
	return tracks, nil
}
