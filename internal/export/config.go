package export

import "github.com/tourdrop/tourdrop/internal/storage"

// Config is the full, immutable input of one export run. The front end
// populates it; the pipeline never reads anything else.
type Config struct {
	// ExportName is an optional folder namespace applied to every file
	// written in this run.
	ExportName string

	// StartDate and EndDate bound the tour date window, inclusive.
	// ISO dates ("2024-01-01") or date-times are accepted.
	StartDate string
	EndDate   string

	// CompleteOnly keeps only recorded tours, dropping planned ones.
	CompleteOnly bool

	// Sport, when non-empty, keeps only tours with this exact sport type.
	Sport string

	// Komoot credentials, as two explicit fields. The legacy combined
	// "email:password" form is split at the API boundary, never here.
	Email    string
	Password string

	// Lang selects the language of the confirmation message ("en"/"de").
	Lang string

	Destination storage.Destination
}
