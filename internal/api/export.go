package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tourdrop/tourdrop/internal/export"
	"github.com/tourdrop/tourdrop/internal/storage"
)

// exportRequest is the flat JSON payload of POST /api/export. Field names
// match the historical form fields; komoot_api_key is the legacy combined
// "email:password" credential, accepted only here and split before the
// config reaches the pipeline.
type exportRequest struct {
	ExportName   string `json:"export_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	CompleteOnly bool   `json:"complete_only"`
	ExerciseType string `json:"exercise_type"`

	KomootEmail    string `json:"komoot_email"`
	KomootPassword string `json:"komoot_password"`
	KomootAPIKey   string `json:"komoot_api_key"`

	StorageType string `json:"storage_type"`

	storage.S3Config
	storage.FSConfig
	storage.SMBConfig
}

// normalizeKind maps the legacy storage type names onto the canonical kinds.
func normalizeKind(raw string) storage.Kind {
	switch raw {
	case "s3":
		return storage.KindObjectStorage
	case "nfs":
		return storage.KindFilesystem
	default:
		return storage.Kind(raw)
	}
}

func (req *exportRequest) missingFields() []string {
	var missing []string
	if req.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if req.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if req.KomootAPIKey == "" && (req.KomootEmail == "" || req.KomootPassword == "") {
		missing = append(missing, "komoot_api_key")
	}
	if req.StorageType == "" {
		missing = append(missing, "storage_type")
	}
	return missing
}

// credentials returns the email/password pair, splitting the legacy
// combined form when the explicit fields are absent.
func (req *exportRequest) credentials() (string, string) {
	if req.KomootEmail != "" || req.KomootPassword != "" {
		return req.KomootEmail, req.KomootPassword
	}
	email, password, _ := strings.Cut(req.KomootAPIKey, ":")
	return email, password
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	lang := detectLanguage(r)

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	email, password := req.credentials()
	cfg := export.Config{
		ExportName:   req.ExportName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CompleteOnly: req.CompleteOnly,
		Sport:        req.ExerciseType,
		Email:        email,
		Password:     password,
		Lang:         lang,
		Destination: storage.Destination{
			Kind: normalizeKind(req.StorageType),
			S3:   req.S3Config,
			FS:   req.FSConfig,
			SMB:  req.SMBConfig,
		},
	}

	message, err := s.exporter.Run(r.Context(), cfg)
	if err != nil {
		s.writeExportError(w, err, lang)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}
