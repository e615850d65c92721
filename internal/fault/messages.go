package fault

import (
	"errors"
	"fmt"
)

// DefaultLang is used when a requested language has no translation.
const DefaultLang = "en"

// Langs lists the supported message languages.
var Langs = []string{"en", "de"}

var messages = map[Kind]map[string]string{
	InvalidConfig: {
		"en": "Invalid export configuration. Please check the required fields.",
		"de": "Ungültige Export-Konfiguration. Bitte überprüfe die Pflichtfelder.",
	},
	AuthInvalidIdentity: {
		"en": "Invalid email address. Please check your Komoot email.",
		"de": "Ungültige E-Mail-Adresse. Bitte überprüfe deine Komoot E-Mail.",
	},
	AuthWrongSecret: {
		"en": "Wrong password. Please check your Komoot password.",
		"de": "Falsches Passwort. Bitte überprüfe dein Komoot Passwort.",
	},
	RateLimited: {
		"en": "Komoot rate limit reached. Please wait a few minutes and try again.",
		"de": "Komoot Rate-Limit erreicht. Bitte warte ein paar Minuten und versuche es erneut.",
	},
	NetworkError: {
		"en": "Network error. Please check your internet connection.",
		"de": "Netzwerkfehler. Bitte überprüfe deine Internetverbindung.",
	},
	UpstreamError: {
		"en": "Komoot request failed. Please try again later.",
		"de": "Komoot-Anfrage fehlgeschlagen. Bitte versuche es später erneut.",
	},
	NoTracksFound: {
		"en": "No tours found matching your criteria.",
		"de": "Keine Touren gefunden, die deinen Kriterien entsprechen.",
	},
	UnknownDestinationKind: {
		"en": "Unknown storage type. Supported types: object-storage, filesystem, smb.",
		"de": "Unbekannter Storage-Typ. Unterstützte Typen: object-storage, filesystem, smb.",
	},
	ConfigIncomplete: {
		"en": "Storage configuration incomplete. Please fill in all connection fields.",
		"de": "Storage-Konfiguration unvollständig. Bitte fülle alle Verbindungsfelder aus.",
	},
	StorageConnectionFailed: {
		"en": "Could not connect to S3 storage. Please check the endpoint URL.",
		"de": "Verbindung zu S3-Storage fehlgeschlagen. Bitte überprüfe die Endpoint-URL.",
	},
	StorageAuthFailed: {
		"en": "S3 authentication failed. Please check your access key and secret key.",
		"de": "S3-Authentifizierung fehlgeschlagen. Bitte überprüfe Access Key und Secret Key.",
	},
	StorageBucketNotFound: {
		"en": "S3 bucket not found. Please check the bucket name.",
		"de": "S3-Bucket nicht gefunden. Bitte überprüfe den Bucket-Namen.",
	},
	StorageAccessDenied: {
		"en": "S3 access denied. Please check your permissions for this bucket.",
		"de": "S3-Zugriff verweigert. Bitte überprüfe deine Berechtigungen für diesen Bucket.",
	},
	PathNotFound: {
		"en": "Path not found. Please check if the path exists.",
		"de": "Pfad nicht gefunden. Bitte überprüfe, ob der Pfad existiert.",
	},
	PermissionDenied: {
		"en": "Permission denied. Please check write permissions for this path.",
		"de": "Zugriff verweigert. Bitte überprüfe die Schreibrechte für diesen Pfad.",
	},
	ShareConnectionFailed: {
		"en": "Could not connect to SMB server. Please check the server address.",
		"de": "Verbindung zum SMB-Server fehlgeschlagen. Bitte überprüfe die Server-Adresse.",
	},
	ShareAuthFailed: {
		"en": "SMB authentication failed. Please check username and password.",
		"de": "SMB-Authentifizierung fehlgeschlagen. Bitte überprüfe Benutzername und Passwort.",
	},
	ShareNotFound: {
		"en": "SMB share not found. Please check the share name.",
		"de": "SMB-Share nicht gefunden. Bitte überprüfe den Share-Namen.",
	},
	CapabilityUnavailable: {
		"en": "This storage backend is not available in this build.",
		"de": "Dieses Storage-Backend ist in diesem Build nicht verfügbar.",
	},
}

// Message renders the localized user-facing line for err. Typed faults map
// through the message table; the technical detail, when present, is appended
// in parentheses. Untyped errors render as-is.
func Message(err error, lang string) string {
	kind, ok := KindOf(err)
	if !ok {
		return err.Error()
	}
	byLang, ok := messages[kind]
	if !ok {
		return err.Error()
	}
	msg, ok := byLang[lang]
	if !ok {
		msg = byLang[DefaultLang]
	}
	var fe *Error
	if errors.As(err, &fe) && fe.Detail != "" {
		return fmt.Sprintf("%s (%s)", msg, fe.Detail)
	}
	return msg
}

var exported = map[string]map[string]string{
	"object-storage": {
		"en": "Exported %d tracks to S3 storage.",
		"de": "%d Touren nach S3-Storage exportiert.",
	},
	"filesystem": {
		"en": "Exported %d tracks to NFS path.",
		"de": "%d Touren nach NFS-Pfad exportiert.",
	},
	"smb": {
		"en": "Exported %d tracks to SMB share.",
		"de": "%d Touren nach SMB-Share exportiert.",
	},
}

// ExportedMessage renders the count-bearing confirmation line for a
// successful run against the given destination kind.
func ExportedMessage(kind string, count int, lang string) string {
	byLang, ok := exported[kind]
	if !ok {
		return fmt.Sprintf("Exported %d tracks.", count)
	}
	tmpl, ok := byLang[lang]
	if !ok {
		tmpl = byLang[DefaultLang]
	}
	return fmt.Sprintf(tmpl, count)
}
