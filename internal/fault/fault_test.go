package fault

import (
	"errors"
	"fmt"
	"testing"
)

var allKinds = []Kind{
	InvalidConfig, AuthInvalidIdentity, AuthWrongSecret, RateLimited,
	NetworkError, UpstreamError, NoTracksFound, UnknownDestinationKind,
	ConfigIncomplete, StorageConnectionFailed, StorageAuthFailed,
	StorageBucketNotFound, StorageAccessDenied, PathNotFound,
	PermissionDenied, ShareConnectionFailed, ShareAuthFailed,
	ShareNotFound, CapabilityUnavailable,
}

func TestEveryKindHasAllTranslations(t *testing.T) {
	for _, kind := range allKinds {
		byLang, ok := messages[kind]
		if !ok {
			t.Errorf("kind %s has no message entry", kind)
			continue
		}
		for _, lang := range Langs {
			if byLang[lang] == "" {
				t.Errorf("kind %s missing %s message", kind, lang)
			}
		}
	}
}

func TestMessage_Localization(t *testing.T) {
	err := New(AuthWrongSecret)
	en := Message(err, "en")
	de := Message(err, "de")
	if en == de {
		t.Errorf("expected distinct en/de messages, both were %q", en)
	}
	if Message(err, "fr") != en {
		t.Errorf("unsupported language should fall back to english")
	}
}

func TestMessage_AppendsDetail(t *testing.T) {
	err := WithDetail(UpstreamError, "HTTP 503")
	got := Message(err, "en")
	want := "Komoot request failed. Please try again later. (HTTP 503)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMessage_UntypedError(t *testing.T) {
	err := errors.New("boom")
	if got := Message(err, "en"); got != "boom" {
		t.Errorf("untyped error should render as-is, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("write tracks: %w", New(PathNotFound))
	kind, ok := KindOf(wrapped)
	if !ok || kind != PathNotFound {
		t.Errorf("expected PathNotFound through wrapping, got %v ok=%v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Errorf("plain error should not yield a kind")
	}
}

func TestErrorIs_MatchesByKind(t *testing.T) {
	a := WithDetail(NetworkError, "timeout")
	if !errors.Is(a, New(NetworkError)) {
		t.Errorf("errors.Is should match same kind regardless of detail")
	}
	if errors.Is(a, New(RateLimited)) {
		t.Errorf("errors.Is should not match different kinds")
	}
}

func TestExportedMessage(t *testing.T) {
	tests := []struct {
		kind  string
		count int
		lang  string
		want  string
	}{
		{"object-storage", 3, "en", "Exported 3 tracks to S3 storage."},
		{"object-storage", 3, "de", "3 Touren nach S3-Storage exportiert."},
		{"filesystem", 1, "en", "Exported 1 tracks to NFS path."},
		{"smb", 7, "de", "7 Touren nach SMB-Share exportiert."},
		{"smb", 7, "fr", "Exported 7 tracks to SMB share."},
	}
	for _, tt := range tests {
		if got := ExportedMessage(tt.kind, tt.count, tt.lang); got != tt.want {
			t.Errorf("ExportedMessage(%s, %d, %s) = %q, want %q",
				tt.kind, tt.count, tt.lang, got, tt.want)
		}
	}
}
