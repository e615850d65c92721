// Package fault defines the closed set of export error kinds and their
// localized user-facing messages.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies one failure class of the export pipeline. The set is
// closed: every error the pipeline surfaces to a caller carries exactly
// one of these kinds.
type Kind string

const (
	InvalidConfig           Kind = "invalid_config"
	AuthInvalidIdentity     Kind = "auth_invalid_identity"
	AuthWrongSecret         Kind = "auth_wrong_secret"
	RateLimited             Kind = "rate_limited"
	NetworkError            Kind = "network_error"
	UpstreamError           Kind = "upstream_error"
	NoTracksFound           Kind = "no_tracks_found"
	UnknownDestinationKind  Kind = "unknown_destination_kind"
	ConfigIncomplete        Kind = "config_incomplete"
	StorageConnectionFailed Kind = "storage_connection_failed"
	StorageAuthFailed       Kind = "storage_auth_failed"
	StorageBucketNotFound   Kind = "storage_bucket_not_found"
	StorageAccessDenied     Kind = "storage_access_denied"
	PathNotFound            Kind = "path_not_found"
	PermissionDenied        Kind = "permission_denied"
	ShareConnectionFailed   Kind = "share_connection_failed"
	ShareAuthFailed         Kind = "share_auth_failed"
	ShareNotFound           Kind = "share_not_found"
	CapabilityUnavailable   Kind = "capability_unavailable"
)

// Error is a typed export failure. Detail carries optional technical
// context (an HTTP status, a path, an S3 error code) that is appended to
// the localized message but never replaces it.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

// New returns a typed error with no detail.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// WithDetail returns a typed error carrying technical detail.
func WithDetail(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// KindOf extracts the fault kind from err, unwrapping as needed. The
// second return is false when err carries no typed fault.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// Is lets errors.Is match two fault errors by kind alone, ignoring detail.
func (e *Error) Is(target error) bool {
	var fe *Error
	if errors.As(target, &fe) {
		return e.Kind == fe.Kind
	}
	return false
}
