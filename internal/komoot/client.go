// Package komoot is a minimal client for the parts of the Komoot API the
// exporter needs: login, paginated tour listing, and per-tour detail fetch.
package komoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tourdrop/tourdrop/internal/fault"
)

const defaultBaseURL = "https://api.komoot.de"

// PageSize is the fixed tour-list page size. A page shorter than this
// signals the last page.
const PageSize = 30

type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// NewClientWithBaseURL points the client at a non-default API host.
// Used by tests and self-hosted proxies.
func NewClientWithBaseURL(baseURL string, logger *slog.Logger) *Client {
	c := NewClient(logger)
	c.baseURL = baseURL
	return c
}

// Session holds the identity/token pair returned by login. It lives for one
// export run only and must never be logged or persisted.
type Session struct {
	UserID string
	Token  string
}

// TourSummary is one entry of the paginated tour list.
type TourSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Type  string `json:"type"`
	Sport string `json:"sport"`
}

// Coordinate is one recorded sample. Lat/Lng are pointers because the API
// can omit them; such samples carry no usable position.
type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
	Alt float64  `json:"alt"`
	T   int64    `json:"t"` // epoch milliseconds
}

// Tour is the detail record for a single tour, with coordinates embedded.
type Tour struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Embedded struct {
		Coordinates struct {
			Items []Coordinate `json:"items"`
		} `json:"coordinates"`
	} `json:"_embedded"`
}

type loginResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type toursResponse struct {
	Embedded struct {
		Tours []TourSummary `json:"tours"`
	} `json:"_embedded"`
}

// Login exchanges email/password for a session token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	endpoint := fmt.Sprintf("%s/v006/account/email/%s/", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.SetBasicAuth(email, password)

	resp, err := c.client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fault.WithDetail(fault.NetworkError, "timeout")
		}
		return nil, fault.New(fault.NetworkError)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fault.New(fault.AuthWrongSecret)
	case http.StatusNotFound:
		return nil, fault.New(fault.AuthInvalidIdentity)
	case http.StatusTooManyRequests:
		return nil, fault.New(fault.RateLimited)
	default:
		return nil, fault.WithDetail(fault.UpstreamError, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}
	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("unmarshal login response: %w", err)
	}

	c.logger.Debug("komoot login ok")
	return &Session{UserID: lr.Username, Token: lr.Password}, nil
}

// ListTours fetches one page of the user's tours, most recent first.
// Callers page from 0 and stop on an empty page or one shorter than PageSize.
func (c *Client) ListTours(ctx context.Context, s *Session, page int) ([]TourSummary, error) {
	endpoint := fmt.Sprintf("%s/v007/users/%s/tours/", c.baseURL, url.PathEscape(s.UserID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create tours request: %w", err)
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("sort_field", "date")
	q.Set("sort_direction", "desc")
	q.Set("limit", strconv.Itoa(PageSize))
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(s.UserID, s.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fault.New(fault.NetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fault.WithDetail(fault.UpstreamError, fmt.Sprintf("list tours: HTTP %d", resp.StatusCode))
	}

	var tr toursResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("unmarshal tours response: %w", err)
	}
	return tr.Embedded.Tours, nil
}

// TourDetail fetches one tour with its coordinate stream embedded.
func (c *Client) TourDetail(ctx context.Context, s *Session, tourID int64) (*Tour, error) {
	endpoint := fmt.Sprintf("%s/v007/tours/%d", c.baseURL, tourID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create tour detail request: %w", err)
	}
	q := req.URL.Query()
	q.Set("_embedded", "coordinates,way_types,surfaces,directions,participants,timeline,cover_images")
	q.Set("directions", "v2")
	q.Set("fields", "timeline")
	q.Set("format", "coordinate_array")
	q.Set("timeline_highlights_fields", "tips,recommenders")
	q.Set("page", "2")
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(s.UserID, s.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fault.New(fault.NetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fault.WithDetail(fault.UpstreamError, fmt.Sprintf("tour %d: HTTP %d", tourID, resp.StatusCode))
	}

	var tour Tour
	if err := json.NewDecoder(resp.Body).Decode(&tour); err != nil {
		return nil, fmt.Errorf("unmarshal tour detail: %w", err)
	}
	return &tour, nil
}
