// Package service implements the domain operations of the event planner on
// top of the InstaBack API client: resource CRUD with dual-cased payloads,
// multi-endpoint fallback for aggregate reads, and best-effort notifications.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/instaback"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// Backend resources.
const (
	ResEvent        = "Event"
	ResTask         = "Task"
	ResMember       = "EventMember"
	ResPoll         = "Poll"
	ResMedia        = "MediaItem"
	ResDocument     = "EventDocument"
	ResLink         = "EventLink"
	ResProfessional = "Professional"
	ResRSVP         = "RSVP"
	ResMessage      = "Message"
	ResBudget       = "BudgetItem"
	ResInvitation   = "Invitation"
	ResUser         = "User"
)

// API is the subset of *instaback.Client the service needs.
type API interface {
	DoJSON(ctx context.Context, method, path string, body, out any) error
	Upload(ctx context.Context, path, fieldName, fileName string, r io.Reader, fields map[string]string) (json.RawMessage, error)
	BaseURL() string
}

var _ API = (*instaback.Client)(nil)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Publisher events.Publisher
	Logger    *slog.Logger

	// AssetOrigin is the origin relative asset paths resolve against.
	// Defaults to the scheme and host of the API base URL.
	AssetOrigin string
	// LegacyAssetHosts are hosts of the previous platform whose asset URLs
	// no longer resolve.
	LegacyAssetHosts []string
}

// DefaultLegacyAssetHosts is used when Options.LegacyAssetHosts is nil.
var DefaultLegacyAssetHosts = []string{"base44.app", "base44.com"}

// Service performs domain operations against the backend.
type Service struct {
	api         API
	pub         events.Publisher
	logger      *slog.Logger
	assetOrigin string
	legacyHosts []string
}

// New creates a Service over api.
func New(api API, opts Options) *Service {
	s := &Service{
		api:         api,
		pub:         opts.Publisher,
		logger:      opts.Logger,
		assetOrigin: opts.AssetOrigin,
		legacyHosts: opts.LegacyAssetHosts,
	}
	if s.pub == nil {
		s.pub = &events.NoopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.legacyHosts == nil {
		s.legacyHosts = DefaultLegacyAssetHosts
	}
	if s.assetOrigin == "" {
		s.assetOrigin = originOf(api.BaseURL())
	}
	return s
}

func resourcePath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

func listPath(resource string, filter url.Values) string {
	if len(filter) == 0 {
		return "/" + resource
	}
	return "/" + resource + "?" + filter.Encode()
}

func byEvent(eventID string) url.Values {
	return url.Values{"event_id": []string{eventID}}
}

// call performs one request, dual-casing the payload.
func (s *Service) call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	payload, err := encodePayload(body)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.api.DoJSON(ctx, method, path, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// encodePayload turns a struct or map into a dual-cased map, nested values
// included. Null values and
// an empty id are dropped so the backend assigns its own.
func encodePayload(body any) (any, error) {
	if body == nil {
		return nil, nil
	}
	m, err := model.ToMap(body)
	if err != nil {
		return nil, err
	}
	clean := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if k == "id" && v == "" {
			continue
		}
		clean[k] = v
	}
	return model.DualCase(clean), nil
}

func fetch[T any](ctx context.Context, s *Service, path string) (T, error) {
	raw, err := s.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return model.Decode[T](raw)
}

func fetchList[T any](ctx context.Context, s *Service, path string) ([]T, error) {
	raw, err := s.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return model.DecodeList[T](raw)
}

func write[T any](ctx context.Context, s *Service, method, path string, body any) (T, error) {
	raw, err := s.call(ctx, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return model.Decode[T](raw)
}

func (s *Service) remove(ctx context.Context, resource, id string) error {
	_, err := s.call(ctx, http.MethodDelete, resourcePath(resource, id), nil)
	return err
}

// isFallbackStatus reports whether an alternate endpoint should be tried.
func isFallbackStatus(err error) bool {
	return instaback.IsStatus(err, http.StatusNotFound, http.StatusMethodNotAllowed)
}

// errNoEndpoint is returned by firstAvailable when every path answered
// 404 or 405.
var errNoEndpoint = errors.New("no endpoint available")

// firstAvailable tries paths in order, moving on only on 404/405.
func (s *Service) firstAvailable(ctx context.Context, method string, paths []string, body any) (json.RawMessage, error) {
	var lastErr error
	for _, p := range paths {
		raw, err := s.call(ctx, method, p, body)
		if err == nil {
			return raw, nil
		}
		if !isFallbackStatus(err) {
			return nil, err
		}
		s.logger.Debug("endpoint unavailable, trying next", "path", p, "status", instaback.StatusCode(err))
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %w", errNoEndpoint, lastErr)
}
