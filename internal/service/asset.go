package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// ErrLegacyAssetURL is returned for asset URLs on the previous platform's
// hosts, which no longer serve files.
var ErrLegacyAssetURL = errors.New("asset URL points at a retired platform host")

const assetsRoot = "/assets"

// UploadAsset stores a file in folder and returns it with an absolute URL.
func (s *Service) UploadAsset(ctx context.Context, folder, fileName string, r io.Reader) (*model.Asset, error) {
	fields := map[string]string{}
	if folder != "" {
		fields["folder"] = folder
	}
	raw, err := s.api.Upload(ctx, assetsRoot+"/upload", "file", fileName, r, fields)
	if err != nil {
		return nil, err
	}
	a, err := model.Decode[*model.Asset](raw)
	if err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if a.Name == "" {
		a.Name = fileName
	}
	ref := a.URL
	if ref == "" {
		ref = a.Path
	}
	if ref == "" {
		return nil, fmt.Errorf("upload of %s returned no URL", fileName)
	}
	if a.URL, err = s.ResolveAssetURL(ref); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssets lists the files and folders directly under folder.
func (s *Service) ListAssets(ctx context.Context, folder string) ([]*model.Asset, error) {
	q := url.Values{}
	if folder != "" {
		q.Set("folder", folder)
	}
	p := assetsRoot + "/list"
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	assets, err := fetchList[*model.Asset](ctx, s, p)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if a.URL == "" && a.Path != "" && !a.IsFolder {
			if resolved, err := s.ResolveAssetURL(a.Path); err == nil {
				a.URL = resolved
			}
		}
	}
	return assets, nil
}

func (s *Service) DeleteAsset(ctx context.Context, assetPath string) error {
	if assetPath == "" {
		return errors.New("asset path is required")
	}
	_, err := s.call(ctx, http.MethodPost, assetsRoot+"/delete", map[string]any{"path": assetPath})
	return err
}

// CreateAssetFolder creates name under parent; an empty parent is the root.
func (s *Service) CreateAssetFolder(ctx context.Context, parent, name string) error {
	if name == "" {
		return errors.New("folder name is required")
	}
	body := map[string]any{"name": name}
	if parent != "" {
		body["parent_folder"] = parent
	}
	_, err := s.call(ctx, http.MethodPost, assetsRoot+"/folder", body)
	return err
}

// ResolveAssetURL turns a stored asset reference into a URL a client can
// fetch. Absolute URLs are kept unless they point at a legacy host; relative
// paths are joined onto the asset origin under /assets/.
func (s *Service) ResolveAssetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing asset URL %q: %w", raw, err)
	}
	if u.IsAbs() || strings.HasPrefix(raw, "//") {
		if s.isLegacyHost(u.Hostname()) {
			return "", fmt.Errorf("%w: %s", ErrLegacyAssetURL, raw)
		}
		return raw, nil
	}
	p := strings.TrimLeft(raw, "/")
	if !strings.HasPrefix(p, "assets/") {
		p = "assets/" + p
	}
	return s.assetOrigin + "/" + p, nil
}

func (s *Service) isLegacyHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range s.legacyHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// originOf returns scheme://host of a base URL.
func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return strings.TrimRight(base, "/")
	}
	return u.Scheme + "://" + u.Host
}

// GalleryFolder is the asset folder holding an event's gallery uploads.
func GalleryFolder(eventID string) string {
	return path.Join("events", eventID, "gallery")
}

// mediaType classifies an upload as image or video.
func mediaType(contentType, fileName string) string {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(fileName))
	}
	if strings.HasPrefix(contentType, "video/") {
		return "video"
	}
	return "image"
}
