package service

import (
	"context"
	"io"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// Media

func (s *Service) ListMedia(ctx context.Context, eventID string) ([]*model.MediaItem, error) {
	return fetchList[*model.MediaItem](ctx, s, listPath(ResMedia, byEvent(eventID)))
}

func (s *Service) CreateMediaItem(ctx context.Context, m *model.MediaItem) (*model.MediaItem, error) {
	created, err := write[*model.MediaItem](ctx, s, http.MethodPost, "/"+ResMedia, m)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicMediaAdded, created.EventID, created.ID, created)
	return created, nil
}

// UploadMedia stores a file under the event's gallery folder and records it
// as a media item.
func (s *Service) UploadMedia(ctx context.Context, m *model.MediaItem, fileName string, r io.Reader) (*model.MediaItem, error) {
	asset, err := s.UploadAsset(ctx, GalleryFolder(m.EventID), fileName, r)
	if err != nil {
		return nil, err
	}
	m.URL = asset.URL
	if m.MediaType == "" {
		m.MediaType = mediaType(asset.ContentType, fileName)
	}
	return s.CreateMediaItem(ctx, m)
}

func (s *Service) DeleteMediaItem(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResMedia, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicMediaDeleted, eventID, id, nil)
	return nil
}

// Documents

func (s *Service) ListDocuments(ctx context.Context, eventID string) ([]*model.EventDocument, error) {
	return fetchList[*model.EventDocument](ctx, s, listPath(ResDocument, byEvent(eventID)))
}

func (s *Service) CreateDocument(ctx context.Context, d *model.EventDocument) (*model.EventDocument, error) {
	return write[*model.EventDocument](ctx, s, http.MethodPost, "/"+ResDocument, d)
}

func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	return s.remove(ctx, ResDocument, id)
}

// Links

func (s *Service) ListLinks(ctx context.Context, eventID string) ([]*model.EventLink, error) {
	return fetchList[*model.EventLink](ctx, s, listPath(ResLink, byEvent(eventID)))
}

func (s *Service) CreateLink(ctx context.Context, l *model.EventLink) (*model.EventLink, error) {
	return write[*model.EventLink](ctx, s, http.MethodPost, "/"+ResLink, l)
}

func (s *Service) DeleteLink(ctx context.Context, id string) error {
	return s.remove(ctx, ResLink, id)
}

// Professionals

func (s *Service) ListProfessionals(ctx context.Context, eventID string) ([]*model.Professional, error) {
	return fetchList[*model.Professional](ctx, s, listPath(ResProfessional, byEvent(eventID)))
}

func (s *Service) CreateProfessional(ctx context.Context, p *model.Professional) (*model.Professional, error) {
	return write[*model.Professional](ctx, s, http.MethodPost, "/"+ResProfessional, p)
}

func (s *Service) UpdateProfessional(ctx context.Context, id string, fields map[string]any) (*model.Professional, error) {
	return write[*model.Professional](ctx, s, http.MethodPut, resourcePath(ResProfessional, id), fields)
}

func (s *Service) DeleteProfessional(ctx context.Context, id string) error {
	return s.remove(ctx, ResProfessional, id)
}
