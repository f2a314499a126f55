package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"wefixit/contracts/mq"
	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/pkg/logger"
)

const defaultProjectLimit = 20

// ProjectInput is the data accepted when creating a project.
type ProjectInput struct {
	Title        string
	Description  string
	Category     string
	Link         string
	Technologies []string
	Featured     bool
	Image        string
}

type ProjectService struct {
	store     ProjectStore
	images    ImageStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewProjectService(store ProjectStore, images ImageStore, publisher EventPublisher, logger *zap.Logger) *ProjectService {
	return &ProjectService{store: store, images: images, publisher: publisher, logger: logger}
}

// List returns one page of projects, newest first.
func (s *ProjectService) List(ctx context.Context, f model.ProjectFilter) (*model.ProjectPage, error) {
	pg, err := page(f.Limit, f.Offset, defaultProjectLimit)
	if err != nil {
		return nil, err
	}
	f.Limit, f.Offset = pg.Limit, pg.Offset
	f.Category = strings.TrimSpace(f.Category)

	items, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &model.ProjectPage{Total: total, Limit: f.Limit, Offset: f.Offset, Items: items}, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return s.store.Get(ctx, id)
}

// Create stores a new project. Title and image are mandatory.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	p := &model.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Category:     strings.TrimSpace(in.Category),
		Link:         strings.TrimSpace(in.Link),
		Technologies: cleanTags(in.Technologies),
		Featured:     in.Featured,
		Image:        strings.TrimSpace(in.Image),
	}

	verr := apperr.Validation("invalid project")
	if p.Title == "" {
		verr.Add("title", "is required")
	}
	if p.Image == "" {
		verr.Add("image", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.WithTrace(ctx, s.logger).Info("Project created",
		zap.Int64("project_id", p.ID),
		zap.String("title", p.Title),
	)
	emit(ctx, s.publisher, s.logger, mq.RoutingProjectCreated, mq.ProjectCreatedPayload{
		ProjectID: p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
	})
	return p, nil
}

// Update merges patch into the stored project. A new image replaces the old
// reference and the old file is removed.
func (s *ProjectService) Update(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return p, nil
	}

	patch = trimPatch(patch)
	verr := apperr.Validation("invalid project")
	if patch.Title != nil && *patch.Title == "" {
		verr.Add("title", "must not be empty")
	}
	if patch.Image != nil && *patch.Image == "" {
		verr.Add("image", "must not be empty")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	oldImage := p.Image
	patch.Apply(p)
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Image != oldImage {
		s.removeImage(oldImage)
	}
	return p, nil
}

func (s *ProjectService) SetFeatured(ctx context.Context, id int64, featured bool) (*model.Project, error) {
	return s.store.SetFeatured(ctx, id, featured)
}

// Delete removes the project and its uploaded image.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.removeImage(p.Image)
	return nil
}

// DiscardImage removes an uploaded file that never made it into a project.
func (s *ProjectService) DiscardImage(ref string) {
	s.removeImage(ref)
}

func (s *ProjectService) removeImage(ref string) {
	if s.images == nil || ref == "" {
		return
	}
	if err := s.images.Remove(ref); err != nil {
		s.logger.Warn("Failed to remove project image", zap.String("image", ref), zap.Error(err))
	}
}

func trimPatch(p model.ProjectPatch) model.ProjectPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	p.Title = trim(p.Title)
	p.Description = trim(p.Description)
	p.Category = trim(p.Category)
	p.Link = trim(p.Link)
	p.Image = trim(p.Image)
	if p.Technologies != nil {
		tags := cleanTags(*p.Technologies)
		p.Technologies = &tags
	}
	return p
}

// cleanTags trims tags and drops empty and repeated ones.
func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
