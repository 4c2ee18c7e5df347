package haiku

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"haiku-server/internal/domain/generation"
	"haiku-server/internal/infrastructure/metrics"
	"haiku-server/internal/infrastructure/observability"
	"haiku-server/internal/infrastructure/queue"
	"haiku-server/internal/utils/platformerrors"
)

// ProjectGateway is the slice of the project store the pipeline needs:
// existence checks before acting and updated_at bumps after a haiku lands.
type ProjectGateway interface {
	Exists(ctx context.Context, projectID uint) error
	Touch(ctx context.Context, projectID uint) error
}

// Notifier marks a project's state as changed for connected observers.
type Notifier interface {
	MarkDirty(projectID uint)
}

// Service runs the user-triggered generation actions: inline haiku
// generation, deferred critique/image-prompt/image tasks, and prompt edits.
type Service interface {
	Generate(ctx context.Context, projectID uint, description string) (*Haiku, error)
	RequestCritique(ctx context.Context, haikuID uint) error
	RequestImagePrompts(ctx context.Context, haikuID uint) error
	RequestImage(ctx context.Context, haikuID uint, promptID string) error
	UpdateImagePrompt(ctx context.Context, promptID, newText string) error

	// Execute runs one dequeued background task. Called by workers only.
	Execute(ctx context.Context, task *queue.Task) error
}

// ServiceImpl provides the domain implementation.
type ServiceImpl struct {
	repo     Repository
	projects ProjectGateway
	provider generation.Provider
	tasks    queue.TaskQueue
	notifier Notifier
	variants int
	log      zerolog.Logger
}

// NewService wires dependencies. variants is the number of concurrent
// image-prompt branches per request.
func NewService(
	repo Repository,
	projects ProjectGateway,
	provider generation.Provider,
	tasks queue.TaskQueue,
	notifier Notifier,
	variants int,
	log zerolog.Logger,
) *ServiceImpl {
	if variants <= 0 {
		variants = 3
	}
	return &ServiceImpl{
		repo:     repo,
		projects: projects,
		provider: provider,
		tasks:    tasks,
		notifier: notifier,
		variants: variants,
		log:      log.With().Str("component", "haiku-service").Logger(),
	}
}

// Generate runs the inline single-call action: one completion, one haiku
// row, one dirty mark. A failed call persists nothing.
func (s *ServiceImpl) Generate(ctx context.Context, projectID uint, description string) (*Haiku, error) {
	if err := s.projects.Exists(ctx, projectID); err != nil {
		return nil, err
	}

	var answer haikuAnswer
	result, err := s.provider.Complete(ctx, generation.ChatRequest{
		ChainID: generation.NewChainID(),
		Name:    "haiku-generate",
		Messages: []generation.Message{
			{Role: generation.RoleUser, Content: haikuPrompt(description)},
		},
		Schema: &generation.Schema{Name: "haiku", Target: &answer},
	})
	if err != nil {
		return nil, fmt.Errorf("generate haiku: %w", err)
	}

	h := &Haiku{
		ProjectID: projectID,
		Title:     answer.Title,
		Text:      answer.Haiku,
	}
	if err := s.repo.CreateHaiku(ctx, h); err != nil {
		return nil, err
	}

	if err := s.projects.Touch(ctx, projectID); err != nil {
		s.log.Warn().Err(err).Uint("project_id", projectID).Msg("failed to bump project timestamp")
	}
	s.notifier.MarkDirty(projectID)

	s.log.Info().Uint("project_id", projectID).Uint("haiku_id", h.ID).
		Str("chain_id", result.ChainID).Msg("haiku generated")
	return h, nil
}

// RequestCritique validates the target and defers the critique generation.
func (s *ServiceImpl) RequestCritique(ctx context.Context, haikuID uint) error {
	h, err := s.repo.FindHaikuByID(ctx, haikuID)
	if err != nil {
		return err
	}
	return s.tasks.Enqueue(ctx, &queue.Task{
		Kind:      queue.KindCritique,
		ProjectID: h.ProjectID,
		HaikuID:   h.ID,
		ChainID:   generation.NewChainID(),
	})
}

// RequestImagePrompts validates the target and defers the fan-out action.
func (s *ServiceImpl) RequestImagePrompts(ctx context.Context, haikuID uint) error {
	h, err := s.repo.FindHaikuByID(ctx, haikuID)
	if err != nil {
		return err
	}
	return s.tasks.Enqueue(ctx, &queue.Task{
		Kind:      queue.KindImagePrompts,
		ProjectID: h.ProjectID,
		HaikuID:   h.ID,
		ChainID:   generation.NewChainID(),
	})
}

// RequestImage validates the prompt and defers the image generation.
func (s *ServiceImpl) RequestImage(ctx context.Context, haikuID uint, promptID string) error {
	p, err := s.repo.FindImagePromptByID(ctx, promptID)
	if err != nil {
		return err
	}
	h, err := s.repo.FindHaikuByID(ctx, p.HaikuID)
	if err != nil {
		return err
	}
	if haikuID != 0 && haikuID != h.ID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"image prompt does not belong to the given haiku", nil, "image-prompt-mismatch-001")
	}
	return s.tasks.Enqueue(ctx, &queue.Task{
		Kind:      queue.KindImage,
		ProjectID: h.ProjectID,
		HaikuID:   h.ID,
		PromptID:  p.ID,
		ChainID:   generation.NewChainID(),
	})
}

// UpdateImagePrompt persists the new text and marks the owning project dirty.
func (s *ServiceImpl) UpdateImagePrompt(ctx context.Context, promptID, newText string) error {
	p, err := s.repo.FindImagePromptByID(ctx, promptID)
	if err != nil {
		return err
	}
	h, err := s.repo.FindHaikuByID(ctx, p.HaikuID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateImagePromptText(ctx, p.ID, newText); err != nil {
		return err
	}
	s.notifier.MarkDirty(h.ProjectID)
	return nil
}

// Execute dispatches one background task. Errors terminate only the task.
func (s *ServiceImpl) Execute(ctx context.Context, task *queue.Task) error {
	ctx, span := observability.StartTaskSpan(ctx, task.ID, string(task.Kind), task.ProjectID)
	defer span.End()

	var err error
	switch task.Kind {
	case queue.KindCritique:
		err = s.runCritique(ctx, task)
	case queue.KindImagePrompts:
		err = s.runImagePrompts(ctx, task)
	case queue.KindImage:
		err = s.runImage(ctx, task)
	default:
		err = fmt.Errorf("unknown task kind %q", task.Kind)
	}

	if err != nil {
		metrics.BackgroundTasksTotal.WithLabelValues(string(task.Kind), "error").Inc()
		observability.RecordError(span, err)
		return err
	}
	metrics.BackgroundTasksTotal.WithLabelValues(string(task.Kind), "ok").Inc()
	return nil
}

func (s *ServiceImpl) runCritique(ctx context.Context, task *queue.Task) error {
	h, err := s.repo.FindHaikuByID(ctx, task.HaikuID)
	if err != nil {
		return err
	}

	var answer critiqueAnswer
	if _, err := s.provider.Complete(ctx, generation.ChatRequest{
		ChainID: task.ChainID,
		Name:    "haiku-critique",
		Messages: []generation.Message{
			{Role: generation.RoleUser, Content: critiquePrompt(h.Title, h.Text)},
		},
		Schema: &generation.Schema{Name: "haiku_critique", Target: &answer},
	}); err != nil {
		return fmt.Errorf("generate critique: %w", err)
	}
	if err := answer.validate(); err != nil {
		return fmt.Errorf("critique rejected: %w", err)
	}

	if err := s.repo.CreateCritique(ctx, &Critique{
		HaikuID:           h.ID,
		CreativityScore:   answer.CreativityScore,
		VocabularyDensity: answer.VocabularyDensity,
		RizzLevel:         answer.RizzLevel,
	}); err != nil {
		return err
	}

	s.notifier.MarkDirty(task.ProjectID)
	return nil
}

// branchResult is the explicit per-branch outcome of a fan-out action. A
// failed branch is excluded from persistence without affecting siblings.
type branchResult struct {
	variant int
	prompt  string
	err     error
}

func (s *ServiceImpl) runImagePrompts(ctx context.Context, task *queue.Task) error {
	h, err := s.repo.FindHaikuByID(ctx, task.HaikuID)
	if err != nil {
		return err
	}

	results := make([]branchResult, s.variants)
	var group errgroup.Group
	for i := 0; i < s.variants; i++ {
		variant := i
		group.Go(func() error {
			var answer imagePromptAnswer
			_, callErr := s.provider.Complete(ctx, generation.ChatRequest{
				ChainID: task.ChainID,
				Name:    fmt.Sprintf("image-prompt-%d", variant+1),
				Messages: []generation.Message{
					{Role: generation.RoleUser, Content: imagePromptVariant(h.Title, h.Text, variant)},
				},
				Schema: &generation.Schema{Name: "image_prompt", Target: &answer},
			})
			results[variant] = branchResult{variant: variant, prompt: answer.Prompt, err: callErr}
			// Branch failures are isolated; never fail the group.
			return nil
		})
	}
	_ = group.Wait()

	persisted := 0
	for _, res := range results {
		if res.err != nil {
			s.log.Warn().Err(res.err).Uint("haiku_id", h.ID).Int("variant", res.variant).
				Str("chain_id", task.ChainID).Msg("image prompt branch failed")
			continue
		}
		if err := s.repo.CreateImagePrompt(ctx, &ImagePrompt{HaikuID: h.ID, Text: res.prompt}); err != nil {
			s.log.Error().Err(err).Uint("haiku_id", h.ID).Int("variant", res.variant).
				Msg("failed to persist image prompt")
			continue
		}
		persisted++
	}

	// One mark per settled batch; partial persistence still signals.
	if persisted > 0 {
		s.notifier.MarkDirty(task.ProjectID)
	}

	s.log.Info().Uint("haiku_id", h.ID).Int("persisted", persisted).Int("variants", s.variants).
		Str("chain_id", task.ChainID).Msg("image prompt fan-out settled")
	return nil
}

func (s *ServiceImpl) runImage(ctx context.Context, task *queue.Task) error {
	p, err := s.repo.FindImagePromptByID(ctx, task.PromptID)
	if err != nil {
		return err
	}

	images, err := s.provider.GenerateImages(ctx, generation.ImageRequest{
		ChainID: task.ChainID,
		Name:    "haiku-image",
		Prompt:  p.Text,
	})
	if err != nil {
		return fmt.Errorf("generate image: %w", err)
	}

	persisted := 0
	for _, raw := range images {
		if err := s.repo.CreateImage(ctx, &Image{
			ImagePromptID: p.ID,
			B64:           encodeB64(raw),
		}); err != nil {
			s.log.Error().Err(err).Str("prompt_id", p.ID).Msg("failed to persist image")
			continue
		}
		persisted++
	}

	if persisted > 0 {
		s.notifier.MarkDirty(task.ProjectID)
	}
	if persisted == 0 && len(images) > 0 {
		return fmt.Errorf("no generated image could be persisted for prompt %s", p.ID)
	}
	return nil
}
