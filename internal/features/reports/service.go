package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xyz-asif/nagaralert/internal/features/verify"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/pagination"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

// KarmaAwarder credits citizens for verified submissions
type KarmaAwarder interface {
	AddPoints(ctx context.Context, uid string, delta int) error
}

// ChangeNotifier is told after every committed report write
type ChangeNotifier interface {
	ReportsChanged(ctx context.Context)
}

// StatusObserver hears about every committed transition
type StatusObserver interface {
	StatusChanged(ctx context.Context, before, after Report)
}

// Submission is a one-shot report: raw image plus form fields
type Submission struct {
	UserID      string
	Citizen     bool
	Image       []byte
	Filename    string
	Category    string
	Description string
	Location    Location
}

type Service struct {
	repo     Repository
	verifier verify.Verifier
	uploader storage.Uploader
	karma    KarmaAwarder
	notifier ChangeNotifier
	observer StatusObserver
	now      func() time.Time
}

// NewService wires the report lifecycle. verifier, karma and notifier may be nil.
func NewService(repo Repository, verifier verify.Verifier, uploader storage.Uploader, karma KarmaAwarder, notifier ChangeNotifier) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		uploader: uploader,
		karma:    karma,
		notifier: notifier,
		now:      time.Now,
	}
}

// Observe registers o to hear about committed transitions
func (s *Service) Observe(o StatusObserver) {
	s.observer = o
}

// Submit verifies and uploads the image concurrently, then writes the report.
// A verification failure is tolerated; an upload failure aborts before any write.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Report, error) {
	if len(sub.Image) == 0 {
		return nil, ErrImageRequired
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("image storage: %w", apperrors.ErrUnavailable)
	}

	var (
		ai       *verify.Result
		uploaded *storage.UploadResult
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.verifier != nil {
		g.Go(func() error {
			res, err := s.verifier.Verify(gctx, sub.Image, storage.ContentType(sub.Image), sub.Category)
			if err != nil {
				logger.Warn("AI verification failed for user %s: %v", sub.UserID, err)
				return nil
			}
			ai = res
			return nil
		})
	}
	g.Go(func() error {
		res, err := s.uploader.UploadImage(gctx, sub.Image, sub.Filename)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		uploaded = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.create(ctx, Draft{
		UserID:      sub.UserID,
		ImageURL:    uploaded.URL,
		Category:    sub.Category,
		Description: sub.Description,
		Location:    sub.Location,
		AI:          ai,
	}, sub.Citizen)
}

// SubmitUploaded writes a report whose image was uploaded and verified in
// earlier calls. The AI result arrives from the client, so it is stored as
// given but never earns karma.
func (s *Service) SubmitUploaded(ctx context.Context, userID string, req SubmitReportRequest) (*Report, error) {
	category := req.Category
	if category == "" {
		category = req.Type
	}

	return s.create(ctx, Draft{
		UserID:      userID,
		ImageURL:    req.ImageURL,
		Category:    category,
		Description: req.Description,
		Location:    req.Location,
		AI:          req.AIResult,
	}, false)
}

// create stores the report; award credits karma when the server itself
// verified the image
func (s *Service) create(ctx context.Context, d Draft, award bool) (*Report, error) {
	report, err := Build(d, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	logger.Info("Report %s created by %s (%s, verified=%t)", report.ID, report.UserID, report.Category, report.AIVerified)

	// The report is already durable, so a failed award is only logged
	if award && report.AIVerified && s.karma != nil {
		if err := s.karma.AddPoints(ctx, report.UserID, KarmaPerVerifiedReport); err != nil {
			logger.Error("Failed to award karma to %s: %v", report.UserID, err)
		}
	}

	s.changed(ctx)
	return report, nil
}

// Transition applies an admin action as a single field-level update.
// The returned Mutation is always non-nil once the report was found.
func (s *Service) Transition(ctx context.Context, id string, req TransitionRequest) (*Mutation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m := newMutation(*current)
	fields, next, err := Transition(*current, ParseAction(string(req.Action)), req.Team, s.now())
	if err != nil {
		return m.fail(err), err
	}

	m.Report = next
	if err := s.repo.Update(ctx, id, fields); err != nil {
		m.Report = *current
		return m.fail(err), err
	}

	logger.Info("Report %s moved %s -> %s", id, current.Status, next.Status)
	if s.observer != nil {
		s.observer.StatusChanged(ctx, *current, next)
	}
	s.changed(ctx)
	return m.commit(next), nil
}

// Get returns a single report
func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.Get(ctx, id)
}

// All returns the full collection
func (s *Service) All(ctx context.Context) ([]Report, error) {
	return s.repo.List(ctx)
}

// Mine returns the caller's own reports, newest first
func (s *Service) Mine(ctx context.Context, userID string) ([]Report, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter{UserID: userID}.Apply(items), nil
}

// Search filters the full collection in memory and slices out one page
func (s *Service) Search(ctx context.Context, f Filter, page, limit int) (*ListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := f.Apply(items)
	p := pagination.New(page, limit, int64(len(matched)))
	start, end := p.Bounds()

	return &ListResponse{
		Items:  matched[start:end],
		Total:  p.Total,
		Page:   p.Page,
		Limit:  p.Limit,
		Counts: CountByStatus(items),
	}, nil
}

func (s *Service) changed(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.ReportsChanged(ctx)
	}
}

// IsClientError reports whether err was caused by the request rather than a collaborator
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrTeamRequired) ||
		errors.Is(err, ErrImageRequired)
}
