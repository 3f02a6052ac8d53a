package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/analytics"
	"github.com/rongwang/nyayadrishti/internal/auth"
	"github.com/rongwang/nyayadrishti/internal/dataset"
	"github.com/rongwang/nyayadrishti/internal/export"
	"github.com/rongwang/nyayadrishti/internal/metrics"
	"github.com/rongwang/nyayadrishti/internal/models"
	"github.com/rongwang/nyayadrishti/internal/notes"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	SetPassword(ctx context.Context, p models.Principal, req models.SetPasswordRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, p models.Principal) (*models.AuthResponse, error)
	Session(ctx context.Context, evidence string) (*models.SessionResponse, error)
	Authenticate(ctx context.Context, evidence string) (*models.Principal, error)

	// Role views
	Cases(ctx context.Context, p models.Principal) (*models.CasesResponse, error)
	Alerts(ctx context.Context, p models.Principal) (*models.AlertsResponse, error)
	Hearings(ctx context.Context, p models.Principal) (*models.HearingsResponse, error)
	ExportCases(ctx context.Context, p models.Principal) ([]byte, error)

	// Notes and reminders
	Note(ctx context.Context, p models.Principal, cnr string) (*models.NoteResponse, error)
	SetNote(ctx context.Context, p models.Principal, cnr string, req models.NoteRequest) (*models.NoteResponse, error)
	SetReminder(ctx context.Context, p models.Principal, cnr string, req models.ReminderRequest) (*models.ReminderResponse, error)
	Reminders(ctx context.Context, p models.Principal) (*models.RemindersResponse, error)

	// Analytics and maintenance
	Stats(ctx context.Context, filter analytics.Filter) (*models.StatsResponse, error)
	Inputs(ctx context.Context, limit int) (*models.InputsResponse, error)
	Reload(ctx context.Context) (*models.ReloadResponse, error)
}

// Dependencies are the collaborators of DefaultService
type Dependencies struct {
	Datasets    *dataset.Cache
	Credentials *auth.CredentialStore
	Sessions    *auth.SessionStore
	Notes       *notes.Store
	Evidence    *auth.EvidenceCodec
	Logger      *zap.Logger
}

// Options tune the authentication rules
type Options struct {
	AutoLoginGrace    time.Duration
	MinPasswordLength int
	EvidenceTTL       time.Duration
}

// DefaultService implements the Service interface
type DefaultService struct {
	deps Dependencies
	opts Options
	now  func() time.Time
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(deps Dependencies, opts Options) Service {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = 6
	}
	return &DefaultService{
		deps: deps,
		opts: opts,
		now:  time.Now,
	}
}

func (s *DefaultService) datasets(ctx context.Context) (*dataset.Datasets, error) {
	ds, err := s.deps.Datasets.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetsUnavailable, err)
	}
	return ds, nil
}

func (s *DefaultService) view(ctx context.Context, p models.Principal) (*dataset.Table, error) {
	ds, err := s.datasets(ctx)
	if err != nil {
		return nil, err
	}
	return RoleView(ds.Merged, p.Name, p.Role), nil
}

// Authentication methods
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	// Verify password
	if name == "" || !s.deps.Credentials.VerifyPassword(ctx, name, req.Password) {
		metrics.RecordLogin(string(role), false)
		return nil, ErrInvalidCredentials
	}

	view, err := s.view(ctx, models.Principal{Name: name, Role: role})
	if err != nil {
		return nil, err
	}
	if view.Len() == 0 {
		metrics.RecordLogin(string(role), false)
		return nil, fmt.Errorf("%w for this %s", ErrNoCases, role)
	}

	token, err := s.deps.Sessions.CreateToken(ctx, name)
	if err != nil {
		metrics.RecordLogin(string(role), false)
		return nil, fmt.Errorf("%w: %v", ErrTokenIssue, err)
	}

	signed, err := s.deps.Evidence.Encode(auth.Evidence{Token: token, Name: name, Role: string(role)}, s.now())
	if err != nil {
		// The session token exists but the client cannot hold it
		if delErr := s.deps.Sessions.DeleteToken(ctx, name); delErr != nil {
			s.deps.Logger.Warn("error revoking orphaned token", zap.Error(delErr))
		}
		metrics.RecordLogin(string(role), false)
		return nil, fmt.Errorf("%w: %v", ErrTokenIssue, err)
	}

	metrics.RecordLogin(string(role), true)
	s.deps.Logger.Info("user logged in", zap.String("user", auth.UserKey(name)), zap.String("role", string(role)))

	return &models.AuthResponse{
		Status:     "success",
		Name:       name,
		Role:       role,
		FirstLogin: s.deps.Credentials.IsFirstLogin(ctx, name),
		Token:      signed,
		ExpiresIn:  int(s.opts.EvidenceTTL.Seconds()),
	}, nil
}

func (s *DefaultService) SetPassword(ctx context.Context, p models.Principal, req models.SetPasswordRequest) (*models.AuthResponse, error) {
	if utf8.RuneCountInString(req.Password) < s.opts.MinPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, s.opts.MinPasswordLength)
	}
	if req.Password != req.Confirm {
		return nil, ErrPasswordMismatch
	}
	if !s.deps.Credentials.SetPassword(ctx, p.Name, req.Password) {
		return nil, ErrPasswordNotSaved
	}
	return &models.AuthResponse{
		Status:  "success",
		Name:    p.Name,
		Role:    p.Role,
		Message: "Password updated",
	}, nil
}

// Logout revokes the session token and returns evidence stamped with the
// logout time, which keeps auto-login off for the grace window
func (s *DefaultService) Logout(ctx context.Context, p models.Principal) (*models.AuthResponse, error) {
	if err := s.deps.Sessions.DeleteToken(ctx, p.Name); err != nil {
		return nil, err
	}

	now := s.now()
	signed, err := s.deps.Evidence.Encode(auth.Evidence{
		Name:        p.Name,
		Role:        string(p.Role),
		LoggedOutAt: auth.FormatUnixSeconds(now),
	}, now)
	if err != nil {
		return nil, fmt.Errorf("error signing logout evidence: %w", err)
	}

	s.deps.Logger.Info("user logged out", zap.String("user", auth.UserKey(p.Name)))
	return &models.AuthResponse{
		Status:  "success",
		Name:    p.Name,
		Role:    p.Role,
		Token:   signed,
		Message: "Logged out",
	}, nil
}

// Session reports whether the presented evidence restores a session. A
// rejected restore is not an error.
func (s *DefaultService) Session(ctx context.Context, evidence string) (*models.SessionResponse, error) {
	p, err := s.Authenticate(ctx, evidence)
	if errors.Is(err, ErrUnauthorized) {
		return &models.SessionResponse{Status: "success", Authenticated: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.SessionResponse{
		Status:        "success",
		Authenticated: true,
		Name:          p.Name,
		Role:          p.Role,
		FirstLogin:    p.FirstLogin,
	}, nil
}

// Authenticate decodes signed evidence and runs it through the auto-login gate
func (s *DefaultService) Authenticate(ctx context.Context, evidence string) (*models.Principal, error) {
	if evidence == "" {
		return nil, ErrUnauthorized
	}
	ev, err := s.deps.Evidence.Decode(evidence, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	accepted := auth.ShouldAutoLogin(ctx, s.deps.Sessions, ev, s.now(), s.opts.AutoLoginGrace)
	metrics.RecordAutoLogin(accepted)
	if !accepted {
		return nil, ErrUnauthorized
	}

	role, ok := models.ParseRole(ev.Role)
	if !ok {
		return nil, ErrUnauthorized
	}
	return &models.Principal{
		Name:       ev.Name,
		Role:       role,
		FirstLogin: s.deps.Credentials.IsFirstLogin(ctx, ev.Name),
	}, nil
}

// Role view methods
func (s *DefaultService) Cases(ctx context.Context, p models.Principal) (*models.CasesResponse, error) {
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	return &models.CasesResponse{
		Status: "success",
		Name:   p.Name,
		Role:   p.Role,
		Cases:  models.NewTableData(view),
	}, nil
}

func (s *DefaultService) Alerts(ctx context.Context, p models.Principal) (*models.AlertsResponse, error) {
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	return &models.AlertsResponse{
		Status:  "success",
		Aging:   models.NewTableData(AgingCases(view, s.now())),
		Pending: models.NewTableData(PendingCases(view)),
	}, nil
}

func (s *DefaultService) Hearings(ctx context.Context, p models.Principal) (*models.HearingsResponse, error) {
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	now := s.now()
	onDay, upcoming, rescheduled := HearingsOn(view, now)
	return &models.HearingsResponse{
		Status:      "success",
		Date:        now.Format(dataset.DateLayout),
		Today:       models.NewTableData(onDay),
		Upcoming:    models.NewTableData(upcoming),
		Rescheduled: models.NewTableData(rescheduled),
	}, nil
}

func (s *DefaultService) ExportCases(ctx context.Context, p models.Principal) ([]byte, error) {
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	now := s.now()
	data, err := export.WriteXLSX(
		export.Sheet{Name: "Cases", Table: view},
		export.Sheet{Name: "Pending", Table: PendingCases(view)},
		export.Sheet{Name: "Aging", Table: AgingCases(view, now)},
	)
	if err != nil {
		return nil, fmt.Errorf("error exporting cases: %w", err)
	}
	return data, nil
}

// Notes and reminders
func (s *DefaultService) advocateCase(ctx context.Context, p models.Principal, cnr string) error {
	if p.Role != models.RoleAdvocate {
		return ErrForbidden
	}
	view, err := s.view(ctx, p)
	if err != nil {
		return err
	}
	if !containsCase(view, cnr) {
		return ErrCaseNotFound
	}
	return nil
}

func (s *DefaultService) Note(ctx context.Context, p models.Principal, cnr string) (*models.NoteResponse, error) {
	if err := s.advocateCase(ctx, p, cnr); err != nil {
		return nil, err
	}
	return &models.NoteResponse{
		Status: "success",
		CNR:    cnr,
		Text:   s.deps.Notes.Note(ctx, cnr),
	}, nil
}

func (s *DefaultService) SetNote(ctx context.Context, p models.Principal, cnr string, req models.NoteRequest) (*models.NoteResponse, error) {
	if err := s.advocateCase(ctx, p, cnr); err != nil {
		return nil, err
	}
	if err := s.deps.Notes.SetNote(ctx, cnr, req.Text); err != nil {
		return nil, err
	}
	return &models.NoteResponse{Status: "success", CNR: cnr, Text: req.Text}, nil
}

func (s *DefaultService) SetReminder(ctx context.Context, p models.Principal, cnr string, req models.ReminderRequest) (*models.ReminderResponse, error) {
	if err := s.advocateCase(ctx, p, cnr); err != nil {
		return nil, err
	}
	day, err := s.deps.Notes.SetReminder(ctx, cnr, req.Date)
	if err != nil {
		return nil, err
	}
	return &models.ReminderResponse{Status: "success", CNR: cnr, Date: day}, nil
}

// Reminders lists the reminders set on cases in the advocate's view
func (s *DefaultService) Reminders(ctx context.Context, p models.Principal) (*models.RemindersResponse, error) {
	if p.Role != models.RoleAdvocate {
		return nil, ErrForbidden
	}
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	visible := []notes.Reminder{}
	for _, r := range s.deps.Notes.Reminders(ctx, s.now()) {
		if containsCase(view, r.CNR) {
			visible = append(visible, r)
		}
	}
	return &models.RemindersResponse{Status: "success", Reminders: visible}, nil
}

// Analytics and maintenance
func (s *DefaultService) Stats(ctx context.Context, filter analytics.Filter) (*models.StatsResponse, error) {
	ds, err := s.datasets(ctx)
	if err != nil {
		return nil, err
	}
	return &models.StatsResponse{
		Status:  "success",
		Summary: analytics.Summarize(ds, filter),
	}, nil
}

// Inputs reports what the prediction and anomaly views would read from the
// cleaned cases. At most limit prediction rows are returned; a negative limit
// returns all of them.
func (s *DefaultService) Inputs(ctx context.Context, limit int) (*models.InputsResponse, error) {
	ds, err := s.datasets(ctx)
	if err != nil {
		return nil, err
	}
	resp := &models.InputsResponse{Status: "success", NumericColumns: []string{}}

	var missing *dataset.MissingColumnsError
	pred, err := analytics.PredictionInputs(ds.Cases)
	switch {
	case errors.As(err, &missing):
		resp.PredictionMissing = missing.Columns
	case err != nil:
		return nil, err
	default:
		data := models.NewTableData(pred.Head(limit))
		resp.Prediction = &data
	}

	m, err := analytics.NumericMatrix(ds.Cases)
	switch {
	case errors.Is(err, dataset.ErrNoNumericColumns):
	case err != nil:
		return nil, err
	default:
		resp.NumericColumns = m.Columns
		resp.CompleteRows = len(m.Rows)
	}
	return resp, nil
}

// Reload drops the cached datasets and loads them again
func (s *DefaultService) Reload(ctx context.Context) (*models.ReloadResponse, error) {
	s.deps.Datasets.Invalidate()
	ds, err := s.datasets(ctx)
	if err != nil {
		return nil, err
	}
	s.deps.Logger.Info("datasets reloaded")
	return &models.ReloadResponse{
		Status:   "success",
		LoadedAt: ds.LoadedAt,
		Cases:    ds.Cases.Len(),
		Hearings: ds.Hearings.Len(),
		Merged:   ds.Merged.Len(),
	}, nil
}
