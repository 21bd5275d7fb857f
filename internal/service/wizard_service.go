package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

type snapshotStore interface {
	Load(ctx context.Context, sessionID string) (wizard.PersistedSnapshot, error)
	Save(ctx context.Context, sessionID string, snap wizard.PersistedSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// WizardService drives wizard sessions: lifecycle, step-1 collection,
// navigation, cell edits, documents and the share codec. Durable persistence
// is best-effort: a failing snapshot store never blocks an edit.
type WizardService struct {
	registry  *SessionRegistry
	snapshots snapshotStore
	metrics   *MetricsService
	logger    *zap.Logger

	shareBaseURL string
	mint         func() int
}

// NewWizardService constructs the service. metrics may be nil.
func NewWizardService(registry *SessionRegistry, snapshots snapshotStore, metrics *MetricsService, logger *zap.Logger, shareBaseURL string) *WizardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{
		registry:     registry,
		snapshots:    snapshots,
		metrics:      metrics,
		logger:       logger,
		shareBaseURL: shareBaseURL,
		mint:         randomSeed,
	}
}

// Open starts or resumes a session.
//
// With a fragment the new session rehydrates from it exclusively, ignoring
// any durable slot. With an id the live session is resumed, falling back to
// its durable slot. With neither, the durable slot (if any) is cleared and
// the session starts at factory defaults.
func (s *WizardService) Open(ctx context.Context, req dto.OpenSessionRequest) (dto.SessionView, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	if req.Fragment != "" {
		sess := newSession(id)
		snap, ok := wizard.DecodeFragment(req.Fragment)
		if !ok {
			return dto.SessionView{}, appErrors.ErrDecode
		}
		step := wizard.Hydrate(sess.store, snap, s.mint)
		sess.machine.Restore(step, snap.HasDimensions(), snap.HasDimensions())
		// Lock before publishing: once put, the session is reachable by
		// concurrent requests under the same id.
		sess.mu.Lock()
		defer sess.mu.Unlock()
		s.registry.put(sess)
		s.persist(ctx, sess)
		return s.view(sess), nil
	}

	if req.ID != "" {
		if sess, ok := s.registry.get(req.ID); ok {
			sess.mu.Lock()
			defer sess.mu.Unlock()
			return s.view(sess), nil
		}
		if snap, err := s.loadSnapshot(ctx, req.ID); err == nil {
			sess := newSession(req.ID)
			step := wizard.Hydrate(sess.store, snap, s.mint)
			sess.machine.Restore(step, snap.HasDimensions(), snap.HasDimensions())
			sess.mu.Lock()
			defer sess.mu.Unlock()
			s.registry.put(sess)
			return s.view(sess), nil
		}
		return dto.SessionView{}, appErrors.ErrSessionNotFound
	}

	// A bare create means "start over": any stale slot under this id goes.
	if err := s.snapshots.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to clear snapshot slot", zap.String("session_id", id), zap.Error(err))
	}
	sess := newSession(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.registry.put(sess)
	return s.view(sess), nil
}

// Get returns the current state view of a live session.
func (s *WizardService) Get(ctx context.Context, id string) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// Close drops a session from memory; the durable slot stays.
func (s *WizardService) Close(ctx context.Context, id string) error {
	if _, err := s.session(id); err != nil {
		return err
	}
	s.registry.remove(id)
	return nil
}

// SubmitStep1 runs the step-1 collector. On validation failure the session is
// untouched and the error carries the per-field flags.
func (s *WizardService) SubmitStep1(ctx context.Context, id string, req dto.Step1Request) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	errs := wizard.CollectStep1(sess.store, step1Form(req))
	if len(errs) > 0 {
		return dto.SessionView{}, appErrors.WithFields(appErrors.ErrValidation, errs)
	}

	s.persist(ctx, sess)
	return s.view(sess), nil
}

// Navigate performs a step transition.
func (s *WizardService) Navigate(ctx context.Context, id string, req dto.NavigateRequest) (dto.NavigateResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.NavigateResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	target := wizard.Step(req.Target)
	switch {
	case req.Direction == "next" && req.Target == 0:
		target = sess.machine.Step() + 1
	case req.Direction == "back" && req.Target == 0:
		target = sess.machine.Step() - 1
	case req.Direction == "" && req.Target != 0:
		// absolute target as given
	default:
		return dto.NavigateResponse{}, appErrors.Clone(appErrors.ErrValidation, "set exactly one of direction and target")
	}

	transition, ok := sess.machine.ToStep(target, s.gates(sess))
	if !ok {
		return dto.NavigateResponse{}, appErrors.Clone(appErrors.ErrValidation, "complete the current step before moving forward")
	}

	s.persist(ctx, sess)
	return dto.NavigateResponse{Transition: transition, Session: s.view(sess)}, nil
}

// EditHoursCell writes one workload cell and returns the new row total.
func (s *WizardService) EditHoursCell(ctx context.Context, id string, req dto.HoursEditRequest) (dto.HoursEditResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.HoursEditResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.machine.HoursBuilt() {
		return dto.HoursEditResponse{}, appErrors.ErrGridNotBuilt
	}

	total, ok := wizard.ApplyHoursEdit(sess.store, req.Professor, req.Class, req.Value)
	if !ok {
		return dto.HoursEditResponse{}, appErrors.Clone(appErrors.ErrValidation, "cell indices out of range")
	}

	s.persist(ctx, sess)
	return dto.HoursEditResponse{
		Professor: req.Professor,
		Class:     req.Class,
		Value:     sess.store.Hours()[req.Professor][req.Class],
		RowTotal:  total,
	}, nil
}

// EditAvailabilityCell flips one availability flag and returns the
// professor's percentage.
func (s *WizardService) EditAvailabilityCell(ctx context.Context, id string, req dto.AvailabilityEditRequest) (dto.AvailabilityEditResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.AvailabilityEditResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.machine.AvailabilityBuilt() {
		return dto.AvailabilityEditResponse{}, appErrors.ErrGridNotBuilt
	}
	if req.Value == nil {
		return dto.AvailabilityEditResponse{}, appErrors.Clone(appErrors.ErrValidation, "value is required")
	}

	percent, ok := wizard.ApplyAvailabilityEdit(sess.store, req.Professor, req.Day, req.Part, *req.Value)
	if !ok {
		return dto.AvailabilityEditResponse{}, appErrors.Clone(appErrors.ErrValidation, "cell indices out of range")
	}

	s.persist(ctx, sess)
	return dto.AvailabilityEditResponse{
		Professor: req.Professor,
		Day:       req.Day,
		Part:      req.Part,
		Percent:   percent,
	}, nil
}

// HoursGrid returns the workload grid in display order.
func (s *WizardService) HoursGrid(ctx context.Context, id string) (wizard.HoursGrid, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.HoursGrid{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.machine.HoursBuilt() {
		return wizard.HoursGrid{}, appErrors.ErrGridNotBuilt
	}
	return wizard.BuildHoursGrid(sess.store), nil
}

// AvailabilityGrid returns the availability grid in display order.
func (s *WizardService) AvailabilityGrid(ctx context.Context, id string) (wizard.AvailabilityGrid, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.AvailabilityGrid{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.machine.AvailabilityBuilt() {
		return wizard.AvailabilityGrid{}, appErrors.ErrGridNotBuilt
	}
	return wizard.BuildAvailabilityGrid(sess.store), nil
}

// Summary returns the final-step recap.
func (s *WizardService) Summary(ctx context.Context, id string) (wizard.Summary, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.Summary{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return wizard.BuildSummary(sess.store), nil
}

// ShareLink encodes the session into a shareable URL fragment.
func (s *WizardService) ShareLink(ctx context.Context, id string) (dto.ShareLinkView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.ShareLinkView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	fragment, err := wizard.EncodeFragment(wizard.Serialize(sess.store, sess.machine.Step()))
	if err != nil {
		return dto.ShareLinkView{}, appErrors.FromError(err)
	}
	return dto.ShareLinkView{
		Fragment: fragment,
		URL:      s.shareBaseURL + "/" + wizard.FragmentPrefix + fragment,
	}, nil
}

// ExportSnapshot returns the durable-slot projection of the session.
func (s *WizardService) ExportSnapshot(ctx context.Context, id string) (wizard.PersistedSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.PersistedSnapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return wizard.Serialize(sess.store, sess.machine.Step()), nil
}

// ImportSnapshot replaces the session state wholesale from a snapshot.
func (s *WizardService) ImportSnapshot(ctx context.Context, id string, snap wizard.PersistedSnapshot) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	step := wizard.Hydrate(sess.store, snap, s.mint)
	sess.machine.Restore(step, snap.HasDimensions(), snap.HasDimensions())
	sess.lastPayload = nil
	sess.lastPlan = nil

	s.persist(ctx, sess)
	return s.view(sess), nil
}

// ExportStep1Document returns the standalone step-1 document.
func (s *WizardService) ExportStep1Document(ctx context.Context, id string) (wizard.Step1Document, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.Step1Document{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return wizard.ExportStep1(sess.store), nil
}

// ImportStep1Document applies a step-1 document through the collector.
func (s *WizardService) ImportStep1Document(ctx context.Context, id string, doc wizard.Step1Document) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	errs := wizard.ImportStep1(sess.store, doc)
	if len(errs) > 0 {
		return dto.SessionView{}, appErrors.WithFields(appErrors.ErrValidation, errs)
	}

	s.persist(ctx, sess)
	return s.view(sess), nil
}

// ExportHoursDocument returns the standalone workload document.
func (s *WizardService) ExportHoursDocument(ctx context.Context, id string) (wizard.HoursDocument, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.HoursDocument{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return wizard.ExportHours(sess.store), nil
}

// ImportHoursDocument replaces the workload matrix from a document.
func (s *WizardService) ImportHoursDocument(ctx context.Context, id string, doc wizard.HoursDocument) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := wizard.ImportHours(sess.store, doc); err != nil {
		return dto.SessionView{}, documentError(err)
	}

	s.persist(ctx, sess)
	return s.view(sess), nil
}

// ExportAvailabilityDocument returns the standalone availability document.
func (s *WizardService) ExportAvailabilityDocument(ctx context.Context, id string) (wizard.AvailabilityDocument, error) {
	sess, err := s.session(id)
	if err != nil {
		return wizard.AvailabilityDocument{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return wizard.ExportAvailability(sess.store), nil
}

// ImportAvailabilityDocument replaces the availability matrix from a
// document.
func (s *WizardService) ImportAvailabilityDocument(ctx context.Context, id string, doc wizard.AvailabilityDocument) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := wizard.ImportAvailability(sess.store, doc); err != nil {
		return dto.SessionView{}, documentError(err)
	}

	s.persist(ctx, sess)
	return s.view(sess), nil
}

// SetSeed toggles the seed lock, optionally pinning a value. Locking without
// a value mints one.
func (s *WizardService) SetSeed(ctx context.Context, id string, req dto.SeedRequest) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.store.SetSeedLock(req.Enabled, req.Seed, s.mint)
	s.persist(ctx, sess)
	return s.view(sess), nil
}

// SetMethod switches the generation method.
func (s *WizardService) SetMethod(ctx context.Context, id string, req dto.MethodRequest) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.store.SetMethod(req.Method)
	s.persist(ctx, sess)
	return s.view(sess), nil
}

// Reset clears the state owned by one step.
func (s *WizardService) Reset(ctx context.Context, id string, req dto.ResetRequest) (dto.SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch wizard.Step(req.Step) {
	case wizard.Step1:
		sess.store.ResetConfig()
		sess.machine.Restore(wizard.Step1, false, false)
		sess.lastPayload = nil
		sess.lastPlan = nil
	case wizard.Step2:
		sess.store.ResetHours()
	case wizard.Step3:
		sess.store.ResetAvailability()
	case wizard.Step4:
		sess.lastPayload = nil
		sess.lastPlan = nil
		sess.store.SetMethod(wizard.MethodMIP)
	default:
		return dto.SessionView{}, appErrors.Clone(appErrors.ErrValidation, "step must be between 1 and 4")
	}

	s.persist(ctx, sess)
	return s.view(sess), nil
}

func (s *WizardService) session(id string) (*session, error) {
	if id == "" {
		return nil, appErrors.ErrSessionNotFound
	}
	sess, ok := s.registry.get(id)
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return sess, nil
}

// gates adapts the session to the navigation machine's collection hooks. In
// the server model cell edits keep the matrices in sync continuously, so the
// grid collections always succeed once their step has been entered.
func (s *WizardService) gates(sess *session) wizard.Gates {
	return wizard.Gates{
		CollectStep1:        func() bool { return sess.store.Config().Days > 0 },
		CollectHours:        func() bool { return true },
		CollectAvailability: func() bool { return true },
	}
}

// persist writes the durable slot best-effort; failures are logged, never
// surfaced. Callers hold the session lock.
func (s *WizardService) persist(ctx context.Context, sess *session) {
	snap := wizard.Serialize(sess.store, sess.machine.Step())
	err := s.snapshots.Save(ctx, sess.id, snap)
	s.metrics.RecordSnapshotWrite(err == nil)
	if err != nil {
		s.logger.Warn("failed to persist session snapshot",
			zap.String("session_id", sess.id), zap.Error(err))
	}
}

func (s *WizardService) loadSnapshot(ctx context.Context, id string) (wizard.PersistedSnapshot, error) {
	snap, err := s.snapshots.Load(ctx, id)
	s.metrics.RecordSnapshotRead(err == nil)
	return snap, err
}

func (s *WizardService) view(sess *session) dto.SessionView {
	view := dto.SessionView{
		ID:                sess.id,
		Step:              int(sess.machine.Step()),
		HoursBuilt:        sess.machine.HoursBuilt(),
		AvailabilityBuilt: sess.machine.AvailabilityBuilt(),
		Config:            sess.store.Config(),
		Generating:        sess.generating,
	}
	if view.HoursBuilt {
		grid := wizard.BuildHoursGrid(sess.store)
		view.Hours = &grid
	}
	if view.AvailabilityBuilt {
		grid := wizard.BuildAvailabilityGrid(sess.store)
		view.Availability = &grid
	}
	if sess.machine.Step() == wizard.Step4 {
		summary := wizard.BuildSummary(sess.store)
		view.Summary = &summary
	}
	return view
}

func step1Form(req dto.Step1Request) wizard.Step1Form {
	return wizard.Step1Form{
		Days:                 req.Days,
		MorningHours:         req.MorningHours,
		AfternoonHours:       req.AfternoonHours,
		NumProfessors:        req.NumProfessors,
		NumClasses:           req.NumClasses,
		FreeAfternoonEnabled: req.FreeAfternoonEnabled,
		FreeAfternoonDay:     req.FreeAfternoonDay,
		ProfessorNames:       req.ProfessorNames,
		ClassNames:           req.ClassNames,
		DayNames:             req.DayNames,
		HourNames:            req.HourNames,
	}
}

func documentError(err error) *appErrors.Error {
	switch err {
	case wizard.ErrDocumentMismatch:
		return appErrors.ErrSchemaMismatch
	case wizard.ErrDocumentInvalid:
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	default:
		return appErrors.FromError(err)
	}
}
