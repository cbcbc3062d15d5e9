package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

type stubSurveyStore struct {
	surveys   map[int64]*models.Survey
	mappings  map[int64][]*models.ProgramSurvey
	nextID    int64
	ensureErr error
}

func newStubSurveyStore() *stubSurveyStore {
	return &stubSurveyStore{
		surveys:  map[int64]*models.Survey{},
		mappings: map[int64][]*models.ProgramSurvey{},
		nextID:   1,
	}
}

func (s *stubSurveyStore) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	survey, ok := s.surveys[id]
	if !ok {
		return nil, apperrors.ErrSurveyNotFound
	}
	return survey, nil
}

func (s *stubSurveyStore) List(ctx context.Context) ([]*models.Survey, error) {
	var out []*models.Survey
	for _, survey := range s.surveys {
		out = append(out, survey)
	}
	return out, nil
}

func (s *stubSurveyStore) Create(ctx context.Context, survey *models.Survey) (int64, error) {
	id := s.nextID
	s.nextID++
	survey.ID = id
	s.surveys[id] = survey
	return id, nil
}

func (s *stubSurveyStore) Update(ctx context.Context, survey *models.Survey) error {
	if _, ok := s.surveys[survey.ID]; !ok {
		return apperrors.ErrSurveyNotFound
	}
	s.surveys[survey.ID] = survey
	return nil
}

func (s *stubSurveyStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.surveys[id]; !ok {
		return apperrors.ErrSurveyNotFound
	}
	delete(s.surveys, id)
	return nil
}

// EnsureDefaultMappings mirrors the conflict-skipping insert: mappings
// are only created for survey types the program does not already have.
func (s *stubSurveyStore) EnsureDefaultMappings(ctx context.Context, programID int64) error {
	if s.ensureErr != nil {
		return s.ensureErr
	}
	existing := map[models.SurveyType]bool{}
	for _, m := range s.mappings[programID] {
		existing[m.SurveyType] = true
	}
	for _, surveyType := range []models.SurveyType{models.SurveyBefore, models.SurveyAfter} {
		if existing[surveyType] {
			continue
		}
		id := s.nextID
		s.nextID++
		s.mappings[programID] = append(s.mappings[programID], &models.ProgramSurvey{
			ID:         id,
			ProgramID:  programID,
			SurveyType: surveyType,
			Survey:     &models.Survey{ID: id, Name: string(surveyType), Questions: []byte(`[]`)},
		})
	}
	return nil
}

func (s *stubSurveyStore) MappingsByProgram(ctx context.Context, programID int64) ([]*models.ProgramSurvey, error) {
	return s.mappings[programID], nil
}

type stubAttendeeMarker struct {
	registered map[int64]bool
	completed  map[models.SurveyType]bool
}

func (s *stubAttendeeMarker) GetByProgramAndAccount(ctx context.Context, programID, accountID int64) (*models.ProgramAttendee, error) {
	if !s.registered[accountID] {
		return nil, apperrors.ErrAttendeeNotFound
	}
	return &models.ProgramAttendee{ProgramID: programID, AccountID: accountID}, nil
}

func (s *stubAttendeeMarker) SetSurveyCompleted(ctx context.Context, programID, accountID int64, surveyType models.SurveyType) error {
	if s.completed == nil {
		s.completed = map[models.SurveyType]bool{}
	}
	s.completed[surveyType] = true
	return nil
}

func TestProgramSurveysMappedOnFirstAccess(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store, &stubAttendeeMarker{}, zerolog.Nop())

	surveys, err := svc.ProgramSurveys(context.Background(), 7)
	if err != nil {
		t.Fatalf("ProgramSurveys returned error: %v", err)
	}
	if len(surveys) != 2 {
		t.Fatalf("got %d mappings, want 2", len(surveys))
	}

	types := map[models.SurveyType]bool{}
	for _, m := range surveys {
		types[m.SurveyType] = true
	}
	if !types[models.SurveyBefore] || !types[models.SurveyAfter] {
		t.Errorf("expected one before and one after mapping, got %v", types)
	}
}

func TestProgramSurveysIdempotent(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store, &stubAttendeeMarker{}, zerolog.Nop())

	first, err := svc.ProgramSurveys(context.Background(), 7)
	if err != nil {
		t.Fatalf("first call returned error: %v", err)
	}
	second, err := svc.ProgramSurveys(context.Background(), 7)
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d then %d mappings, want 2 and 2", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("mapping %d changed id between calls: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestProgramSurveysEnsureFailureIsNonFatal(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store, &stubAttendeeMarker{}, zerolog.Nop())

	// Existing mappings must survive a failing ensure on a later read
	if _, err := svc.ProgramSurveys(context.Background(), 7); err != nil {
		t.Fatalf("seeding call returned error: %v", err)
	}

	store.ensureErr = errors.New("insert failed")

	surveys, err := svc.ProgramSurveys(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected existing mappings despite ensure failure, got error: %v", err)
	}
	if len(surveys) != 2 {
		t.Fatalf("got %d mappings, want 2", len(surveys))
	}
}

func TestCreateSurveyRejectsInvalidQuestions(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store, &stubAttendeeMarker{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), &dto.CreateSurveyRequest{
		Name:      "Broken",
		Questions: json.RawMessage(`{"oops"`),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSubmitResponseMarksCompletion(t *testing.T) {
	store := newStubSurveyStore()
	marker := &stubAttendeeMarker{registered: map[int64]bool{42: true}}
	svc := NewSurveyService(store, marker, zerolog.Nop())

	err := svc.SubmitResponse(context.Background(), 7, 42, &dto.SubmitSurveyRequest{
		SurveyType: "before",
		Answers:    json.RawMessage(`{"q1": "yes"}`),
	})
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if !marker.completed[models.SurveyBefore] {
		t.Error("expected before survey completion flag to be set")
	}
}

func TestSubmitResponseRequiresRegistration(t *testing.T) {
	store := newStubSurveyStore()
	marker := &stubAttendeeMarker{registered: map[int64]bool{}}
	svc := NewSurveyService(store, marker, zerolog.Nop())

	err := svc.SubmitResponse(context.Background(), 7, 42, &dto.SubmitSurveyRequest{
		SurveyType: "after",
		Answers:    json.RawMessage(`{}`),
	})
	if !errors.Is(err, apperrors.ErrAttendeeNotFound) {
		t.Errorf("expected ErrAttendeeNotFound, got %v", err)
	}
}
