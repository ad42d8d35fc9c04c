package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service/livequiz"
)

// ============================================================================
// Моки для тестирования LiveQuizService
// ============================================================================

// MockQuizSessionRepository реализует repository.QuizSessionRepository
type MockQuizSessionRepository struct {
	mock.Mock
}

func (m *MockQuizSessionRepository) Create(session *entity.QuizSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockQuizSessionRepository) GetByCode(code string) (*entity.QuizSession, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockQuizSessionRepository) Save(session *entity.QuizSession) error {
	args := m.Called(session)
	return args.Error(0)
}

// MockQuizParticipantRepository реализует repository.QuizParticipantRepository
type MockQuizParticipantRepository struct {
	mock.Mock
}

func (m *MockQuizParticipantRepository) Create(participant *entity.QuizParticipant) error {
	args := m.Called(participant)
	return args.Error(0)
}

func (m *MockQuizParticipantRepository) GetBySessionAnon(sessionID uint, anonID string) (*entity.QuizParticipant, error) {
	args := m.Called(sessionID, anonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizParticipant), args.Error(1)
}

func (m *MockQuizParticipantRepository) ListBySession(sessionID uint) ([]entity.QuizParticipant, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizParticipant), args.Error(1)
}

func (m *MockQuizParticipantRepository) CountBySession(sessionID uint) (int64, error) {
	args := m.Called(sessionID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuizAnswerRepository реализует repository.QuizAnswerRepository
type MockQuizAnswerRepository struct {
	mock.Mock
}

func (m *MockQuizAnswerRepository) Upsert(answer *entity.QuizAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockQuizAnswerRepository) ListBySession(sessionID uint) ([]entity.QuizAnswer, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAnswer), args.Error(1)
}

func (m *MockQuizAnswerRepository) CountByQuestion(sessionID uint, questionID string) (int64, error) {
	args := m.Called(sessionID, questionID)
	return args.Get(0).(int64), args.Error(1)
}

// MockClassRepository реализует repository.ClassRepository
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(class *entity.Class) error {
	args := m.Called(class)
	return args.Error(0)
}

func (m *MockClassRepository) GetByID(id uint) (*entity.Class, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Class), args.Error(1)
}

func (m *MockClassRepository) GetByIDForOwner(id, ownerID uint) (*entity.Class, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Class), args.Error(1)
}

func (m *MockClassRepository) ListByOwner(ownerID uint) ([]entity.Class, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Class), args.Error(1)
}

func (m *MockClassRepository) Update(class *entity.Class) error {
	args := m.Called(class)
	return args.Error(0)
}

func (m *MockClassRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные функции
// ============================================================================

type liveQuizMocks struct {
	sessions     *MockQuizSessionRepository
	participants *MockQuizParticipantRepository
	answers      *MockQuizAnswerRepository
	classes      *MockClassRepository
}

func newTestLiveQuizService() (*LiveQuizService, *liveQuizMocks) {
	mocks := &liveQuizMocks{
		sessions:     new(MockQuizSessionRepository),
		participants: new(MockQuizParticipantRepository),
		answers:      new(MockQuizAnswerRepository),
		classes:      new(MockClassRepository),
	}
	svc := &LiveQuizService{
		sessionRepo:     mocks.sessions,
		participantRepo: mocks.participants,
		answerRepo:      mocks.answers,
		classRepo:       mocks.classes,
		locks:           livequiz.NewSessionLocks(),
		rng:             rand.New(rand.NewSource(1)),
		now:             time.Now,
	}
	return svc, mocks
}

func labelPtr(s string) *string {
	return &s
}

func secondsPtr(n int) *int {
	return &n
}

func testDrafts() []livequiz.QuestionDraft {
	return []livequiz.QuestionDraft{
		{ID: "q1", Prompt: "Первый", Choices: map[string]string{"A": "1", "B": "2"}, Correct: labelPtr("A")},
		{ID: "q2", Prompt: "Второй", Choices: map[string]string{"A": "1", "B": "2"}, Correct: labelPtr("B")},
	}
}

func liveTestSession() *entity.QuizSession {
	started := time.Now().Add(-5 * time.Second)
	return &entity.QuizSession{
		ID:      10,
		ClassID: 1,
		Code:    "ABCDEF",
		Title:   "Опрос",
		State:   entity.SessionStateLive,
		Questions: entity.QuestionList{
			{ID: "q1", Prompt: "Первый", Choices: entity.ChoiceSet{A: "1", B: "2"}, Correct: labelPtr("A")},
			{ID: "q2", Prompt: "Второй", Choices: entity.ChoiceSet{A: "1", B: "2"}, Correct: labelPtr("B")},
		},
		CurrentIndex:       0,
		SecondsPerQuestion: secondsPtr(30),
		AutoAdvance:        true,
		QuestionStartedAt:  &started,
	}
}

// ============================================================================
// Тесты для LiveQuizService
// ============================================================================

func TestLiveQuizService_CreateSession_Success(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Create", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := svc.CreateSession(5, CreateSessionInput{
		ClassID:   1,
		Title:     "Опрос по дробям",
		Questions: testDrafts(),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateLobby, session.State)
	assert.Equal(t, -1, session.CurrentIndex)
	assert.Len(t, session.Code, livequiz.CodeLength)
	assert.Len(t, session.Questions, 2)
	mocks.sessions.AssertExpectations(t)
}

func TestLiveQuizService_CreateSession_RetriesOnCodeCollision(t *testing.T) {
	// Arrange: первые две попытки упираются в занятый код
	svc, mocks := newTestLiveQuizService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Create", mock.AnythingOfType("*entity.QuizSession")).
		Return(apperrors.ErrConflict).Twice()
	mocks.sessions.On("Create", mock.AnythingOfType("*entity.QuizSession")).
		Return(nil).Once()

	// Act
	session, err := svc.CreateSession(5, CreateSessionInput{
		ClassID:   1,
		Title:     "Опрос",
		Questions: testDrafts(),
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, session.Code)
	mocks.sessions.AssertNumberOfCalls(t, "Create", 3)
}

func TestLiveQuizService_CreateSession_CodeExhausted(t *testing.T) {
	// Arrange: все попытки конфликтуют
	svc, mocks := newTestLiveQuizService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Create", mock.AnythingOfType("*entity.QuizSession")).
		Return(apperrors.ErrConflict)

	// Act
	session, err := svc.CreateSession(5, CreateSessionInput{
		ClassID:   1,
		Title:     "Опрос",
		Questions: testDrafts(),
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrCodeExhausted)
	assert.Nil(t, session)
	mocks.sessions.AssertNumberOfCalls(t, "Create", livequiz.MaxCodeAttempts)
}

func TestLiveQuizService_CreateSession_Validation(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)

	_, err := svc.CreateSession(5, CreateSessionInput{ClassID: 1, Title: "  ", Questions: testDrafts()})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateSession(5, CreateSessionInput{
		ClassID: 1, Title: "Опрос", Questions: testDrafts(), SecondsPerQuestion: secondsPtr(0),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLiveQuizService_CreateSession_ForeignClass(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.CreateSession(5, CreateSessionInput{ClassID: 1, Title: "Опрос", Questions: testDrafts()})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLiveQuizService_Start_FromLobby(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.State = entity.SessionStateLobby
	session.CurrentIndex = -1
	session.QuestionStartedAt = nil

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Save", session).Return(nil)

	// Act
	got, err := svc.Start(5, "abcdef")

	// Assert: код нормализован, сессия идет с первого вопроса
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateLive, got.State)
	assert.Equal(t, 0, got.CurrentIndex)
	assert.NotNil(t, got.StartedAt)
	assert.NotNil(t, got.QuestionStartedAt)
	mocks.sessions.AssertExpectations(t)
}

func TestLiveQuizService_Start_RejectsNonLobby(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)

	_, err := svc.Start(5, "ABCDEF")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mocks.sessions.AssertNotCalled(t, "Save", mock.Anything)
}

func TestLiveQuizService_Advance_MovesToNextQuestion(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Save", session).Return(nil)

	// Act
	got, err := svc.Advance(5, "ABCDEF")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentIndex)
	assert.Equal(t, entity.SessionStateLive, got.State)
}

func TestLiveQuizService_Advance_PastLastQuestionEndsSession(t *testing.T) {
	// Arrange: текущий вопрос — последний
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.CurrentIndex = 1

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Save", session).Return(nil)

	// Act
	got, err := svc.Advance(5, "ABCDEF")

	// Assert: сессия завершена, индекс остался на последнем вопросе
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateEnded, got.State)
	assert.Equal(t, 1, got.CurrentIndex)
	assert.NotNil(t, got.EndedAt)
}

func TestLiveQuizService_EndQuestion_ZeroesTimer(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.sessions.On("Save", session).Return(nil)

	// Act
	got, err := svc.EndQuestion(5, "ABCDEF")

	// Assert: таймер обнулен, индекс не сдвинулся
	require.NoError(t, err)
	left := livequiz.TimeLeft(got, time.Now())
	require.NotNil(t, left)
	assert.Equal(t, 0, *left)
	assert.Equal(t, 0, got.CurrentIndex)
}

func TestLiveQuizService_EndSession_Idempotent(t *testing.T) {
	// Уже завершенная сессия не сохраняется повторно
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	ended := time.Now()
	session.State = entity.SessionStateEnded
	session.EndedAt = &ended

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)

	got, err := svc.EndSession(5, "ABCDEF")

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStateEnded, got.State)
	mocks.sessions.AssertNotCalled(t, "Save", mock.Anything)
}

func TestLiveQuizService_Join_CreatesParticipant(t *testing.T) {
	// Arrange: именованная сессия, имя передано явно
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.Anonymous = false

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(nil, apperrors.ErrNotFound)
	mocks.participants.On("Create", mock.AnythingOfType("*entity.QuizParticipant")).Return(nil)

	// Act
	_, participant, err := svc.Join("abcdef", "device-1", "Маша")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, participant.Nickname)
	assert.Equal(t, "Маша", *participant.Nickname)
	mocks.participants.AssertExpectations(t)
}

func TestLiveQuizService_Join_AnonymousHasNoNickname(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.Anonymous = true

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(nil, apperrors.ErrNotFound)
	mocks.participants.On("Create", mock.AnythingOfType("*entity.QuizParticipant")).Return(nil)

	_, participant, err := svc.Join("ABCDEF", "device-1", "Маша")

	require.NoError(t, err)
	assert.Nil(t, participant.Nickname, "В анонимной сессии никнейм не сохраняется")
}

func TestLiveQuizService_Join_GeneratesNicknameWhenBlank(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.Anonymous = false

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(nil, apperrors.ErrNotFound)
	mocks.participants.On("Create", mock.AnythingOfType("*entity.QuizParticipant")).Return(nil)

	_, participant, err := svc.Join("ABCDEF", "device-1", "   ")

	require.NoError(t, err)
	require.NotNil(t, participant.Nickname)
	assert.NotEmpty(t, *participant.Nickname)
}

func TestLiveQuizService_Join_IdempotentByAnonID(t *testing.T) {
	// Повторный join возвращает существующую запись без Create
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	existing := &entity.QuizParticipant{ID: 7, SessionID: 10, AnonID: "device-1"}

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(existing, nil)

	_, participant, err := svc.Join("ABCDEF", "device-1", "Другое имя")

	require.NoError(t, err)
	assert.Equal(t, uint(7), participant.ID)
	mocks.participants.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLiveQuizService_Join_RaceFallsBackToWinner(t *testing.T) {
	// Arrange: между проверкой и вставкой успел вклиниться дубликат
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	winner := &entity.QuizParticipant{ID: 8, SessionID: 10, AnonID: "device-1"}

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").
		Return(nil, apperrors.ErrNotFound).Once()
	mocks.participants.On("Create", mock.AnythingOfType("*entity.QuizParticipant")).
		Return(apperrors.ErrConflict)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").
		Return(winner, nil).Once()

	// Act
	_, participant, err := svc.Join("ABCDEF", "device-1", "")

	// Assert: отдается победившая запись
	require.NoError(t, err)
	assert.Equal(t, uint(8), participant.ID)
}

func TestLiveQuizService_Join_GeneratesAnonIDWhenBlank(t *testing.T) {
	// Arrange: первый вход без сохраненного anon_id
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	mocks.participants.On("Create", mock.AnythingOfType("*entity.QuizParticipant")).Return(nil)

	// Act
	_, participant, err := svc.Join("ABCDEF", "   ", "")

	// Assert: сервер выдал идентификатор, клиент получит его в ответе
	require.NoError(t, err)
	assert.NotEmpty(t, participant.AnonID, "Пустой anon_id должен быть сгенерирован сервером")
	assert.NotContains(t, participant.AnonID, " ")
	assert.LessOrEqual(t, len(participant.AnonID), 64)
}

func TestLiveQuizService_Current_HidesCorrectAnswer(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)

	// Act
	view, err := svc.Current("ABCDEF")

	// Assert: вопрос отдан без правильного ответа
	require.NoError(t, err)
	require.NotNil(t, view.Question)
	assert.Nil(t, view.Question.Correct)
	assert.NotNil(t, session.Questions[0].Correct, "Оригинал не должен быть изменен")
	assert.Equal(t, 2, view.TotalQuestions)
	require.NotNil(t, view.TimeLeft)
}

func TestLiveQuizService_Answer_UpsertsChoice(t *testing.T) {
	// Arrange: автопереход не сработает — ответил один из двух
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	participant := &entity.QuizParticipant{ID: 7, SessionID: 10, AnonID: "device-1"}

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(participant, nil)
	mocks.answers.On("Upsert", mock.MatchedBy(func(a *entity.QuizAnswer) bool {
		return a.ParticipantID == 7 && a.QuestionID == "q1" && a.Choice == "B"
	})).Return(nil)
	mocks.participants.On("CountBySession", uint(10)).Return(int64(2), nil)
	mocks.answers.On("CountByQuestion", uint(10), "q1").Return(int64(1), nil)

	// Act
	err := svc.Answer("abcdef", "device-1", "q1", " b ")

	// Assert
	require.NoError(t, err)
	mocks.answers.AssertExpectations(t)
	mocks.sessions.AssertNotCalled(t, "Save", mock.Anything)
}

func TestLiveQuizService_Answer_TriggersAutoAdvance(t *testing.T) {
	// Arrange: ответили все — таймер гасится, индекс не двигается
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	participant := &entity.QuizParticipant{ID: 7, SessionID: 10, AnonID: "device-1"}

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "device-1").Return(participant, nil)
	mocks.answers.On("Upsert", mock.AnythingOfType("*entity.QuizAnswer")).Return(nil)
	mocks.participants.On("CountBySession", uint(10)).Return(int64(2), nil)
	mocks.answers.On("CountByQuestion", uint(10), "q1").Return(int64(2), nil)
	mocks.sessions.On("Save", session).Return(nil)

	// Act
	err := svc.Answer("ABCDEF", "device-1", "q1", "A")

	// Assert
	require.NoError(t, err)
	left := livequiz.TimeLeft(session, time.Now())
	require.NotNil(t, left)
	assert.Equal(t, 0, *left)
	assert.Equal(t, 0, session.CurrentIndex)
	mocks.sessions.AssertExpectations(t)
}

func TestLiveQuizService_Answer_RejectsWhenNotLive(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.State = entity.SessionStateEnded

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)

	err := svc.Answer("ABCDEF", "device-1", "q1", "A")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mocks.answers.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestLiveQuizService_Answer_RejectsInvalidChoice(t *testing.T) {
	svc, _ := newTestLiveQuizService()

	err := svc.Answer("ABCDEF", "device-1", "q1", "E")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLiveQuizService_Answer_UnknownParticipant(t *testing.T) {
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("GetBySessionAnon", uint(10), "ghost").Return(nil, apperrors.ErrNotFound)

	err := svc.Answer("ABCDEF", "ghost", "q1", "A")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLiveQuizService_Status_CountsAnswersForCurrentQuestion(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.classes.On("GetByIDForOwner", uint(1), uint(5)).Return(&entity.Class{ID: 1}, nil)
	mocks.participants.On("CountBySession", uint(10)).Return(int64(12), nil)
	mocks.answers.On("CountByQuestion", uint(10), "q1").Return(int64(9), nil)

	// Act
	status, err := svc.Status(5, "ABCDEF")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), status.Joined)
	assert.Equal(t, int64(9), status.AnsweredCurrent)
	require.NotNil(t, status.TimeLeft)
}

func TestLiveQuizService_Results_BuildsReport(t *testing.T) {
	// Arrange
	svc, mocks := newTestLiveQuizService()
	session := liveTestSession()
	session.Anonymous = false
	name := "Маша"
	participants := []entity.QuizParticipant{{ID: 7, SessionID: 10, Nickname: &name}}
	answers := []entity.QuizAnswer{
		{ParticipantID: 7, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 7, QuestionID: "q2", Choice: "A"},
	}

	mocks.sessions.On("GetByCode", "ABCDEF").Return(session, nil)
	mocks.participants.On("ListBySession", uint(10)).Return(participants, nil)
	mocks.answers.On("ListBySession", uint(10)).Return(answers, nil)

	// Act
	results, err := svc.Results("ABCDEF")

	// Assert
	require.NoError(t, err)
	assert.True(t, results.Scored)
	require.Len(t, results.Leaderboard, 1)
	assert.Equal(t, "Маша", results.Leaderboard[0].Name)
	assert.Equal(t, 1, results.Leaderboard[0].Correct)
	assert.Equal(t, 50, results.Leaderboard[0].Percent)
}
