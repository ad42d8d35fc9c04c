package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service/livequiz"
)

// CreateSessionInput — параметры создания живой сессии
type CreateSessionInput struct {
	ClassID            uint
	Title              string
	Anonymous          bool
	Questions          []livequiz.QuestionDraft
	SecondsPerQuestion *int
	ShuffleQuestions   bool
	AutoAdvance        bool
}

// SessionStatus — проекция состояния сессии для опроса учителем
type SessionStatus struct {
	Session         *entity.QuizSession
	Joined          int64
	AnsweredCurrent int64
	TimeLeft        *int
}

// CurrentView — проекция текущего вопроса для участника.
// Правильный ответ наружу не отдается.
type CurrentView struct {
	State          string
	CurrentIndex   int
	TotalQuestions int
	Question       *entity.SessionQuestion
	TimeLeft       *int
}

// LiveQuizService управляет жизненным циклом живых сессий:
// создание, переходы состояний, участие и результаты
type LiveQuizService struct {
	sessionRepo     repository.QuizSessionRepository
	participantRepo repository.QuizParticipantRepository
	answerRepo      repository.QuizAnswerRepository
	classRepo       repository.ClassRepository

	locks *livequiz.SessionLocks

	// rng защищен мьютексом: math/rand.Rand не потокобезопасен
	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time
}

// NewLiveQuizService создает новый сервис живых сессий
func NewLiveQuizService(
	sessionRepo repository.QuizSessionRepository,
	participantRepo repository.QuizParticipantRepository,
	answerRepo repository.QuizAnswerRepository,
	classRepo repository.ClassRepository,
) *LiveQuizService {
	return &LiveQuizService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		answerRepo:      answerRepo,
		classRepo:       classRepo,
		locks:           livequiz.NewSessionLocks(),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		now:             time.Now,
	}
}

// CreateSession проверяет вопросы, генерирует уникальный код
// и сохраняет сессию в состоянии lobby
func (s *LiveQuizService) CreateSession(ownerID uint, input CreateSessionInput) (*entity.QuizSession, error) {
	if _, err := s.classRepo.GetByIDForOwner(input.ClassID, ownerID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.SecondsPerQuestion != nil && *input.SecondsPerQuestion <= 0 {
		return nil, fmt.Errorf("%w: seconds_per_question must be positive", apperrors.ErrValidation)
	}

	s.rngMu.Lock()
	questions, err := livequiz.NormalizeQuestions(input.Questions, input.ShuffleQuestions, s.rng)
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < livequiz.MaxCodeAttempts; attempt++ {
		s.rngMu.Lock()
		code := livequiz.GenerateCode(s.rng)
		s.rngMu.Unlock()

		session := &entity.QuizSession{
			ClassID:            input.ClassID,
			Code:               code,
			Title:              title,
			Anonymous:          input.Anonymous,
			Questions:          questions,
			State:              entity.SessionStateLobby,
			CurrentIndex:       -1,
			SecondsPerQuestion: input.SecondsPerQuestion,
			ShuffleQuestions:   input.ShuffleQuestions,
			AutoAdvance:        input.AutoAdvance,
		}

		err := s.sessionRepo.Create(session)
		if err == nil {
			log.Printf("[LiveQuizService] Created session %s for class %d (%d questions)",
				code, input.ClassID, len(questions))
			return session, nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return nil, err
	}
	return nil, apperrors.ErrCodeExhausted
}

// getOwnedSession возвращает сессию, проверив, что ее класс принадлежит учителю
func (s *LiveQuizService) getOwnedSession(ownerID uint, code string) (*entity.QuizSession, error) {
	session, err := s.sessionRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByIDForOwner(session.ClassID, ownerID); err != nil {
		return nil, err
	}
	return session, nil
}

// Status возвращает состояние сессии для панели учителя
func (s *LiveQuizService) Status(ownerID uint, code string) (*SessionStatus, error) {
	session, err := s.getOwnedSession(ownerID, code)
	if err != nil {
		return nil, err
	}

	joined, err := s.participantRepo.CountBySession(session.ID)
	if err != nil {
		return nil, err
	}

	var answered int64
	if q := session.CurrentQuestion(); q != nil {
		answered, err = s.answerRepo.CountByQuestion(session.ID, q.ID)
		if err != nil {
			return nil, err
		}
	}

	return &SessionStatus{
		Session:         session,
		Joined:          joined,
		AnsweredCurrent: answered,
		TimeLeft:        livequiz.TimeLeft(session, s.now()),
	}, nil
}

// Start переводит сессию lobby -> live и запускает таймер первого вопроса
func (s *LiveQuizService) Start(ownerID uint, code string) (*entity.QuizSession, error) {
	unlock := s.locks.Lock(strings.ToUpper(strings.TrimSpace(code)))
	defer unlock()

	session, err := s.getOwnedSession(ownerID, code)
	if err != nil {
		return nil, err
	}
	if !session.IsLobby() {
		return nil, fmt.Errorf("%w: session is %s, can only start from lobby", apperrors.ErrValidation, session.State)
	}
	if len(session.Questions) == 0 {
		return nil, fmt.Errorf("%w: session has no questions", apperrors.ErrValidation)
	}

	now := s.now()
	session.State = entity.SessionStateLive
	session.CurrentIndex = 0
	session.StartedAt = &now
	session.QuestionStartedAt = &now

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	log.Printf("[LiveQuizService] Session %s started", session.Code)
	return session, nil
}

// Advance переходит к следующему вопросу или завершает сессию
// после последнего. Ответы на предыдущие вопросы не сбрасываются.
func (s *LiveQuizService) Advance(ownerID uint, code string) (*entity.QuizSession, error) {
	unlock := s.locks.Lock(strings.ToUpper(strings.TrimSpace(code)))
	defer unlock()

	session, err := s.getOwnedSession(ownerID, code)
	if err != nil {
		return nil, err
	}
	if !session.IsLive() {
		return nil, fmt.Errorf("%w: session is %s, can only advance while live", apperrors.ErrValidation, session.State)
	}

	now := s.now()
	session.CurrentIndex++
	if session.CurrentIndex >= len(session.Questions) {
		session.CurrentIndex = len(session.Questions) - 1
		session.State = entity.SessionStateEnded
		session.EndedAt = &now
	} else {
		session.QuestionStartedAt = &now
	}

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndQuestion досрочно гасит таймер текущего вопроса, не меняя индекс
func (s *LiveQuizService) EndQuestion(ownerID uint, code string) (*entity.QuizSession, error) {
	unlock := s.locks.Lock(strings.ToUpper(strings.TrimSpace(code)))
	defer unlock()

	session, err := s.getOwnedSession(ownerID, code)
	if err != nil {
		return nil, err
	}
	if !session.IsLive() {
		return nil, fmt.Errorf("%w: session is %s, can only end a question while live", apperrors.ErrValidation, session.State)
	}

	livequiz.ExpireTimerNow(session, s.now())
	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession безусловно завершает сессию из любого состояния
func (s *LiveQuizService) EndSession(ownerID uint, code string) (*entity.QuizSession, error) {
	unlock := s.locks.Lock(strings.ToUpper(strings.TrimSpace(code)))
	defer unlock()

	session, err := s.getOwnedSession(ownerID, code)
	if err != nil {
		return nil, err
	}
	if !session.IsEnded() {
		now := s.now()
		session.State = entity.SessionStateEnded
		session.EndedAt = &now
		if err := s.sessionRepo.Save(session); err != nil {
			return nil, err
		}
		log.Printf("[LiveQuizService] Session %s ended", session.Code)
	}
	return session, nil
}

// Join регистрирует участника или возвращает существующего по anon_id.
// Пустой anon_id означает первый вход: сервер генерирует идентификатор сам,
// клиент сохраняет его из ответа. Повторный join ничего не меняет:
// никнейм не перезаписывается.
func (s *LiveQuizService) Join(code, anonID, name string) (*entity.QuizSession, *entity.QuizParticipant, error) {
	anonID = strings.TrimSpace(anonID)
	if anonID == "" {
		anonID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	session, err := s.sessionRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, err
	}

	if existing, err := s.participantRepo.GetBySessionAnon(session.ID, anonID); err == nil {
		return session, existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}

	var nickname *string
	if !session.Anonymous {
		name = strings.TrimSpace(name)
		if name == "" {
			s.rngMu.Lock()
			name = livequiz.GenerateNickname(s.rng)
			s.rngMu.Unlock()
		}
		nickname = &name
	}

	participant := &entity.QuizParticipant{
		SessionID: session.ID,
		AnonID:    anonID,
		Nickname:  nickname,
	}
	err = s.participantRepo.Create(participant)
	if errors.Is(err, apperrors.ErrConflict) {
		// Гонка двух одинаковых join: отдаем победившую запись
		existing, getErr := s.participantRepo.GetBySessionAnon(session.ID, anonID)
		if getErr != nil {
			return nil, nil, getErr
		}
		return session, existing, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return session, participant, nil
}

// Current возвращает текущий вопрос и остаток таймера для участника.
// Чистое чтение, безопасно опрашивать с любой частотой.
func (s *LiveQuizService) Current(code string) (*CurrentView, error) {
	session, err := s.sessionRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	view := &CurrentView{
		State:          session.State,
		CurrentIndex:   session.CurrentIndex,
		TotalQuestions: len(session.Questions),
		TimeLeft:       livequiz.TimeLeft(session, s.now()),
	}
	if q := session.CurrentQuestion(); q != nil {
		sanitized := *q
		sanitized.Correct = nil
		view.Question = &sanitized
	}
	return view, nil
}

// Answer записывает ответ участника. Повторный ответ на тот же вопрос
// перезаписывает выбор. После записи проверяется политика автоперехода.
func (s *LiveQuizService) Answer(code, anonID, questionID, choice string) error {
	anonID = strings.TrimSpace(anonID)
	questionID = strings.TrimSpace(questionID)
	if anonID == "" {
		return fmt.Errorf("%w: anon_id is required", apperrors.ErrValidation)
	}
	if questionID == "" {
		return fmt.Errorf("%w: question_id is required", apperrors.ErrValidation)
	}
	label, err := livequiz.NormalizeChoice(choice)
	if err != nil {
		return err
	}

	codeKey := strings.ToUpper(strings.TrimSpace(code))
	session, err := s.sessionRepo.GetByCode(codeKey)
	if err != nil {
		return err
	}
	if !session.IsLive() {
		return fmt.Errorf("%w: session is not live", apperrors.ErrValidation)
	}

	participant, err := s.participantRepo.GetBySessionAnon(session.ID, anonID)
	if err != nil {
		return err
	}

	if err := s.answerRepo.Upsert(&entity.QuizAnswer{
		SessionID:     session.ID,
		ParticipantID: participant.ID,
		QuestionID:    questionID,
		Choice:        label,
		AnsweredAt:    s.now(),
	}); err != nil {
		return err
	}

	return s.maybeAutoAdvance(codeKey)
}

// maybeAutoAdvance гасит таймер текущего вопроса, когда ответили все
// присоединившиеся участники. Индекс не двигает: переход остается
// за учителем или поллером, который увидит ноль на таймере.
func (s *LiveQuizService) maybeAutoAdvance(code string) error {
	unlock := s.locks.Lock(code)
	defer unlock()

	session, err := s.sessionRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if !session.AutoAdvance || !session.IsLive() || session.SecondsPerQuestion == nil {
		return nil
	}
	q := session.CurrentQuestion()
	if q == nil {
		return nil
	}

	joined, err := s.participantRepo.CountBySession(session.ID)
	if err != nil {
		return err
	}
	if joined == 0 {
		return nil
	}
	answered, err := s.answerRepo.CountByQuestion(session.ID, q.ID)
	if err != nil {
		return err
	}
	if answered < joined {
		return nil
	}

	if left := livequiz.TimeLeft(session, s.now()); left != nil && *left == 0 {
		return nil
	}
	livequiz.ExpireTimerNow(session, s.now())
	return s.sessionRepo.Save(session)
}

// Results строит полный отчет по сессии: таблицу лидеров,
// статистику вопросов и сводку
func (s *LiveQuizService) Results(code string) (*livequiz.SessionResults, error) {
	session, err := s.sessionRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySession(session.ID)
	if err != nil {
		return nil, err
	}

	return livequiz.ComputeResults(session, participants, answers), nil
}
