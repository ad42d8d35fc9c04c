package livequiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/classboard-api/internal/domain/entity"
)

func intPtr(n int) *int {
	return &n
}

func liveSession(budget *int, startedAgo time.Duration, now time.Time) *entity.QuizSession {
	started := now.Add(-startedAgo)
	return &entity.QuizSession{
		State:              entity.SessionStateLive,
		SecondsPerQuestion: budget,
		QuestionStartedAt:  &started,
	}
}

func TestTimeLeft_CountsDown(t *testing.T) {
	now := time.Now()
	session := liveSession(intPtr(30), 12*time.Second, now)

	left := TimeLeft(session, now)

	require.NotNil(t, left)
	assert.Equal(t, 18, *left)
}

func TestTimeLeft_NeverNegative(t *testing.T) {
	// Вопрос стартовал давно: остаток обрезается до нуля
	now := time.Now()
	session := liveSession(intPtr(30), 5*time.Minute, now)

	left := TimeLeft(session, now)

	require.NotNil(t, left)
	assert.Equal(t, 0, *left)
}

func TestTimeLeft_NeverAboveBudget(t *testing.T) {
	// QuestionStartedAt в будущем из-за рассинхрона часов
	now := time.Now()
	session := liveSession(intPtr(30), -10*time.Second, now)

	left := TimeLeft(session, now)

	require.NotNil(t, left)
	assert.Equal(t, 30, *left)
}

func TestTimeLeft_NilWhenNotApplicable(t *testing.T) {
	now := time.Now()

	// Сессия не идет
	lobby := liveSession(intPtr(30), time.Second, now)
	lobby.State = entity.SessionStateLobby
	assert.Nil(t, TimeLeft(lobby, now))

	// Таймер не настроен
	untimed := liveSession(nil, time.Second, now)
	assert.Nil(t, TimeLeft(untimed, now))

	// Вопрос еще не стартовал
	unstarted := liveSession(intPtr(30), time.Second, now)
	unstarted.QuestionStartedAt = nil
	assert.Nil(t, TimeLeft(unstarted, now))
}

func TestExpireTimerNow_ZeroesRemaining(t *testing.T) {
	// Arrange
	now := time.Now()
	session := liveSession(intPtr(30), 5*time.Second, now)

	// Act
	ExpireTimerNow(session, now)

	// Assert: остаток стал нулем, индекс не трогаем
	left := TimeLeft(session, now)
	require.NotNil(t, left)
	assert.Equal(t, 0, *left)
}

func TestExpireTimerNow_NoopWithoutBudget(t *testing.T) {
	now := time.Now()
	session := liveSession(nil, 5*time.Second, now)
	before := *session.QuestionStartedAt

	ExpireTimerNow(session, now)

	assert.Equal(t, before, *session.QuestionStartedAt)
}
