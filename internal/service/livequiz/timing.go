package livequiz

import (
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
)

// TimeLeft считает остаток таймера текущего вопроса на момент now.
// Возвращает nil, когда обратный отсчет не имеет смысла: сессия не идет,
// таймер не настроен или вопрос еще не стартовал. Значение всегда
// в пределах [0, budget].
func TimeLeft(session *entity.QuizSession, now time.Time) *int {
	if !session.IsLive() || session.SecondsPerQuestion == nil || session.QuestionStartedAt == nil {
		return nil
	}
	budget := *session.SecondsPerQuestion
	elapsed := int(now.Sub(*session.QuestionStartedAt).Seconds())
	left := budget - elapsed
	if left < 0 {
		left = 0
	}
	if left > budget {
		left = budget
	}
	return &left
}

// ExpireTimerNow переносит отметку старта вопроса назад ровно на бюджет,
// так что остаток таймера становится нулем. Индекс не меняется: переход
// к следующему вопросу остается явным действием.
func ExpireTimerNow(session *entity.QuizSession, now time.Time) {
	if session.SecondsPerQuestion == nil {
		return
	}
	expired := now.Add(-time.Duration(*session.SecondsPerQuestion) * time.Second)
	session.QuestionStartedAt = &expired
}
