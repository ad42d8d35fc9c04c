package livequiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/classboard-api/internal/domain/entity"
)

func scoredSession() *entity.QuizSession {
	return &entity.QuizSession{
		ID:        1,
		Anonymous: false,
		State:     entity.SessionStateEnded,
		Questions: entity.QuestionList{
			{ID: "q1", Prompt: "Первый", Choices: entity.ChoiceSet{A: "1", B: "2"}, Correct: strPtr("A")},
			{ID: "q2", Prompt: "Второй", Choices: entity.ChoiceSet{A: "1", B: "2"}, Correct: strPtr("B")},
		},
	}
}

func namedParticipant(id uint, name string) entity.QuizParticipant {
	return entity.QuizParticipant{ID: id, SessionID: 1, Nickname: &name}
}

func TestComputeResults_ScoredLeaderboard(t *testing.T) {
	// Arrange: два вопроса, у первого участника оба верны, у второго один
	session := scoredSession()
	participants := []entity.QuizParticipant{
		namedParticipant(1, "Alice"),
		namedParticipant(2, "Bob"),
	}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 1, QuestionID: "q2", Choice: "B"},
		{ParticipantID: 2, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 2, QuestionID: "q2", Choice: "A"},
	}

	// Act
	results := ComputeResults(session, participants, answers)

	// Assert
	assert.True(t, results.Scored)
	require.Len(t, results.Leaderboard, 2)
	assert.Equal(t, "Alice", results.Leaderboard[0].Name)
	assert.Equal(t, 2, results.Leaderboard[0].Correct)
	assert.Equal(t, 100, results.Leaderboard[0].Percent)
	assert.Equal(t, "Bob", results.Leaderboard[1].Name)
	assert.Equal(t, 1, results.Leaderboard[1].Correct)
	assert.Equal(t, 50, results.Leaderboard[1].Percent)
}

func TestComputeResults_UnscoredUsesAnswered(t *testing.T) {
	// Без правильных ответов процент считается от числа отвеченных
	session := scoredSession()
	for i := range session.Questions {
		session.Questions[i].Correct = nil
	}
	participants := []entity.QuizParticipant{namedParticipant(1, "Alice")}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "B"},
	}

	results := ComputeResults(session, participants, answers)

	assert.False(t, results.Scored)
	require.Len(t, results.Leaderboard, 1)
	assert.Equal(t, 1, results.Leaderboard[0].Answered)
	assert.Equal(t, 0, results.Leaderboard[0].Correct)
	assert.Equal(t, 50, results.Leaderboard[0].Percent)
}

func TestComputeResults_LeaderboardTiebreaks(t *testing.T) {
	// Arrange: одинаковый счет, сортировка по имени без учета регистра
	session := scoredSession()
	participants := []entity.QuizParticipant{
		namedParticipant(1, "bob"),
		namedParticipant(2, "Alice"),
	}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 2, QuestionID: "q1", Choice: "A"},
	}

	// Act
	results := ComputeResults(session, participants, answers)

	// Assert
	require.Len(t, results.Leaderboard, 2)
	assert.Equal(t, "Alice", results.Leaderboard[0].Name)
	assert.Equal(t, "bob", results.Leaderboard[1].Name)
}

func TestComputeResults_AnonymousNames(t *testing.T) {
	session := scoredSession()
	session.Anonymous = true
	participants := []entity.QuizParticipant{namedParticipant(1, "Alice")}

	results := ComputeResults(session, participants, nil)

	require.Len(t, results.Leaderboard, 1)
	assert.Equal(t, "Anonymous", results.Leaderboard[0].Name)
}

func TestComputeResults_Top3Limit(t *testing.T) {
	session := scoredSession()
	participants := make([]entity.QuizParticipant, 5)
	for i := range participants {
		participants[i] = namedParticipant(uint(i+1), string(rune('a'+i)))
	}

	results := ComputeResults(session, participants, nil)

	assert.Len(t, results.Leaderboard, 5)
	assert.Len(t, results.Top3, 3)
}

func TestComputeResults_QuestionStats(t *testing.T) {
	// Arrange: q1 — двое верно, один неверно (B)
	session := scoredSession()
	participants := []entity.QuizParticipant{
		namedParticipant(1, "a"), namedParticipant(2, "b"), namedParticipant(3, "c"),
	}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 2, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 3, QuestionID: "q1", Choice: "B"},
	}

	// Act
	results := ComputeResults(session, participants, answers)

	// Assert
	require.Len(t, results.Questions, 2)
	q1 := results.Questions[0]
	assert.Equal(t, 3, q1.Total)
	assert.Equal(t, 2, q1.Counts["A"])
	assert.Equal(t, 1, q1.Counts["B"])
	require.NotNil(t, q1.CorrectRate)
	assert.InDelta(t, 2.0/3.0, *q1.CorrectRate, 0.001)
	require.NotNil(t, q1.MostCommonWrong)
	assert.Equal(t, "B", *q1.MostCommonWrong)

	// q2 без ответов: нет ни CorrectRate, ни MostCommonWrong
	q2 := results.Questions[1]
	assert.Equal(t, 0, q2.Total)
	assert.Nil(t, q2.CorrectRate)
	assert.Nil(t, q2.MostCommonWrong)
}

func TestComputeResults_MostCommonWrongTiesByLabelOrder(t *testing.T) {
	// При равенстве неверных вариантов берется первый по порядку меток
	session := &entity.QuizSession{
		ID: 1,
		Questions: entity.QuestionList{
			{ID: "q1", Prompt: "p", Choices: entity.ChoiceSet{A: "1", B: "2", C: "3"}, Correct: strPtr("A")},
		},
	}
	participants := []entity.QuizParticipant{
		namedParticipant(1, "a"), namedParticipant(2, "b"),
	}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "B"},
		{ParticipantID: 2, QuestionID: "q1", Choice: "C"},
	}

	results := ComputeResults(session, participants, answers)

	require.NotNil(t, results.Questions[0].MostCommonWrong)
	assert.Equal(t, "B", *results.Questions[0].MostCommonWrong)
}

func TestComputeResults_UnknownQuestionCountsAsAnsweredOnly(t *testing.T) {
	// Arrange: ответ на question_id вне списка сессии
	session := scoredSession()
	participants := []entity.QuizParticipant{namedParticipant(1, "Alice")}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "ghost", Choice: "A"},
	}

	// Act
	results := ComputeResults(session, participants, answers)

	// Assert: ответ учтен в answered, но не дает баллов и не попадает
	// в статистику вопросов
	assert.Equal(t, 1, results.Leaderboard[0].Answered)
	assert.Equal(t, 0, results.Leaderboard[0].Correct)
	assert.Equal(t, 1, results.Summary.AttemptedAny)
	for _, q := range results.Questions {
		assert.Equal(t, 0, q.Total)
	}
}

func TestComputeResults_SummaryAndHardest(t *testing.T) {
	// Arrange: q1 отвечен верно, q2 — неверно, q2 должен стать самым сложным
	session := scoredSession()
	participants := []entity.QuizParticipant{
		namedParticipant(1, "Alice"),
		namedParticipant(2, "Bob"),
	}
	answers := []entity.QuizAnswer{
		{ParticipantID: 1, QuestionID: "q1", Choice: "A"},
		{ParticipantID: 1, QuestionID: "q2", Choice: "A"},
	}

	// Act
	results := ComputeResults(session, participants, answers)

	// Assert
	assert.Equal(t, 2, results.Summary.Joined)
	assert.Equal(t, 1, results.Summary.AttemptedAny)
	assert.Equal(t, 2, results.Summary.TotalQuestions)
	// Alice: 1/2 = 50%, Bob: 0% -> среднее 25
	assert.Equal(t, 25, results.Summary.AveragePercent)
	require.NotNil(t, results.Summary.Hardest)
	assert.Equal(t, "q2", results.Summary.Hardest.QuestionID)
	assert.Equal(t, 0.0, results.Summary.Hardest.CorrectRate)
}

func TestComputeResults_EmptySession(t *testing.T) {
	session := scoredSession()

	results := ComputeResults(session, nil, nil)

	assert.Empty(t, results.Leaderboard)
	assert.Equal(t, 0, results.Summary.Joined)
	assert.Equal(t, 0, results.Summary.AveragePercent)
	assert.Nil(t, results.Summary.Hardest)
}
