package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizSession_CurrentQuestion(t *testing.T) {
	// Arrange
	session := &QuizSession{
		Questions: QuestionList{
			{ID: "q1", Prompt: "Первый"},
			{ID: "q2", Prompt: "Второй"},
		},
	}

	// Act & Assert: до старта индекс -1, текущего вопроса нет
	session.CurrentIndex = -1
	assert.Nil(t, session.CurrentQuestion(), "До старта текущего вопроса нет")

	session.CurrentIndex = 0
	require.NotNil(t, session.CurrentQuestion())
	assert.Equal(t, "q1", session.CurrentQuestion().ID)

	session.CurrentIndex = 1
	assert.Equal(t, "q2", session.CurrentQuestion().ID)

	// Индекс за пределами списка
	session.CurrentIndex = 2
	assert.Nil(t, session.CurrentQuestion(), "Индекс вне диапазона не должен паниковать")
}

func TestQuizSession_StateHelpers(t *testing.T) {
	session := &QuizSession{State: SessionStateLobby}
	assert.True(t, session.IsLobby())
	assert.False(t, session.IsLive())
	assert.False(t, session.IsEnded())

	session.State = SessionStateLive
	assert.True(t, session.IsLive())

	session.State = SessionStateEnded
	assert.True(t, session.IsEnded())
}

func TestChoiceSet_GetAndCount(t *testing.T) {
	// Arrange
	choices := ChoiceSet{A: "один", B: "два", C: "", D: "четыре"}

	// Act & Assert
	assert.Equal(t, "один", choices.Get("A"))
	assert.Equal(t, "два", choices.Get("B"))
	assert.Equal(t, "", choices.Get("C"))
	assert.Equal(t, "", choices.Get("E"), "Неизвестная метка дает пустую строку")
	assert.Equal(t, 3, choices.NonEmptyCount())
}

func TestQuestionList_ScanValue_RoundTrip(t *testing.T) {
	// Arrange
	correct := "B"
	original := QuestionList{
		{
			ID:      "q1",
			Prompt:  "Сколько будет 2+2?",
			Choices: ChoiceSet{A: "3", B: "4", C: "5", D: "6"},
			Correct: &correct,
		},
	}

	// Act: сериализуем в JSONB и читаем обратно
	value, err := original.Value()
	require.NoError(t, err)

	var restored QuestionList
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "q1", restored[0].ID)
	assert.Equal(t, "4", restored[0].Choices.B)
	require.NotNil(t, restored[0].Correct)
	assert.Equal(t, "B", *restored[0].Correct)
}

func TestQuestionList_Scan_NilAndEmpty(t *testing.T) {
	var q QuestionList
	require.NoError(t, q.Scan(nil))
	assert.Empty(t, q)

	require.NoError(t, q.Scan([]byte{}))
	assert.Empty(t, q)
}

func TestQuizParticipant_DisplayName(t *testing.T) {
	nickname := "Sunny Panda"
	participant := &QuizParticipant{Nickname: &nickname}

	assert.Equal(t, "Anonymous", participant.DisplayName(true), "В анонимной сессии имя скрыто")
	assert.Equal(t, "Sunny Panda", participant.DisplayName(false))

	participant.Nickname = nil
	assert.Equal(t, "Player", participant.DisplayName(false), "Без никнейма используется заглушка")
}
