package livequiz

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

func strPtr(s string) *string {
	return &s
}

func validDraft(id string) QuestionDraft {
	return QuestionDraft{
		ID:      id,
		Prompt:  "Вопрос " + id,
		Choices: map[string]string{"A": "первый", "B": "второй"},
		Correct: strPtr("A"),
	}
}

func TestNormalizeQuestions_TrimsAndUppercases(t *testing.T) {
	// Arrange
	drafts := []QuestionDraft{
		{
			ID:      "  q1  ",
			Prompt:  "  What is 2+2?  ",
			Choices: map[string]string{"a": " 3 ", "b": " 4 "},
			Correct: strPtr(" b "),
		},
	}

	// Act
	questions, err := NormalizeQuestions(drafts, false, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "What is 2+2?", questions[0].Prompt)
	assert.Equal(t, "3", questions[0].Choices.A)
	assert.Equal(t, "4", questions[0].Choices.B)
	require.NotNil(t, questions[0].Correct)
	assert.Equal(t, "B", *questions[0].Correct)
}

func TestNormalizeQuestions_EmptyList(t *testing.T) {
	questions, err := NormalizeQuestions(nil, false, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, questions)
}

func TestNormalizeQuestions_AllOrNothing(t *testing.T) {
	// Один невалидный вопрос отклоняет весь список
	drafts := []QuestionDraft{
		validDraft("q1"),
		{
			ID:      "q2",
			Prompt:  "Только один вариант",
			Choices: map[string]string{"A": "единственный"},
		},
	}

	questions, err := NormalizeQuestions(drafts, false, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, questions)
}

func TestNormalizeQuestions_BlankIDAndPrompt(t *testing.T) {
	cases := []struct {
		name  string
		draft QuestionDraft
	}{
		{"пустой id", QuestionDraft{ID: "   ", Prompt: "p", Choices: map[string]string{"A": "1", "B": "2"}}},
		{"пустой prompt", QuestionDraft{ID: "q1", Prompt: "   ", Choices: map[string]string{"A": "1", "B": "2"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeQuestions([]QuestionDraft{tc.draft}, false, nil)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNormalizeQuestions_InvalidCorrectLabel(t *testing.T) {
	draft := validDraft("q1")
	draft.Correct = strPtr("E")

	_, err := NormalizeQuestions([]QuestionDraft{draft}, false, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNormalizeQuestions_BlankCorrectMeansUnscored(t *testing.T) {
	// Пустая метка правильного ответа — вопрос без оценивания, не ошибка
	draft := validDraft("q1")
	draft.Correct = strPtr("   ")

	questions, err := NormalizeQuestions([]QuestionDraft{draft}, false, nil)

	require.NoError(t, err)
	assert.Nil(t, questions[0].Correct)
}

func TestNormalizeQuestions_ShuffleIsPermutation(t *testing.T) {
	// Arrange
	drafts := make([]QuestionDraft, 10)
	for i := range drafts {
		drafts[i] = validDraft(string(rune('a' + i)))
	}
	rng := rand.New(rand.NewSource(42))

	// Act
	questions, err := NormalizeQuestions(drafts, true, rng)

	// Assert: тот же набор id, возможно в другом порядке
	require.NoError(t, err)
	require.Len(t, questions, 10)

	gotIDs := make([]string, 0, 10)
	for _, q := range questions {
		gotIDs = append(gotIDs, q.ID)
	}
	wantIDs := make([]string, 0, 10)
	for _, d := range drafts {
		wantIDs = append(wantIDs, d.ID)
	}
	sort.Strings(gotIDs)
	sort.Strings(wantIDs)
	assert.Equal(t, wantIDs, gotIDs)
}

func TestNormalizeQuestions_NoShuffleKeepsOrder(t *testing.T) {
	drafts := []QuestionDraft{validDraft("q1"), validDraft("q2"), validDraft("q3")}

	questions, err := NormalizeQuestions(drafts, false, nil)

	require.NoError(t, err)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "q2", questions[1].ID)
	assert.Equal(t, "q3", questions[2].ID)
}

func TestNormalizeChoice(t *testing.T) {
	label, err := NormalizeChoice(" c ")
	require.NoError(t, err)
	assert.Equal(t, "C", label)

	_, err = NormalizeChoice("E")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = NormalizeChoice("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
