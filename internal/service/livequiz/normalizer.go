// Package livequiz содержит чистую логику живых сессий опроса:
// нормализацию вопросов, генерацию кодов и никнеймов, расчет таймера
// и агрегацию результатов. Пакет не знает про хранилище и транспорт.
package livequiz

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// QuestionDraft — черновик вопроса, присланный учителем при создании сессии
type QuestionDraft struct {
	ID      string            `json:"id"`
	Prompt  string            `json:"prompt"`
	Choices map[string]string `json:"choices"`
	Correct *string           `json:"correct,omitempty"`
}

// NormalizeQuestions проверяет и канонизирует список черновиков:
// все или ничего, без частичного принятия. Текст обрезается, недостающие
// метки A-D заполняются пустыми строками, метка правильного ответа
// приводится к верхнему регистру. При shuffle порядок перемешивается
// один раз; дальше он неизменен.
func NormalizeQuestions(drafts []QuestionDraft, shuffle bool, rng *rand.Rand) (entity.QuestionList, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: question list is empty", apperrors.ErrValidation)
	}

	questions := make(entity.QuestionList, 0, len(drafts))
	for i, draft := range drafts {
		id := strings.TrimSpace(draft.ID)
		prompt := strings.TrimSpace(draft.Prompt)
		if id == "" {
			return nil, fmt.Errorf("%w: question %d has a blank id", apperrors.ErrValidation, i+1)
		}
		if prompt == "" {
			return nil, fmt.Errorf("%w: question %d has a blank prompt", apperrors.ErrValidation, i+1)
		}

		var choices entity.ChoiceSet
		for label, text := range draft.Choices {
			text = strings.TrimSpace(text)
			switch strings.ToUpper(strings.TrimSpace(label)) {
			case "A":
				choices.A = text
			case "B":
				choices.B = text
			case "C":
				choices.C = text
			case "D":
				choices.D = text
			}
		}
		if choices.NonEmptyCount() < 2 {
			return nil, fmt.Errorf("%w: question %d needs at least two non-empty choices", apperrors.ErrValidation, i+1)
		}

		var correct *string
		if draft.Correct != nil {
			label := strings.ToUpper(strings.TrimSpace(*draft.Correct))
			if label != "" {
				if !IsChoiceLabel(label) {
					return nil, fmt.Errorf("%w: question %d has an invalid correct label %q", apperrors.ErrValidation, i+1, label)
				}
				correct = &label
			}
		}

		questions = append(questions, entity.SessionQuestion{
			ID:      id,
			Prompt:  prompt,
			Choices: choices,
			Correct: correct,
		})
	}

	if shuffle {
		rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	return questions, nil
}

// IsChoiceLabel проверяет, что метка — одна из A, B, C, D
func IsChoiceLabel(label string) bool {
	for _, l := range entity.ChoiceLabels {
		if label == l {
			return true
		}
	}
	return false
}

// NormalizeChoice приводит выбор участника к канонической метке.
// Возвращает ошибку валидации для всего, что не A-D.
func NormalizeChoice(choice string) (string, error) {
	label := strings.ToUpper(strings.TrimSpace(choice))
	if !IsChoiceLabel(label) {
		return "", fmt.Errorf("%w: choice must be one of A, B, C, D", apperrors.ErrValidation)
	}
	return label, nil
}
