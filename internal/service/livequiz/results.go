package livequiz

import (
	"math"
	"sort"
	"strings"

	"github.com/yourusername/classboard-api/internal/domain/entity"
)

// LeaderboardEntry — строка таблицы лидеров
type LeaderboardEntry struct {
	Name     string `json:"name"`
	Answered int    `json:"answered"`
	Correct  int    `json:"correct"`
	Percent  int    `json:"percent"`
}

// QuestionStats — статистика по одному вопросу
type QuestionStats struct {
	QuestionID string         `json:"question_id"`
	Prompt     string         `json:"prompt"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	Correct    *string        `json:"correct,omitempty"`
	// CorrectRate присутствует, только когда задан правильный ответ
	// и есть хотя бы один засчитанный ответ
	CorrectRate *float64 `json:"correct_rate,omitempty"`
	// MostCommonWrong — самый популярный неверный вариант;
	// отсутствует, если неверных ответов не было
	MostCommonWrong *string `json:"most_common_wrong,omitempty"`
}

// HardestQuestion — вопрос с наименьшей долей правильных ответов
type HardestQuestion struct {
	QuestionID  string  `json:"question_id"`
	Prompt      string  `json:"prompt"`
	CorrectRate float64 `json:"correct_rate"`
}

// SessionSummary — сводка по сессии
type SessionSummary struct {
	Joined         int              `json:"joined"`
	AttemptedAny   int              `json:"attempted_any"`
	TotalQuestions int              `json:"total_questions"`
	AveragePercent int              `json:"average_percent"`
	Hardest        *HardestQuestion `json:"hardest,omitempty"`
}

// SessionResults — полный отчет по сессии, пересчитывается при каждом запросе
type SessionResults struct {
	Scored      bool               `json:"scored"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Top3        []LeaderboardEntry `json:"top3"`
	Questions   []QuestionStats    `json:"questions"`
	Summary     SessionSummary     `json:"summary"`
}

// ComputeResults строит отчет из сырых ответов. Кеша нет: объемы
// классные, пересчет на каждый запрос дешевле инвалидации.
func ComputeResults(session *entity.QuizSession, participants []entity.QuizParticipant, answers []entity.QuizAnswer) *SessionResults {
	correctness := make(map[string]string)
	for _, q := range session.Questions {
		if q.Correct != nil && IsChoiceLabel(*q.Correct) {
			correctness[q.ID] = *q.Correct
		}
	}
	scored := len(correctness) > 0
	totalQuestions := len(session.Questions)

	// Последний ответ участника на вопрос уже гарантирован хранилищем,
	// здесь просто группируем
	byParticipant := make(map[uint][]entity.QuizAnswer)
	for _, a := range answers {
		byParticipant[a.ParticipantID] = append(byParticipant[a.ParticipantID], a)
	}

	leaderboard := make([]LeaderboardEntry, 0, len(participants))
	attemptedAny := 0
	percentSum := 0.0
	for _, p := range participants {
		answered := 0
		correct := 0
		// В answered идет каждый сохраненный ответ, включая ответы на
		// question_id вне списка: прием ответов к списку не привязан
		for _, a := range byParticipant[p.ID] {
			answered++
			if want, ok := correctness[a.QuestionID]; ok && a.Choice == want {
				correct++
			}
		}
		if answered > 0 {
			attemptedAny++
		}

		percent := 0
		if totalQuestions > 0 {
			if scored {
				percent = int(math.Round(float64(correct) / float64(totalQuestions) * 100))
			} else {
				percent = int(math.Round(float64(answered) / float64(totalQuestions) * 100))
			}
		}
		percentSum += float64(percent)

		leaderboard = append(leaderboard, LeaderboardEntry{
			Name:     p.DisplayName(session.Anonymous),
			Answered: answered,
			Correct:  correct,
			Percent:  percent,
		})
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		a, b := leaderboard[i], leaderboard[j]
		if scored {
			if a.Correct != b.Correct {
				return a.Correct > b.Correct
			}
		}
		if a.Answered != b.Answered {
			return a.Answered > b.Answered
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	top3 := leaderboard
	if len(top3) > 3 {
		top3 = top3[:3]
	}

	questions := make([]QuestionStats, 0, totalQuestions)
	var hardest *HardestQuestion
	for _, q := range session.Questions {
		stats := QuestionStats{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Counts:     map[string]int{"A": 0, "B": 0, "C": 0, "D": 0},
		}

		for _, a := range answers {
			if a.QuestionID != q.ID || !IsChoiceLabel(a.Choice) {
				continue
			}
			stats.Counts[a.Choice]++
			stats.Total++
		}

		if want, ok := correctness[q.ID]; ok {
			label := want
			stats.Correct = &label
			if stats.Total > 0 {
				rate := float64(stats.Counts[want]) / float64(stats.Total)
				stats.CorrectRate = &rate
				if hardest == nil || rate < hardest.CorrectRate {
					hardest = &HardestQuestion{
						QuestionID:  q.ID,
						Prompt:      q.Prompt,
						CorrectRate: rate,
					}
				}
			}

			wrongCount := 0
			wrongLabel := ""
			for _, label := range entity.ChoiceLabels {
				if label == want {
					continue
				}
				if stats.Counts[label] > wrongCount {
					wrongCount = stats.Counts[label]
					wrongLabel = label
				}
			}
			if wrongCount > 0 {
				stats.MostCommonWrong = &wrongLabel
			}
		}

		questions = append(questions, stats)
	}

	averagePercent := 0
	if len(participants) > 0 {
		averagePercent = int(math.Round(percentSum / float64(len(participants))))
	}

	return &SessionResults{
		Scored:      scored,
		Leaderboard: leaderboard,
		Top3:        top3,
		Questions:   questions,
		Summary: SessionSummary{
			Joined:         len(participants),
			AttemptedAny:   attemptedAny,
			TotalQuestions: totalQuestions,
			AveragePercent: averagePercent,
			Hardest:        hardest,
		},
	}
}
