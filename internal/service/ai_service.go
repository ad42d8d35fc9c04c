package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
	"github.com/yourusername/classboard-api/internal/service/livequiz"
)

// ParsedEvent — поля события календаря, извлеченные из свободного текста
type ParsedEvent struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	EventDate   string  `json:"event_date"`
	EndDate     *string `json:"end_date,omitempty"`
	AllDay      bool    `json:"all_day"`
	EventType   string  `json:"event_type"`
}

// AIService извлекает события из текста и генерирует вопросы
// по конспектам через chat completions API
type AIService struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

// NewAIService создает новый AI-сервис
func NewAIService(apiKey, apiURL, model string) *AIService {
	return &AIService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
	}
}

// IsAvailable сообщает, настроен ли API-ключ
func (s *AIService) IsAvailable() bool {
	return s.apiKey != ""
}

// Model возвращает имя используемой модели
func (s *AIService) Model() string {
	return s.model
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const parseEventPrompt = `You extract calendar event details from a teacher's free-form text. Today's date is %s. You must respond with ONLY valid JSON (no markdown, no code fences, no explanations) in the following format:

{
  "title": "Short event title",
  "description": "Optional longer description or null",
  "event_date": "2025-09-14T10:00:00Z",
  "end_date": null,
  "all_day": false,
  "event_type": "general"
}

Rules:
- event_date and end_date are RFC 3339 timestamps; resolve relative dates ("next Friday") against today's date
- all_day is true when no specific time is mentioned
- event_type is one of: general, test, homework, trip
- Write the title in the same language as the input
- Return ONLY the JSON object, nothing else`

const generateQuizPrompt = `You turn study notes into a multiple-choice quiz. You must respond with ONLY valid JSON (no markdown, no code fences, no explanations) in the following format:

{
  "questions": [
    {
      "id": "q1",
      "prompt": "Question text?",
      "choices": {"A": "First option", "B": "Second option", "C": "Third option", "D": "Fourth option"},
      "correct": "A"
    }
  ]
}

Rules:
- Generate %d questions covering the key facts in the notes
- Each question has exactly four choices A-D and exactly one correct label
- Questions must be answerable from the notes alone
- Write everything in the same language as the notes
- Return ONLY the JSON object, nothing else`

// complete отправляет запрос в chat completions API и возвращает текст ответа
func (s *AIService) complete(ctx context.Context, system, user string) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("%w: AI features are not configured", apperrors.ErrValidation)
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from AI")
	}

	return cleanJSONContent(chatResp.Choices[0].Message.Content), nil
}

// ParseEvent извлекает поля события календаря из свободного текста
func (s *AIService) ParseEvent(ctx context.Context, text string) (*ParsedEvent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperrors.ErrValidation)
	}

	system := fmt.Sprintf(parseEventPrompt, time.Now().Format("2006-01-02"))
	content, err := s.complete(ctx, system, text)
	if err != nil {
		return nil, err
	}

	var event ParsedEvent
	if err := json.Unmarshal([]byte(content), &event); err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}
	if event.Title == "" || event.EventDate == "" {
		return nil, fmt.Errorf("AI response is missing required fields")
	}
	return &event, nil
}

// GenerateQuiz строит черновики вопросов по тексту конспекта
func (s *AIService) GenerateQuiz(ctx context.Context, notes string, questionCount int) ([]livequiz.QuestionDraft, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("%w: notes text is required", apperrors.ErrValidation)
	}
	if questionCount <= 0 {
		questionCount = 5
	}
	if questionCount > 20 {
		questionCount = 20
	}

	system := fmt.Sprintf(generateQuizPrompt, questionCount)
	content, err := s.complete(ctx, system, notes)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []livequiz.QuestionDraft `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("AI returned no questions")
	}
	return parsed.Questions, nil
}

// cleanJSONContent убирает обертку из code fences, если модель ее добавила
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
