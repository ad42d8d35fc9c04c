package helper

import (
	"time"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
)

// FileURLFunc строит публичный URL по сохраненному имени файла
type FileURLFunc func(storedName string) string

// NoteView представляет конспект с его темой и публичным URL файла
type NoteView struct {
	ID         uint      `json:"id"`
	ClassID    uint      `json:"class_id"`
	TopicID    uint      `json:"topic_id"`
	TopicName  string    `json:"topic_name"`
	Filename   string    `json:"filename"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// TestView представляет загруженную контрольную с публичным URL файла
type TestView struct {
	ID          uint      `json:"id"`
	ClassID     uint      `json:"class_id"`
	CategoryID  *uint     `json:"category_id,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Filename    string    `json:"filename"`
	FileURL     string    `json:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ConvertNote строит представление конспекта для клиента
func ConvertNote(note entity.Note, topicName string, fileURL FileURLFunc) NoteView {
	return NoteView{
		ID:         note.ID,
		ClassID:    note.ClassID,
		TopicID:    note.TopicID,
		TopicName:  topicName,
		Filename:   note.Filename,
		FileURL:    fileURL(note.StoredPath),
		UploadedAt: note.UploadedAt,
	}
}

// ConvertNotesWithTopics строит список представлений конспектов с темами
func ConvertNotesWithTopics(rows []repository.NoteWithTopic, fileURL FileURLFunc) []NoteView {
	views := make([]NoteView, len(rows))
	for i, row := range rows {
		views[i] = ConvertNote(row.Note, row.Topic.Name, fileURL)
	}
	return views
}

// ConvertTest строит представление контрольной для клиента
func ConvertTest(test entity.TestItem, fileURL FileURLFunc) TestView {
	return TestView{
		ID:          test.ID,
		ClassID:     test.ClassID,
		CategoryID:  test.CategoryID,
		Title:       test.Title,
		Description: test.Description,
		Filename:    test.Filename,
		FileURL:     fileURL(test.StoredPath),
		UploadedAt:  test.UploadedAt,
	}
}

// ConvertTests строит список представлений контрольных
func ConvertTests(tests []entity.TestItem, fileURL FileURLFunc) []TestView {
	views := make([]TestView, len(tests))
	for i, test := range tests {
		views[i] = ConvertTest(test, fileURL)
	}
	return views
}
