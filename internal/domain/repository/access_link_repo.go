package repository

import "github.com/yourusername/classboard-api/internal/domain/entity"

// AccessLinkRepository определяет методы для работы со ссылками доступа учеников
type AccessLinkRepository interface {
	Create(link *entity.AccessLink) error
	GetActiveByClass(classID uint) (*entity.AccessLink, error)
	// GetActiveByToken возвращает только действующую ссылку
	GetActiveByToken(token string) (*entity.AccessLink, error)
	// DeactivateByClass гасит все действующие ссылки класса
	DeactivateByClass(classID uint) error
}
