package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/classboard-api/internal/domain/entity"
	"github.com/yourusername/classboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/classboard-api/internal/pkg/errors"
)

// TTL кеша токенов доступа: витрину опрашивают часто, токены меняются редко
const accessLinkCacheTTL = 10 * time.Minute

// StudentView — публичная витрина класса для учеников, только чтение
type StudentView struct {
	ClassName string                 `json:"class_name"`
	Subject   string                 `json:"subject"`
	Posts     []entity.Post          `json:"posts"`
	Notes     []entity.Note          `json:"notes"`
	Events    []entity.CalendarEvent `json:"events"`
}

// AccessService управляет ссылками доступа учеников к витрине класса
type AccessService struct {
	linkRepo     repository.AccessLinkRepository
	classRepo    repository.ClassRepository
	postRepo     repository.PostRepository
	noteRepo     repository.NoteRepository
	calendarRepo repository.CalendarRepository
	cacheRepo    repository.CacheRepository
	emailService EmailService
}

// NewAccessService создает новый сервис ссылок доступа
func NewAccessService(
	linkRepo repository.AccessLinkRepository,
	classRepo repository.ClassRepository,
	postRepo repository.PostRepository,
	noteRepo repository.NoteRepository,
	calendarRepo repository.CalendarRepository,
	cacheRepo repository.CacheRepository,
	emailService EmailService,
) *AccessService {
	return &AccessService{
		linkRepo:     linkRepo,
		classRepo:    classRepo,
		postRepo:     postRepo,
		noteRepo:     noteRepo,
		calendarRepo: calendarRepo,
		cacheRepo:    cacheRepo,
		emailService: emailService,
	}
}

func accessLinkCacheKey(token string) string {
	return "access_link:" + token
}

// Get возвращает действующую ссылку класса
func (s *AccessService) Get(ownerID, classID uint) (*entity.AccessLink, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}
	return s.linkRepo.GetActiveByClass(classID)
}

// Rotate гасит старые ссылки класса и выпускает новую.
// Старый токен сразу убирается из кеша, чтобы не пережил отзыв.
func (s *AccessService) Rotate(ownerID, classID uint) (*entity.AccessLink, error) {
	if _, err := s.classRepo.GetByIDForOwner(classID, ownerID); err != nil {
		return nil, err
	}

	if old, err := s.linkRepo.GetActiveByClass(classID); err == nil {
		if s.cacheRepo != nil {
			if err := s.cacheRepo.Delete(accessLinkCacheKey(old.Token)); err != nil {
				log.Printf("[AccessService] Failed to evict cached token: %v", err)
			}
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := s.linkRepo.DeactivateByClass(classID); err != nil {
		return nil, err
	}

	link := &entity.AccessLink{
		ClassID: classID,
		Token:   strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	if err := s.linkRepo.Create(link); err != nil {
		return nil, err
	}
	return link, nil
}

// Share отправляет действующую ссылку класса на email
func (s *AccessService) Share(ctx context.Context, ownerID, classID uint, toEmail, baseURL string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}

	class, err := s.classRepo.GetByIDForOwner(classID, ownerID)
	if err != nil {
		return err
	}
	link, err := s.linkRepo.GetActiveByClass(classID)
	if err != nil {
		return err
	}

	linkURL := strings.TrimRight(baseURL, "/") + "/student/" + link.Token
	return s.emailService.SendAccessLink(ctx, toEmail, class.Name, linkURL)
}

// resolveToken возвращает ID класса по токену, сначала из кеша
func (s *AccessService) resolveToken(token string) (uint, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, apperrors.ErrNotFound
	}

	if s.cacheRepo != nil {
		var classID uint
		if err := s.cacheRepo.GetJSON(accessLinkCacheKey(token), &classID); err == nil {
			return classID, nil
		}
	}

	link, err := s.linkRepo.GetActiveByToken(token)
	if err != nil {
		return 0, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(accessLinkCacheKey(token), link.ClassID, accessLinkCacheTTL); err != nil {
			log.Printf("[AccessService] Failed to cache token: %v", err)
		}
	}
	return link.ClassID, nil
}

// StudentView собирает публичную витрину класса по токену доступа
func (s *AccessService) StudentView(token string) (*StudentView, error) {
	classID, err := s.resolveToken(token)
	if err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByClass(classID)
	if err != nil {
		return nil, err
	}
	events, err := s.calendarRepo.List(repository.CalendarFilters{ClassID: &classID})
	if err != nil {
		return nil, err
	}

	return &StudentView{
		ClassName: class.Name,
		Subject:   class.Subject,
		Posts:     posts,
		Notes:     notes,
		Events:    events,
	}, nil
}
