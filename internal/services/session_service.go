package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"contact-dashboard/internal/models"
)

const (
	// SessionDuration é de 7 dias
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix é o prefixo das chaves de sessão no Redis
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix é o prefixo do mapeamento usuário->sessão
	UserSessionKeyPrefix = "user_session:"
)

type SessionService struct {
	redis *redis.Client
	users models.UserRepository
}

func NewSessionService(redisClient *redis.Client, users models.UserRepository) *SessionService {
	return &SessionService{redis: redisClient, users: users}
}

// CreateSession cria uma nova sessão para o usuário e a grava no Redis.
// Sessão anterior do mesmo usuário é invalidada para reiniciar o prazo.
func (s *SessionService) CreateSession(ctx context.Context, userID int) (string, error) {
	s.InvalidateUserSessions(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	sessionKey := SessionKeyPrefix + sessionToken
	userSessionKey := UserSessionKeyPrefix + strconv.Itoa(userID)

	err := s.redis.Set(ctx, sessionKey, strconv.Itoa(userID), SessionDuration).Err()
	if err != nil {
		return "", err
	}

	err = s.redis.Set(ctx, userSessionKey, sessionToken, SessionDuration).Err()
	if err != nil {
		return "", err
	}

	return sessionToken, nil
}

// FetchSession resolve um token em uma sessão com os campos consumidos
// pelo dashboard. Token ausente ou expirado retorna sessão nula sem erro.
func (s *SessionService) FetchSession(ctx context.Context, sessionToken string) (*models.Session, error) {
	if sessionToken == "" {
		return nil, nil
	}

	sessionKey := SessionKeyPrefix + sessionToken

	userIDStr, err := s.redis.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %v", err)
	}

	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing session user id: %v", err)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &models.Session{
		UserID: user.ID,
		Email:  user.Email,
		Phone:  user.Phone,
		Token:  sessionToken,
	}, nil
}

// InvalidateSession remove uma sessão do Redis
func (s *SessionService) InvalidateSession(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	sessionKey := SessionKeyPrefix + sessionToken

	userIDStr, err := s.redis.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		userSessionKey := UserSessionKeyPrefix + userIDStr
		s.redis.Del(ctx, userSessionKey)
	}

	return s.redis.Del(ctx, sessionKey).Err()
}

// InvalidateUserSessions invalida a sessão atual de um usuário
func (s *SessionService) InvalidateUserSessions(ctx context.Context, userID int) error {
	userSessionKey := UserSessionKeyPrefix + strconv.Itoa(userID)

	sessionToken, err := s.redis.Get(ctx, userSessionKey).Result()
	if err == nil && sessionToken != "" {
		sessionKey := SessionKeyPrefix + sessionToken
		s.redis.Del(ctx, sessionKey)
	}

	return s.redis.Del(ctx, userSessionKey).Err()
}
