package auth

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"CourierReconSaas/internal/logger"
	"CourierReconSaas/internal/serviceiface"
)

// UserSession is the opaque authenticated-identity signal handed to the other
// services. Nothing downstream ever sees credentials.
type UserSession struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	LastLoginTime string `json:"last_login_time"`
	ClientIP      string `json:"client_ip"`
	IsLoggedIn    bool   `json:"is_logged_in"`
}

type AuthService struct {
	db       *sql.DB
	maxUsers int
	users    map[string]*UserSession
	mu       sync.Mutex
	stopCh   chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 100
	}
	return &AuthService{
		db:       db,
		maxUsers: maxUsers,
		users:    make(map[string]*UserSession),
		stopCh:   make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	if err := a.ensureSchema(); err != nil {
		return err
	}
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

func (a *AuthService) ensureSchema() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			username      VARCHAR(150) UNIQUE NOT NULL,
			email         VARCHAR(150) UNIQUE NOT NULL,
			password_hash VARCHAR(200) NOT NULL,
			created_at    TIMESTAMPTZ DEFAULT now()
		)`)
	return err
}

// Signup registers a new account with a salted password hash. Username and
// email must both be unused.
func (a *AuthService) Signup(username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return errors.New("all fields are required")
	}

	var exists bool
	err := a.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = a.db.Exec(
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3)`,
		username, email, string(hash),
	)
	if err != nil {
		return err
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User signed up: " + username)
	}
	return nil
}

// Login authenticates by username or email and returns a session. A user who
// is already logged in gets their existing session back.
func (a *AuthService) Login(identifier, password, clientIP string) (*UserSession, error) {
	identifier = strings.TrimSpace(identifier)

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, session := range a.users {
		if (session.Username == identifier || session.Email == strings.ToLower(identifier)) && session.IsLoggedIn {
			session.LastLoginTime = time.Now().Format(time.RFC3339)
			session.ClientIP = clientIP
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit("User " + identifier + " re-logged in, returning existing session")
			}
			return session, nil
		}
	}

	if len(a.users) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var (
		userID, username, email, passwordHash string
	)
	err := a.db.QueryRow(
		`SELECT id::text, username, email, password_hash FROM users WHERE username = $1 OR email = $2`,
		identifier, strings.ToLower(identifier),
	).Scan(&userID, &username, &email, &passwordHash)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	session := &UserSession{
		SessionID:     uuid.NewString(),
		UserID:        userID,
		Username:      username,
		Email:         email,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
		IsLoggedIn:    true,
	}
	a.users[session.SessionID] = session

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged in: " + username)
	}
	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, exists := a.users[sessionID]
	if !exists {
		return errors.New("session not found")
	}
	delete(a.users, sessionID)

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged out: " + session.Username)
	}
	return nil
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := make([]*UserSession, 0, len(a.users))
	for _, s := range a.users {
		sessions = append(sessions, s)
	}
	return sessions
}

var globalAuthService *AuthService

// SetGlobalAuthService sets the global AuthService instance
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// session expiry logic can be added here
		}
	}
}
