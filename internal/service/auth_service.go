package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/config"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// easyJoinDomain is the synthetic mail domain of name-only easy-join
// accounts. Easy-join logins carry no password; identification is the
// generated email pattern alone.
const easyJoinDomain = "easy.donghaechoir.local"

// AuthService handles signup, login and token issuance for every login
// path: email/password, Google OAuth, easy join and anonymous guests.
type AuthService struct {
	members    repository.MemberRepository
	sessions   *SessionService
	jwtManager *jwt.Manager
	oauth      config.OAuthConfig
	httpClient *http.Client
}

// NewAuthService creates an AuthService
func NewAuthService(members repository.MemberRepository, sessions *SessionService, jwtManager *jwt.Manager, oauth config.OAuthConfig) *AuthService {
	return &AuthService{
		members:    members,
		sessions:   sessions,
		jwtManager: jwtManager,
		oauth:      oauth,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// LoginResponse is the token pair plus the resolved session
type LoginResponse struct {
	Session      *Session `json:"session"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// Signup registers an email/password account. The profile starts as
// 대기권한; the join flow assigns the real role later.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, common.ErrInvalidInput
	}

	if _, err := s.members.FindByEmail(email); err == nil {
		return nil, common.ErrMemberAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := &domain.Member{
		UID:      "email:" + uuid.NewString(),
		Name:     name,
		Email:    email,
		Role:     domain.RolePending,
		Password: string(hashed),
	}
	if member.Name == "" {
		member.Name = email
	}
	if err := s.members.Create(member); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, Identity{UID: member.UID, Email: email, DisplayName: member.Name})
}

// Login authenticates an email/password account
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	member, err := s.members.FindByEmail(email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if member.Password == "" {
		return nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, Identity{UID: member.UID, Email: member.Email, DisplayName: member.Name})
}

// GoogleLogin exchanges an authorization code for the Google profile and
// logs the identity in, creating the pending member on first contact.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginResponse, error) {
	accessToken, err := s.exchangeGoogleCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	info, err := s.fetchGoogleUserInfo(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("get user info failed: %w", err)
	}
	return s.issueTokens(ctx, Identity{
		UID:         "google:" + info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
	})
}

// EasyJoin logs in with a name alone; the identity is the deterministic
// email pattern, so the same name always lands on the same account.
func (s *AuthService) EasyJoin(ctx context.Context, name string) (*LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrInvalidInput
	}
	email := fmt.Sprintf("%s@%s", strings.ReplaceAll(name, " ", "_"), easyJoinDomain)
	member, err := s.members.FindByEmail(email)
	if err == nil {
		return s.issueTokens(ctx, Identity{UID: member.UID, Email: email, DisplayName: member.Name})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.issueTokens(ctx, Identity{UID: "easy:" + uuid.NewString(), Email: email, DisplayName: name})
}

// AnonymousLogin issues a throwaway guest identity
func (s *AuthService) AnonymousLogin(ctx context.Context) (*LoginResponse, error) {
	uid := "anon:" + uuid.NewString()
	return s.issueTokens(ctx, Identity{UID: uid, DisplayName: "익명"})
}

// RefreshToken validates a refresh token and issues a fresh pair. The
// session is re-resolved so a role change since issuance takes effect.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	member, err := s.members.FindByUID(claims.UID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return s.issueTokens(ctx, Identity{UID: member.UID, Email: member.Email, DisplayName: member.Name})
}

// issueTokens resolves the session and mints the token pair. The access
// token carries the resolved role so gates can run without a DB hit.
func (s *AuthService) issueTokens(ctx context.Context, id Identity) (*LoginResponse, error) {
	sess := s.sessions.Resolve(ctx, id)

	accessToken, err := s.jwtManager.GenerateAccessToken(sess.UID, sess.Name, sess.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(sess.UID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &LoginResponse{
		Session:      sess,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *AuthService) exchangeGoogleCode(ctx context.Context, code string) (string, error) {
	params := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {s.oauth.GoogleRedirectURL},
		"client_id":     {s.oauth.GoogleClientID},
		"client_secret": {s.oauth.GoogleClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://oauth2.googleapis.com/token", strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response body failed: %w", err)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse token response failed: %w", err)
	}
	if errMsg, ok := result["error"]; ok {
		return "", fmt.Errorf("oauth error: %v", errMsg)
	}
	accessToken, ok := result["access_token"].(string)
	if !ok {
		return "", errors.New("access_token not found in token response")
	}
	return accessToken, nil
}

func (s *AuthService) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("parse user info failed: %w", err)
	}
	if info.ID == "" {
		return nil, errors.New("user info missing id")
	}
	return &info, nil
}
