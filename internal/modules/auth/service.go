package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/middleware"
	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/jwt"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// EnvAdminID identifies the environment-configured admin in JWT claims.
const EnvAdminID = "env-admin"

var (
	errInvalidCredentials = errors.New("invalid email or password")
	errAccountDisabled    = errors.New("account is disabled")
	errDuplicateEmail     = errors.New("an admin with this email already exists")
	errEnvAdminReadOnly   = errors.New("environment admin credentials are managed outside the application")
)

type Service struct {
	db  *gorm.DB
	cfg *config.AppConfig
}

func NewService(db *gorm.DB, cfg *config.AppConfig) *Service {
	return &Service{db: db, cfg: cfg}
}

// Login authenticates against the admins table first, then falls back to
// the environment-configured identity. Failures are delayed to damp
// credential stuffing.
func (s *Service) Login(dto *LoginDTO, ip string) (string, *middleware.AdminIdentity, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var admin models.AdminModel
	err := s.db.Where("email = ?", email).First(&admin).Error
	switch {
	case err == nil:
		if admin.Status != models.AdminStatusActive {
			return "", nil, errAccountDisabled
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(dto.Password)) != nil {
			return s.failLogin()
		}
		now := time.Now()
		s.db.Model(&admin).Updates(map[string]interface{}{
			"last_login_time": now,
			"last_login_ip":   ip,
		})
		token, err := jwt.Sign(admin.ID, admin.Email, admin.Name, jwt.SourceDatabase, jwt.DefaultTTL)
		if err != nil {
			return "", nil, err
		}
		return token, &middleware.AdminIdentity{
			ID:     admin.ID,
			Email:  admin.Email,
			Name:   admin.Name,
			Source: jwt.SourceDatabase,
		}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.loginEnvAdmin(email, dto.Password)

	default:
		return "", nil, err
	}
}

func (s *Service) loginEnvAdmin(email, password string) (string, *middleware.AdminIdentity, error) {
	if !s.cfg.HasEnvAdmin() || email != s.cfg.EnvAdmin.Email {
		return s.failLogin()
	}
	if !matchEnvPassword(s.cfg.EnvAdmin.Password, password) {
		return s.failLogin()
	}

	token, err := jwt.Sign(EnvAdminID, s.cfg.EnvAdmin.Email, s.cfg.EnvAdmin.Name, jwt.SourceEnvironment, jwt.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &middleware.AdminIdentity{
		ID:     EnvAdminID,
		Email:  s.cfg.EnvAdmin.Email,
		Name:   s.cfg.EnvAdmin.Name,
		Source: jwt.SourceEnvironment,
	}, nil
}

func (s *Service) failLogin() (string, *middleware.AdminIdentity, error) {
	time.Sleep(time.Second)
	return "", nil, errInvalidCredentials
}

// matchEnvPassword accepts either a bcrypt hash or a plaintext value in
// configuration; plaintext is compared in constant time.
func matchEnvPassword(configured, provided string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}

// CreateAdmin provisions a new database-backed admin account.
func (s *Service) CreateAdmin(dto *CreateAdminDTO) (*models.AdminModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := models.AdminModel{
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(dto.Name),
		Status:   models.AdminStatusActive,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		if isDuplicateEmailError(err) {
			return nil, errDuplicateEmail
		}
		return nil, err
	}
	return &admin, nil
}

func isDuplicateEmailError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// ChangePassword rotates a database admin's password after verifying the
// current one. The environment admin is rejected.
func (s *Service) ChangePassword(identity *middleware.AdminIdentity, dto *ChangePasswordDTO) error {
	if identity.Source == jwt.SourceEnvironment {
		return errEnvAdminReadOnly
	}

	var admin models.AdminModel
	if err := s.db.Where("id = ?", identity.ID).First(&admin).Error; err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(dto.CurrentPassword)) != nil {
		return errInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.db.Model(&admin).Update("password", string(hash)).Error
}
