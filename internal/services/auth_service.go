package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	"github.com/AntonZhikin/OfficeDepartment/pkg/config"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, registerDTO dto.RegisterDTO, mctx MutationContext) (*dto.UserDTO, error)
	Login(ctx context.Context, loginDTO dto.LoginDTO) (*dto.LoginResponseDTO, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type AuthService struct {
	db           repositories.Querier
	userRepo     repositories.UserRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	cacheRepo    repositories.CacheRepositoryInterface
	tx           repositories.TxManagerInterface
	audit        AuditRecorderInterface
	hasher       service.PasswordHasher
	jwtService   service.JWTService
	authCfg      config.AuthConfig
	seedCfg      config.SeedConfig
	logger       *zap.Logger
}

func NewAuthService(
	db repositories.Querier,
	userRepo repositories.UserRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	hasher service.PasswordHasher,
	jwtService service.JWTService,
	authCfg config.AuthConfig,
	seedCfg config.SeedConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		cacheRepo:    cacheRepo,
		tx:           tx,
		audit:        audit,
		hasher:       hasher,
		jwtService:   jwtService,
		authCfg:      authCfg,
		seedCfg:      seedCfg,
		logger:       logger,
	}
}

func (s *AuthService) Register(ctx context.Context, registerDTO dto.RegisterDTO, mctx MutationContext) (*dto.UserDTO, error) {
	var created *entities.User

	err := s.tx.RunInTransaction(ctx, func(q repositories.Querier) error {
		taken, err := s.userRepo.ExistsByUsername(ctx, q, registerDTO.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("имя пользователя уже занято")
		}

		taken, err = s.userRepo.ExistsByEmail(ctx, q, registerDTO.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("email уже используется")
		}

		hash, err := s.hasher.HashPassword(registerDTO.Password)
		if err != nil {
			return err
		}

		user := &entities.User{
			ID:           uuid.New(),
			Username:     registerDTO.Username,
			Email:        registerDTO.Email,
			PasswordHash: hash,
			Role:         entities.RoleUser,
		}
		user.CreatedAt = time.Now().UTC()

		if err := s.userRepo.Insert(ctx, q, user); err != nil {
			return err
		}

		// PasswordHash в снимок не попадает: поле скрыто от сериализации.
		if err := s.audit.Record(ctx, q, entities.AuditActionCreate, "User", &user.ID, mctx.ActorID, nil, user, mctx.IP); err != nil {
			return err
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	userDTO := dto.UserToDTO(created, nil)
	return &userDTO, nil
}

// Login намеренно не различает "нет такого пользователя" и "пароль не
// подошёл": наружу уходит один и тот же ответ.
func (s *AuthService) Login(ctx context.Context, loginDTO dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	attempts, err := s.cacheRepo.GetLoginAttempts(ctx, loginDTO.Username)
	if err != nil {
		s.logger.Warn("Не удалось прочитать счётчик входов", zap.Error(err))
	} else if attempts >= s.authCfg.MaxLoginAttempts {
		return nil, apperrors.NewHttpError(http.StatusTooManyRequests,
			"слишком много неудачных попыток входа, попробуйте позже", nil, nil)
	}

	user, err := s.userRepo.FindByUsername(ctx, s.db, loginDTO.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, loginDTO.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.VerifyPassword(loginDTO.Password, user.PasswordHash) {
		s.registerFailedAttempt(ctx, loginDTO.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.ResetLoginAttempts(ctx, loginDTO.Username); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик входов", zap.Error(err))
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, s.db, user.ID, now); err != nil {
		s.logger.Warn("Не удалось обновить время последнего входа", zap.Error(err))
	}

	var shortEmployee *dto.ShortEmployeeDTO
	employee, err := s.employeeRepo.FindByUserID(ctx, s.db, user.ID)
	if err == nil {
		shortEmployee = &dto.ShortEmployeeDTO{
			ID:        employee.ID,
			FirstName: employee.FirstName,
			LastName:  employee.LastName,
			Position:  employee.Position,
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponseDTO{
		Token: token,
		User:  dto.UserToDTO(user, shortEmployee),
	}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, username string) {
	if _, err := s.cacheRepo.IncrementLoginAttempts(ctx, username, s.authCfg.LockoutDuration); err != nil {
		s.logger.Warn("Не удалось увеличить счётчик входов", zap.Error(err))
	}
}

// EnsureDefaultAdmin создаёт администратора при первом запуске, чтобы в
// систему можно было войти. Запись в аудит не пишется: это действие
// системы, а не пользователя.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	return s.tx.RunInTransaction(ctx, func(q repositories.Querier) error {
		exists, err := s.userRepo.ExistsByUsername(ctx, q, s.seedCfg.AdminUsername)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		hash, err := s.hasher.HashPassword(s.seedCfg.AdminPassword)
		if err != nil {
			return err
		}

		admin := &entities.User{
			ID:           uuid.New(),
			Username:     s.seedCfg.AdminUsername,
			Email:        s.seedCfg.AdminEmail,
			PasswordHash: hash,
			Role:         entities.RoleAdmin,
		}
		admin.CreatedAt = time.Now().UTC()

		if err := s.userRepo.Insert(ctx, q, admin); err != nil {
			return err
		}

		s.logger.Info("Создан администратор по умолчанию",
			zap.String("username", admin.Username))
		return nil
	})
}
