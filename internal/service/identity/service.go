package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	userRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity/models"
)

// Service разрешает идентичность вызывающего в SessionContext и управляет ролями
type Service struct {
	userRepo        UserRepository
	bootstrapAdmins map[string]struct{}
	logger          Logger
}

// NewService создает сервис. bootstrapAdmins - email-адреса, которые получают роль admin
// при первом входе, если профиля еще нет.
func NewService(userRepo UserRepository, bootstrapAdmins []string, logger Logger) *Service {
	admins := make(map[string]struct{}, len(bootstrapAdmins))
	for _, email := range bootstrapAdmins {
		if e := normalizeEmail(email); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Service{
		userRepo:        userRepo,
		bootstrapAdmins: admins,
		logger:          logger,
	}
}

// Resolve строит SessionContext по аутентифицированному шлюзом userID и email.
//
// Пустой userID - гость. Роль берется из хранилища. Если профиля нет, он создается:
// admin для email из bootstrap-набора, иначе student. Bootstrap-набор не применяется
// к уже существующим профилям.
func (s *Service) Resolve(ctx context.Context, rawUserID, email string) (domain.SessionContext, error) {
	rawUserID = strings.TrimSpace(rawUserID)
	if rawUserID == "" {
		return domain.GuestSession(), nil
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil || userID == uuid.Nil {
		return domain.SessionContext{}, fmt.Errorf("%w: user id %q is not a uuid", ErrInvalidIdentity, rawUserID)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return domain.SessionContext{UserID: u.ID, Role: u.Role, Email: u.Email}, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("Resolve: repository error for user=%s: %v", userID, err)
		return domain.SessionContext{}, fmt.Errorf("%w: Resolve - get user: %v", ErrStoreUnavailable, err)
	}

	email = normalizeEmail(email)
	if email == "" || len(email) > domain.MaxEmailLength || !strings.Contains(email, "@") {
		return domain.SessionContext{}, fmt.Errorf("%w: email is required for a new profile", ErrInvalidIdentity)
	}

	role := domain.RoleStudent
	if _, ok := s.bootstrapAdmins[email]; ok {
		role = domain.RoleAdmin
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		ID:    userID,
		Email: email,
		Name:  nameFromEmail(email),
		Role:  role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Resolve: email %s already belongs to another user", email)
			return domain.SessionContext{}, fmt.Errorf("%w: email already registered", ErrInvalidIdentity)
		}
		s.logger.Error("Resolve: failed to create profile for user=%s: %v", userID, err)
		return domain.SessionContext{}, fmt.Errorf("%w: Resolve - create user: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Resolve: created profile user=%s, role=%s", created.ID, created.Role)
	return domain.SessionContext{UserID: created.ID, Role: created.Role, Email: created.Email}, nil
}

// ListUsers список пользователей, опционально по роли. Только для админа.
func (s *Service) ListUsers(ctx context.Context, session domain.SessionContext, role *string) (*models.UserListResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("ListUsers: role=%s is not allowed", session.Role)
		return nil, ErrAccessDenied
	}

	var filter *domain.Role
	if role != nil && *role != "" {
		r, err := domain.ParseRole(*role)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *role)
		}
		filter = &r
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListUsers: admin=%s, count=%d", session.UserID, len(users))
	return models.FromDomainUserList(users), nil
}

// UpdateRole меняет роль пользователя. Только для админа, свою роль менять нельзя.
func (s *Service) UpdateRole(ctx context.Context, session domain.SessionContext, userID uuid.UUID, role string) (*models.UserResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("UpdateRole: role=%s is not allowed", session.Role)
		return nil, ErrAccessDenied
	}

	newRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if userID == session.UserID {
		return nil, fmt.Errorf("%w: admins cannot change their own role", ErrInvalidInput)
	}

	u, err := s.userRepo.UpdateRole(ctx, userID, newRole)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateRole: user=%s not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateRole: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("UpdateRole: admin=%s set user=%s role=%s", session.UserID, u.ID, u.Role)
	resp := models.FromDomainUser(u)
	return &resp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
