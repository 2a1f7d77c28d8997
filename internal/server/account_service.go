// Package server provides the HTTP REST API for Hire.io.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hireio/hireio/internal/config"
	"github.com/hireio/hireio/internal/db"
	"github.com/hireio/hireio/internal/types"
)

// AccountService provides business logic for registration and login
type AccountService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates a new AccountService with the given dependencies
func NewAccountService(store Store, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// convertDBUser converts db.User to types.User, excluding the password hash
func convertDBUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:             dbUser.ID,
		OrganizationID: dbUser.OrgID,
		Name:           dbUser.Name,
		Email:          dbUser.Email,
		Role:           dbUser.Role,
		CreatedAt:      dbUser.CreatedAt,
	}
}

// Register creates a new organization and its owner account in one step.
// Every later user of the organization comes in through Invite.
func (s *AccountService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	org, err := s.store.CreateOrganization(ctx, req.OrganizationName)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	dbUser, err := s.store.CreateUser(ctx, org.ID, req.Email, req.Name, db.RoleOwner, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create owner account: %w", err)
	}

	return convertDBUser(dbUser), nil
}

// Login authenticates a user and returns user data
func (s *AccountService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return convertDBUser(dbUser), nil
}

// Invite creates an additional account inside an existing organization. Only
// owners and admins may invite, and an invite can never grant ownership.
func (s *AccountService) Invite(ctx context.Context, orgID uuid.UUID, inviterRole string, req *types.InviteUserRequest) (*types.User, error) {
	if inviterRole != db.RoleOwner && inviterRole != db.RoleAdmin {
		return nil, &ErrForbidden{Role: inviterRole}
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser, err := s.store.CreateUser(ctx, orgID, req.Email, req.Name, req.Role, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create invited account: %w", err)
	}

	return convertDBUser(dbUser), nil
}
