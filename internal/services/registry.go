package services

import (
	"time"

	"talentmatch_backend/internal/auth"
	"talentmatch_backend/internal/config"
	"talentmatch_backend/internal/email"
	"talentmatch_backend/internal/repositories"
)

// ServiceContainer wires repositories and services together once at startup.
type ServiceContainer struct {
	Auth         AuthService
	Registration RegistrationService
	Tenant       TenantService
	Tokens       *auth.TokenService
}

func NewServiceContainer(cfg *config.Config, emailProvider email.Provider) *ServiceContainer {
	accountRepo := repositories.NewAccountRepository()
	registrationRepo := repositories.NewRegistrationRequestRepository()
	tenantRepo := repositories.NewTenantRepository()

	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	tenantService := NewTenantService(tenantRepo, accountRepo)
	registrationService := NewRegistrationService(registrationRepo, accountRepo, tenantService, hasher, emailProvider)
	authService := NewAuthService(accountRepo, registrationService, tenantService, hasher, tokens)

	return &ServiceContainer{
		Auth:         authService,
		Registration: registrationService,
		Tenant:       tenantService,
		Tokens:       tokens,
	}
}
