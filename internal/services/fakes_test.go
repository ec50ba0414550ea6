package services

import (
	"time"

	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/repositories"
)

// In-memory repository fakes. The db handle is unused; service logic is
// exercised without a database.

type fakeAccountRepo struct {
	accounts map[uint]*models.Account
	nextID   uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uint]*models.Account{}, nextID: 1}
}

func (r *fakeAccountRepo) FindByID(_ *gorm.DB, id uint) (*models.Account, error) {
	if a, ok := r.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByEmail(_ *gorm.DB, email string) (*models.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ *gorm.DB, account *models.Account) error {
	for _, a := range r.accounts {
		if a.Email != account.Email {
			continue
		}
		sameTenant := (a.TenantID == nil && account.TenantID == nil) ||
			(a.TenantID != nil && account.TenantID != nil && *a.TenantID == *account.TenantID)
		if sameTenant {
			return repositories.ErrAccountAlreadyExists
		}
	}
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) Update(_ *gorm.DB, account *models.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return repositories.ErrAccountNotFound
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) UpdateLastLogin(_ *gorm.DB, id uint, at time.Time) error {
	a, ok := r.accounts[id]
	if !ok {
		return repositories.ErrAccountNotFound
	}
	a.LastLogin = &at
	return nil
}

func (r *fakeAccountRepo) CountByTenant(_ *gorm.DB, tenantID uint) (int64, error) {
	var count int64
	for _, a := range r.accounts {
		if a.TenantID != nil && *a.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAccountRepo) FindAll(_ *gorm.DB, limit, offset int) ([]models.Account, error) {
	var out []models.Account
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	requests map[uint]*models.RegistrationRequest
	nextID   uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{requests: map[uint]*models.RegistrationRequest{}, nextID: 1}
}

func (r *fakeRegistrationRepo) Create(_ *gorm.DB, req *models.RegistrationRequest) error {
	req.ID = r.nextID
	r.nextID++
	req.CreatedAt = time.Now()
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) FindByID(_ *gorm.DB, id uint) (*models.RegistrationRequest, error) {
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, repositories.ErrRegistrationRequestNotFound
}

func (r *fakeRegistrationRepo) FindPendingByEmail(_ *gorm.DB, email string) (*models.RegistrationRequest, error) {
	for _, req := range r.requests {
		if req.Email == email && req.Status == models.RegistrationStatusPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, repositories.ErrRegistrationRequestNotFound
}

func (r *fakeRegistrationRepo) FindByStatus(_ *gorm.DB, status models.RegistrationStatus, limit, offset int) ([]models.RegistrationRequest, error) {
	var out []models.RegistrationRequest
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) Update(_ *gorm.DB, req *models.RegistrationRequest) error {
	if _, ok := r.requests[req.ID]; !ok {
		return repositories.ErrRegistrationRequestNotFound
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

type fakeTenantRepo struct {
	tenants map[uint]*models.Tenant
	nextID  uint
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[uint]*models.Tenant{}, nextID: 1}
}

func (r *fakeTenantRepo) Create(_ *gorm.DB, tenant *models.Tenant) error {
	tenant.ID = r.nextID
	r.nextID++
	tenant.CreatedAt = time.Now()
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *fakeTenantRepo) FindByID(_ *gorm.DB, id uint) (*models.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, repositories.ErrTenantNotFound
}

func (r *fakeTenantRepo) FindAll(_ *gorm.DB, limit, offset int) ([]models.Tenant, error) {
	var out []models.Tenant
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(_ *gorm.DB, tenant *models.Tenant) error {
	if _, ok := r.tenants[tenant.ID]; !ok {
		return repositories.ErrTenantNotFound
	}
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *fakeTenantRepo) UpdateStatus(_ *gorm.DB, id uint, status models.TenantStatus) error {
	t, ok := r.tenants[id]
	if !ok {
		return repositories.ErrTenantNotFound
	}
	t.Status = status
	return nil
}

// fakeEmailProvider records deliveries on buffered channels so tests can wait
// for the async notification goroutine.
type fakeEmailProvider struct {
	approved chan string
	rejected chan string
}

func newFakeEmailProvider() *fakeEmailProvider {
	return &fakeEmailProvider{
		approved: make(chan string, 8),
		rejected: make(chan string, 8),
	}
}

func (p *fakeEmailProvider) SendRegistrationApproved(to, fullName string) error {
	p.approved <- to
	return nil
}

func (p *fakeEmailProvider) SendRegistrationRejected(to, fullName, reason string) error {
	p.rejected <- to
	return nil
}
