package auth

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/internal/config"
	"github.com/altynbek8/ServiceApp/internal/email"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/pkg/auth"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

type fakeProfileRepo struct {
	byID    map[uuid.UUID]*model.Profile
	byEmail map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byID:    make(map[uuid.UUID]*model.Profile),
		byEmail: make(map[string]*model.Profile),
	}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if _, ok := f.byEmail[p.Email]; ok {
		return repository.ErrDuplicate
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.byID[p.ID] = p
	f.byEmail[p.Email] = p
	return nil
}

func (f *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(context.Context, *model.Profile) error { return nil }

func (f *fakeProfileRepo) UpdateRole(_ context.Context, id uuid.UUID, role model.UserRole) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Role = &role
	return nil
}

func (f *fakeProfileRepo) UpdatePushToken(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeProfileRepo) SetBanned(context.Context, uuid.UUID, bool) error         { return nil }

func (f *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.byEmail, p.Email)
	delete(f.byID, id)
	return nil
}

func (f *fakeProfileRepo) List(context.Context, *model.ProfileFilters) ([]*model.Profile, error) {
	return nil, nil
}

type fakeProviderRepo struct {
	specialists map[uuid.UUID]*model.SpecialistProfile
	venues      map[uuid.UUID]*model.VenueProfile
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		specialists: make(map[uuid.UUID]*model.SpecialistProfile),
		venues:      make(map[uuid.UUID]*model.VenueProfile),
	}
}

func (f *fakeProviderRepo) UpsertSpecialist(_ context.Context, sp *model.SpecialistProfile) error {
	f.specialists[sp.ID] = sp
	return nil
}

func (f *fakeProviderRepo) UpsertVenue(_ context.Context, v *model.VenueProfile) error {
	f.venues[v.ID] = v
	return nil
}

func (f *fakeProviderRepo) GetSpecialist(context.Context, uuid.UUID) (*model.SpecialistProfile, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProviderRepo) ReplaceSpecialistTags(context.Context, uuid.UUID, []int64) error {
	return nil
}
func (f *fakeProviderRepo) GetSpecialistTags(context.Context, uuid.UUID) ([]*model.Subcategory, error) {
	return nil, nil
}
func (f *fakeProviderRepo) GetVenue(context.Context, uuid.UUID) (*model.VenueProfile, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProviderRepo) GetSummary(context.Context, uuid.UUID) (*model.ProviderSummary, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProviderRepo) Search(context.Context, *model.ProviderSearchFilters) ([]*model.ProviderSummary, error) {
	return nil, nil
}

func newAuthService(repo repository.ProfileRepository) *Service {
	return newAuthServiceWithProviders(repo, newFakeProviderRepo())
}

func newAuthServiceWithProviders(repo repository.ProfileRepository, providers repository.ProviderRepository) *Service {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
	})
	quiet := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	// An empty email config yields the no-op sender.
	return NewService(repo, providers, jwtSvc, email.NewSender(config.EmailConfig{}), quiet)
}

func register(t *testing.T, svc *Service, emailAddr string) *model.TokenResponse {
	t.Helper()
	tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    emailAddr,
		Password: "correct-horse",
		FullName: "Айгерим Нурланова",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(newFakeProfileRepo())

	tokens := register(t, svc, "Aigerim@Example.com")
	require.NotNil(t, tokens.User)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	// Email is normalized on the way in.
	assert.Equal(t, "aigerim@example.com", tokens.User.Email)
	assert.NotEqual(t, "correct-horse", tokens.User.PasswordHash)

	got, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "aigerim@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, got.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeProfileRepo())
	register(t, svc, "user@example.com")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "USER@example.com",
		Password: "irrelevant-pw",
		FullName: "Другой",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(newFakeProfileRepo())
	register(t, svc, "user@example.com")

	// Same status for a wrong password and an unknown account.
	for _, req := range []*model.LoginRequest{
		{Email: "user@example.com", Password: "wrong"},
		{Email: "ghost@example.com", Password: "correct-horse"},
	} {
		_, err := svc.Login(context.Background(), req)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	}
}

func TestLoginBannedAccount(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newAuthService(repo)
	tokens := register(t, svc, "user@example.com")

	repo.byID[tokens.User.ID].IsBanned = true

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "user@example.com", Password: "correct-horse",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc := newAuthService(newFakeProfileRepo())
	tokens := register(t, svc, "user@example.com")

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, refreshed.User.ID)

	// An access token is not a refresh token.
	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.Error(t, err)
}

func TestSelectRoleIsPermanent(t *testing.T) {
	providers := newFakeProviderRepo()
	svc := newAuthServiceWithProviders(newFakeProfileRepo(), providers)
	tokens := register(t, svc, "user@example.com")
	userID := tokens.User.ID

	profile, err := svc.SelectRole(context.Background(), userID, model.RoleSpecialist)
	require.NoError(t, err)
	require.NotNil(t, profile.Role)
	assert.Equal(t, model.RoleSpecialist, *profile.Role)
	// The provider extension row is seeded with the role.
	assert.Contains(t, providers.specialists, userID)

	_, err = svc.SelectRole(context.Background(), userID, model.RoleClient)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestSelectRoleRejectsAdmin(t *testing.T) {
	svc := newAuthService(newFakeProfileRepo())
	tokens := register(t, svc, "user@example.com")

	for _, role := range []model.UserRole{model.RoleAdmin, "superuser"} {
		_, err := svc.SelectRole(context.Background(), tokens.User.ID, role)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code, "role %s", role)
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newAuthService(repo)
	tokens := register(t, svc, "user@example.com")

	require.NoError(t, svc.DeleteAccount(context.Background(), tokens.User.ID))
	assert.Error(t, svc.DeleteAccount(context.Background(), tokens.User.ID))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "user@example.com", Password: "correct-horse",
	})
	assert.Error(t, err)
}
