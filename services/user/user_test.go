package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUserRepo struct {
	mu            sync.Mutex
	users         map[string]models.User
	patients      map[string]models.PatientProfile
	professionals map[string]models.ProfessionalProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]models.User),
		patients:      make(map[string]models.PatientProfile),
		professionals: make(map[string]models.ProfessionalProfile),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetByVerifyToken(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.EmailVerifyToken != "" && u.EmailVerifyToken == token {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetManyByID(_ context.Context, ids []string) (map[string]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) ListProfessionals(_ context.Context, specialization, search string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.users {
		if u.Role != models.RoleProfessional {
			continue
		}
		if specialization != "" && u.Specialization != specialization {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(u.FirstName), needle) &&
				!strings.Contains(strings.ToLower(u.LastName), needle) {
				continue
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (f *fakeUserRepo) CreatePatientProfile(_ context.Context, p *models.PatientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patients[p.UserID] = *p
	return nil
}

func (f *fakeUserRepo) CreateProfessionalProfile(_ context.Context, p *models.ProfessionalProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.professionals[p.UserID] = *p
	return nil
}

func (f *fakeUserRepo) GetPatientProfile(_ context.Context, userID string) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakeUserRepo) GetProfessionalProfile(_ context.Context, userID string) (*models.ProfessionalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.professionals[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakeUserRepo) UpdatePatientProfile(_ context.Context, p *models.PatientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patients[p.UserID] = *p
	return nil
}

func (f *fakeUserRepo) UpdateProfessionalProfile(_ context.Context, p *models.ProfessionalProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.professionals[p.UserID] = *p
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func newUserService() (*DefaultUserService, *fakeUserRepo, *fakeMailer) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := &DefaultUserService{
		Repo:    repo,
		Mailer:  mailer,
		BaseURL: "https://medvault.test",
		Now:     func() time.Time { return time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC) },
	}
	return svc, repo, mailer
}

func patientRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:       "Brian",
		LastName:        "Mwangi",
		Email:           "brian@mail.test",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		PhoneNumber:     "+254700000001",
		Role:            models.RolePatient,
		DateOfBirth:     "1990-04-12",
		Gender:          "male",
	}
}

func TestRegisterPatient(t *testing.T) {
	svc, repo, mailer := newUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, patientRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "brian@mail.test", resp.User.Email)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RolePatient, claims.Role)

	stored, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password, "password must be hashed")
	assert.False(t, stored.IsEmailVerified)
	assert.Len(t, stored.EmailVerifyToken, 64)

	profile, err := repo.GetPatientProfile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "1990-04-12", profile.DateOfBirth)

	assert.Equal(t, []string{"brian@mail.test"}, mailer.sent)
}

func TestRegisterProfessionalCreatesProfile(t *testing.T) {
	svc, repo, _ := newUserService()
	ctx := context.Background()

	req := patientRequest()
	req.Email = "grace@clinic.test"
	req.Role = models.RoleProfessional

	resp, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = repo.GetProfessionalProfile(ctx, resp.User.ID)
	assert.NoError(t, err)
	_, err = repo.GetPatientProfile(ctx, resp.User.ID)
	assert.Error(t, err)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	mismatch := patientRequest()
	mismatch.ConfirmPassword = "different"
	_, err := svc.Register(ctx, mismatch)
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, err.(*utils.AppError).Code)

	badRole := patientRequest()
	badRole.Role = "admin"
	_, err = svc.Register(ctx, badRole)
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, err.(*utils.AppError).Code)

	_, err = svc.Register(ctx, patientRequest())
	require.NoError(t, err)
	_, err = svc.Register(ctx, patientRequest())
	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, err.(*utils.AppError).Code)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, patientRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "brian@mail.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "brian@mail.test", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, utils.CodeUnauthorized, err.(*utils.AppError).Code)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@mail.test", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, utils.CodeUnauthorized, err.(*utils.AppError).Code)
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, _ := newUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, patientRequest())
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, stored.EmailVerifyToken))

	verified, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsEmailVerified)
	assert.Empty(t, verified.EmailVerifyToken)

	// The token is single use.
	err = svc.VerifyEmail(ctx, stored.EmailVerifyToken)
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, err.(*utils.AppError).Code)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, repo, _ := newUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, patientRequest())
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC) }
	err = svc.VerifyEmail(ctx, stored.EmailVerifyToken)
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, err.(*utils.AppError).Code)
}

func TestGetMeAndUpdateProfile(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, patientRequest())
	require.NoError(t, err)

	me, err := svc.GetMe(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, me.Role)
	require.NotNil(t, me.Patient)
	assert.Nil(t, me.Professional)

	updated, err := svc.UpdateProfile(ctx, resp.User.ID, models.UpdateProfileRequest{
		FirstName: "Briana",
		Gender:    "female",
	})
	require.NoError(t, err)
	assert.Equal(t, "Briana", updated.User.FirstName)
	assert.Equal(t, "female", updated.Patient.Gender)

	_, err = svc.GetMe(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, err.(*utils.AppError).Code)
}

func TestLogoutRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newUserService()

	err := svc.Logout(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, utils.CodeUnauthorized, err.(*utils.AppError).Code)
}
