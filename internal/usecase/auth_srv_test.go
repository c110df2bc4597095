package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"localmarket/internal/data/entity"
	"localmarket/internal/data/repository"
	"localmarket/internal/dto/request"
	"localmarket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---------- fakes ----------

type fakeOTPRepo struct {
	rows map[string]*entity.OTP
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{rows: make(map[string]*entity.OTP)}
}

func (f *fakeOTPRepo) Upsert(ctx context.Context, otp *entity.OTP) error {
	copied := *otp
	copied.Attempts = 0
	f.rows[otp.Email] = &copied
	return nil
}

func (f *fakeOTPRepo) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	row, ok := f.rows[email]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeOTPRepo) IncrementAttempts(ctx context.Context, email string) error {
	row, ok := f.rows[email]
	if !ok {
		return errors.New("OTP not found")
	}
	row.Attempts++
	return nil
}

func (f *fakeOTPRepo) Delete(ctx context.Context, email string) error {
	if _, ok := f.rows[email]; !ok {
		return errors.New("OTP not found")
	}
	delete(f.rows, email)
	return nil
}

type fakeUserRepo struct {
	users     []*entity.User
	roleNames map[uuid.UUID]string
}

func newFakeUserRepo(roleNames map[uuid.UUID]string) *fakeUserRepo {
	return &fakeUserRepo{roleNames: roleNames}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	copied := *user
	copied.RoleName = f.roleNames[user.RoleID]
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIdentifier(ctx context.Context, identifier, roleName string) (*entity.User, error) {
	for _, u := range f.users {
		if (u.Email == identifier || u.Mobile == identifier) && u.RoleName == roleName {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return errors.New("user not found")
}

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func (f *fakeRoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, nil
	}
	return role, nil
}

func (f *fakeRoleRepo) FindAll(ctx context.Context) ([]*entity.Role, error) {
	var all []*entity.Role
	for _, role := range f.roles {
		all = append(all, role)
	}
	return all, nil
}

type fakeMailer struct {
	sentTo   []string
	sentCode string
	failWith error
}

func (f *fakeMailer) SendOTP(to, name, code string, validity time.Duration) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sentTo = append(f.sentTo, to)
	f.sentCode = code
	return nil
}

// ---------- fixtures ----------

type authFixture struct {
	service AuthService
	otps    *fakeOTPRepo
	users   *fakeUserRepo
	mailer  *fakeMailer
	config  *utils.Config
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	customerRole := &entity.Role{ID: uuid.New(), Name: entity.RoleCustomer}
	vendorRole := &entity.Role{ID: uuid.New(), Name: entity.RoleVendor}

	roleNames := map[uuid.UUID]string{
		customerRole.ID: entity.RoleCustomer,
		vendorRole.ID:   entity.RoleVendor,
	}

	otps := newFakeOTPRepo()
	users := newFakeUserRepo(roleNames)
	mailer := &fakeMailer{}

	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		OTP: utils.OTPConfig{ExpiryMinutes: 5, Length: 6, MaxAttempts: 5},
	}

	repo := &repository.Repository{
		User: users,
		Role: &fakeRoleRepo{roles: map[string]*entity.Role{
			entity.RoleCustomer: customerRole,
			entity.RoleVendor:   vendorRole,
		}},
		OTP: otps,
	}

	return &authFixture{
		service: NewAuthService(repo, mailer, config, zap.NewNop()),
		otps:    otps,
		users:   users,
		mailer:  mailer,
		config:  config,
	}
}

func sendOTPReq() *request.SendOTPRequest {
	return &request.SendOTPRequest{Name: "Asha", Email: "asha@example.com"}
}

func verifyReq(code string) *request.VerifyOTPRequest {
	return &request.VerifyOTPRequest{
		Name:       "Asha",
		Email:      "asha@example.com",
		Password:   "secret123",
		Mobile:     "08123456789",
		Address:    "12 Market Street",
		Role:       entity.RoleCustomer,
		EnteredOTP: code,
	}
}

// ---------- SendOTP ----------

func TestSendOTPPersistsBeforeDispatch(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.service.SendOTP(context.Background(), sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}

	row := f.otps.rows["asha@example.com"]
	if row == nil {
		t.Fatal("expected OTP row to be persisted")
	}
	if len(row.Code) != 6 {
		t.Errorf("code length = %d, want 6", len(row.Code))
	}
	if row.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", row.Attempts)
	}
	if row.Code != f.mailer.sentCode {
		t.Error("mailed code differs from persisted code")
	}
	if until := time.Until(row.ExpiresAt); until < 4*time.Minute || until > 5*time.Minute {
		t.Errorf("expiry window = %v, want ~5m", until)
	}
}

func TestSendOTPMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.failWith = errors.New("smtp refused")

	err := f.service.SendOTP(context.Background(), sendOTPReq())
	if !errors.Is(err, ErrSendOTPEmail) {
		t.Fatalf("error = %v, want ErrSendOTPEmail", err)
	}

	// The row survives the send failure; the caller just retries
	if f.otps.rows["asha@example.com"] == nil {
		t.Error("expected OTP row to remain after send failure")
	}
}

func TestSendOTPReissueResetsAttemptsAndCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("first SendOTP: %v", err)
	}
	f.otps.rows["asha@example.com"].Attempts = 3
	f.otps.rows["asha@example.com"].Code = "000001" // force a distinct code

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("second SendOTP: %v", err)
	}

	row := f.otps.rows["asha@example.com"]
	if row.Attempts != 0 {
		t.Errorf("attempts after reissue = %d, want 0", row.Attempts)
	}

	// The first code no longer matches the ledger
	if row.Code == "000001" {
		t.Error("reissue did not overwrite the code")
	}
}

func TestSendOTPValidation(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.SendOTP(context.Background(), &request.SendOTPRequest{Name: "Asha", Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error for malformed email")
	}
	if len(f.mailer.sentTo) != 0 {
		t.Error("no mail should be sent on validation failure")
	}
}

// ---------- VerifyOTP ----------

func TestVerifyOTPHappyPath(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	code := f.otps.rows["asha@example.com"].Code

	if err := f.service.VerifyOTP(ctx, verifyReq(code)); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	user, err := f.users.FindByEmail(ctx, "asha@example.com")
	if err != nil || user == nil {
		t.Fatal("expected user to be created")
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !utils.CheckPasswordHash("secret123", user.PasswordHash) {
		t.Error("stored hash does not verify against original password")
	}

	// The code is spent: a second verification finds nothing
	err = f.service.VerifyOTP(ctx, verifyReq(code))
	if !errors.Is(err, ErrOTPNotFound) {
		t.Errorf("second verify error = %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyOTPNoPendingCode(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.VerifyOTP(context.Background(), verifyReq("123456"))
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("error = %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	row := f.otps.rows["asha@example.com"]
	row.ExpiresAt = time.Now().Add(-time.Minute)

	err := f.service.VerifyOTP(ctx, verifyReq(row.Code))
	if !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("error = %v, want ErrOTPExpired", err)
	}

	// The expired row stays until the next issuance overwrites it
	if f.otps.rows["asha@example.com"] == nil {
		t.Error("expired row should remain in place")
	}
}

func TestVerifyOTPWrongCodeCountsAttempt(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	row := f.otps.rows["asha@example.com"]
	wrong := "999999"
	if row.Code == wrong {
		wrong = "999998"
	}

	err := f.service.VerifyOTP(ctx, verifyReq(wrong))
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("error = %v, want ErrOTPInvalid", err)
	}
	if row.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", row.Attempts)
	}
}

func TestVerifyOTPAttemptCeiling(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	row := f.otps.rows["asha@example.com"]
	wrong := "999999"
	if row.Code == wrong {
		wrong = "999998"
	}

	for i := 0; i < 5; i++ {
		err := f.service.VerifyOTP(ctx, verifyReq(wrong))
		if !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("attempt %d error = %v, want ErrOTPInvalid", i+1, err)
		}
	}

	// Even the correct code is refused once the ceiling is reached
	err := f.service.VerifyOTP(ctx, verifyReq(row.Code))
	if !errors.Is(err, ErrOTPMaxAttempts) {
		t.Fatalf("error = %v, want ErrOTPMaxAttempts", err)
	}
}

func TestVerifyOTPReissueInvalidatesOldCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("first SendOTP: %v", err)
	}
	f.otps.rows["asha@example.com"].Code = "111111"
	old := "111111"

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("second SendOTP: %v", err)
	}
	if f.otps.rows["asha@example.com"].Code == old {
		t.Skip("generated code collided with the forced value")
	}

	err := f.service.VerifyOTP(ctx, verifyReq(old))
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("error = %v, want ErrOTPInvalid", err)
	}
}

func TestVerifyOTPUnknownRole(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	req := verifyReq(f.otps.rows["asha@example.com"].Code)
	req.Role = "superuser"

	err := f.service.VerifyOTP(ctx, req)
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("error = %v, want ErrInvalidRole", err)
	}
}

// ---------- Login and Session ----------

func registerUser(t *testing.T, f *authFixture) {
	t.Helper()
	ctx := context.Background()

	if err := f.service.SendOTP(ctx, sendOTPReq()); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	if err := f.service.VerifyOTP(ctx, verifyReq(f.otps.rows["asha@example.com"].Code)); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
}

func TestLoginWithEmail(t *testing.T) {
	f := newAuthFixture(t)
	registerUser(t, f)

	result, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     entity.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.User.Email != "asha@example.com" || result.User.Role != entity.RoleCustomer {
		t.Errorf("unexpected session user: %+v", result.User)
	}

	// Session decode round-trips the claims without touching storage
	session, err := f.service.Session(result.Token)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if session.ID != result.User.ID || session.Name != "Asha" || session.Address != "12 Market Street" {
		t.Errorf("claims mismatch: %+v", session)
	}
}

func TestLoginWithMobile(t *testing.T) {
	f := newAuthFixture(t)
	registerUser(t, f)

	_, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    "08123456789",
		Password: "secret123",
		Role:     entity.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("Login with mobile identifier: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	registerUser(t, f)
	ctx := context.Background()

	cases := map[string]*request.LoginRequest{
		"unknown identifier": {Email: "nobody@example.com", Password: "secret123", Role: entity.RoleCustomer},
		"wrong password":     {Email: "asha@example.com", Password: "wrongpass", Role: entity.RoleCustomer},
		"wrong role":         {Email: "asha@example.com", Password: "secret123", Role: entity.RoleVendor},
	}

	for name, req := range cases {
		_, err := f.service.Login(ctx, req)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: error = %v, want ErrInvalidCredentials", name, err)
		}
	}
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	f := newAuthFixture(t)
	registerUser(t, f)

	result, err := f.service.Login(context.Background(), &request.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     entity.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = f.service.Session(result.Token + "x")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}
