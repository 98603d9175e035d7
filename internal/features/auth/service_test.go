package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/pkg/jwt"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

const (
	testSecret = "jwt-secret"
	adminCode  = "NAGAR_ADMIN_2025"
)

type fakeProvider struct {
	tokens  map[string]Identity
	revoked []string
}

func (p *fakeProvider) Verify(_ context.Context, idToken string) (*Identity, error) {
	id, ok := p.tokens[idToken]
	if !ok {
		return nil, ErrInvalidIDToken
	}
	return &id, nil
}

func (p *fakeProvider) SignOut(_ context.Context, uid string) error {
	p.revoked = append(p.revoked, uid)
	return nil
}

type userStore struct {
	byUID   map[string]users.User
	creates int
}

func (s *userStore) Get(_ context.Context, uid string) (*users.User, error) {
	u, ok := s.byUID[uid]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) Create(_ context.Context, u *users.User) error {
	s.creates++
	s.byUID[u.UID] = *u
	return nil
}

func (s *userStore) Update(context.Context, string, string, map[string]interface{}) error {
	return nil
}

func (s *userStore) ListByRole(_ context.Context, role string) ([]users.User, error) {
	var out []users.User
	for _, u := range s.byUID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userStore) AddPoints(context.Context, string, int) error { return nil }

func (s *userStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range s.byUID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func newFixture() (*Service, *fakeProvider, *userStore) {
	provider := &fakeProvider{tokens: map[string]Identity{
		"tok-new":      {UID: "new-uid", Phone: "+919800000000"},
		"tok-existing": {UID: "old-uid"},
	}}
	store := &userStore{byUID: map[string]users.User{
		"old-uid": {UID: "old-uid", FirstName: "Anjali", Email: "anjali@example.com", Role: users.RoleCitizen},
	}}
	return NewService(provider, store, jwt.DefaultConfig(testSecret, 1), adminCode), provider, store
}

func TestSession_RegisteredUser(t *testing.T) {
	svc, _, _ := newFixture()

	session, err := svc.Session(context.Background(), "tok-existing")
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(session.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "old-uid", claims.UserID)
	assert.Equal(t, users.RoleCitizen, claims.Role)
}

func TestSession_Errors(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Session(context.Background(), "forged")
	assert.ErrorIs(t, err, ErrInvalidIDToken)

	_, err = svc.Session(context.Background(), "tok-new")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegister_Citizen(t *testing.T) {
	svc, _, store := newFixture()

	session, err := svc.Register(context.Background(), RegisterRequest{
		IDToken: "tok-new", Role: "Citizen", FirstName: "Rahul", Email: "rahul@example.com",
		Address: "Sector 4, Ranchi", Department: "ignored",
	})
	require.NoError(t, err)

	u := store.byUID["new-uid"]
	assert.Equal(t, users.RoleCitizen, u.Role)
	assert.Equal(t, "Sector 4, Ranchi", u.Address)
	assert.Empty(t, u.Department)
	assert.Equal(t, "+919800000000", u.Mobile, "falls back to the verified phone")
	assert.Equal(t, "new-uid", session.User.UID)
}

func TestRegister_EmailInUseWritesNothing(t *testing.T) {
	svc, _, store := newFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		IDToken: "tok-new", Role: "citizen", FirstName: "Rahul", Email: "ANJALI@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.Zero(t, store.creates)
}

func TestRegister_AdminNeedsSecret(t *testing.T) {
	svc, _, store := newFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		IDToken: "tok-new", Role: "admin", FirstName: "Meera", Email: "meera@ranchi.gov.in", Department: "Roads", SecretCode: "guess",
	})
	assert.ErrorIs(t, err, ErrInvalidSecretCode)
	assert.Zero(t, store.creates)

	_, err = svc.Register(context.Background(), RegisterRequest{
		IDToken: "tok-new", Role: "admin", FirstName: "Meera", Email: "meera@ranchi.gov.in", Department: "Roads", SecretCode: adminCode,
	})
	require.NoError(t, err)
	assert.Equal(t, "Roads", store.byUID["new-uid"].Department)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		IDToken: "tok-existing", Role: "citizen", FirstName: "Anjali", Email: "anjali@example.com",
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestValidateRegister(t *testing.T) {
	assert.Error(t, ValidateRegister(&RegisterRequest{Role: "mayor", FirstName: "Rahul", Email: "r@example.com"}))
	assert.Error(t, ValidateRegister(&RegisterRequest{Role: "citizen", FirstName: "Rahul", Email: "nope"}))
	assert.Error(t, ValidateRegister(&RegisterRequest{Role: "admin", FirstName: "Meera", Email: "m@example.com", SecretCode: "x"}))
	assert.NoError(t, ValidateRegister(&RegisterRequest{Role: "citizen", FirstName: "Rahul", Email: "r@example.com"}))
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), svc, func(c *gin.Context) {
		c.Set("userID", "old-uid")
		c.Next()
	})
	return r
}

func TestHandler_RegisterConflict(t *testing.T) {
	svc, _, _ := newFixture()
	r := newTestRouter(svc)

	body := `{"idToken":"tok-new","role":"citizen","firstName":"Rahul","email":"anjali@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_IN_USE")
}

func TestHandler_SessionUnauthorized(t *testing.T) {
	svc, _, _ := newFixture()
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"idToken":"forged"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUTH_FAILED"`)
}

func TestHandler_Logout(t *testing.T) {
	svc, provider, _ := newFixture()
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"old-uid"}, provider.revoked)
}

