package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/internal/assets"
	"github.com/rigtrack/rigtrack-backend/internal/auth"
	"github.com/rigtrack/rigtrack-backend/internal/bom"
	"github.com/rigtrack/rigtrack-backend/internal/companies"
	"github.com/rigtrack/rigtrack-backend/internal/contracts"
	emailsvc "github.com/rigtrack/rigtrack-backend/internal/email"
	"github.com/rigtrack/rigtrack-backend/internal/notifications"
	"github.com/rigtrack/rigtrack-backend/internal/rigs"
	"github.com/rigtrack/rigtrack-backend/internal/users"
	pkgauth "github.com/rigtrack/rigtrack-backend/pkg/auth"
	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req auth.ChangePasswordRequest) error {
	return nil
}

type stubAssetService struct{}

func (stubAssetService) List(ctx context.Context, opts assets.ListOptions) (*assets.ListResult, error) {
	return &assets.ListResult{}, nil
}

func (stubAssetService) Get(ctx context.Context, id uuid.UUID) (*assets.AssetDetail, error) {
	panic("unimplemented")
}

func (stubAssetService) Create(ctx context.Context, input assets.CreateAssetInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubAssetService) Update(ctx context.Context, id uuid.UUID, patch assets.UpdateAssetInput, performedBy *uuid.UUID) (*assets.UpdateResult, error) {
	panic("unimplemented")
}

func (stubAssetService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubAssetService) Summary(ctx context.Context) (*assets.CatalogSummary, error) {
	return &assets.CatalogSummary{}, nil
}

func (stubAssetService) ExportExcel(ctx context.Context) ([]byte, error) {
	panic("unimplemented")
}

func (stubAssetService) ImportExcel(ctx context.Context, file io.Reader, createdBy *uuid.UUID) (*assets.ImportResult, error) {
	panic("unimplemented")
}

type stubBOMService struct{}

func (stubBOMService) Tree(ctx context.Context, assetID uuid.UUID) (*bom.TreeResult, error) {
	panic("unimplemented")
}

func (stubBOMService) List(ctx context.Context, filter bom.FlatFilter) ([]bom.FlatRow, error) {
	return nil, nil
}

func (stubBOMService) Get(ctx context.Context, id uuid.UUID) (*bom.FlatRow, error) {
	panic("unimplemented")
}

func (stubBOMService) Create(ctx context.Context, input bom.CreateItemInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubBOMService) Update(ctx context.Context, id uuid.UUID, patch bom.UpdateItemInput) error {
	return nil
}

func (stubBOMService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return 1, nil
}

func (stubBOMService) Summarize(ctx context.Context, assetID uuid.UUID) (*bom.TreeSummary, error) {
	panic("unimplemented")
}

func (stubBOMService) ExportExcel(ctx context.Context, filter bom.FlatFilter) ([]byte, error) {
	panic("unimplemented")
}

type stubCompanyService struct{}

func (stubCompanyService) List(ctx context.Context) ([]companies.CompanyRow, error) {
	return nil, nil
}

func (stubCompanyService) Create(ctx context.Context, input companies.CreateCompanyInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubCompanyService) Update(ctx context.Context, id uuid.UUID, patch companies.UpdateCompanyInput) error {
	return nil
}

type stubRigService struct{}

func (stubRigService) List(ctx context.Context) ([]rigs.RigRow, error) {
	return nil, nil
}

func (stubRigService) Create(ctx context.Context, input rigs.CreateRigInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubRigService) Update(ctx context.Context, id uuid.UUID, patch rigs.UpdateRigInput) error {
	return nil
}

type stubContractService struct{}

func (stubContractService) List(ctx context.Context, filter contracts.ListFilter) ([]contracts.ContractRow, error) {
	return nil, nil
}

func (stubContractService) Create(ctx context.Context, input contracts.CreateContractInput) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (stubContractService) Update(ctx context.Context, id uuid.UUID, patch contracts.UpdateContractInput) error {
	return nil
}

func (stubContractService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) List(ctx context.Context) ([]users.UserDTO, error) {
	return nil, nil
}

func (stubUserService) Create(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

func (stubUserService) Update(ctx context.Context, id uuid.UUID, patch users.UpdateUserInput) error {
	return nil
}

func (stubUserService) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	return nil
}

type stubNotificationService struct{}

func (stubNotificationService) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*notifications.Inbox, error) {
	return &notifications.Inbox{}, nil
}

func (stubNotificationService) Push(ctx context.Context, input notifications.CreateInput) error {
	return nil
}

func (stubNotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

func (stubNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (stubNotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

type stubEmailService struct{}

func (stubEmailService) SendAlert(ctx context.Context, input emailsvc.SendAlertInput) error {
	return nil
}

func (stubEmailService) Logs(ctx context.Context, page, limit int) (*emailsvc.LogsResult, error) {
	return &emailsvc.LogsResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		nil,
		nil,
		nil,
		stubAuthService{},
		stubAssetService{},
		stubBOMService{},
		stubCompanyService{},
		stubRigService{},
		stubContractService{},
		stubUserService{},
		stubNotificationService{},
		stubEmailService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ops@rigtrack.io",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAssetRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/assets/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestViewerCanListButNotCreateAssets(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.UserRoleViewer)

	list := httptest.NewRequest(http.MethodGet, "/api/assets/", nil)
	list.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, list)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer list got %d", resp.Code)
	}

	create := httptest.NewRequest(http.MethodPost, "/api/assets/", strings.NewReader(`{"asset_no":"A-1","name":"Pump"}`))
	create.Header.Set("Authorization", "Bearer "+token)
	create.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, create)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer create got %d", resp.Code)
	}
}

func TestEditorCanCreateButNotDeleteAssets(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.UserRoleEditor)

	create := httptest.NewRequest(http.MethodPost, "/api/assets/", strings.NewReader(`{"asset_no":"A-1","name":"Pump"}`))
	create.Header.Set("Authorization", "Bearer "+token)
	create.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, create)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for editor create got %d", resp.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/assets/"+uuid.NewString(), nil)
	del.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, del)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor delete got %d", resp.Code)
	}
}

func TestContractDeleteIsAdminOnly(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	manager := httptest.NewRequest(http.MethodDelete, "/api/contracts/"+uuid.NewString(), nil)
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager delete got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, "/api/contracts/"+uuid.NewString(), nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete got %d", resp.Code)
	}
}

func TestUserListAllowsManagersButWritesRequireAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	editor := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	editor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleEditor))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, editor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor list got %d", resp.Code)
	}

	manager := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager list got %d", resp.Code)
	}

	body := `{"name":"Dana","email":"dana@example.com","password":"longenough"}`
	managerCreate := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body))
	managerCreate.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	managerCreate.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, managerCreate)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager create got %d", resp.Code)
	}

	adminCreate := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body))
	adminCreate.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	adminCreate.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, adminCreate)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin create got %d", resp.Code)
	}
}

func TestEditorCanUpdateContracts(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPut, "/api/contracts/"+uuid.NewString(), strings.NewReader(`{"notes":"revised"}`))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleEditor))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for editor contract update got %d", resp.Code)
	}

	viewer := httptest.NewRequest(http.MethodPut, "/api/contracts/"+uuid.NewString(), strings.NewReader(`{"notes":"revised"}`))
	viewer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleViewer))
	viewer.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, viewer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer contract update got %d", resp.Code)
	}
}

func TestEmailSendOpenToAllRolesButLogsGated(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.UserRoleViewer)

	send := httptest.NewRequest(http.MethodPost, "/api/email/send-alert", strings.NewReader(`{"recipients":["ops@example.com"],"subject":"pressure alert"}`))
	send.Header.Set("Authorization", "Bearer "+token)
	send.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, send)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer send got %d", resp.Code)
	}

	logs := httptest.NewRequest(http.MethodGet, "/api/email/logs", nil)
	logs.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, logs)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer logs got %d", resp.Code)
	}
}

func TestNotificationsAllowAnyAuthenticatedRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleViewer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer inbox got %d", resp.Code)
	}
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}
