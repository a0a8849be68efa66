package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"angellist_widget/internal/app/di"
	"angellist_widget/internal/app/router"
	companyentity "angellist_widget/internal/feature/company/domain/entity"
	companyhandler "angellist_widget/internal/feature/company/transport/handler"
	companyusecase "angellist_widget/internal/feature/company/usecase"
	embedadapters "angellist_widget/internal/feature/embed/adapters"
	embedhandler "angellist_widget/internal/feature/embed/transport/handler"
	embedusecase "angellist_widget/internal/feature/embed/usecase"
	searchhandler "angellist_widget/internal/feature/search/transport/handler"
	searchusecase "angellist_widget/internal/feature/search/usecase"
	"angellist_widget/internal/platform/externalapi/angellist"
	"angellist_widget/internal/platform/http/handler"
	jwtmw "angellist_widget/internal/platform/jwt"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeAngelList はAngelList APIを模したテスト用サーバーです。
func fakeAngelList(t *testing.T, startupCalls *int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/1/startups/42":
			atomic.AddInt32(startupCalls, 1)
			_, _ = w.Write([]byte(`{"name":"Acme","angellist_url":"https://angel.co/acme","community_profile":true}`))
		case r.URL.Path == "/1/startups/7":
			atomic.AddInt32(startupCalls, 1)
			_, _ = w.Write([]byte(`{"name":"Seven","angellist_url":"https://angel.co/seven","community_profile":false}`))
		case r.URL.Path == "/1/startup_roles" && r.URL.Query().Get("startup_id") == "42":
			_, _ = w.Write([]byte(`{"startup_roles":[{"role":"founder"}]}`))
		case r.URL.Path == "/1/search" && r.URL.Query().Get("type") == "Startup":
			if r.URL.Query().Get("query") == "down" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[{"id":42,"name":"Acme","type":"Startup"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&embedadapters.PostMetaModel{}))
	return db
}

// newTestRouter は実コンポーネントを組み合わせたルーターを構築します。
func newTestRouter(t *testing.T, startupCalls *int32) (*gin.Engine, di.MarkupStore) {
	t.Helper()

	srv := fakeAngelList(t, startupCalls)
	client := di.NewAngelListClient(angellist.Config{BaseURL: srv.URL + "/1", Timeout: 2 * time.Second})
	store := di.NewMarkupStore(nil)
	repo := embedadapters.NewPostCompaniesRepository(setupTestDB(t))

	renderUC := companyusecase.NewRenderUsecase(client, store)
	defaults := companyentity.RenderConfig{SchemaOrg: true, BrowsingContext: companyentity.BrowsingContextBlank}

	r := router.NewRouter(router.Handlers{
		Health:  handler.NewHealthHandler(nil),
		Company: companyhandler.NewCompanyHandler(renderUC, companyusecase.NewRolesUsecase(client), defaults),
		Search:  searchhandler.NewSearchHandler(searchusecase.NewSearchUsecase(client)),
		Posts:   embedhandler.NewPostCompaniesHandler(embedusecase.NewPostCompaniesUsecase(repo, renderUC), defaults),
	}, testSecret)
	return r, store
}

func editorToken(t *testing.T, caps ...string) string {
	t.Helper()
	token, err := jwtmw.NewGenerator(testSecret, time.Hour).GenerateToken("editor", caps)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r *gin.Engine, method, target, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_SearchStartups(t *testing.T) {
	t.Parallel()

	var calls int32
	r, _ := newTestRouter(t, &calls)
	editor := editorToken(t, jwtmw.CapabilityEditPosts)

	tests := []struct {
		name           string
		method         string
		target         string
		auth           string
		expectedStatus int
		expectedBody   string
		expectedAllow  string
	}{
		{"POST is not allowed", http.MethodPost, "/search/startups?q=acme", editor, http.StatusMethodNotAllowed, "", "GET"},
		{"method checked before capability", http.MethodDelete, "/search/startups?q=acme", "", http.StatusMethodNotAllowed, "", "GET"},
		{"no token", http.MethodGet, "/search/startups?q=acme", "", http.StatusForbidden, `{"error":"You do not have permission to do that."}`, ""},
		{"token without capability", http.MethodGet, "/search/startups?q=acme", editorToken(t, "read"), http.StatusForbidden, `{"error":"You do not have permission to do that."}`, ""},
		{"missing q", http.MethodGet, "/search/startups", editor, http.StatusBadRequest, `{"error":"Search string needed. Use q query parameter."}`, ""},
		{"blank q", http.MethodGet, "/search/startups?q=%20", editor, http.StatusBadRequest, `{"error":"No search string provided."}`, ""},
		{"upstream down", http.MethodGet, "/search/startups?q=down", editor, http.StatusBadGateway, `{"error":"AngelList search is unavailable."}`, ""},
		{"success", http.MethodGet, "/search/startups?q=acme", editor, http.StatusOK, `[{"id":42,"name":"Acme","type":"Startup"}]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(r, tt.method, tt.target, tt.auth, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedAllow, w.Header().Get("Allow"))
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
				return
			}
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestRouter_CompanyWidget(t *testing.T) {
	t.Parallel()

	var calls int32
	r, store := newTestRouter(t, &calls)

	w := do(r, http.MethodGet, "/companies/42/widget", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	assert.Contains(t, first, "angellist-community-profile")
	assert.Contains(t, first, `href="https://angel.co/acme"`)

	// 2回目はキャッシュから同一のHTMLが返る
	w = do(r, http.MethodGet, "/companies/42/widget", "", "")
	assert.Equal(t, first, w.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	html, ok := store.Get(t.Context(), "angellist-company-42-blank")
	assert.True(t, ok)
	assert.Equal(t, first, html)

	// 存在しない企業は204
	w = do(r, http.MethodGet, "/companies/404/widget", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_CompanyRoles(t *testing.T) {
	t.Parallel()

	var calls int32
	r, _ := newTestRouter(t, &calls)

	w := do(r, http.MethodGet, "/companies/42/roles", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"role":"founder"}]`, w.Body.String())

	w = do(r, http.MethodGet, "/companies/7/roles", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PostCompanies(t *testing.T) {
	t.Parallel()

	var calls int32
	r, _ := newTestRouter(t, &calls)
	editor := editorToken(t, jwtmw.CapabilityEditPosts)

	// 編集には権限が必要
	w := do(r, http.MethodPut, "/posts/10/companies", "", `{"company_ids":[42]}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPut, "/posts/10/companies", editor, `{"company_ids":[42,404,7,42]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"post_id":10,"company_ids":[42,404,7]}`, w.Body.String())

	w = do(r, http.MethodGet, "/posts/10/companies", "", "")
	assert.JSONEq(t, `{"post_id":10,"company_ids":[42,404,7]}`, w.Body.String())

	w = do(r, http.MethodGet, "/posts/10/widget", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<ol class="angellist-companies"><li class="angellist-company angellist-community-profile"`), body)
	assert.True(t, strings.HasSuffix(body, `</li></ol>`), body)
	assert.Equal(t, 2, strings.Count(body, `<li class="angellist-company `))
	assert.Less(t, strings.Index(body, "Acme"), strings.Index(body, "Seven"))

	w = do(r, http.MethodGet, "/posts/11/widget", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	var calls int32
	r, _ := newTestRouter(t, &calls)

	w := do(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
