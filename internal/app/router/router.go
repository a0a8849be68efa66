package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	companyhandler "angellist_widget/internal/feature/company/transport/handler"
	embedhandler "angellist_widget/internal/feature/embed/transport/handler"
	searchhandler "angellist_widget/internal/feature/search/transport/handler"
	platformhttp "angellist_widget/internal/platform/http"
	"angellist_widget/internal/platform/http/handler"
	jwtmw "angellist_widget/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラーの集合です。
type Handlers struct {
	Health  *handler.HealthHandler
	Company *companyhandler.CompanyHandler
	Search  *searchhandler.SearchHandler
	Posts   *embedhandler.PostCompaniesHandler
}

func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), platformhttp.RequestID())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// ウィジェット（公開ページに埋め込まれる）
	r.GET("/companies/:id/widget", h.Company.Widget)
	r.GET("/companies/:id/roles", h.Company.Roles)
	r.GET("/posts/:id/companies", h.Posts.List)
	r.GET("/posts/:id/widget", h.Posts.Widget)

	// 編集権限（edit_posts）が必要なルート
	editor := jwtmw.RequireCapability(jwtSecret, jwtmw.CapabilityEditPosts)

	// 検索プロキシはGET以外を405で返す。メソッド判定を権限チェックより先に行う
	r.Any("/search/startups", platformhttp.AllowMethods(http.MethodGet), editor, h.Search.SearchStartups)
	r.PUT("/posts/:id/companies", editor, h.Posts.Replace)

	return r
}
