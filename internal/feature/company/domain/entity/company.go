// Package entity はcompanyフィーチャーのドメインモデルを定義します。
package entity

// Browsing contexts accepted for generated links.
const (
	BrowsingContextNone   = ""
	BrowsingContextBlank  = "_blank"
	BrowsingContextSelf   = "_self"
	BrowsingContextParent = "_parent"
	BrowsingContextTop    = "_top"
)

// ThumbnailSize is the fixed edge length recorded for every thumbnail.
const ThumbnailSize = 100

// Image はサムネイル画像の参照を表します。
type Image struct {
	URL    string
	Width  int
	Height int
}

// Company はAngelListの企業プロフィールを正規化したものです。
// 取得ごとに新しく生成され、正規化後は変更されません。
type Company struct {
	ID          int    // AngelList企業ID（正の整数）
	Name        string // 前後の空白を除去した企業名（必須）
	Claimed     bool   // プロフィールが企業自身によって管理されているか
	URL         string // 企業サイトのURL（任意）
	ProfileURL  string // AngelList上のプロフィールURL（描画に必須）
	Thumbnail   *Image // サムネイル画像（任意）
	LogoURL     string // ロゴ画像のURL（任意）
	Concept     string // 一行キャッチコピー（任意）
	Description string // 空行区切りの複数段落の説明文（任意）
	LocationURL string // 所在地ページのURL（任意）
}

// Renderable reports whether the record carries the fields markup requires.
func (c *Company) Renderable() bool {
	return c != nil && c.Name != "" && c.ProfileURL != ""
}

// RenderConfig は描画ごとの設定です。
type RenderConfig struct {
	SchemaOrg       bool   // schema.orgのmicrodataを出力するか
	BrowsingContext string // リンクのtarget
	Secure          bool   // 埋め込み先ページがHTTPSか
}

// NewRenderConfig coerces an unknown browsing context to "_blank".
func NewRenderConfig(schemaOrg bool, browsingContext string, secure bool) RenderConfig {
	if !ValidBrowsingContext(browsingContext) {
		browsingContext = BrowsingContextBlank
	}
	return RenderConfig{
		SchemaOrg:       schemaOrg,
		BrowsingContext: browsingContext,
		Secure:          secure,
	}
}

// ValidBrowsingContext reports whether s is one of the accepted keywords.
func ValidBrowsingContext(s string) bool {
	switch s {
	case BrowsingContextNone, BrowsingContextBlank, BrowsingContextSelf, BrowsingContextParent, BrowsingContextTop:
		return true
	}
	return false
}
