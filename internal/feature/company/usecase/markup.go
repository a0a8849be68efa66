package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"angellist_widget/internal/feature/company/domain/entity"
)

const (
	followLinkText = "Follow on AngelList"
	// imageDisplaySize is the rendered edge of the summary image in CSS pixels.
	imageDisplaySize = 90
)

// companyTemplate emits no whitespace between elements; every interpolation
// is escaped for its HTML context by html/template.
var companyTemplate = template.Must(template.New("company").Parse(
	`<li class="angellist-company {{if .Claimed}}angellist-claimed-profile{{else}}angellist-community-profile{{end}}" data-startup_id="{{.ID}}"` +
		`{{if .SchemaOrg}} itemscope itemtype="http://schema.org/Corporation"{{end}}>` +
		`{{if .SchemaOrg}}` +
		`<meta itemprop="url" content="{{.MetaURL}}" />` +
		`{{with .MetaDescription}}<meta itemprop="description" content="{{.}}" />{{end}}` +
		`{{with .MetaImage}}<meta itemprop="image" content="{{.}}" />{{end}}` +
		`{{with .MetaLocation}}<meta itemprop="location" content="{{.}}" />{{end}}` +
		`{{end}}` +
		`<div class="angellist-company-summary">` +
		`{{with .ImageURL}}<a class="angellist-company-image" href="{{$.ProfileURL}}" title="{{$.Title}}"{{if $.EmitTarget}} target="{{$.Target}}"{{end}}>` +
		`<img alt="{{$.Name}}" src="{{.}}" width="{{$.ImageSize}}" height="{{$.ImageSize}}" /></a>{{end}}` +
		`<div class="angellist-company-summary-text">` +
		`<a class="angellist-company-name" href="{{.ProfileURL}}" title="{{.Title}}"{{if .EmitTarget}} target="{{.Target}}"{{end}}{{if .SchemaOrg}} itemprop="name"{{end}}>{{.Name}}</a>` +
		`{{with .Concept}}<div class="angellist-company-concept">{{.}}</div>{{end}}` +
		`</div>` +
		`<span class="angellist-follow-button"><a href="{{.ProfileURL}}" title="{{.Title}}"{{if .EmitTarget}} target="{{.Target}}"{{end}}>{{.FollowText}}</a></span>` +
		`</div>` +
		`{{with .Paragraphs}}<div class="angellist-company-detail">{{range .}}<p>{{.}}</p>{{end}}</div>{{end}}` +
		`</li>`,
))

type markupData struct {
	ID              int
	Claimed         bool
	SchemaOrg       bool
	Name            string
	Title           string
	ProfileURL      string
	Target          string
	EmitTarget      bool
	MetaURL         string
	MetaDescription string
	MetaImage       string
	MetaLocation    string
	ImageURL        string
	ImageSize       int
	Concept         string
	FollowText      string
	Paragraphs      []string
}

// RenderMarkup はCompanyからウィジェットのHTML断片を生成します。
// 企業名またはプロフィールURLがない場合は空文字を返します。
func RenderMarkup(c *entity.Company, cfg entity.RenderConfig) (string, error) {
	if !c.Renderable() {
		return "", nil
	}

	d := markupData{
		ID:         c.ID,
		Claimed:    c.Claimed,
		SchemaOrg:  cfg.SchemaOrg,
		Name:       c.Name,
		Title:      fmt.Sprintf("%s on AngelList", c.Name),
		ProfileURL: c.ProfileURL,
		// the target attribute is only written for the empty browsing context
		EmitTarget:   cfg.BrowsingContext == entity.BrowsingContextNone,
		Target:       cfg.BrowsingContext,
		Concept:      c.Concept,
		FollowText:   followLinkText,
		ImageSize:    imageDisplaySize,
		MetaLocation: c.LocationURL,
	}

	d.MetaURL = c.ProfileURL
	if c.URL != "" {
		d.MetaURL = c.URL
	}

	switch {
	case c.Description != "":
		d.MetaDescription = strings.ReplaceAll(c.Description, ParagraphSeparator, " ")
	case c.Concept != "":
		d.MetaDescription = c.Concept
	}

	if c.Thumbnail != nil {
		d.ImageURL = c.Thumbnail.URL
	}
	d.MetaImage = c.LogoURL
	if d.MetaImage == "" {
		d.MetaImage = d.ImageURL
	}

	if c.Description != "" {
		d.Paragraphs = strings.Split(c.Description, ParagraphSeparator)
	}

	var buf bytes.Buffer
	if err := companyTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render company %d: %w", c.ID, err)
	}
	return buf.String(), nil
}
