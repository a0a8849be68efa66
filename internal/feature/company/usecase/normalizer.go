package usecase

import (
	"strings"

	"angellist_widget/internal/feature/company/domain/entity"
)

// BlankImageURL is the placeholder AngelList returns for companies without an image.
const BlankImageURL = "http://angel.co/images/icons/startup-nopic.png"

// ParagraphSeparator splits a description into paragraphs.
const ParagraphSeparator = "\n\n"

// Normalize はAPIのデコード済みJSONをCompanyに変換します。
// 非公開（hidden）の企業、または企業名がない場合は (nil, false) を返します。
// 型が合わない・検証に失敗したフィールドは黙って省略します。
func Normalize(raw map[string]any, id int, secure bool) (*entity.Company, bool) {
	if raw == nil || id < 1 {
		return nil, false
	}

	// are we sharing a secret?
	if hidden, ok := raw["hidden"].(bool); ok && hidden {
		return nil, false
	}

	name, ok := trimmedString(raw, "name")
	if !ok {
		return nil, false
	}

	c := &entity.Company{ID: id, Name: name}

	// 企業自身がプロフィールを管理している場合のみ community_profile=false になる
	if community, ok := raw["community_profile"].(bool); ok && !community {
		c.Claimed = true
	}

	if s, ok := raw["company_url"].(string); ok {
		c.URL = ValidateURL(s, schemesWebSafe...)
	}
	if s, ok := raw["angellist_url"].(string); ok {
		c.ProfileURL = ValidateURL(s, schemesWebSafe...)
	}

	thumb, hasThumb := raw["thumb_url"].(string)
	if hasThumb && thumb != BlankImageURL {
		if u := NormalizeAssetURL(thumb, secure); u != "" {
			c.Thumbnail = &entity.Image{URL: u, Width: entity.ThumbnailSize, Height: entity.ThumbnailSize}
		}
	}
	// the logo shares the thumbnail's placeholder check
	if logo, ok := raw["logo_url"].(string); ok && thumb != BlankImageURL {
		c.LogoURL = NormalizeAssetURL(logo, secure)
	}

	if s, ok := trimmedString(raw, "high_concept"); ok {
		c.Concept = s
	}
	if s, ok := trimmedString(raw, "product_desc"); ok {
		c.Description = s
	}

	c.LocationURL = firstLocationURL(raw["locations"])

	return c, true
}

// trimmedString returns the trimmed string at key, or false when it is
// missing, not a string, or blank.
func trimmedString(raw map[string]any, key string) (string, bool) {
	s, ok := raw[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// firstLocationURL iterates until it finds a location URL that validates.
func firstLocationURL(v any) string {
	locations, ok := v.([]any)
	if !ok {
		return ""
	}
	for _, loc := range locations {
		m, ok := loc.(map[string]any)
		if !ok {
			continue
		}
		s, ok := m["angellist_url"].(string)
		if !ok {
			continue
		}
		if u := ValidateURL(s, schemesWebSafe...); u != "" {
			return u
		}
	}
	return ""
}
