// Package entity はembedフィーチャーのドメインモデルを定義します。
package entity

import (
	"strconv"
	"strings"
)

// CompaniesMetaKey は投稿メタデータのうち企業一覧を保持するキーです。
const CompaniesMetaKey = "angellist-companies"

// PostCompanies は1投稿に埋め込む企業IDの順序付きリストです。
type PostCompanies struct {
	PostID     uint
	CompanyIDs []int
}

// ParseCompanyIDs parses a comma-separated meta value. Malformed, non-positive,
// and repeated ids are skipped; order of first occurrence is kept.
func ParseCompanyIDs(s string) []int {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 1 {
			continue
		}
		ids = append(ids, id)
	}
	return Dedupe(ids)
}

// FormatCompanyIDs はIDのリストをメタ値の形式（カンマ区切り）に変換します。
func FormatCompanyIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// Dedupe removes repeated ids keeping the first occurrence.
func Dedupe(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
