package usecase

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	// s3PhotosPrefix is the HTTPS bucket URL AngelList serves static assets from.
	s3PhotosPrefix = "https://s3.amazonaws.com/photos.angel.co/"
	// photosCNAMEPrefix is the plain-HTTP host assumed to alias the bucket.
	photosCNAMEPrefix = "http://photos.angel.co/"
)

var (
	schemesHTTP    = []string{"http"}
	schemesHTTPS   = []string{"https"}
	schemesWebSafe = []string{"http", "https"}
)

// NormalizeAssetURL は静的アセットURLを描画先のプロトコルに合わせて整えます。
//
//   - HTTPSページではhttpsのURLのみ許可します（mixed contentを避けるため）。
//   - HTTPページではS3バケットのURLをCNAMEのHTTPホストに書き換えます。
//   - それ以外はhttp/httpsとして検証したURLをそのまま返します。
//
// 検証に失敗した場合は空文字を返します。
func NormalizeAssetURL(raw string, secure bool) string {
	if secure {
		return ValidateURL(raw, schemesHTTPS...)
	}
	if len(raw) > len(s3PhotosPrefix) && strings.HasPrefix(raw, s3PhotosPrefix) {
		return ValidateURL(photosCNAMEPrefix+raw[len(s3PhotosPrefix):], schemesHTTP...)
	}
	return ValidateURL(raw, schemesWebSafe...)
}

// ValidateURL returns the trimmed URL when it is absolute, has a host, and
// uses one of the allowed schemes. Anything else yields "".
func ValidateURL(raw string, schemes ...string) string {
	s := strings.TrimSpace(raw)
	// 内部に空白・制御文字を含むURLは除去して救済せず、無効として扱う
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	for _, allowed := range schemes {
		if scheme == allowed {
			return s
		}
	}
	return ""
}
