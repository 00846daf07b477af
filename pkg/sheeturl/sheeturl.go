// Package sheeturl はGoogleスプレッドシートのURLからスプレッドシートIDを
// 取り出すヘルパーを提供します。
package sheeturl

import (
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// ExtractID はスプレッドシートURLからIDを抽出します。
// URL形式でない入力はIDそのものと見なし、前後の空白を落として返します。
func ExtractID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if m := idPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}
