package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "bound" or "name"), referenced as {key} in dictionary templates.
type Translator interface {
	Message(code string, data map[string]string) string
}

var english = map[string]string{
	"should_be_null":          "Should Be Null",
	"should_be_boolean":       "Should Be Boolean",
	"should_be_integer":       "Should Be Integer",
	"too_far_from_integer":    "Too far from the nearest Integer",
	"should_be_number":        "Should Be Number",
	"should_be_string":        "Should Be String",
	"should_be_datetime":      "Should be DateTime",
	"should_be_list":          "Should be List",
	"should_be_entity":        "Should be Entity",
	"missing_property":        "Missing Property '{name}'",
	"unexpected_property":     "Unexpected Property '{name}'",
	"no_matching_option":      "Does not match any option",
	"always_false":            "Always False",
	"below_minimum":           "Should be >= {bound}",
	"below_exclusive_minimum": "Should be > {bound}",
	"above_maximum":           "Should be <= {bound}",
	"above_exclusive_maximum": "Should be < {bound}",
	"not_multiple_of":         "Should be a multiple of {multipleOf}",
	"zero_multiple_of":        "Cannot be a multiple of 0",
	"too_short":               "Should have length >= {min}",
	"too_long":                "Should have length <= {max}",
	"pattern":                 "Should match Regex: {pattern}",
	"invalid_enum":            "Should be one of: {values}",
	"no_allowed_values":       "No values are allowed by the enumerated values restriction",
}

var japanese = map[string]string{
	"should_be_null":          "null である必要があります",
	"should_be_boolean":       "真偽値である必要があります",
	"should_be_integer":       "整数である必要があります",
	"too_far_from_integer":    "最も近い整数から離れすぎています",
	"should_be_number":        "数値である必要があります",
	"should_be_string":        "文字列である必要があります",
	"should_be_datetime":      "日時である必要があります",
	"should_be_list":          "リストである必要があります",
	"should_be_entity":        "エンティティである必要があります",
	"missing_property":        "プロパティ '{name}' が不足しています",
	"unexpected_property":     "未知のプロパティ '{name}' です",
	"no_matching_option":      "どの選択肢にも一致しません",
	"always_false":            "常に不正です",
	"below_minimum":           "{bound} 以上である必要があります",
	"below_exclusive_minimum": "{bound} より大きい必要があります",
	"above_maximum":           "{bound} 以下である必要があります",
	"above_exclusive_maximum": "{bound} より小さい必要があります",
	"not_multiple_of":         "{multipleOf} の倍数である必要があります",
	"zero_multiple_of":        "0 の倍数は指定できません",
	"too_short":               "長さが {min} 以上である必要があります",
	"too_long":                "長さが {max} 以下である必要があります",
	"pattern":                 "正規表現 {pattern} に一致する必要があります",
	"invalid_enum":            "次のいずれかである必要があります: {values}",
	"no_allowed_values":       "許可された値が設定されていません",
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := english
	if t.lang == "ja" {
		dict = japanese
	}
	tmpl, ok := dict[code]
	if !ok {
		if tmpl, ok = english[code]; !ok {
			return code
		}
	}
	return Expand(tmpl, data)
}

// Expand replaces {key} placeholders in tmpl with values from data. Unknown
// placeholders are left untouched.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().tr.Message(code, data)
}
