// Package i18n renders human messages for decode issue codes.
package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "key" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_format":
			return "バージョン形式が不正です"
		case "invalid_numbers":
			return "バージョン番号が整数ではありません"
		case "invalid_array_length":
			if got := data["got"]; got != "" {
				return "要素数は2または3である必要があります (実際: " + got + ")"
			}
			return "要素数は2または3である必要があります"
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "型が不正です (期待: " + exp + ")"
			}
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "invalid_format":
			return "invalid version format"
		case "invalid_numbers":
			return "version components are not integers"
		case "invalid_array_length":
			if got := data["got"]; got != "" {
				return "expected 2 or 3 components, got " + got
			}
			return "expected 2 or 3 components"
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "invalid type, expected " + exp
			}
			return "invalid type"
		case "required":
			if key := data["key"]; key != "" {
				return "required property " + key + " missing"
			}
			return "required property missing"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
