package osver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/osver/i18n"
)

// pathRef builds JSON Pointer paths and creates Issues at them.
type pathRef struct {
	parts []string
}

var rootPath = pathRef{}

func (p pathRef) Field(name string) pathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue renders the message through i18n; kv are alternating param
// names and values.
func (p pathRef) Issue(code string, cause error, kv ...any) Issue {
	var params map[string]any
	var data map[string]string
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k := fmt.Sprint(kv[i])
			params[k] = kv[i+1]
			data[k] = fmt.Sprint(kv[i+1])
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Cause: cause, Offset: -1, Params: params}
}
