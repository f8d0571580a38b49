package button

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/iancoleman/strcase"
)

var (
	validName     = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	anonymousFunc = regexp.MustCompile(`^(func)?\d+$`)
)

// ValidName reports whether name can be used as a button name.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// FuncName derives a snake_case button name from a Go function value, for
// example ImportArticles and (*Admin).ImportArticles both give
// "import_articles". Anonymous functions yield an empty name.
func FuncName(fn any) string {
	if fn == nil {
		return ""
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	info := runtime.FuncForPC(rv.Pointer())
	if info == nil {
		return ""
	}
	full := strings.TrimSuffix(info.Name(), "-fm")
	full = strings.ReplaceAll(full, "[...]", "")
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	if full == "" || anonymousFunc.MatchString(full) {
		return ""
	}
	return strcase.ToSnake(full)
}

func resolveName(explicit string, fn any) (string, error) {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = FuncName(fn)
	}
	if name == "" {
		return "", fmt.Errorf("%w: cannot derive a name from an anonymous function, use WithName", ErrInvalidName)
	}
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
