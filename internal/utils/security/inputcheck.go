package security

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Limits bounds user supplied strings.
type Limits struct {
	MaxString int
	MaxPath   int
}

func DefaultLimits() Limits {
	return Limits{
		MaxString: 256,
		MaxPath:   4096,
	}
}

func validate(name, s string, max int) error {
	if s == "" {
		return nil
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: invalid UTF-8", name)
	}
	if n := utf8.RuneCountInString(s); n > max {
		return fmt.Errorf("%s: too long (%d > %d)", name, n, max)
	}
	for _, r := range s {
		if r == 0 || !unicode.IsPrint(r) {
			return fmt.Errorf("%s: contains non-printable/control runes", name)
		}
	}
	return nil
}

// ValidateString rejects invalid UTF-8, control runes and overlong values.
func ValidateString(name, s string, lim Limits) error {
	return validate(name, s, lim.MaxString)
}

// ValidatePath is ValidateString with the path length limit.
func ValidatePath(name, s string, lim Limits) error {
	return validate(name, s, lim.MaxPath)
}

func isPathName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "path") || strings.Contains(lower, "file") ||
		strings.Contains(lower, "dir") || strings.Contains(lower, "config")
}

// ValidateStructStrings walks the exported string fields of obj. Fields
// whose name mentions a path, file or directory get the path limit.
func ValidateStructStrings(obj any, lim Limits) error {
	return walkValue(reflect.ValueOf(obj), "config", "", lim)
}

func walkValue(v reflect.Value, path, field string, lim Limits) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return walkValue(v.Elem(), path, field, lim)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			name := t.Field(i).Name
			if err := walkValue(v.Field(i), path+"."+name, name, lim); err != nil {
				return err
			}
		}
	case reflect.String:
		if isPathName(field) {
			return ValidatePath(path, v.String(), lim)
		}
		return ValidateString(path, v.String(), lim)
	}
	return nil
}

// AttachRecursive validates the arguments and string flags of root and all
// of its subcommands before they run.
func AttachRecursive(root *cobra.Command, lim Limits) {
	attach(root, lim)
	for _, c := range root.Commands() {
		AttachRecursive(c, lim)
	}
}

func attach(cmd *cobra.Command, lim Limits) {
	prev := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := validateFlagsAndArgs(c, args, lim); err != nil {
			return err
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

func validateFlagsAndArgs(cmd *cobra.Command, args []string, lim Limits) error {
	for i, a := range args {
		if err := ValidatePath(fmt.Sprintf("arg[%d]", i), a, lim); err != nil {
			return err
		}
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if firstErr != nil || f.Value.Type() != "string" {
			return
		}
		name := "flag --" + f.Name
		if isPathName(f.Name) {
			firstErr = ValidatePath(name, f.Value.String(), lim)
		} else {
			firstErr = ValidateString(name, f.Value.String(), lim)
		}
	})
	return firstErr
}
