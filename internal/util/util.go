package util

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && info.Mode().IsRegular()
}

// NormalizeChr strips a "chr" or "chr0" prefix and upper-cases the rest,
// so "chr01", "Chr1" and "1" all name chromosome 1.
func NormalizeChr(chr string) string {
	c := strings.TrimSpace(chr)
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
		if len(c) > 1 && c[0] == '0' {
			c = c[1:]
		}
	}
	return strings.ToUpper(c)
}

// Getenv returns the value of key, or fallback and false when it is unset
// or empty.
func Getenv(key, fallback string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	return fallback, false
}
