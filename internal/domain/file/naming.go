package file

import (
	"strings"
)

// Record file names kept alongside shared files. They never appear in listings
// and can never be addressed by callers.
const (
	ConfigRecordName = "server_config.json"
	UsersRecordName  = "users.json"
	StatsRecordName  = "file_stats.json"
)

var reservedNames = map[string]bool{
	ConfigRecordName: true,
	UsersRecordName:  true,
	StatsRecordName:  true,
}

// Extensions of system files that live in the managed directory but are not shared.
var reservedExtensions = map[string]bool{
	"py":  true,
	"pyc": true,
	"bat": true,
	"log": true,
}

// IsVisible reports whether a bare file name belongs in listings.
func IsVisible(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if reservedNames[strings.ToLower(name)] {
		return false
	}
	return !reservedExtensions[Extension(name)]
}

// CleanName canonicalizes a caller-supplied file name. The result is a bare,
// visible name that addresses a direct child of the managed directory.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if strings.Contains(name, "/") {
		return "", ErrInvalidName
	}
	if name == "." || name == ".." || !IsVisible(name) {
		return "", ErrInvalidName
	}
	return name, nil
}

// UploadBase reduces a client-supplied upload name to its final path element,
// the way browsers may send "C:\dir\photo.jpg". Names with ".." segments are
// rejected outright. The result is not yet checked for visibility.
func UploadBase(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", ErrInvalidName
		}
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// UploadName is UploadBase followed by CleanName.
func UploadName(name string) (string, error) {
	base, err := UploadBase(name)
	if err != nil {
		return "", err
	}
	return CleanName(base)
}
