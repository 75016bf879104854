package git

import (
	"net/url"
	"regexp"
	"strings"
)

// scpLikeRemoteRegex matches the scp-like syntax [user@]host:path. Git only
// reads a remote this way when no slash precedes the first colon.
var scpLikeRemoteRegex = regexp.MustCompile(`^(?:[A-Za-z0-9._~-]+@)?[A-Za-z0-9.-]+:[^\s]+$`)

var remoteSchemes = map[string]bool{
	"ssh":     true,
	"git":     true,
	"http":    true,
	"https":   true,
	"ftp":     true,
	"ftps":    true,
	"file":    true,
	"git+ssh": true,
	"ssh+git": true,
}

// IsRemoteURI reports whether remote is a well-formed remote repository
// address: a URL with a scheme git understands, or scp-like [user@]host:path.
// Local paths are not URIs; callers check those against the filesystem.
func IsRemoteURI(remote string) bool {
	if remote == "" || strings.ContainsAny(remote, " \t\n") {
		return false
	}

	if !strings.Contains(remote, "://") {
		return scpLikeRemoteRegex.MatchString(remote)
	}

	parsed, err := url.Parse(remote)
	if err != nil {
		return false
	}
	if !remoteSchemes[strings.ToLower(parsed.Scheme)] {
		return false
	}
	if parsed.Scheme == "file" {
		return parsed.Path != ""
	}
	return parsed.Host != "" && parsed.Path != "" && parsed.Path != "/"
}
