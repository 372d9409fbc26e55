package domain

// AuthMethod identifies where an access token came from.
type AuthMethod string

// Supported token origins.
const (
	// AuthMethodNone means no token is available; public API limits apply.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodFlag is a token passed on the command line.
	AuthMethodFlag AuthMethod = "flag"

	// AuthMethodEnv is a token read from GITHUB_TOKEN or GH_TOKEN.
	AuthMethodEnv AuthMethod = "env"

	// AuthMethodGHCLI is a token stored by the gh CLI.
	AuthMethodGHCLI AuthMethod = "gh-cli"
)

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}
