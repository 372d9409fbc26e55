// Package auth resolves the GitHub access token used by the connectors.
//
// Tokens come from the --token flag, the GITHUB_TOKEN and GH_TOKEN
// environment variables, or the gh CLI's stored credentials, in that order.
// Without any of them requests are anonymous.
package auth
