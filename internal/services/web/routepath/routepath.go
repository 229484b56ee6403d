// Package routepath centralizes portal route constants.
package routepath

// Root is the bare application root, before language normalization.
const Root = "/"

// Healthz is the supervision endpoint, outside the language prefix.
const Healthz = "/healthz"

// LanguageHome returns the home path for a language code.
func LanguageHome(lang string) string {
	return "/" + lang
}
