// Package recipient derives who an invitation is addressed to from its launch parameters.
package recipient

import (
	"net/url"
	"strings"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Resolve reads the optional "name" and "title" parameters.
// A present, non-empty value overrides the default; anything else is ignored.
func Resolve(params url.Values) domain.RecipientInfo {
	info := domain.DefaultRecipient()
	if params == nil {
		return info
	}
	if v := strings.TrimSpace(params.Get(domain.ParamName)); v != "" {
		info.Name = v
	}
	if v := strings.TrimSpace(params.Get(domain.ParamTitle)); v != "" {
		info.Title = v
	}
	return info
}

// ResolveQuery is Resolve for a raw query string.
// Malformed pairs are skipped; the well-formed ones still apply.
func ResolveQuery(rawQuery string) domain.RecipientInfo {
	params, _ := url.ParseQuery(rawQuery)
	return Resolve(params)
}

// Link builds a personalised invitation URL for info on top of base.
// Fields equal to the defaults are left out so the link stays short.
func Link(base string, info domain.RecipientInfo) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	def := domain.DefaultRecipient()
	if info.Name != "" && info.Name != def.Name {
		q.Set(domain.ParamName, info.Name)
	}
	if info.Title != "" && info.Title != def.Title {
		q.Set(domain.ParamTitle, info.Title)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
