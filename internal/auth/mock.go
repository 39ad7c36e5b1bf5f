package auth

import (
	"strings"
	"unicode"

	"opshub/internal/users"
)

// MockUsers is the development directory offered by the mock SSO screen.
var MockUsers = []MockUser{
	{Email: "jean.dupont@smartsolutions.fr", Name: "Jean Dupont", Role: string(users.RoleOperational), SiteIDs: []uint{1, 2}},
	{Email: "sophie.martin@smartsolutions.fr", Name: "Sophie Martin", Role: string(users.RoleDirector), SiteIDs: []uint{1, 2, 3}},
	{Email: "marc.bernard@smartsolutions.fr", Name: "Marc Bernard", Role: string(users.RoleAdmin), SiteIDs: []uint{1, 2, 3}},
}

// NameFromEmail turns "jean.dupont@x" into "Jean Dupont".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || unicode.IsSpace(r)
	})

	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
