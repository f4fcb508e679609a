package service

import "strings"

type Authorizer interface {
	IsAdmin(username string) bool
}

// AdminList authorizes admin-restricted commands by username. The list comes
// from configuration and is fixed for the process lifetime.
type AdminList struct {
	admins map[string]struct{}
}

func NewAdminList(usernames []string) *AdminList {
	admins := make(map[string]struct{}, len(usernames))
	for _, username := range usernames {
		username = strings.TrimSpace(username)
		if username != "" {
			admins[strings.ToLower(username)] = struct{}{}
		}
	}

	return &AdminList{admins: admins}
}

func (a *AdminList) IsAdmin(username string) bool {
	_, ok := a.admins[strings.ToLower(username)]
	return ok
}
