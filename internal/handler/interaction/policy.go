package interaction

import (
	"forget-bot/internal/pkg/config"
)

// AccessPolicy decides who may use the bot.
type AccessPolicy interface {
	Allowed(userID string) bool
}

// AllowList admits the configured user ids; an empty list admits everyone.
type AllowList struct {
	ids map[string]struct{}
}

func NewAllowList(cfg config.Config) *AllowList {
	ids := make(map[string]struct{}, len(cfg.Access.AllowedUserIDs))
	for _, id := range cfg.Access.AllowedUserIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &AllowList{ids: ids}
}

func (a *AllowList) Allowed(userID string) bool {
	if len(a.ids) == 0 {
		return true
	}
	_, ok := a.ids[userID]
	return ok
}
