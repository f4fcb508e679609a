package command

import (
	"huddlebot/internal/core/port"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Registry maps message prefixes to command registrations. Matching is
// case-insensitive and longest-prefix-first, so "!topic bypass" is never
// dispatched as a plain "!topic".
type Registry struct {
	registrations []port.Registration
}

func (r *Registry) Register(reg port.Registration) {
	log.Info().Str("prefix", reg.Handler.GetPrefix()).Msg("adding command handler to registry")

	r.registrations = append(r.registrations, reg)
	sort.SliceStable(r.registrations, func(i, j int) bool {
		return len(r.registrations[i].Handler.GetPrefix()) > len(r.registrations[j].Handler.GetPrefix())
	})
}

func (r *Registry) Match(text string) (*port.Registration, bool) {
	text = strings.ToLower(text)

	for i := range r.registrations {
		if strings.HasPrefix(text, strings.ToLower(r.registrations[i].Handler.GetPrefix())) {
			return &r.registrations[i], true
		}
	}

	return nil, false
}

func (r *Registry) ListPrefixes() []string {
	prefixes := make([]string, len(r.registrations))

	for i, reg := range r.registrations {
		prefixes[i] = reg.Handler.GetPrefix()
	}

	return prefixes
}
