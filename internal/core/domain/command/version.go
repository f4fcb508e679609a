package command

import (
	"context"
	"fmt"
	"huddlebot/internal/core/domain"
	"huddlebot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type Version struct {
	messenger port.Messenger
	version   string
	prefix    string
}

func NewVersion(messenger port.Messenger, version, prefix string) *Version {
	return &Version{messenger: messenger, version: version, prefix: prefix}
}

func (v *Version) GetPrefix() string {
	return v.prefix
}

func (v *Version) Respond(ctx context.Context, _ *domain.Message) error {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "huddlebot v%s", v.version)

	if info, err := host.InfoWithContext(ctx); err == nil {
		fmt.Fprintf(sb, "\nhost up %s", (time.Duration(info.Uptime) * time.Second).String())
	} else {
		log.Warn().Err(err).Msg("failed to read host info")
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		fmt.Fprintf(sb, ", memory %.1f%% used", vm.UsedPercent)
	} else {
		log.Warn().Err(err).Msg("failed to read memory info")
	}

	if _, err := v.messenger.SendMessage(ctx, sb.String(), ""); err != nil {
		return fmt.Errorf("failed to send version: %w", err)
	}

	return nil
}
