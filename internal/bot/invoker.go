package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ppiankov/tjporte/internal/roles"
	"github.com/ppiankov/tjporte/internal/tribunal"
)

// roleNamer resolves a guild role ID to its display name.
type roleNamer func(guildID, roleID string) (string, bool)

// resolveInvoker reads the caller's identity and current roles from the
// interaction payload. Outside a guild the caller holds no roles.
func resolveInvoker(i *discordgo.Interaction, names roleNamer) tribunal.Invoker {
	if i.Member == nil {
		if i.User == nil {
			return tribunal.Invoker{}
		}
		return tribunal.Invoker{ID: i.User.ID, DisplayName: displayName(nil, i.User)}
	}

	held := make([]string, 0, len(i.Member.Roles))
	for _, id := range i.Member.Roles {
		if name, ok := names(i.GuildID, id); ok {
			held = append(held, name)
		}
	}

	inv := tribunal.Invoker{
		DisplayName: displayName(i.Member, i.Member.User),
		Roles:       roles.NewSet(held...),
	}
	if i.Member.User != nil {
		inv.ID = i.Member.User.ID
	}
	return inv
}

// displayName prefers the guild nickname, then the global name, then the username.
func displayName(m *discordgo.Member, u *discordgo.User) string {
	if m != nil && m.Nick != "" {
		return m.Nick
	}
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
