// Package present renders pairings as chat messages.
package present

import (
	"fmt"
	"strings"

	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/pairing"
)

// Mention formats an id as a chat mention, e.g. <@123>.
func Mention(id roster.UserID) string {
	return "<@" + id.String() + ">"
}

// RoleMention formats a role name as a chat mention, e.g. @matchy-meetups.
func RoleMention(role string) string {
	return "@" + role
}

// FormatMatch renders one group: "a and b" or "a, b, and c".
func FormatMatch(m pairing.Match[roster.UserID]) string {
	switch len(m) {
	case 0:
		return ""
	case 1:
		return Mention(m[0])
	}
	names := make([]string, len(m))
	for i, id := range m {
		names[i] = Mention(id)
	}
	head := strings.Join(names[:len(names)-1], ", ")
	if len(m) > 2 {
		return head + ", and " + names[len(names)-1]
	}
	return head + " and " + names[len(names)-1]
}

// FormatPairs renders every group on its own line.
func FormatPairs(ms []pairing.Match[roster.UserID]) string {
	lines := make([]string, len(ms))
	for i, m := range ms {
		lines[i] = FormatMatch(m)
	}
	return strings.Join(lines, "\n")
}

// Preview is the admin-only reply to a pairing request.
func Preview(p pairing.Pairing[roster.UserID], key string) string {
	var total int
	for _, m := range p.Matches {
		total += len(m)
	}

	imperfect := "All members were matched with new people"
	if len(p.Imperfect) > 0 {
		names := make([]string, len(p.Imperfect))
		for i, id := range p.Imperfect {
			names[i] = Mention(id)
		}
		imperfect = "The following members could only be matched with people they may have matched with before: " +
			strings.Join(names, ", ")
	}

	return fmt.Sprintf("%s\nTotal paired members: %d\n%s\nTo send this pairing, use this key: `%s`",
		FormatPairs(p.Matches), total, imperfect, key)
}

// Announcement is the broadcast message for a committed round.
func Announcement(roleMention string, ms []pairing.Match[roster.UserID]) string {
	return fmt.Sprintf("Hey %s, here are the pairings for the next round of matchy meetups!\n\n%s",
		roleMention, FormatPairs(ms))
}

// HistoryRecord is the transcript entry for a committed round. Its lines are
// exactly what the history parser reads back.
func HistoryRecord(link string, ms []pairing.Match[roster.UserID]) string {
	return link + "\n" + FormatPairs(ms)
}

// Partner names one of a member's partners in a direct message.
type Partner struct {
	ID   roster.UserID
	Name string
}

// DirectMessage is the note sent to each member of a group.
func DirectMessage(partners []Partner) string {
	names := make([]string, len(partners))
	for i, p := range partners {
		names[i] = fmt.Sprintf("%s (%s)", Mention(p.ID), p.Name)
	}
	return "Hey, thanks for joining Matchy Meetups. Your pairing for this round is here! " +
		"Please take this opportunity to reach out to them and schedule some time to hang out " +
		"in the next two weeks. I hope you enjoy!\n\n" +
		"**Your pairing is with:** " + strings.Join(names, " and ") + "\n\n" +
		"_(responses here will not be seen; please message an organizer directly if you have any questions)_"
}
