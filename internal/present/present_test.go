package present_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/icssc/matchy-meetups-bot/internal/history"
	"github.com/icssc/matchy-meetups-bot/internal/present"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/pairing"
)

func TestFormatMatch(t *testing.T) {
	assert.Equal(t, "<@1> and <@2>", present.FormatMatch(pairing.Match[roster.UserID]{1, 2}))
	assert.Equal(t, "<@1>, <@2>, and <@3>", present.FormatMatch(pairing.Match[roster.UserID]{1, 2, 3}))
	assert.Equal(t, "<@1>", present.FormatMatch(pairing.Match[roster.UserID]{1}))
}

func TestPreview(t *testing.T) {
	p := pairing.Pairing[roster.UserID]{
		Matches: []pairing.Match[roster.UserID]{{1, 2}, {3, 4, 5}},
	}
	got := present.Preview(p, "oct_1a2b3c4d")
	assert.Equal(t, "<@1> and <@2>\n<@3>, <@4>, and <@5>\n"+
		"Total paired members: 5\n"+
		"All members were matched with new people\n"+
		"To send this pairing, use this key: `oct_1a2b3c4d`", got)

	p.Imperfect = []roster.UserID{3, 5}
	assert.Contains(t, present.Preview(p, "k"),
		"could only be matched with people they may have matched with before: <@3>, <@5>")
}

// TestHistoryRecordParsesBack: what is written to the transcript is read back as the same groups.
func TestHistoryRecordParsesBack(t *testing.T) {
	ms := []pairing.Match[roster.UserID]{{10, 20}, {30, 40, 50}}
	rec := present.HistoryRecord("https://chat.example/m/1", ms)
	now := time.Now()
	got := history.ParseMatches([]history.Message{{Timestamp: now, Content: rec}}, now, time.Hour, 1)
	assert.Equal(t, ms, got)
}

func TestAnnouncementAndDirectMessage(t *testing.T) {
	a := present.Announcement(present.RoleMention("matchy-meetups"), []pairing.Match[roster.UserID]{{1, 2}})
	assert.Equal(t, "Hey @matchy-meetups, here are the pairings for the next round of matchy meetups!\n\n<@1> and <@2>", a)

	dm := present.DirectMessage([]present.Partner{{ID: 2, Name: "Bob"}, {ID: 3, Name: "Cy"}})
	assert.Contains(t, dm, "**Your pairing is with:** <@2> (Bob) and <@3> (Cy)")
}
