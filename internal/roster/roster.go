// Package roster supplies the participants of a round: every member of a
// directory that carries the configured role.
package roster

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrRoleNotFound is returned when the directory does not know the role.
	ErrRoleNotFound = errors.New("roster: role not found")

	// ErrNotEnoughMembers is returned when fewer than two members carry the role.
	ErrNotEnoughMembers = errors.New("roster: not enough members")
)

const (
	// MaxPages bounds paging in case end-of-page detection ever breaks.
	MaxPages = 20

	// PageLimit is the number of members requested per page.
	PageLimit = 1000
)

// UserID identifies a member; rendered as a mention by the presentation layer.
type UserID uint64

func (id UserID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseUserID parses a decimal user id.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("roster: bad user id %q: %w", s, err)
	}
	return UserID(v), nil
}

// Member is one directory entry.
type Member struct {
	ID    UserID   `toml:"id"`
	Name  string   `toml:"name"`
	Roles []string `toml:"roles"`
}

// HasRole reports whether m carries role.
func (m Member) HasRole(role string) bool {
	return slices.Contains(m.Roles, role)
}

// Directory lists members page by page in ascending id order.
type Directory interface {
	// Members returns up to limit members with id > after (after == 0 starts at the beginning).
	Members(ctx context.Context, limit int, after UserID) ([]Member, error)

	// HasRole reports whether role is defined in the directory.
	HasRole(ctx context.Context, role string) (bool, error)

	// Member looks a single member up by id.
	Member(ctx context.Context, id UserID) (Member, error)
}

// MembersWithRole pages through dir and returns the ids of members carrying role.
func MembersWithRole(ctx context.Context, dir Directory, role string) ([]UserID, error) {
	ok, err := dir.HasRole(ctx, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: could not find a role with name `%s`", ErrRoleNotFound, role)
	}

	var (
		after UserID
		out   []UserID
	)
	for page := 0; page < MaxPages; page++ {
		members, err := dir.Members(ctx, PageLimit, after)
		if err != nil {
			return nil, fmt.Errorf("roster: fetching page %d: %w", page, err)
		}
		for _, m := range members {
			if m.HasRole(role) {
				out = append(out, m.ID)
			}
		}
		if len(members) < PageLimit {
			break
		}
		after = members[len(members)-1].ID
	}
	return out, nil
}

// Participants is MembersWithRole that also enforces the two-member minimum.
func Participants(ctx context.Context, dir Directory, role string) ([]UserID, error) {
	ids, err := MembersWithRole(ctx, dir, role)
	if err != nil {
		return nil, err
	}
	if len(ids) <= 1 {
		suffix := "s"
		if len(ids) == 1 {
			suffix = ""
		}
		return nil, fmt.Errorf("%w: need at least two members to create a pairing (found %d member%s with role `%s`)",
			ErrNotEnoughMembers, len(ids), suffix, role)
	}
	return ids, nil
}
