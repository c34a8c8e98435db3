package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// ErrMemberNotFound is returned by Member for unknown ids.
var ErrMemberNotFound = errors.New("roster: member not found")

// rosterFile is the on-disk layout:
//
//	roles = ["matchy-meetups"]
//
//	[[members]]
//	id = 1001
//	name = "Ada"
//	roles = ["matchy-meetups"]
type rosterFile struct {
	Roles   []string `toml:"roles"`
	Members []Member `toml:"members"`
}

// FileDirectory is a Directory backed by a TOML file, re-read on every page
// request so edits take effect without a restart.
type FileDirectory struct {
	path string

	mu sync.Mutex
}

// NewFileDirectory returns a directory reading path.
func NewFileDirectory(path string) *FileDirectory {
	return &FileDirectory{path: path}
}

func (d *FileDirectory) load() (rosterFile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var rf rosterFile
	data, err := os.ReadFile(d.path)
	if err != nil {
		return rf, fmt.Errorf("roster: read %s: %w", d.path, err)
	}
	if err := toml.Unmarshal(data, &rf); err != nil {
		return rf, fmt.Errorf("roster: parse %s: %w", d.path, err)
	}
	sort.Slice(rf.Members, func(i, j int) bool { return rf.Members[i].ID < rf.Members[j].ID })
	return rf, nil
}

// Members implements Directory.
func (d *FileDirectory) Members(ctx context.Context, limit int, after UserID) ([]Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rf, err := d.load()
	if err != nil {
		return nil, err
	}
	start := sort.Search(len(rf.Members), func(i int) bool { return rf.Members[i].ID > after })
	end := min(start+limit, len(rf.Members))
	return rf.Members[start:end], nil
}

// HasRole implements Directory. Roles listed on any member count as defined.
func (d *FileDirectory) HasRole(ctx context.Context, role string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rf, err := d.load()
	if err != nil {
		return false, err
	}
	if slices.Contains(rf.Roles, role) {
		return true, nil
	}
	for _, m := range rf.Members {
		if m.HasRole(role) {
			return true, nil
		}
	}
	return false, nil
}

// Member implements Directory.
func (d *FileDirectory) Member(ctx context.Context, id UserID) (Member, error) {
	if err := ctx.Err(); err != nil {
		return Member{}, err
	}
	rf, err := d.load()
	if err != nil {
		return Member{}, err
	}
	i := sort.Search(len(rf.Members), func(i int) bool { return rf.Members[i].ID >= id })
	if i == len(rf.Members) || rf.Members[i].ID != id {
		return Member{}, fmt.Errorf("%w: %d", ErrMemberNotFound, id)
	}
	return rf.Members[i], nil
}
