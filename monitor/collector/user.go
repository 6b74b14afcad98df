package collector

import (
	"os/user"
	"runtime"
	"strconv"

	cache "github.com/Code-Hex/go-generics-cache"
)

const unknownUser = "unknown"

// ResolveCurrentUser returns the login name of the user running procmon.
// POSIX systems consult USER then LOGNAME, Windows consults USERNAME.
func ResolveCurrentUser(getenv func(string) string, goos string) string {
	keys := []string{"USER", "LOGNAME"}
	if goos == "windows" {
		keys = []string{"USERNAME"}
	}
	for _, key := range keys {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return unknownUser
}

func defaultGOOS() string {
	return runtime.GOOS
}

// userDirectory maps uids to user names for the duration of one collection
// pass. Reset drops every entry so renamed or deleted accounts are picked up.
type userDirectory struct {
	names  *cache.Cache[uint32, string]
	lookup func(uid string) (string, error)
}

func newUserDirectory(lookup func(uid string) (string, error)) *userDirectory {
	if lookup == nil {
		lookup = lookupUsername
	}
	return &userDirectory{
		names:  cache.New[uint32, string](),
		lookup: lookup,
	}
}

func lookupUsername(uid string) (string, error) {
	u, err := user.LookupId(uid)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func (d *userDirectory) Reset() {
	for _, uid := range d.names.Keys() {
		d.names.Delete(uid)
	}
}

// Name returns the user name for uid. Unresolvable uids are remembered as ""
// for the rest of the pass and reported with ok=false.
func (d *userDirectory) Name(uid uint32) (string, bool) {
	if name, ok := d.names.Get(uid); ok {
		return name, name != ""
	}
	name, err := d.lookup(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		name = ""
	}
	d.names.Set(uid, name)
	return name, name != ""
}
