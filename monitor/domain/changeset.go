package domain

import "encoding/json"

// ChangeSet is the delta between two consecutive snapshots.
type ChangeSet struct {
	Added       []ProcessRecord `json:"added" yaml:"added"`
	Updated     []ProcessRecord `json:"updated" yaml:"updated"`
	Removed     []uint32        `json:"removed" yaml:"removed"`
	TimestampMs uint64          `json:"timestamp_ms" yaml:"timestamp_ms"`
}

func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

func (c ChangeSet) MarshalJSON() ([]byte, error) {
	type plain ChangeSet
	if c.Added == nil {
		c.Added = []ProcessRecord{}
	}
	if c.Updated == nil {
		c.Updated = []ProcessRecord{}
	}
	if c.Removed == nil {
		c.Removed = []uint32{}
	}
	return json.Marshal(plain(c))
}
