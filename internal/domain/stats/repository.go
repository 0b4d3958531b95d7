package stats

import "time"

// Repository defines the contract for the statistics record. Every mutating
// call persists the whole record before returning.
type Repository interface {
	Touch(name string, action Action, at time.Time) (FileStat, error)
	Remove(names ...string) error
	Get(name string) (FileStat, bool)
	All() map[string]FileStat
}
