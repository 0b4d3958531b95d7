package repository

import (
	"log/slog"
	"time"

	"fileshare/internal/domain/stats"
	"fileshare/internal/infrastructure/jsonstore"
)

// statRecord is the on-disk shape of one entry in file_stats.json
type statRecord struct {
	Downloads    int64           `json:"downloads"`
	Views        int64           `json:"views"`
	Uploads      int64           `json:"uploads"`
	Uploaded     jsonstore.Time  `json:"uploaded"`
	LastAccessed *jsonstore.Time `json:"last_accessed"`
}

func (r statRecord) toStat() stats.FileStat {
	return stats.FileStat{
		Downloads:    r.Downloads,
		Views:        r.Views,
		Uploads:      r.Uploads,
		Uploaded:     r.Uploaded.Time,
		LastAccessed: r.LastAccessed.Ptr(),
	}
}

func fromStat(s stats.FileStat) statRecord {
	return statRecord{
		Downloads:    s.Downloads,
		Views:        s.Views,
		Uploads:      s.Uploads,
		Uploaded:     jsonstore.Time{Time: s.Uploaded},
		LastAccessed: jsonstore.TimePtr(s.LastAccessed),
	}
}

type statsRepository struct {
	record *jsonstore.Record[map[string]statRecord]
}

// NewStatsRepository opens the statistics map stored at path.
func NewStatsRepository(path string, logger *slog.Logger) stats.Repository {
	return &statsRepository{
		record: jsonstore.Open(path, map[string]statRecord{}, logger),
	}
}

func (r *statsRepository) Touch(name string, action stats.Action, at time.Time) (stats.FileStat, error) {
	var updated stats.FileStat
	err := r.record.Update(func(m *map[string]statRecord) error {
		if *m == nil {
			*m = map[string]statRecord{}
		}
		current, ok := (*m)[name]
		s := current.toStat()
		if !ok {
			s = stats.FileStat{Uploaded: at}
		}
		s.Apply(action, at)
		(*m)[name] = fromStat(s)
		updated = s
		return nil
	})
	return updated, err
}

func (r *statsRepository) Remove(names ...string) error {
	return r.record.Update(func(m *map[string]statRecord) error {
		for _, name := range names {
			delete(*m, name)
		}
		return nil
	})
}

func (r *statsRepository) Get(name string) (stats.FileStat, bool) {
	var (
		s  stats.FileStat
		ok bool
	)
	r.record.View(func(m map[string]statRecord) {
		var rec statRecord
		if rec, ok = m[name]; ok {
			s = rec.toStat()
		}
	})
	return s, ok
}

func (r *statsRepository) All() map[string]stats.FileStat {
	out := make(map[string]stats.FileStat)
	r.record.View(func(m map[string]statRecord) {
		for name, rec := range m {
			out[name] = rec.toStat()
		}
	})
	return out
}
