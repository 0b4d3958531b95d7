package repository

import (
	"log/slog"
	"sort"

	"fileshare/internal/domain/account"
	"fileshare/internal/infrastructure/jsonstore"
)

// accountRecord is the on-disk shape of one entry in users.json
type accountRecord struct {
	PasswordHash string         `json:"password_hash"`
	Role         account.Role   `json:"role"`
	Created      jsonstore.Time `json:"created"`
}

type accountRepository struct {
	record *jsonstore.Record[map[string]accountRecord]
}

// NewAccountRepository opens the account map stored at path.
func NewAccountRepository(path string, logger *slog.Logger) account.Repository {
	return &accountRepository{
		record: jsonstore.Open(path, map[string]accountRecord{}, logger),
	}
}

func toAccount(username string, rec accountRecord) *account.Account {
	return &account.Account{
		Username:     username,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		Created:      rec.Created.Time,
	}
}

func fromAccount(a *account.Account) accountRecord {
	return accountRecord{
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		Created:      jsonstore.Time{Time: a.Created},
	}
}

func (r *accountRepository) Create(a *account.Account) error {
	return r.record.Update(func(m *map[string]accountRecord) error {
		if *m == nil {
			*m = map[string]accountRecord{}
		}
		if _, ok := (*m)[a.Username]; ok {
			return account.ErrAccountExists
		}
		(*m)[a.Username] = fromAccount(a)
		return nil
	})
}

func (r *accountRepository) Get(username string) (*account.Account, error) {
	var found *account.Account
	r.record.View(func(m map[string]accountRecord) {
		if rec, ok := m[username]; ok {
			found = toAccount(username, rec)
		}
	})
	if found == nil {
		return nil, account.ErrAccountNotFound
	}
	return found, nil
}

func (r *accountRepository) Update(a *account.Account) error {
	return r.record.Update(func(m *map[string]accountRecord) error {
		if _, ok := (*m)[a.Username]; !ok {
			return account.ErrAccountNotFound
		}
		(*m)[a.Username] = fromAccount(a)
		return nil
	})
}

func (r *accountRepository) Delete(username string) error {
	return r.record.Update(func(m *map[string]accountRecord) error {
		if _, ok := (*m)[username]; !ok {
			return account.ErrAccountNotFound
		}
		delete(*m, username)
		return nil
	})
}

func (r *accountRepository) List() ([]account.Account, error) {
	var accounts []account.Account
	r.record.View(func(m map[string]accountRecord) {
		accounts = make([]account.Account, 0, len(m))
		for name, rec := range m {
			accounts = append(accounts, *toAccount(name, rec))
		}
	})
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})
	return accounts, nil
}

func (r *accountRepository) Count() (int, error) {
	var n int
	r.record.View(func(m map[string]accountRecord) {
		n = len(m)
	})
	return n, nil
}
