package account

// Repository defines the contract for account storage operations
type Repository interface {
	Create(a *Account) error
	Get(username string) (*Account, error)
	Update(a *Account) error
	Delete(username string) error
	List() ([]Account, error)
	Count() (int, error)
}
