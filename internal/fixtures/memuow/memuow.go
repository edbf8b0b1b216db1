// Package memuow provides an in-memory UnitOfWork for service tests. It
// mirrors the semantics the services rely on from the real implementation:
// snapshot rollback on error, copy-on-read accounts, and optimistic version
// checks on save.
package memuow

import (
	"context"
	"strings"
	"sync"

	"github.com/vmunteanu/mdbank/pkg/domain"
	"github.com/vmunteanu/mdbank/pkg/repository"
)

// Store is the backing state shared by every UnitOfWork handed out. The
// zero value is not usable; construct with New.
type Store struct {
	mu           sync.Mutex
	users        map[uint]*domain.User
	accounts     map[uint]*domain.Account
	accountTypes map[string]*domain.AccountType
	transactions []*domain.Transaction

	nextUserID    uint
	nextAccountID uint
	nextTxID      uint

	// SaveErrs is drained one error per account save, letting tests inject
	// conflicts or transient failures ahead of an eventual success.
	SaveErrs []error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:        make(map[uint]*domain.User),
		accounts:     make(map[uint]*domain.Account),
		accountTypes: make(map[string]*domain.AccountType),
	}
}

// SeedUser inserts a user and returns it with its assigned id.
func (s *Store) SeedUser(username string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := &domain.User{ID: s.nextUserID, Username: username, Email: username + "@example.com"}
	s.users[u.ID] = u
	return u
}

// SeedAccountType inserts a catalog entry.
func (s *Store) SeedAccountType(t domain.AccountType) *domain.AccountType {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uint(len(s.accountTypes) + 1)
	s.accountTypes[t.TypeName] = &t
	return s.accountTypes[t.TypeName]
}

// SeedAccount inserts an account and returns it with its assigned id.
func (s *Store) SeedAccount(a domain.Account) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccountID++
	a.ID = s.nextAccountID
	cp := a
	s.accounts[a.ID] = &cp
	out := a
	return &out
}

// Account returns a copy of the stored account.
func (s *Store) Account(id uint) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.accounts[id]
}

// Transactions returns a snapshot of the transaction log.
func (s *Store) Transactions() []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// UoW implements repository.UnitOfWork on the store.
type UoW struct {
	store *Store
	inTx  bool
}

// NewUoW wraps the store in a UnitOfWork.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do serializes units of work on the store's mutex and rolls every map back
// to its pre-call snapshot when fn errors, so a failed transfer commits
// nothing.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snapAccounts := make(map[uint]*domain.Account, len(u.store.accounts))
	for id, a := range u.store.accounts {
		cp := *a
		snapAccounts[id] = &cp
	}
	snapTxLen := len(u.store.transactions)

	if err := fn(&UoW{store: u.store, inTx: true}); err != nil {
		u.store.accounts = snapAccounts
		u.store.transactions = u.store.transactions[:snapTxLen]
		return err
	}
	return nil
}

func (u *UoW) Accounts() repository.AccountRepository         { return &accountRepo{u} }
func (u *UoW) Transactions() repository.TransactionRepository { return &transactionRepo{u} }
func (u *UoW) Users() repository.UserRepository               { return &userRepo{u} }
func (u *UoW) AccountTypes() repository.AccountTypeRepository { return &accountTypeRepo{u} }

// lock guards direct repository use outside Do. Inside Do the store mutex is
// already held.
func (u *UoW) lock() func() {
	if u.inTx {
		return func() {}
	}
	u.store.mu.Lock()
	return u.store.mu.Unlock
}

type accountRepo struct{ u *UoW }

func (r *accountRepo) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	defer r.u.lock()()
	a, ok := r.u.store.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) FindByAccountNumber(ctx context.Context, number string) (*domain.Account, error) {
	defer r.u.lock()()
	for _, a := range r.u.store.accounts {
		if a.AccountNumber == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *accountRepo) ListByUsername(ctx context.Context, username string) ([]*domain.Account, error) {
	defer r.u.lock()()
	var userID uint
	for _, usr := range r.u.store.users {
		if usr.Username == username {
			userID = usr.ID
		}
	}
	var out []*domain.Account
	for _, a := range r.u.store.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *accountRepo) ExistsByAccountNumber(ctx context.Context, number string) (bool, error) {
	a, err := r.FindByAccountNumber(ctx, number)
	return a != nil, err
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	defer r.u.lock()()
	r.u.store.nextAccountID++
	account.ID = r.u.store.nextAccountID
	cp := *account
	r.u.store.accounts[account.ID] = &cp
	return nil
}

func (r *accountRepo) Save(ctx context.Context, account *domain.Account) error {
	defer r.u.lock()()
	if len(r.u.store.SaveErrs) > 0 {
		err := r.u.store.SaveErrs[0]
		r.u.store.SaveErrs = r.u.store.SaveErrs[1:]
		if err != nil {
			return err
		}
	}
	stored, ok := r.u.store.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return domain.ErrConcurrencyConflict
	}
	account.Version++
	cp := *account
	r.u.store.accounts[account.ID] = &cp
	return nil
}

type transactionRepo struct{ u *UoW }

func (r *transactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	defer r.u.lock()()
	r.u.store.nextTxID++
	tx.ID = r.u.store.nextTxID
	cp := *tx
	r.u.store.transactions = append(r.u.store.transactions, &cp)
	return nil
}

func (r *transactionRepo) ListByUsername(ctx context.Context, username string) ([]*domain.Transaction, error) {
	defer r.u.lock()()
	numbers := map[string]bool{}
	for _, usr := range r.u.store.users {
		if usr.Username != username {
			continue
		}
		for _, a := range r.u.store.accounts {
			if a.UserID == usr.ID {
				numbers[a.AccountNumber] = true
			}
		}
	}
	var out []*domain.Transaction
	for _, tx := range r.u.store.transactions {
		if numbers[tx.FromAccountNumber] || numbers[tx.ToAccountNumber] {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *transactionRepo) ListByAccountNumber(ctx context.Context, number string) ([]*domain.Transaction, error) {
	defer r.u.lock()()
	var out []*domain.Transaction
	for _, tx := range r.u.store.transactions {
		if tx.FromAccountNumber == number || tx.ToAccountNumber == number {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

type userRepo struct{ u *UoW }

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.u.lock()()
	for _, usr := range r.u.store.users {
		if strings.EqualFold(usr.Username, username) {
			cp := *usr
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	usr, err := r.FindByUsername(ctx, username)
	return usr != nil, err
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	defer r.u.lock()()
	r.u.store.nextUserID++
	user.ID = r.u.store.nextUserID
	cp := *user
	r.u.store.users[user.ID] = &cp
	return nil
}

type accountTypeRepo struct{ u *UoW }

func (r *accountTypeRepo) FindByTypeName(ctx context.Context, typeName string) (*domain.AccountType, error) {
	defer r.u.lock()()
	t, ok := r.u.store.accountTypes[typeName]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
