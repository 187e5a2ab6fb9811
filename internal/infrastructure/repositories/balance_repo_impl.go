package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"farm-bridge.backend/internal/domain/entities"
	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/internal/infrastructure/models"
	"farm-bridge.backend/pkg/utils"
)

// BalanceRepositoryImpl implements BalanceRepository
type BalanceRepositoryImpl struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepositoryImpl {
	return &BalanceRepositoryImpl{db: db}
}

func (r *BalanceRepositoryImpl) GetByAddress(ctx context.Context, address string) (*entities.BalanceAccount, error) {
	m, err := r.account(ctx, address)
	if err != nil {
		return nil, err
	}
	return &entities.BalanceAccount{
		Address:   m.Address,
		Balance:   m.Balance,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *BalanceRepositoryImpl) Credit(ctx context.Context, address string, amount string) error {
	m, err := r.accountForUpdate(ctx, address)
	if err != nil {
		return err
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.BalanceAccount{}).
		Where("address = ?", address).
		Updates(map[string]interface{}{
			"balance":    utils.AddWei(m.Balance, amount),
			"updated_at": time.Now(),
		}).Error
}

// Transfer debits from and credits to within the caller's transaction. An
// insufficient source balance fails the whole operation with
// ErrTransferFailed and no effect. A transfer from an address to itself
// moves nothing; it only checks the balance covers the amount. Rows are
// locked in address order so concurrent transfers over the same accounts
// cannot deadlock.
func (r *BalanceRepositoryImpl) Transfer(ctx context.Context, from, to string, amount string) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	first, second := from, to
	if second < first {
		first, second = second, first
	}
	locked := map[string]*models.BalanceAccount{}
	for _, addr := range []string{first, second} {
		if _, ok := locked[addr]; ok {
			continue
		}
		m, err := r.accountForUpdate(ctx, addr)
		if err != nil {
			return err
		}
		locked[addr] = m
	}

	value := utils.MustParseWei(amount)
	balance := utils.MustParseWei(locked[from].Balance)
	if balance.Cmp(value) < 0 {
		return domainerrors.ErrTransferFailed
	}

	if from == to {
		return nil
	}

	now := time.Now()
	debited := balance.Sub(balance, value).String()
	if err := db.Model(&models.BalanceAccount{}).
		Where("address = ?", from).
		Updates(map[string]interface{}{
			"balance":    debited,
			"updated_at": now,
		}).Error; err != nil {
		return err
	}

	return db.Model(&models.BalanceAccount{}).
		Where("address = ?", to).
		Updates(map[string]interface{}{
			"balance":    utils.AddWei(locked[to].Balance, amount),
			"updated_at": now,
		}).Error
}

// account fetches the row for an address, creating a zero-balance account on
// first use.
func (r *BalanceRepositoryImpl) account(ctx context.Context, address string) (*models.BalanceAccount, error) {
	return r.fetchAccount(ctx, address, false)
}

// accountForUpdate is account with a row lock held until the surrounding
// transaction finishes. Mutating paths go through this.
func (r *BalanceRepositoryImpl) accountForUpdate(ctx context.Context, address string) (*models.BalanceAccount, error) {
	return r.fetchAccount(ctx, address, true)
}

func (r *BalanceRepositoryImpl) fetchAccount(ctx context.Context, address string, lock bool) (*models.BalanceAccount, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	q := db
	if lock {
		q = lockForUpdate(q)
	}
	var m models.BalanceAccount
	err := q.Where("address = ?", address).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.BalanceAccount{
			Address:   address,
			Balance:   "0",
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DepositRepositoryImpl implements DepositRepository
type DepositRepositoryImpl struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepositoryImpl {
	return &DepositRepositoryImpl{db: db}
}

func (r *DepositRepositoryImpl) Create(ctx context.Context, deposit *entities.Deposit) error {
	m := &models.Deposit{
		TxHash:    deposit.TxHash,
		Address:   deposit.Address,
		Amount:    deposit.Amount,
		CreatedAt: time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	deposit.CreatedAt = m.CreatedAt
	return nil
}

func (r *DepositRepositoryImpl) ExistsByTxHash(ctx context.Context, txHash string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Deposit{}).
		Where("tx_hash = ?", txHash).
		Count(&count).Error
	return count > 0, err
}
