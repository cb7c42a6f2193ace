package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (t *fakeTx) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeSettlementStore struct {
	settlements map[int64]*models.Settlement
	nextID      int64
	setKeyErr   error
}

func newFakeSettlementStore() *fakeSettlementStore {
	return &fakeSettlementStore{settlements: make(map[int64]*models.Settlement)}
}

func (f *fakeSettlementStore) Create(_ repository.Querier, payerID, payeeID int64, amount float64) (int64, error) {
	f.nextID++
	f.settlements[f.nextID] = &models.Settlement{
		ID:      f.nextID,
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  amount,
		Status:  utils.SettlementPending,
	}
	return f.nextID, nil
}

func (f *fakeSettlementStore) SetKey(_ repository.Querier, id int64, key, status string) error {
	if f.setKeyErr != nil {
		return f.setKeyErr
	}
	f.settlements[id].SettlementKey = key
	f.settlements[id].Status = status
	return nil
}

func (f *fakeSettlementStore) GetForUpdate(_ repository.Querier, id int64) (*models.Settlement, error) {
	s, ok := f.settlements[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSettlementStore) UpdateStatus(_ repository.Querier, id int64, status string) error {
	f.settlements[id].Status = status
	return nil
}

// fakeMemberKeyStore mimics the user_groups lookup: one shared group, one
// current key per payee, rotation replaces it.
type fakeMemberKeyStore struct {
	groupID   int64
	keys      map[int64]string
	rotations int
	rotateErr error
}

func (f *fakeMemberKeyStore) FindPayeeKeyGroup(_ repository.Querier, payeeID int64, key string, _ int64) (int64, error) {
	if key != "" && f.keys[payeeID] == key {
		return f.groupID, nil
	}
	return 0, sql.ErrNoRows
}

func (f *fakeMemberKeyStore) RotateMemberKey(_ repository.Querier, _, userID int64) (string, error) {
	if f.rotateErr != nil {
		return "", f.rotateErr
	}
	f.rotations++
	newKey := utils.GenerateMemberKey()
	f.keys[userID] = newKey
	return newKey, nil
}

type fakeUserFinder struct {
	users map[int64]*models.User
}

func (f *fakeUserFinder) FindByID(id int64) (*models.User, error) {
	return f.users[id], nil
}

// txLog hands out a fresh transaction per begin and remembers them all
type txLog struct {
	txs []*fakeTx
}

func (l *txLog) begin() (repository.Tx, error) {
	tx := &fakeTx{}
	l.txs = append(l.txs, tx)
	return tx, nil
}

func (l *txLog) last() *fakeTx {
	return l.txs[len(l.txs)-1]
}

func newTestSettlementService(settlements *fakeSettlementStore, keys *fakeMemberKeyStore, users *fakeUserFinder) (*SettlementService, *txLog) {
	log := &txLog{}
	return &SettlementService{
		begin:       log.begin,
		settlements: settlements,
		memberKeys:  keys,
		users:       users,
	}, log
}

func seedKeyGenerated(store *fakeSettlementStore, payerID, payeeID int64, amount float64) int64 {
	id, _ := store.Create(nil, payerID, payeeID, amount)
	_ = store.SetKey(nil, id, utils.GenerateSettlementKey(), utils.SettlementKeyGenerated)
	return id
}

func TestSettlementService_InitiateGeneratesKeyAtomically(t *testing.T) {
	store := newFakeSettlementStore()
	service, txs := newTestSettlementService(store, nil, &fakeUserFinder{
		users: map[int64]*models.User{2: {ID: 2, Name: "Bharat"}},
	})

	response, err := service.InitiateSettlement(1, 2, 250)

	require.NoError(t, err)
	assert.Len(t, response.Key, utils.SettlementKeyLength)
	assert.Equal(t, utils.SettlementKeyGenerated, store.settlements[response.SettlementID].Status)
	assert.Equal(t, response.Key, store.settlements[response.SettlementID].SettlementKey)
	assert.True(t, txs.last().committed)
}

func TestSettlementService_InitiateRejectsBadInput(t *testing.T) {
	store := newFakeSettlementStore()
	service, _ := newTestSettlementService(store, nil, &fakeUserFinder{
		users: map[int64]*models.User{2: {ID: 2, Name: "Bharat"}},
	})

	_, err := service.InitiateSettlement(1, 2, 0)
	assert.Error(t, err, "non-positive amount")

	_, err = service.InitiateSettlement(1, 1, 100)
	assert.Error(t, err, "self-settlement")

	_, err = service.InitiateSettlement(1, 99, 100)
	require.Error(t, err, "unknown payee")
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)

	assert.Empty(t, store.settlements)
}

func TestSettlementService_InitiateKeyWriteFailureRollsBack(t *testing.T) {
	store := newFakeSettlementStore()
	store.setKeyErr = errors.New("write failed")
	service, txs := newTestSettlementService(store, nil, &fakeUserFinder{
		users: map[int64]*models.User{2: {ID: 2, Name: "Bharat"}},
	})

	_, err := service.InitiateSettlement(1, 2, 250)

	require.Error(t, err)
	assert.False(t, txs.last().committed)
	assert.True(t, txs.last().rolledBack)
}

func TestSettlementService_ConfirmWithCurrentKeySettlesAndRotates(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{groupID: 10, keys: map[int64]string{2: "a1b2c3"}}
	service, txs := newTestSettlementService(store, keys, nil)
	id := seedKeyGenerated(store, 1, 2, 250)

	err := service.ConfirmSettlement(id, "a1b2c3")

	require.NoError(t, err)
	assert.Equal(t, utils.SettlementSettled, store.settlements[id].Status)
	assert.Equal(t, 1, keys.rotations)
	assert.NotEqual(t, "a1b2c3", keys.keys[2], "payee's key must change on confirm")
	assert.True(t, txs.last().committed)
}

func TestSettlementService_ConsumedKeyCannotConfirmAgain(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{groupID: 10, keys: map[int64]string{2: "a1b2c3"}}
	service, _ := newTestSettlementService(store, keys, nil)
	first := seedKeyGenerated(store, 1, 2, 100)
	second := seedKeyGenerated(store, 1, 2, 150)

	require.NoError(t, service.ConfirmSettlement(first, "a1b2c3"))

	// the key that confirmed the first settlement has been rotated away
	err := service.ConfirmSettlement(second, "a1b2c3")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, utils.SettlementKeyGenerated, store.settlements[second].Status)

	// the freshly rotated key validates
	require.NoError(t, service.ConfirmSettlement(second, keys.keys[2]))
	assert.Equal(t, utils.SettlementSettled, store.settlements[second].Status)
	assert.Equal(t, 2, keys.rotations)
}

func TestSettlementService_ConfirmWrongKeyRejected(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{groupID: 10, keys: map[int64]string{2: "a1b2c3"}}
	service, txs := newTestSettlementService(store, keys, nil)
	id := seedKeyGenerated(store, 1, 2, 250)

	err := service.ConfirmSettlement(id, "wrong0")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, utils.SettlementKeyGenerated, store.settlements[id].Status)
	assert.Equal(t, 0, keys.rotations)
	assert.False(t, txs.last().committed)
}

func TestSettlementService_ConfirmSettledRejected(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{groupID: 10, keys: map[int64]string{2: "a1b2c3"}}
	service, _ := newTestSettlementService(store, keys, nil)
	id := seedKeyGenerated(store, 1, 2, 250)
	require.NoError(t, service.ConfirmSettlement(id, "a1b2c3"))

	err := service.ConfirmSettlement(id, keys.keys[2])

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, 1, keys.rotations)
}

func TestSettlementService_ConfirmUnknownSettlementRejected(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{groupID: 10, keys: map[int64]string{2: "a1b2c3"}}
	service, _ := newTestSettlementService(store, keys, nil)

	err := service.ConfirmSettlement(42, "a1b2c3")

	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestSettlementService_RotationFailureAbortsConfirm(t *testing.T) {
	store := newFakeSettlementStore()
	keys := &fakeMemberKeyStore{
		groupID:   10,
		keys:      map[int64]string{2: "a1b2c3"},
		rotateErr: errors.New("rotation failed"),
	}
	service, txs := newTestSettlementService(store, keys, nil)
	id := seedKeyGenerated(store, 1, 2, 250)

	err := service.ConfirmSettlement(id, "a1b2c3")

	require.Error(t, err)
	assert.False(t, txs.last().committed, "a confirm that could not rotate must not commit")
	assert.True(t, txs.last().rolledBack)
}
