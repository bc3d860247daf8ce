package coordinator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/coinpurse/internal/api"
	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/session"
	"github.com/Veraticus/coinpurse/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) ListWallets(ctx context.Context) ([]model.Wallet, error) {
	args := m.Called(ctx)
	wallets, _ := args.Get(0).([]model.Wallet)
	return wallets, args.Error(1)
}

func (m *mockRemote) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *mockRemote) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *mockRemote) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (model.Category, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *mockRemote) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRemote) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	args := m.Called(ctx)
	transactions, _ := args.Get(0).([]model.Transaction)
	return transactions, args.Error(1)
}

func (m *mockRemote) CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *mockRemote) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *mockRemote) DeleteTransaction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestDeleteCategory_DefaultRejectedLocally(t *testing.T) {
	remote := &mockRemote{}
	s := store.New()
	s.Categories.Upsert(model.Category{ID: "c1", Name: "General", Type: model.CategoryTypeExpense, IsDefault: true})
	c := New(remote, s)

	err := c.DeleteCategory(context.Background(), "c1")

	var ruleErr *common.BusinessRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, DefaultCategoryMessage, ruleErr.Message)
	assert.Equal(t, 1, s.Categories.Len())
	remote.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

func TestDeleteCategory_RemovesAfterAck(t *testing.T) {
	remote := &mockRemote{}
	remote.On("DeleteCategory", mock.Anything, "c2").Return(nil)
	s := store.New()
	s.Categories.Upsert(model.Category{ID: "c2", Name: "Coffee", Type: model.CategoryTypeExpense})
	c := New(remote, s)

	require.NoError(t, c.DeleteCategory(context.Background(), "c2"))
	assert.Equal(t, 0, s.Categories.Len())
	remote.AssertExpectations(t)
}

func TestDeleteCategory_FailureLeavesStore(t *testing.T) {
	remote := &mockRemote{}
	remote.On("DeleteCategory", mock.Anything, "c2").Return(&common.APIError{Status: 409, Message: "Category in use"})
	s := store.New()
	s.Categories.Upsert(model.Category{ID: "c2"})
	c := New(remote, s)

	err := c.DeleteCategory(context.Background(), "c2")

	assert.Equal(t, "Category in use", common.Notice(err))
	assert.Equal(t, 1, s.Categories.Len())
}

func TestCreateThenUpdateCategory_RoundTrip(t *testing.T) {
	remote := &mockRemote{}
	in := model.CategoryInput{Name: "Groceries", Type: model.CategoryTypeExpense, Icon: "food", Color: "#00ff00"}
	echo := model.Category{ID: "srv-1", Name: "Groceries", Type: model.CategoryTypeExpense, Icon: "food", Color: "#00ff00"}
	remote.On("CreateCategory", mock.Anything, in).Return(echo, nil)

	edited := model.CategoryInput{Name: "Food & Groceries", Type: model.CategoryTypeExpense, Icon: "food", Color: "#00ff00"}
	editedEcho := echo
	editedEcho.Name = "Food & Groceries"
	remote.On("UpdateCategory", mock.Anything, "srv-1", edited).Return(editedEcho, nil)

	s := store.New()
	s.Categories.Upsert(model.Category{ID: "existing"})
	c := New(remote, s)
	ctx := context.Background()

	_, err := c.CreateCategory(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{{ID: "existing"}, echo}, s.Categories.List(), "categories append at the tail")

	_, err = c.UpdateCategory(ctx, "srv-1", edited)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{{ID: "existing"}, editedEcho}, s.Categories.List())
}

func TestCreateTransaction_UsesServerCopyAtHead(t *testing.T) {
	remote := &mockRemote{}
	in := model.TransactionInput{Type: model.TransactionTypeIncome, Amount: decimal.NewFromInt(100), WalletID: "w1", CategoryID: "c1"}
	canonical := model.Transaction{
		ID:         "t-new",
		Type:       model.TransactionTypeIncome,
		Amount:     decimal.RequireFromString("100.00"),
		WalletID:   "w1",
		CategoryID: "c1",
		Notes:      "normalized by server",
	}
	remote.On("CreateTransaction", mock.Anything, in).Return(canonical, nil)

	s := store.New()
	s.Transactions.Upsert(model.Transaction{ID: "t-old"})
	c := New(remote, s)

	_, err := c.CreateTransaction(context.Background(), in)
	require.NoError(t, err)

	list := s.Transactions.List()
	require.Len(t, list, 2)
	assert.Equal(t, canonical, list[0])
	assert.Equal(t, "t-old", list[1].ID)
}

func TestUpdateTransaction_InPlace(t *testing.T) {
	remote := &mockRemote{}
	in := model.TransactionInput{Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(7)}
	updated := model.Transaction{ID: "t2", Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(7)}
	remote.On("UpdateTransaction", mock.Anything, "t2", in).Return(updated, nil)

	s := store.New()
	s.Transactions.Replace([]model.Transaction{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}})
	c := New(remote, s)

	_, err := c.UpdateTransaction(context.Background(), "t2", in)
	require.NoError(t, err)

	list := s.Transactions.List()
	require.Len(t, list, 3)
	assert.Equal(t, updated, list[1])
}

func TestMutationFailureNeverTouchesStore(t *testing.T) {
	remote := &mockRemote{}
	remote.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(model.Transaction{}, &common.NetworkError{Err: errors.New("reset by peer")})
	s := store.New()
	c := New(remote, s)

	_, err := c.CreateTransaction(context.Background(), model.TransactionInput{})

	assert.Equal(t, common.NetworkNotice, common.Notice(err))
	assert.Equal(t, 0, s.Transactions.Len())
}

func TestCanceledCallerDiscardsLateResponse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := &mockRemote{}
	remote.On("CreateTransaction", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(model.Transaction{ID: "late"}, nil)
	s := store.New()
	c := New(remote, s)

	_, err := c.CreateTransaction(ctx, model.TransactionInput{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Transactions.Len())
}

func TestDeleteTransaction(t *testing.T) {
	remote := &mockRemote{}
	remote.On("DeleteTransaction", mock.Anything, "t1").Return(nil)
	s := store.New()
	s.Transactions.Upsert(model.Transaction{ID: "t1"})
	c := New(remote, s)

	require.NoError(t, c.DeleteTransaction(context.Background(), "t1"))
	assert.Equal(t, 0, s.Transactions.Len())
}

func TestLoadAll(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ListWallets", mock.Anything).Return([]model.Wallet{{ID: "w1"}}, nil)
	remote.On("ListCategories", mock.Anything).Return([]model.Category{{ID: "c1"}, {ID: "c2"}}, nil)
	remote.On("ListTransactions", mock.Anything).Return([]model.Transaction{{ID: "t1"}}, nil)

	s := store.New()
	c := New(remote, s)

	var mu sync.Mutex
	var done []string
	err := c.LoadAll(context.Background(), func(kind string) {
		mu.Lock()
		defer mu.Unlock()
		done = append(done, kind)
	})

	require.NoError(t, err)
	sort.Strings(done)
	assert.Equal(t, []string{"categories", "transactions", "wallets"}, done)
	assert.Equal(t, 1, s.Wallets.Len())
	assert.Equal(t, 2, s.Categories.Len())
	assert.Equal(t, 1, s.Transactions.Len())
}

func TestLoadAll_PropagatesFailure(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ListWallets", mock.Anything).Return(nil, &common.AuthError{Message: "Token expired"})
	remote.On("ListCategories", mock.Anything).Return([]model.Category{}, nil).Maybe()
	remote.On("ListTransactions", mock.Anything).Return([]model.Transaction{}, nil).Maybe()

	c := New(remote, store.New())

	err := c.LoadAll(context.Background(), nil)

	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestLoadWallets_RetriesTransientFailure(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ListWallets", mock.Anything).Return(nil, &common.NetworkError{Err: errors.New("reset by peer")}).Once()
	remote.On("ListWallets", mock.Anything).Return([]model.Wallet{{ID: "w1", Name: "Cash"}}, nil).Once()

	s := store.New()
	c := New(remote, s, WithRetryOptions(common.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond}))

	require.NoError(t, c.LoadWallets(context.Background()))
	assert.Equal(t, "Cash", s.WalletName("w1"))
	remote.AssertNumberOfCalls(t, "ListWallets", 2)
}

func TestLoadCategories_GivesUpAfterMaxAttempts(t *testing.T) {
	remote := &mockRemote{}
	remote.On("ListCategories", mock.Anything).Return(nil, &common.APIError{Status: 503, Message: "Service Unavailable"})

	s := store.New()
	s.Categories.Upsert(model.Category{ID: "c1"})
	c := New(remote, s, WithRetryOptions(common.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond}))

	err := c.LoadCategories(context.Background())
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, "Service Unavailable", common.Notice(err))
	assert.Equal(t, 1, s.Categories.Len())
	remote.AssertNumberOfCalls(t, "ListCategories", 2)
}

func TestMutations_RejectServerCopyWithoutID(t *testing.T) {
	remote := &mockRemote{}
	remote.On("CreateCategory", mock.Anything, mock.Anything).Return(model.Category{}, nil)
	remote.On("UpdateCategory", mock.Anything, "c1", mock.Anything).Return(model.Category{}, nil)
	remote.On("CreateTransaction", mock.Anything, mock.Anything).Return(model.Transaction{}, nil)
	remote.On("UpdateTransaction", mock.Anything, "t1", mock.Anything).Return(model.Transaction{}, nil)

	s := store.New()
	s.Categories.Upsert(model.Category{ID: "c1", Name: "Food", Type: model.CategoryTypeExpense})
	s.Transactions.Upsert(model.Transaction{ID: "t1", Type: model.TransactionTypeExpense})
	c := New(remote, s)
	ctx := context.Background()

	tests := []struct {
		call func() error
		name string
	}{
		{
			name: "create category",
			call: func() error {
				_, err := c.CreateCategory(ctx, model.CategoryInput{Name: "Coffee"})
				return err
			},
		},
		{
			name: "update category",
			call: func() error {
				_, err := c.UpdateCategory(ctx, "c1", model.CategoryInput{Name: "Coffee"})
				return err
			},
		},
		{
			name: "create transaction",
			call: func() error {
				_, err := c.CreateTransaction(ctx, model.TransactionInput{})
				return err
			},
		},
		{
			name: "update transaction",
			call: func() error {
				_, err := c.UpdateTransaction(ctx, "t1", model.TransactionInput{})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			var apiErr *common.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, []model.Category{{ID: "c1", Name: "Food", Type: model.CategoryTypeExpense}}, s.Categories.List())
			assert.Equal(t, []model.Transaction{{ID: "t1", Type: model.TransactionTypeExpense}}, s.Transactions.List())
		})
	}
}

func TestCreate_EmptyEnvelopeLeavesStoreUntouched(t *testing.T) {
	for _, body := range []string{`{"success":true}`, `{"success":true,"data":null}`} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, body)
			}))
			t.Cleanup(server.Close)

			client, err := api.NewClient(api.Config{BaseURL: server.URL}, session.Static("tok"))
			require.NoError(t, err)
			s := store.New()
			c := New(client, s)

			_, err = c.CreateCategory(context.Background(), model.CategoryInput{Name: "Coffee", Type: model.CategoryTypeExpense})
			assert.Equal(t, "Empty response from server", common.Notice(err))

			_, err = c.CreateTransaction(context.Background(), model.TransactionInput{Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(5)})
			assert.Equal(t, "Empty response from server", common.Notice(err))

			assert.Zero(t, s.Categories.Len())
			assert.Zero(t, s.Transactions.Len())
		})
	}
}
