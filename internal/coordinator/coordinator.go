// Package coordinator issues remote reads and writes and merges the server's
// canonical results into the local store. The store is only ever changed
// after the server acknowledges a call.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/store"
	"golang.org/x/sync/errgroup"
)

// DefaultCategoryMessage rejects deleting a system category.
const DefaultCategoryMessage = "Default categories cannot be deleted"

// Remote is the subset of the API the coordinator needs.
type Remote interface {
	ListWallets(ctx context.Context) ([]model.Wallet, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// Coordinator ties the remote API to the local store.
type Coordinator struct {
	remote Remote
	store  *store.Store
	retry  common.RetryOptions
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRetryOptions sets how list loads are retried. Mutations are never
// retried.
func WithRetryOptions(opts common.RetryOptions) Option {
	return func(c *Coordinator) {
		c.retry = opts
	}
}

// New creates a coordinator.
func New(remote Remote, s *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{remote: remote, store: s, retry: common.DefaultRetryOptions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the store fed by this coordinator.
func (c *Coordinator) Store() *store.Store {
	return c.store
}

// stale reports whether the caller went away while the request was in
// flight. Late responses are then dropped instead of merged.
func stale(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		slog.Debug("Discarding response for canceled request", "error", err)
		return fmt.Errorf("request canceled: %w", err)
	}
	return nil
}

// confirm reports whether a mutation's response may be merged: the caller
// is still waiting and the server returned an entity it assigned an id to.
func confirm[T store.Entity](ctx context.Context, entity T) error {
	if err := stale(ctx); err != nil {
		return err
	}
	if entity.EntityID() == "" {
		slog.Warn("Discarding server copy without id")
		return &common.APIError{Message: "Server returned no id"}
	}
	return nil
}

// LoadWallets refreshes the wallet collection.
func (c *Coordinator) LoadWallets(ctx context.Context) error {
	var wallets []model.Wallet
	err := common.WithRetry(ctx, func() error {
		var err error
		wallets, err = c.remote.ListWallets(ctx)
		return err
	}, c.retry)
	if err != nil {
		return fmt.Errorf("failed to load wallets: %w", err)
	}
	if err := stale(ctx); err != nil {
		return err
	}
	c.store.Wallets.Replace(wallets)
	return nil
}

// LoadCategories refreshes the category collection.
func (c *Coordinator) LoadCategories(ctx context.Context) error {
	var categories []model.Category
	err := common.WithRetry(ctx, func() error {
		var err error
		categories, err = c.remote.ListCategories(ctx)
		return err
	}, c.retry)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if err := stale(ctx); err != nil {
		return err
	}
	c.store.Categories.Replace(categories)
	return nil
}

// LoadTransactions refreshes the transaction collection.
func (c *Coordinator) LoadTransactions(ctx context.Context) error {
	var transactions []model.Transaction
	err := common.WithRetry(ctx, func() error {
		var err error
		transactions, err = c.remote.ListTransactions(ctx)
		return err
	}, c.retry)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := stale(ctx); err != nil {
		return err
	}
	c.store.Transactions.Replace(transactions)
	return nil
}

// LoadAll refreshes every collection concurrently. The optional progress
// callback is invoked once per finished collection.
func (c *Coordinator) LoadAll(ctx context.Context, progress func(kind string)) error {
	g, gctx := errgroup.WithContext(ctx)
	loaders := map[string]func(context.Context) error{
		"wallets":      c.LoadWallets,
		"categories":   c.LoadCategories,
		"transactions": c.LoadTransactions,
	}
	for kind, load := range loaders {
		g.Go(func() error {
			if err := load(gctx); err != nil {
				return err
			}
			if progress != nil {
				progress(kind)
			}
			return nil
		})
	}
	return g.Wait()
}

// CreateCategory creates a category and appends the server's copy.
func (c *Coordinator) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	created, err := c.remote.CreateCategory(ctx, in)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	if err := confirm(ctx, created); err != nil {
		return model.Category{}, err
	}
	c.store.Categories.Upsert(created)
	common.LogInfo("Category created", common.Fields{"id": created.ID, "name": created.Name})
	return created, nil
}

// UpdateCategory updates a category in place with the server's copy.
func (c *Coordinator) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (model.Category, error) {
	updated, err := c.remote.UpdateCategory(ctx, id, in)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to update category: %w", err)
	}
	if err := confirm(ctx, updated); err != nil {
		return model.Category{}, err
	}
	c.store.Categories.Upsert(updated)
	common.LogInfo("Category updated", common.Fields{"id": updated.ID})
	return updated, nil
}

// DeleteCategory deletes a category. Default categories are rejected locally
// and never reach the server.
func (c *Coordinator) DeleteCategory(ctx context.Context, id string) error {
	if cat, ok := c.store.Category(id); ok && cat.IsDefault {
		return &common.BusinessRuleError{Message: DefaultCategoryMessage}
	}
	if err := c.remote.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := stale(ctx); err != nil {
		return err
	}
	c.store.Categories.Remove(id)
	common.LogInfo("Category deleted", common.Fields{"id": id})
	return nil
}

// CreateTransaction creates a transaction and prepends the server's copy.
func (c *Coordinator) CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	created, err := c.remote.CreateTransaction(ctx, in)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := confirm(ctx, created); err != nil {
		return model.Transaction{}, err
	}
	c.store.Transactions.Upsert(created)
	common.LogInfo("Transaction created", common.Fields{"id": created.ID, "type": string(created.Type)})
	return created, nil
}

// UpdateTransaction updates a transaction in place with the server's copy.
func (c *Coordinator) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error) {
	updated, err := c.remote.UpdateTransaction(ctx, id, in)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	if err := confirm(ctx, updated); err != nil {
		return model.Transaction{}, err
	}
	c.store.Transactions.Upsert(updated)
	common.LogInfo("Transaction updated", common.Fields{"id": updated.ID})
	return updated, nil
}

// DeleteTransaction deletes a transaction.
func (c *Coordinator) DeleteTransaction(ctx context.Context, id string) error {
	if err := c.remote.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := stale(ctx); err != nil {
		return err
	}
	c.store.Transactions.Remove(id)
	common.LogInfo("Transaction deleted", common.Fields{"id": id})
	return nil
}
