package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/model"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (model.AuthResult, error) {
	var out model.AuthResult
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
		out:    &out,
	})
	if err != nil {
		return model.AuthResult{}, err
	}
	return out, requireToken(out)
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (model.AuthResult, error) {
	var out model.AuthResult
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   map[string]string{"email": email, "password": password, "name": name},
		out:    &out,
	})
	if err != nil {
		return model.AuthResult{}, err
	}
	return out, requireToken(out)
}

// requireToken rejects an auth response that would leave the user logged
// out after reporting success.
func requireToken(res model.AuthResult) error {
	if res.Token == "" {
		return &common.APIError{Status: http.StatusOK, Message: "Server returned no session token"}
	}
	return nil
}

// RequestOTP asks the server to email a recovery code.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   map[string]string{"email": email},
	})
}

// VerifyOTP checks a recovery code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/verify-otp",
		body:   map[string]string{"email": email, "otp": otp},
	})
}

// ResetPassword sets a new password using a verified code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body:   map[string]string{"email": email, "otp": otp, "newPassword": newPassword},
	})
}

// ListWallets returns the user's wallets.
func (c *Client) ListWallets(ctx context.Context) ([]model.Wallet, error) {
	var out []model.Wallet
	err := c.do(ctx, request{method: http.MethodGet, path: "/wallets", auth: true, out: &out})
	return out, err
}

// ListCategories returns the user's categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.do(ctx, request{method: http.MethodGet, path: "/categories", auth: true, out: &out})
	return out, err
}

// CreateCategory creates a category and returns the server's copy.
func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, request{method: http.MethodPost, path: "/categories", auth: true, body: in, out: &out})
	return out, err
}

// UpdateCategory replaces a category and returns the server's copy.
func (c *Client) UpdateCategory(ctx context.Context, id string, in model.CategoryInput) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, request{method: http.MethodPut, path: "/categories/" + url.PathEscape(id), auth: true, body: in, out: &out})
	return out, err
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/categories/" + url.PathEscape(id), auth: true})
}

// ListTransactions returns the user's transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := c.do(ctx, request{method: http.MethodGet, path: "/transactions", auth: true, out: &out})
	return out, err
}

// CreateTransaction creates a transaction and returns the server's copy.
func (c *Client) CreateTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	var out model.Transaction
	err := c.do(ctx, request{method: http.MethodPost, path: "/transactions", auth: true, body: in, out: &out})
	return out, err
}

// UpdateTransaction replaces a transaction and returns the server's copy.
func (c *Client) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error) {
	var out model.Transaction
	err := c.do(ctx, request{method: http.MethodPut, path: "/transactions/" + url.PathEscape(id), auth: true, body: in, out: &out})
	return out, err
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/transactions/" + url.PathEscape(id), auth: true})
}
