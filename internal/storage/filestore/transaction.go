package filestore

import "context"

// TransactionManager runs fn directly. Files offer no atomicity across the
// post and the index, so a crash between the two leaves a post without an
// index entry.
type TransactionManager struct{}

func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

func (TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
