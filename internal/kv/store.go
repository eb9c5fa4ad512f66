// Package kv defines the key-value contract the set log and favorites are
// persisted through, along with its local backends.
//
// Every collection lives under one key and is written whole, so a single Set
// is atomic for that collection only. There are no multi-key transactions.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrStorage matches every *StorageError via errors.Is.
var ErrStorage = errors.New("storage error")

// Store reads, writes and removes named blobs.
// Get reports found=false with a nil error for an absent key.
// Delete of an absent key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StorageError reports a failed storage operation or a malformed stored blob.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("kv %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Wrap returns err as a *StorageError for op on key. Nil stays nil and an
// existing StorageError is returned unchanged.
func Wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
