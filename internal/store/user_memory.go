package store

import (
	"context"
	"sync"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"
)

// MemoryDirectory keeps registered accounts in process memory: they live
// for the lifetime of the server and are lost on restart. Passwords are
// stored as bcrypt hashes.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]entity.User)}
}

func (d *MemoryDirectory) Register(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.users[username]; taken {
		return usecase.ErrUsernameTaken
	}
	d.users[username] = entity.User{Username: username, Password: hash}
	return nil
}

func (d *MemoryDirectory) VerifyCredentials(ctx context.Context, username, password string) error {
	d.mu.RLock()
	u, ok := d.users[username]
	d.mu.RUnlock()

	// Unknown username and wrong password fail identically.
	if !ok || !auth.VerifyPassword(u.Password, password) {
		return usecase.ErrInvalidCredentials
	}
	return nil
}

func (d *MemoryDirectory) Exists(ctx context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[username]
	return ok, nil
}
