package main

import (
	"context"
	"strconv"
	"sync"

	authgate "github.com/boffins/authgate"
)

// memoryUsers is a process-local UserProvider. It exists so the binary
// runs standalone; real deployments implement the provider over their
// own user database.
type memoryUsers struct {
	mu    sync.Mutex
	next  int
	users map[string]authgate.UserRecord
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]authgate.UserRecord)}
}

func (m *memoryUsers) GetUserByIdentifier(_ context.Context, identifier string) (authgate.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.users[identifier]
	if !ok {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return record, nil
}

func (m *memoryUsers) CreateUser(_ context.Context, input authgate.CreateUserInput) (authgate.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[input.Identifier]; ok {
		return authgate.UserRecord{}, authgate.ErrProviderDuplicateIdentifier
	}

	m.next++
	record := authgate.UserRecord{
		UserID:       strconv.Itoa(m.next),
		Identifier:   input.Identifier,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}
	m.users[input.Identifier] = record
	return record, nil
}
