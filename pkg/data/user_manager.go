// Package data provides data management functionality for the Skillscape application.
// This file contains operations related to user management.
package data

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skillscape/local-app/pkg/event"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

// UserOperations defines the interface for user-related operations
type UserOperations interface {
	UserAdd(newUserInfo model.UserInfo) (*model.User, error)
	UserAuthenticate(username, password string) (bool, error)
	UserGet(username string) (*model.User, error)
	UserList() []*model.User
	UserToInfo(user *model.User) model.UserInfo
	UserUpdate(username string, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error
	UserDelete(username string) error
}

// UserManager handles all user-related operations and maintains the user
// accounts in memory, persisting them on every mutation. Passwords are
// stored as bcrypt hashes.
type UserManager struct {
	users        []*model.User
	store        storage.Store
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewUserManager creates a new UserManager instance and loads the user
// accounts from storage.
func NewUserManager(store storage.Store, eventManager *event.EventManager, logger *log.Logger) (*UserManager, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new UserManager", nil)

	if store == nil {
		logger.Error(ctx, "Store not initialized", nil)
		return nil, fmt.Errorf("store not initialized")
	}
	if eventManager == nil {
		logger.Error(ctx, "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	um := &UserManager{
		users:        []*model.User{},
		store:        store,
		eventManager: eventManager,
		logger:       logger,
	}
	if err := um.load(); err != nil {
		logger.Error(ctx, "Failed to load users", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	logger.Info(ctx, "UserManager created successfully", log.Fields{"count": len(um.users)})
	return um, nil
}

func (um *UserManager) load() error {
	var users []*model.User
	found, err := um.store.Load(storageKeyUsers, &users)
	if err != nil {
		return err
	}
	if found {
		um.users = users
	}
	return nil
}

func (um *UserManager) saveUsers() error {
	return um.store.Save(storageKeyUsers, um.users)
}

func (um *UserManager) findUser(username string) (*model.User, int) {
	for i, user := range um.users {
		if user.Username == username {
			return user, i
		}
	}
	return nil, -1
}

// UserAdd creates a new user with the given username, password, and active state.
func (um *UserManager) UserAdd(newUserInfo model.UserInfo) (*model.User, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Adding new user", log.Fields{"username": newUserInfo.Username})

	if newUserInfo.Username == "" {
		um.logger.Warn(ctx, "Username is empty", nil)
		return nil, fmt.Errorf("username: %w", ErrMissingRequiredField)
	}

	// Check if the user already exists
	if existing, _ := um.findUser(newUserInfo.Username); existing != nil {
		um.logger.Warn(ctx, "User already exists", log.Fields{"username": newUserInfo.Username})
		return nil, fmt.Errorf("user %q: %w", newUserInfo.Username, ErrDuplicateName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newUserInfo.Password), bcrypt.DefaultCost)
	if err != nil {
		um.logger.Error(ctx, "Failed to hash password", log.Fields{"error": err, "username": newUserInfo.Username})
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Username:     newUserInfo.Username,
		PasswordHash: hash,
		Active:       newUserInfo.Active,
		Created:      now,
		Updated:      now,
	}

	um.users = append(um.users, user)
	if err := um.saveUsers(); err != nil {
		um.users = um.users[:len(um.users)-1]
		um.logger.Error(ctx, "Failed to save users", log.Fields{"error": err, "username": user.Username})
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	um.logger.Info(ctx, "User added successfully", log.Fields{"username": user.Username})
	return user, nil
}

// UserAuthenticate verifies a user's credentials against the stored bcrypt
// hash. Inactive users never authenticate.
func (um *UserManager) UserAuthenticate(username, password string) (bool, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Authenticating user", log.Fields{"username": username})

	user, _ := um.findUser(username)
	if user == nil {
		um.logger.Warn(ctx, "User doesn't exist", log.Fields{"username": username})
		return false, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if !user.Active {
		um.logger.Warn(ctx, "User is inactive", log.Fields{"username": username})
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		um.logger.Warn(ctx, "Authentication failed", log.Fields{"username": username})
		return false, nil
	}

	um.logger.Info(ctx, "User authenticated successfully", log.Fields{"username": username})
	return true, nil
}

// UserGet retrieves a user by username.
func (um *UserManager) UserGet(username string) (*model.User, error) {
	user, _ := um.findUser(username)
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, nil
}

// UserList returns all users ordered by username.
func (um *UserManager) UserList() []*model.User {
	users := make([]*model.User, len(um.users))
	copy(users, um.users)
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users
}

// UserToInfo extracts UserInfo from a User instance
func (um *UserManager) UserToInfo(user *model.User) model.UserInfo {
	return model.UserInfo{
		Username: user.Username,
		Active:   user.Active,
	}
}

// UserUpdate updates an existing user's username, password or active state.
func (um *UserManager) UserUpdate(username string, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Updating user", log.Fields{"username": username, "filter": userFilter})

	user, _ := um.findUser(username)
	if user == nil {
		um.logger.Warn(ctx, "User not found", log.Fields{"username": username})
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if userFilter.Username && userUpdateInfo.Username == "" {
		um.logger.Warn(ctx, "Username is empty", log.Fields{"username": username})
		return fmt.Errorf("username: %w", ErrMissingRequiredField)
	}
	if userFilter.Username && userUpdateInfo.Username != user.Username {
		if existing, _ := um.findUser(userUpdateInfo.Username); existing != nil {
			um.logger.Warn(ctx, "Username already taken", log.Fields{"username": userUpdateInfo.Username})
			return fmt.Errorf("user %q: %w", userUpdateInfo.Username, ErrDuplicateName)
		}
	}

	// Store old values for potential rollback
	old := *user

	if userFilter.Username {
		user.Username = userUpdateInfo.Username
	}
	if userFilter.Password {
		hash, err := bcrypt.GenerateFromPassword([]byte(userUpdateInfo.Password), bcrypt.DefaultCost)
		if err != nil {
			*user = old
			um.logger.Error(ctx, "Failed to hash password", log.Fields{"error": err, "username": username})
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if userFilter.Active {
		user.Active = userUpdateInfo.Active
	}
	user.Updated = time.Now()

	if err := um.saveUsers(); err != nil {
		*user = old
		um.logger.Error(ctx, "Failed to save users", log.Fields{"error": err, "username": username})
		return fmt.Errorf("failed to save users: %w", err)
	}

	um.logger.Info(ctx, "User updated successfully", log.Fields{"username": user.Username})
	return nil
}

// UserDelete removes a user.
func (um *UserManager) UserDelete(username string) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Deleting user", log.Fields{"username": username})

	user, idx := um.findUser(username)
	if user == nil {
		um.logger.Warn(ctx, "User not found", log.Fields{"username": username})
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	um.users = append(um.users[:idx], um.users[idx+1:]...)
	if err := um.saveUsers(); err != nil {
		um.users = append(um.users[:idx], append([]*model.User{user}, um.users[idx:]...)...)
		um.logger.Error(ctx, "Failed to save users", log.Fields{"error": err, "username": username})
		return fmt.Errorf("failed to save users: %w", err)
	}

	// Publish UserDeleted event
	um.eventManager.Publish(event.Event{
		Type: event.UserDeleted,
		Data: user,
	})

	um.logger.Info(ctx, "User deleted successfully", log.Fields{"username": username})
	return nil
}
