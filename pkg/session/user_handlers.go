package session

import (
	"context"
	"errors"
	"fmt"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// handleUserAdd handles the user add command
func handleUserAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user add command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for user add", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("user add command requires 1 or 2 arguments: <username> [password]")
	}

	username := cmd.Args[0]
	var password string
	if len(cmd.Args) == 2 {
		password = cmd.Args[1]
	}

	s.logger.Debug(ctx, "Creating user info", log.Fields{"username": username})
	userInfo := model.UserInfo{
		Username: username,
		Password: password,
		Active:   true,
	}

	user, err := s.DataManager.UserManager.UserAdd(userInfo)
	if err != nil {
		s.logger.Error(ctx, "Failed to add user", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to add user: %w", err)
	}

	s.logger.Info(ctx, "User added successfully", log.Fields{"username": user.Username})
	return fmt.Sprintf("User '%s' added successfully", user.Username), nil
}

// handleUserUpdate handles the user update command
func handleUserUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user update command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 3 {
		s.logger.Error(ctx, "Invalid number of arguments for user update", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("user update command requires 1 to 3 arguments: <username> [new_username] [new_password]")
	}

	currentUser, err := s.UserGet()
	if err != nil {
		s.logger.Error(ctx, "No user selected", log.Fields{"error": err})
		return nil, fmt.Errorf("no user selected: %w", err)
	}

	username := cmd.Args[0]
	if username != currentUser.Username {
		s.logger.Error(ctx, "Can only update the current user", log.Fields{"requestedUser": username, "currentUser": currentUser.Username})
		return nil, fmt.Errorf("can only update the current user")
	}

	updateInfo := model.UserInfo{}
	updateFilter := model.UserFilter{}

	if len(cmd.Args) > 1 && cmd.Args[1] != currentUser.Username {
		updateInfo.Username = cmd.Args[1]
		updateFilter.Username = true
		s.logger.Debug(ctx, "Updating username", log.Fields{"newUsername": updateInfo.Username})
	}
	if len(cmd.Args) > 2 {
		updateInfo.Password = cmd.Args[2]
		updateFilter.Password = true
		s.logger.Debug(ctx, "Updating password", nil)
	}

	err = s.DataManager.UserManager.UserUpdate(username, updateInfo, updateFilter)
	if err != nil {
		s.logger.Error(ctx, "Failed to update user", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Update the session's User object if the username was changed
	if updateFilter.Username {
		currentUser.Username = updateInfo.Username
		s.logger.Debug(ctx, "Updated session user", log.Fields{"newUsername": currentUser.Username})
	}

	s.logger.Info(ctx, "User updated successfully", nil)
	return fmt.Sprintf("User '%s' updated successfully", currentUser.Username), nil
}

// handleUserDelete handles the user delete command
func handleUserDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for user delete", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("user delete command requires 1 argument: <username>")
	}

	currentUser, err := s.UserGet()
	if err != nil {
		s.logger.Error(ctx, "No user selected", log.Fields{"error": err})
		return nil, fmt.Errorf("no user selected: %w", err)
	}

	username := cmd.Args[0]
	if username != currentUser.Username {
		s.logger.Error(ctx, "Can only delete the current user", log.Fields{"requestedUser": username, "currentUser": currentUser.Username})
		return nil, fmt.Errorf("can only delete the current user")
	}

	err = s.DataManager.UserManager.UserDelete(username)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete user", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	// The UserDeleted event clears the user from every session, including this one
	s.logger.Info(ctx, "User deleted successfully", log.Fields{"username": username})
	return fmt.Sprintf("User '%s' deleted successfully", username), nil
}

// handleUserSelect handles the user select command
func handleUserSelect(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user select command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for user select", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("user select command requires 0 to 2 arguments: [username] [password]")
	}

	if len(cmd.Args) == 0 {
		// Deselect current user
		s.logger.Debug(ctx, "Deselecting current user", nil)
		s.UserSet(nil)
		return "User deselected", nil
	}

	username := cmd.Args[0]
	var password string
	if len(cmd.Args) == 2 {
		password = cmd.Args[1]
	}

	s.logger.Debug(ctx, "Attempting to select user", log.Fields{"username": username})

	ok, err := s.DataManager.UserManager.UserAuthenticate(username, password)
	if err != nil {
		s.logger.Error(ctx, "Failed to authenticate user", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !ok {
		s.logger.Warn(ctx, "Authentication failed", log.Fields{"username": username})
		return nil, errors.New("invalid credentials")
	}

	user, err := s.DataManager.UserManager.UserGet(username)
	if err != nil {
		s.logger.Error(ctx, "Failed to get user", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.UserSet(user)
	s.logger.Debug(ctx, "User selected and set in session", log.Fields{"username": user.Username})

	s.logger.Info(ctx, "User selected successfully", log.Fields{"username": username})
	return fmt.Sprintf("User '%s' selected successfully", username), nil
}

// handleUserList handles the user list command
func handleUserList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user list command", nil)

	if len(cmd.Args) != 0 {
		s.logger.Error(ctx, "Invalid number of arguments for user list", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("user list command does not accept any arguments")
	}

	users := s.DataManager.UserManager.UserList()
	infos := make([]model.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, s.DataManager.UserManager.UserToInfo(user))
	}

	s.logger.Info(ctx, "Users listed successfully", log.Fields{"count": len(infos)})
	return infos, nil
}
