package session

import (
	"context"
	"errors"
	"fmt"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// handleGroupAdd handles the group add command
func handleGroupAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group add command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 3 {
		s.logger.Error(ctx, "Invalid number of arguments for group add", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group add command requires 1 to 3 arguments: <name> [color] [description]")
	}

	groupInfo := model.GroupInfo{Name: cmd.Args[0]}
	if len(cmd.Args) > 1 {
		groupInfo.Color = cmd.Args[1]
	}
	if len(cmd.Args) > 2 {
		groupInfo.Description = cmd.Args[2]
	}

	group, err := s.DataManager.GroupManager.GroupAdd(groupInfo)
	if err != nil {
		s.logger.Error(ctx, "Failed to add group", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to add group: %w", err)
	}

	s.logger.Info(ctx, "Group added successfully", log.Fields{"name": group.Name, "code": group.Code})
	return fmt.Sprintf("Group '%s' added with code %s", group.Name, group.Code), nil
}

// handleGroupUpdate handles the group update command
func handleGroupUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group update command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 {
		s.logger.Error(ctx, "Invalid number of arguments for group update", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group update command requires at least 2 arguments: <name> [name:<new_name>] [color:<hex>] [desc:<description>]")
	}

	name := cmd.Args[0]
	fields, err := parseFieldValues(cmd.Args[1:])
	if err != nil {
		s.logger.Error(ctx, "Failed to parse field arguments", log.Fields{"error": err})
		return nil, err
	}

	updateInfo := model.GroupInfo{}
	updateFilter := model.GroupFilter{}
	for label, value := range fields {
		switch label {
		case "name":
			updateInfo.Name = value
			updateFilter.Name = true
		case "color":
			updateInfo.Color = value
			updateFilter.Color = true
		case "desc":
			updateInfo.Description = value
			updateFilter.Description = true
		default:
			s.logger.Error(ctx, "Unknown field for group update", log.Fields{"field": label})
			return nil, fmt.Errorf("unknown field for group update: %s (use name, color or desc)", label)
		}
	}

	if err := s.DataManager.GroupManager.GroupUpdate(name, updateInfo, updateFilter); err != nil {
		s.logger.Error(ctx, "Failed to update group", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	updatedName := name
	if updateFilter.Name {
		updatedName = updateInfo.Name
	}

	s.logger.Info(ctx, "Group updated successfully", log.Fields{"name": updatedName})
	return fmt.Sprintf("Group '%s' updated successfully", updatedName), nil
}

// handleGroupRecode handles the group recode command
func handleGroupRecode(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group recode command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		s.logger.Error(ctx, "Invalid number of arguments for group recode", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group recode command requires 2 arguments: <name> <new_letter>")
	}

	name := cmd.Args[0]
	newCode := cmd.Args[1]

	if err := s.DataManager.GroupManager.GroupRecode(name, newCode); err != nil {
		s.logger.Error(ctx, "Failed to recode group", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to recode group: %w", err)
	}

	s.logger.Info(ctx, "Group recoded successfully", log.Fields{"name": name, "newCode": newCode})
	return fmt.Sprintf("Group '%s' recoded to %s", name, newCode), nil
}

// handleGroupDelete handles the group delete command
func handleGroupDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for group delete", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group delete command requires 1 argument: <name>")
	}

	name := cmd.Args[0]
	if err := s.DataManager.GroupManager.GroupDelete(name); err != nil {
		s.logger.Error(ctx, "Failed to delete group", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}

	s.logger.Info(ctx, "Group deleted successfully", log.Fields{"name": name})
	return fmt.Sprintf("Group '%s' deleted successfully", name), nil
}

// handleGroupList handles the group list command
func handleGroupList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group list command", nil)

	if len(cmd.Args) != 0 {
		s.logger.Error(ctx, "Invalid number of arguments for group list", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group list command does not accept any arguments")
	}

	groups := s.DataManager.GroupManager.GroupList()

	s.logger.Info(ctx, "Groups listed successfully", log.Fields{"count": len(groups)})
	return groups, nil
}

// handleGroupView handles the group view command
func handleGroupView(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling group view command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for group view", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("group view command accepts at most 2 arguments: [name] [--all]")
	}

	showAll := false
	var name string
	for _, arg := range cmd.Args {
		if arg == "--all" {
			showAll = true
			s.logger.Debug(ctx, "Collapse state ignored for group view", nil)
		} else {
			name = arg
		}
	}

	view := &model.TreeView{
		Collapsed: collapseMap(s),
		ShowAll:   showAll,
	}

	if name == "" {
		view.Groups = s.DataManager.GroupManager.GroupList()
		view.Standards = s.DataManager.StandardManager.StandardList()
	} else {
		group, err := s.DataManager.GroupManager.GroupGet(name)
		if err != nil {
			s.logger.Error(ctx, "Failed to get group", log.Fields{"error": err, "name": name})
			return nil, fmt.Errorf("failed to get group: %w", err)
		}
		view.Groups = []*model.Group{group}
		view.Standards = s.DataManager.StandardManager.StandardsInGroup(name)
	}

	s.logger.Info(ctx, "Group view generated successfully", log.Fields{"name": name, "standards": len(view.Standards)})
	return view, nil
}

// collapseMap snapshots the collapse state for view rendering
func collapseMap(s *Session) map[string]bool {
	collapsed := make(map[string]bool)
	for _, code := range s.DataManager.StandardManager.CollapseList() {
		collapsed[code] = true
	}
	return collapsed
}
