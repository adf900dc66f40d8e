package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// handleStandardAdd handles the standard add command
func handleStandardAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard add command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 || len(cmd.Args) > 3 {
		s.logger.Error(ctx, "Invalid number of arguments for standard add", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard add command requires 2 or 3 arguments: <parent_code|group_name> <name> [description]")
	}

	target := cmd.Args[0]
	standardInfo := model.StandardInfo{Name: cmd.Args[1]}
	if len(cmd.Args) > 2 {
		standardInfo.Description = cmd.Args[2]
	}

	// Resolve the target as a standard code first, then as a group name
	if _, err := s.DataManager.StandardManager.StandardGet(target); err == nil {
		standardInfo.ParentCode = target
		s.logger.Debug(ctx, "Target resolved as parent standard", log.Fields{"parentCode": target})
	} else if _, err := s.DataManager.GroupManager.GroupGet(target); err == nil {
		standardInfo.Group = target
		s.logger.Debug(ctx, "Target resolved as group", log.Fields{"group": target})
	} else {
		s.logger.Error(ctx, "Target is neither a standard nor a group", log.Fields{"target": target})
		return nil, fmt.Errorf("no standard or group named '%s'", target)
	}

	standard, err := s.DataManager.StandardManager.StandardAdd(standardInfo)
	if err != nil {
		s.logger.Error(ctx, "Failed to add standard", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to add standard: %w", err)
	}

	s.logger.Info(ctx, "Standard added successfully", log.Fields{"code": standard.Code, "name": standard.Name})
	return fmt.Sprintf("Standard '%s' added with code %s", standard.Name, standard.Code), nil
}

// handleStandardUpdate handles the standard update command
func handleStandardUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard update command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 {
		s.logger.Error(ctx, "Invalid number of arguments for standard update", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard update command requires at least 2 arguments: <code> [name:<text>] [desc:<text>] [code:<new_code>] [parent:<code>] [group:<name>]")
	}

	code := cmd.Args[0]
	fields, err := parseFieldValues(cmd.Args[1:])
	if err != nil {
		s.logger.Error(ctx, "Failed to parse field arguments", log.Fields{"error": err})
		return nil, err
	}

	updateInfo := model.StandardInfo{}
	updateFilter := model.StandardFilter{}
	for label, value := range fields {
		switch label {
		case "name":
			updateInfo.Name = value
			updateFilter.Name = true
		case "desc":
			updateInfo.Description = value
			updateFilter.Description = true
		case "code":
			updateInfo.Code = value
			updateFilter.Code = true
		case "parent":
			updateInfo.ParentCode = value
			updateFilter.ParentCode = true
		case "group":
			updateInfo.Group = value
			updateFilter.Group = true
		default:
			s.logger.Error(ctx, "Unknown field for standard update", log.Fields{"field": label})
			return nil, fmt.Errorf("unknown field for standard update: %s (use name, desc, code, parent or group)", label)
		}
	}

	standard, err := s.DataManager.StandardManager.StandardUpdate(code, updateInfo, updateFilter)
	if err != nil {
		s.logger.Error(ctx, "Failed to update standard", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to update standard: %w", err)
	}

	s.logger.Info(ctx, "Standard updated successfully", log.Fields{"code": standard.Code})
	return fmt.Sprintf("Standard %s updated successfully", standard.Code), nil
}

// handleStandardMove handles the standard move command
func handleStandardMove(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard move command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		s.logger.Error(ctx, "Invalid number of arguments for standard move", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard move command requires 2 arguments: <code> <new_parent_code>")
	}

	code := cmd.Args[0]
	newParentCode := cmd.Args[1]

	standard, err := s.DataManager.StandardManager.StandardMoveToParent(code, newParentCode)
	if err != nil {
		s.logger.Error(ctx, "Failed to move standard", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to move standard: %w", err)
	}

	s.logger.Info(ctx, "Standard moved successfully", log.Fields{"oldCode": code, "newCode": standard.Code})
	return fmt.Sprintf("Standard moved under %s as %s", newParentCode, standard.Code), nil
}

// handleStandardRegroup handles the standard regroup command
func handleStandardRegroup(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard regroup command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		s.logger.Error(ctx, "Invalid number of arguments for standard regroup", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard regroup command requires 2 arguments: <code> <group_name>")
	}

	code := cmd.Args[0]
	groupName := cmd.Args[1]

	standard, err := s.DataManager.StandardManager.StandardMoveToGroup(code, groupName)
	if err != nil {
		s.logger.Error(ctx, "Failed to regroup standard", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to regroup standard: %w", err)
	}

	s.logger.Info(ctx, "Standard regrouped successfully", log.Fields{"oldCode": code, "newCode": standard.Code, "group": groupName})
	return fmt.Sprintf("Standard moved to group '%s' as %s", groupName, standard.Code), nil
}

// handleStandardDelete handles the standard delete command
func handleStandardDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for standard delete", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard delete command requires 1 or 2 arguments: <code> [--cascade]")
	}

	cascade := false
	var code string
	for _, arg := range cmd.Args {
		if arg == "--cascade" {
			cascade = true
			s.logger.Debug(ctx, "Cascade delete enabled", nil)
		} else {
			code = arg
		}
	}
	if code == "" {
		s.logger.Error(ctx, "No standard code given for delete", nil)
		return nil, errors.New("standard delete command requires a standard code")
	}

	if cascade {
		if err := s.DataManager.StandardManager.StandardDeleteCascade(code); err != nil {
			s.logger.Error(ctx, "Failed to delete standard subtree", log.Fields{"error": err})
			return nil, fmt.Errorf("failed to delete standard subtree: %w", err)
		}
		s.logger.Info(ctx, "Standard subtree deleted successfully", log.Fields{"code": code})
		return fmt.Sprintf("Standard %s and its subtree deleted", code), nil
	}

	if err := s.DataManager.StandardManager.StandardDelete(code); err != nil {
		s.logger.Error(ctx, "Failed to delete standard", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to delete standard: %w", err)
	}

	s.logger.Info(ctx, "Standard deleted successfully", log.Fields{"code": code})
	return fmt.Sprintf("Standard %s deleted", code), nil
}

// handleStandardList handles the standard list command
func handleStandardList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard list command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 1 {
		s.logger.Error(ctx, "Invalid number of arguments for standard list", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard list command accepts at most 1 argument: [group_name]")
	}

	var standards []*model.Standard
	if len(cmd.Args) == 1 {
		groupName := cmd.Args[0]
		if _, err := s.DataManager.GroupManager.GroupGet(groupName); err != nil {
			s.logger.Error(ctx, "Failed to get group", log.Fields{"error": err, "name": groupName})
			return nil, fmt.Errorf("failed to get group: %w", err)
		}
		standards = s.DataManager.StandardManager.StandardsInGroup(groupName)
	} else {
		standards = s.DataManager.StandardManager.StandardList()
	}

	s.logger.Info(ctx, "Standards listed successfully", log.Fields{"count": len(standards)})
	return standards, nil
}

// handleStandardView handles the standard view command
func handleStandardView(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling standard view command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for standard view", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("standard view command accepts at most 2 arguments: [code] [--all]")
	}

	showAll := false
	var code string
	for _, arg := range cmd.Args {
		if arg == "--all" {
			showAll = true
			s.logger.Debug(ctx, "Collapse state ignored for standard view", nil)
		} else {
			code = arg
		}
	}

	view := &model.TreeView{
		Collapsed: collapseMap(s),
		RootCode:  code,
		ShowAll:   showAll,
	}

	if code == "" {
		view.Groups = s.DataManager.GroupManager.GroupList()
		view.Standards = s.DataManager.StandardManager.StandardList()
	} else {
		root, err := s.DataManager.StandardManager.StandardGet(code)
		if err != nil {
			s.logger.Error(ctx, "Failed to get standard", log.Fields{"error": err, "code": code})
			return nil, fmt.Errorf("failed to get standard: %w", err)
		}
		descendants, err := s.DataManager.StandardManager.DescendantsInOrder(code)
		if err != nil {
			s.logger.Error(ctx, "Failed to collect subtree", log.Fields{"error": err, "code": code})
			return nil, fmt.Errorf("failed to collect subtree: %w", err)
		}
		view.Standards = append([]*model.Standard{root}, descendants...)
		if group, err := s.DataManager.GroupManager.GroupGet(root.Group); err == nil {
			view.Groups = []*model.Group{group}
		}
	}

	s.logger.Info(ctx, "Standard view generated successfully", log.Fields{"code": code, "standards": len(view.Standards)})
	return view, nil
}

// handleStandardCollapse handles the standard collapse command
func handleStandardCollapse(s *Session, cmd model.Command) (interface{}, error) {
	return setCollapse(s, cmd, true)
}

// handleStandardExpand handles the standard expand command
func handleStandardExpand(s *Session, cmd model.Command) (interface{}, error) {
	return setCollapse(s, cmd, false)
}

func setCollapse(s *Session, cmd model.Command, collapsed bool) (interface{}, error) {
	ctx := context.Background()
	operation := "expand"
	if collapsed {
		operation = "collapse"
	}
	s.logger.Info(ctx, "Handling standard collapse state command", log.Fields{"operation": operation, "args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for collapse state command", log.Fields{"operation": operation, "argCount": len(cmd.Args)})
		return nil, fmt.Errorf("standard %s command requires 1 argument: <code>", operation)
	}

	code := cmd.Args[0]
	if err := s.DataManager.StandardManager.CollapseSet(code, collapsed); err != nil {
		s.logger.Error(ctx, "Failed to set collapse state", log.Fields{"error": err, "code": code})
		return nil, fmt.Errorf("failed to %s standard: %w", operation, err)
	}

	s.logger.Info(ctx, "Collapse state changed successfully", log.Fields{"code": code, "collapsed": collapsed})
	if collapsed {
		return fmt.Sprintf("Standard %s collapsed", code), nil
	}
	return fmt.Sprintf("Standard %s expanded", code), nil
}

// parseFieldValues splits label:value arguments into a map. Values may contain
// colons, only the first one separates the label.
func parseFieldValues(args []string) (map[string]string, error) {
	fields := make(map[string]string)
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected label:value", arg)
		}
		fields[strings.ToLower(parts[0])] = parts[1]
	}
	return fields, nil
}
