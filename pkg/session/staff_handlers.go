package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// handleStaffAdd handles the staff add command
func handleStaffAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff add command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 3 {
		s.logger.Error(ctx, "Invalid number of arguments for staff add", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff add command requires 1 to 3 arguments: <name> [role] [email]")
	}

	staffInfo := model.StaffInfo{Name: cmd.Args[0]}
	if len(cmd.Args) > 1 {
		staffInfo.Role = cmd.Args[1]
	}
	if len(cmd.Args) > 2 {
		staffInfo.Email = cmd.Args[2]
	}

	member, err := s.DataManager.StaffManager.StaffAdd(staffInfo)
	if err != nil {
		s.logger.Error(ctx, "Failed to add staff member", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to add staff member: %w", err)
	}

	s.logger.Info(ctx, "Staff member added successfully", log.Fields{"name": member.Name})
	return fmt.Sprintf("Staff member '%s' added successfully", member.Name), nil
}

// handleStaffUpdate handles the staff update command
func handleStaffUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff update command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 {
		s.logger.Error(ctx, "Invalid number of arguments for staff update", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff update command requires at least 2 arguments: <name> [name:<new_name>] [role:<role>] [email:<email>]")
	}

	name := cmd.Args[0]
	fields, err := parseFieldValues(cmd.Args[1:])
	if err != nil {
		s.logger.Error(ctx, "Failed to parse field arguments", log.Fields{"error": err})
		return nil, err
	}

	updateInfo := model.StaffInfo{}
	updateFilter := model.StaffFilter{}
	for label, value := range fields {
		switch label {
		case "name":
			updateInfo.Name = value
			updateFilter.Name = true
		case "role":
			updateInfo.Role = value
			updateFilter.Role = true
		case "email":
			updateInfo.Email = value
			updateFilter.Email = true
		default:
			s.logger.Error(ctx, "Unknown field for staff update", log.Fields{"field": label})
			return nil, fmt.Errorf("unknown field for staff update: %s (use name, role or email)", label)
		}
	}

	if err := s.DataManager.StaffManager.StaffUpdate(name, updateInfo, updateFilter); err != nil {
		s.logger.Error(ctx, "Failed to update staff member", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}

	updatedName := name
	if updateFilter.Name {
		updatedName = updateInfo.Name
	}

	s.logger.Info(ctx, "Staff member updated successfully", log.Fields{"name": updatedName})
	return fmt.Sprintf("Staff member '%s' updated successfully", updatedName), nil
}

// handleStaffDelete handles the staff delete command
func handleStaffDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for staff delete", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff delete command requires 1 argument: <name>")
	}

	name := cmd.Args[0]
	if err := s.DataManager.StaffManager.StaffDelete(name); err != nil {
		s.logger.Error(ctx, "Failed to delete staff member", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to delete staff member: %w", err)
	}

	s.logger.Info(ctx, "Staff member deleted successfully", log.Fields{"name": name})
	return fmt.Sprintf("Staff member '%s' deleted successfully", name), nil
}

// handleStaffList handles the staff list command
func handleStaffList(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff list command", nil)

	if len(cmd.Args) != 0 {
		s.logger.Error(ctx, "Invalid number of arguments for staff list", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff list command does not accept any arguments")
	}

	staff := s.DataManager.StaffManager.StaffList()

	s.logger.Info(ctx, "Staff listed successfully", log.Fields{"count": len(staff)})
	return staff, nil
}

// handleStaffView handles the staff view command
func handleStaffView(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff view command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		s.logger.Error(ctx, "Invalid number of arguments for staff view", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff view command requires 1 argument: <name>")
	}

	name := cmd.Args[0]
	member, err := s.DataManager.StaffManager.StaffGet(name)
	if err != nil {
		s.logger.Error(ctx, "Failed to get staff member", log.Fields{"error": err, "name": name})
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	view := &model.StaffView{
		Member:    member,
		Standards: make(map[string]*model.Standard),
	}
	for _, assessment := range member.Assessments {
		standard, err := s.DataManager.StandardManager.StandardGet(assessment.StandardCode)
		if err != nil {
			s.logger.Warn(ctx, "Assessment refers to a missing standard", log.Fields{"code": assessment.StandardCode, "name": name})
			continue
		}
		view.Standards[assessment.StandardCode] = standard
	}

	s.logger.Info(ctx, "Staff view generated successfully", log.Fields{"name": name, "assessments": len(member.Assessments)})
	return view, nil
}

// handleStaffAssess handles the staff assess command
func handleStaffAssess(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff assess command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 3 || len(cmd.Args) > 4 {
		s.logger.Error(ctx, "Invalid number of arguments for staff assess", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff assess command requires 3 or 4 arguments: <name> <standard_code> <score> [note]")
	}

	name := cmd.Args[0]
	code := cmd.Args[1]
	score, err := strconv.Atoi(cmd.Args[2])
	if err != nil {
		s.logger.Error(ctx, "Score is not a number", log.Fields{"score": cmd.Args[2]})
		return nil, fmt.Errorf("score must be a number between 1 and 5, got %q", cmd.Args[2])
	}
	var note string
	if len(cmd.Args) == 4 {
		note = cmd.Args[3]
	}

	assessment, err := s.DataManager.StaffManager.AssessmentSet(name, code, score, note)
	if err != nil {
		s.logger.Error(ctx, "Failed to record assessment", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to record assessment: %w", err)
	}

	s.logger.Info(ctx, "Assessment recorded successfully", log.Fields{"name": name, "code": code, "score": score})
	return fmt.Sprintf("'%s' scored %d on %s", name, assessment.Score, assessment.StandardCode), nil
}

// handleStaffUnassess handles the staff unassess command
func handleStaffUnassess(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling staff unassess command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		s.logger.Error(ctx, "Invalid number of arguments for staff unassess", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("staff unassess command requires 2 arguments: <name> <standard_code>")
	}

	name := cmd.Args[0]
	code := cmd.Args[1]

	if err := s.DataManager.StaffManager.AssessmentDelete(name, code); err != nil {
		s.logger.Error(ctx, "Failed to remove assessment", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to remove assessment: %w", err)
	}

	s.logger.Info(ctx, "Assessment removed successfully", log.Fields{"name": name, "code": code})
	return fmt.Sprintf("Assessment of %s for '%s' removed", code, name), nil
}
