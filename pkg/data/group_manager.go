// Package data provides data management functionality for the Skillscape application.
// This file contains operations related to group management.
package data

import (
	"context"
	"fmt"
	"sort"
	"time"

	"skillscape/local-app/pkg/event"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

// GroupOperations defines the interface for group-related operations
type GroupOperations interface {
	GroupAdd(newGroupInfo model.GroupInfo) (*model.Group, error)
	GroupGet(name string) (*model.Group, error)
	GroupGetByCode(code string) (*model.Group, error)
	GroupList() []*model.Group
	GroupToInfo(group *model.Group) model.GroupInfo
	GroupUpdate(name string, groupUpdateInfo model.GroupInfo, groupFilter model.GroupFilter) error
	GroupRecode(name string, newCode string) error
	GroupDelete(name string) error
}

// StandardsView is the subset of standard tree operations the group manager
// needs for referential checks and group-wide cascades. It is implemented by
// StandardManager and wired in by DataManager after both managers exist.
type StandardsView interface {
	StandardsInGroup(groupName string) []*model.Standard
	RenameGroupRefs(oldName, newName string) error
	RecodeGroup(groupName, oldLetter, newLetter string) error
}

// GroupManager handles all group-related operations and maintains the group
// registry in memory, persisting the whole registry on every mutation.
type GroupManager struct {
	groups       []*model.Group
	store        storage.Store
	eventManager *event.EventManager
	logger       *log.Logger
	standards    StandardsView
	defaultColor string
}

// NewGroupManager creates a new GroupManager instance and loads the group
// registry from storage.
func NewGroupManager(store storage.Store, eventManager *event.EventManager, logger *log.Logger) (*GroupManager, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new GroupManager", nil)

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

	gm := &GroupManager{
		groups:       []*model.Group{},
		store:        store,
		eventManager: eventManager,
		logger:       logger,
	}
	if err := gm.load(); err != nil {
		logger.Error(ctx, "Failed to load groups", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}

	logger.Info(ctx, "GroupManager created successfully", log.Fields{"count": len(gm.groups)})
	return gm, nil
}

// SetStandardsView wires in the standard tree view used for cross-entity
// validation. It must be called before any rename, recode or delete.
func (gm *GroupManager) SetStandardsView(standards StandardsView) {
	gm.standards = standards
}

// SetDefaultColor sets the color assigned to groups created without one.
func (gm *GroupManager) SetDefaultColor(color string) {
	gm.defaultColor = color
}

func (gm *GroupManager) load() error {
	var groups []*model.Group
	found, err := gm.store.Load(storageKeyGroups, &groups)
	if err != nil {
		return err
	}
	if found {
		gm.groups = groups
	}
	return nil
}

func (gm *GroupManager) saveGroups() error {
	return gm.store.Save(storageKeyGroups, gm.groups)
}

func (gm *GroupManager) findGroup(name string) (*model.Group, int) {
	for i, g := range gm.groups {
		if g.Name == name {
			return g, i
		}
	}
	return nil, -1
}

func (gm *GroupManager) findGroupByCode(code string) (*model.Group, int) {
	for i, g := range gm.groups {
		if g.Code == code {
			return g, i
		}
	}
	return nil, -1
}

func (gm *GroupManager) ensureStandardsView() error {
	if gm.standards == nil {
		return fmt.Errorf("standards view not initialized")
	}
	return nil
}

// GroupAdd creates a new group with the given name, assigning the lowest
// unused letter as its code.
func (gm *GroupManager) GroupAdd(newGroupInfo model.GroupInfo) (*model.Group, error) {
	ctx := context.Background()
	gm.logger.Info(ctx, "Adding new group", log.Fields{"name": newGroupInfo.Name})

	if newGroupInfo.Name == "" {
		gm.logger.Warn(ctx, "Group name is empty", nil)
		return nil, fmt.Errorf("group name: %w", ErrMissingRequiredField)
	}

	// Check if a group with the same name already exists
	if existing, _ := gm.findGroup(newGroupInfo.Name); existing != nil {
		gm.logger.Warn(ctx, "Group already exists", log.Fields{"name": newGroupInfo.Name})
		return nil, fmt.Errorf("group %q: %w", newGroupInfo.Name, ErrDuplicateGroup)
	}

	// Assign the lowest unused letter
	code, err := NextGroupCode(gm.groups)
	if err != nil {
		gm.logger.Error(ctx, "No group letter available", log.Fields{"error": err})
		return nil, err
	}

	color := newGroupInfo.Color
	if color == "" {
		color = gm.defaultColor
	}

	now := time.Now()
	group := &model.Group{
		Name:        newGroupInfo.Name,
		Code:        code,
		Color:       color,
		Description: newGroupInfo.Description,
		Created:     now,
		Updated:     now,
	}

	gm.groups = append(gm.groups, group)
	if err := gm.saveGroups(); err != nil {
		gm.groups = gm.groups[:len(gm.groups)-1]
		gm.logger.Error(ctx, "Failed to save groups", log.Fields{"error": err, "name": group.Name})
		return nil, fmt.Errorf("failed to save groups: %w", err)
	}

	// Publish GroupAdded event
	gm.eventManager.Publish(event.Event{
		Type: event.GroupAdded,
		Data: group,
	})

	gm.logger.Info(ctx, "Group added successfully", log.Fields{"name": group.Name, "code": group.Code})
	return group, nil
}

// GroupGet retrieves a group by its exact name.
func (gm *GroupManager) GroupGet(name string) (*model.Group, error) {
	group, _ := gm.findGroup(name)
	if group == nil {
		return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	return group, nil
}

// GroupGetByCode retrieves a group by its letter code.
func (gm *GroupManager) GroupGetByCode(code string) (*model.Group, error) {
	group, _ := gm.findGroupByCode(code)
	if group == nil {
		return nil, fmt.Errorf("group with code %q: %w", code, ErrNotFound)
	}
	return group, nil
}

// GroupList returns all groups ordered by their letter code.
func (gm *GroupManager) GroupList() []*model.Group {
	groups := make([]*model.Group, len(gm.groups))
	copy(groups, gm.groups)
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Code < groups[j].Code
	})
	return groups
}

// GroupToInfo extracts GroupInfo from a Group instance
func (gm *GroupManager) GroupToInfo(group *model.Group) model.GroupInfo {
	return model.GroupInfo{
		Name:        group.Name,
		Code:        group.Code,
		Color:       group.Color,
		Description: group.Description,
		Collapsed:   group.Collapsed,
	}
}

// GroupUpdate updates a group's name, color, description or collapsed state.
// Renaming cascades to the group field of every member standard. Changing the
// letter code is not handled here, use GroupRecode for that.
func (gm *GroupManager) GroupUpdate(name string, groupUpdateInfo model.GroupInfo, groupFilter model.GroupFilter) error {
	ctx := context.Background()
	gm.logger.Info(ctx, "Updating group", log.Fields{"name": name, "filter": groupFilter})

	group, _ := gm.findGroup(name)
	if group == nil {
		gm.logger.Warn(ctx, "Group not found", log.Fields{"name": name})
		return fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	if groupFilter.Code {
		gm.logger.Warn(ctx, "Group code change requested through update", log.Fields{"name": name})
		return fmt.Errorf("group code is changed with recode, not update")
	}

	renamed := false
	if groupFilter.Name && groupUpdateInfo.Name != "" && groupUpdateInfo.Name != group.Name {
		if existing, _ := gm.findGroup(groupUpdateInfo.Name); existing != nil {
			gm.logger.Warn(ctx, "Group name already taken", log.Fields{"name": groupUpdateInfo.Name})
			return fmt.Errorf("group %q: %w", groupUpdateInfo.Name, ErrDuplicateGroup)
		}
		renamed = true
	}

	// Store old values for potential rollback
	old := *group

	if renamed {
		if err := gm.ensureStandardsView(); err != nil {
			return err
		}
		// Rewrite the group field on every member standard first
		if err := gm.standards.RenameGroupRefs(group.Name, groupUpdateInfo.Name); err != nil {
			gm.logger.Error(ctx, "Failed to rename group references", log.Fields{"error": err, "name": name})
			return fmt.Errorf("failed to rename group references: %w", err)
		}
		group.Name = groupUpdateInfo.Name
	}
	if groupFilter.Color {
		group.Color = groupUpdateInfo.Color
	}
	if groupFilter.Description {
		group.Description = groupUpdateInfo.Description
	}
	if groupFilter.Collapsed {
		group.Collapsed = groupUpdateInfo.Collapsed
	}
	group.Updated = time.Now()

	if err := gm.saveGroups(); err != nil {
		*group = old
		if renamed {
			if revertErr := gm.standards.RenameGroupRefs(groupUpdateInfo.Name, old.Name); revertErr != nil {
				gm.logger.Error(ctx, "Failed to revert group references after save failure", log.Fields{"error": revertErr, "name": old.Name})
			}
		}
		gm.logger.Error(ctx, "Failed to save groups", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to save groups: %w", err)
	}

	// Publish GroupUpdated event
	gm.eventManager.Publish(event.Event{
		Type: event.GroupUpdated,
		Data: map[string]interface{}{
			"group":   group,
			"oldName": old.Name,
		},
	})

	gm.logger.Info(ctx, "Group updated successfully", log.Fields{"name": group.Name})
	return nil
}

// GroupRecode assigns a new letter code to a group and cascades the change
// through the codes of every standard in the group.
func (gm *GroupManager) GroupRecode(name string, newCode string) error {
	ctx := context.Background()
	gm.logger.Info(ctx, "Recoding group", log.Fields{"name": name, "newCode": newCode})

	group, _ := gm.findGroup(name)
	if group == nil {
		gm.logger.Warn(ctx, "Group not found", log.Fields{"name": name})
		return fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	if err := ValidateGroupCode(newCode); err != nil {
		gm.logger.Warn(ctx, "Invalid group code", log.Fields{"newCode": newCode})
		return err
	}
	if newCode == group.Code {
		return nil
	}
	if existing, _ := gm.findGroupByCode(newCode); existing != nil {
		gm.logger.Warn(ctx, "Group code already taken", log.Fields{"newCode": newCode, "takenBy": existing.Name})
		return fmt.Errorf("group code %q is assigned to %q: %w", newCode, existing.Name, ErrDuplicateGroup)
	}
	if err := gm.ensureStandardsView(); err != nil {
		return err
	}

	// Rewrite member standard codes first, it validates the new letter
	// namespace before touching anything
	oldCode := group.Code
	if err := gm.standards.RecodeGroup(group.Name, oldCode, newCode); err != nil {
		gm.logger.Error(ctx, "Failed to recode group standards", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to recode group standards: %w", err)
	}

	group.Code = newCode
	group.Updated = time.Now()
	if err := gm.saveGroups(); err != nil {
		// The standards were already rewritten and saved, keep the new code
		// in memory so state stays coherent and surface the save failure
		gm.logger.Error(ctx, "Failed to save groups after recode", log.Fields{"error": err, "name": name, "newCode": newCode})
		return fmt.Errorf("failed to save groups: %w", err)
	}

	// Publish GroupUpdated event
	gm.eventManager.Publish(event.Event{
		Type: event.GroupUpdated,
		Data: map[string]interface{}{
			"group":   group,
			"oldCode": oldCode,
		},
	})

	gm.logger.Info(ctx, "Group recoded successfully", log.Fields{"name": name, "oldCode": oldCode, "newCode": newCode})
	return nil
}

// replaceAll swaps in a new group registry, used by catalogue import.
func (gm *GroupManager) replaceAll(groups []*model.Group) error {
	if groups == nil {
		groups = []*model.Group{}
	}
	old := gm.groups
	gm.groups = groups
	if err := gm.saveGroups(); err != nil {
		gm.groups = old
		return fmt.Errorf("failed to save groups: %w", err)
	}
	return nil
}

// GroupDelete removes a group. The delete is rejected while any standard
// still references the group.
func (gm *GroupManager) GroupDelete(name string) error {
	ctx := context.Background()
	gm.logger.Info(ctx, "Deleting group", log.Fields{"name": name})

	group, idx := gm.findGroup(name)
	if group == nil {
		gm.logger.Warn(ctx, "Group not found", log.Fields{"name": name})
		return fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	if err := gm.ensureStandardsView(); err != nil {
		return err
	}

	// Check for member standards
	members := gm.standards.StandardsInGroup(name)
	if len(members) > 0 {
		gm.logger.Warn(ctx, "Group still has standards", log.Fields{"name": name, "count": len(members)})
		return fmt.Errorf("group %q has %d standards: %w", name, len(members), ErrReferentialIntegrity)
	}

	gm.groups = append(gm.groups[:idx], gm.groups[idx+1:]...)
	if err := gm.saveGroups(); err != nil {
		gm.groups = append(gm.groups[:idx], append([]*model.Group{group}, gm.groups[idx:]...)...)
		gm.logger.Error(ctx, "Failed to save groups", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to save groups: %w", err)
	}

	// Publish GroupDeleted event
	gm.eventManager.Publish(event.Event{
		Type: event.GroupDeleted,
		Data: group,
	})

	gm.logger.Info(ctx, "Group deleted successfully", log.Fields{"name": name})
	return nil
}
