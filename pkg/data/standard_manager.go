// Package data provides data management functionality for the Skillscape application.
// This file contains operations related to the standard tree: queries,
// structural mutations with cascading code rewrites, and the collapse state
// of the hierarchy view.
package data

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"skillscape/local-app/pkg/event"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

// StandardOperations defines the interface for standard-related operations
type StandardOperations interface {
	StandardAdd(newStandardInfo model.StandardInfo) (*model.Standard, error)
	StandardGet(code string) (*model.Standard, error)
	StandardList() []*model.Standard
	StandardToInfo(standard *model.Standard) model.StandardInfo
	StandardUpdate(code string, standardUpdateInfo model.StandardInfo, standardFilter model.StandardFilter) (*model.Standard, error)
	StandardDelete(code string) error
	StandardDeleteCascade(code string) error
	StandardMoveToGroup(code string, groupName string) (*model.Standard, error)
	StandardMoveToParent(code string, newParentCode string) (*model.Standard, error)
	IsDescendantOf(candidateAncestorCode, code string) bool
	TopLevel(groupName string) []*model.Standard
	DescendantsInOrder(code string) ([]*model.Standard, error)
	CollapseSet(code string, collapsed bool) error
	IsCollapsed(code string) bool
	CollapseList() []string
}

// GroupsView is the subset of group registry operations the standard manager
// needs to resolve group letters. It is implemented by GroupManager and wired
// in by DataManager after both managers exist.
type GroupsView interface {
	GroupGet(name string) (*model.Group, error)
}

// StandardManager handles all standard-related operations. It maintains the
// whole forest in memory, with parent references as the source of truth and
// the per-node children lists as a derived cache that is rebuilt centrally
// after every structural change. The full forest and the collapse set are
// persisted on every mutation.
type StandardManager struct {
	standards    []*model.Standard
	collapsed    map[string]bool
	store        storage.Store
	eventManager *event.EventManager
	logger       *log.Logger
	groups       GroupsView
}

// NewStandardManager creates a new StandardManager instance and loads the
// forest and the collapse set from storage.
func NewStandardManager(store storage.Store, eventManager *event.EventManager, logger *log.Logger) (*StandardManager, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new StandardManager", nil)

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

	sm := &StandardManager{
		standards:    []*model.Standard{},
		collapsed:    make(map[string]bool),
		store:        store,
		eventManager: eventManager,
		logger:       logger,
	}
	if err := sm.load(); err != nil {
		logger.Error(ctx, "Failed to load standards", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to load standards: %w", err)
	}

	logger.Info(ctx, "StandardManager created successfully", log.Fields{"count": len(sm.standards)})
	return sm, nil
}

// SetGroupsView wires in the group registry view used to resolve group
// letters. It must be called before standards are added or moved by group.
func (sm *StandardManager) SetGroupsView(groups GroupsView) {
	sm.groups = groups
}

func (sm *StandardManager) load() error {
	var standards []*model.Standard
	found, err := sm.store.Load(storageKeyStandards, &standards)
	if err != nil {
		return err
	}
	if found {
		sm.standards = standards
	}

	var collapsedCodes []string
	found, err = sm.store.Load(storageKeyCollapsed, &collapsedCodes)
	if err != nil {
		return err
	}
	if found {
		for _, code := range collapsedCodes {
			sm.collapsed[code] = true
		}
	}

	// The children lists are a derived cache, rebuild them from the parent
	// references on every load
	sm.rebuildChildren()
	return nil
}

func (sm *StandardManager) saveStandards() error {
	return sm.store.Save(storageKeyStandards, sm.standards)
}

func (sm *StandardManager) saveCollapsed() error {
	return sm.store.Save(storageKeyCollapsed, sm.CollapseList())
}

func (sm *StandardManager) saveTreeState() error {
	if err := sm.saveStandards(); err != nil {
		return err
	}
	return sm.saveCollapsed()
}

func (sm *StandardManager) ensureGroupsView() error {
	if sm.groups == nil {
		return fmt.Errorf("groups view not initialized")
	}
	return nil
}

func (sm *StandardManager) findStandard(code string) (*model.Standard, int) {
	for i, s := range sm.standards {
		if s.Code == code {
			return s, i
		}
	}
	return nil, -1
}

// childCodesOf derives the child codes of a standard from the parent
// references, sorted into display order.
func (sm *StandardManager) childCodesOf(code string) []string {
	var codes []string
	for _, s := range sm.standards {
		if s.ParentCode == code {
			codes = append(codes, s.Code)
		}
	}
	SortCodes(codes)
	return codes
}

// rebuildChildren recomputes every children list from the parent references.
// Structural mutations call it once after all field rewrites so the cache
// never has to be patched piecemeal.
func (sm *StandardManager) rebuildChildren() {
	byParent := make(map[string][]string, len(sm.standards))
	for _, s := range sm.standards {
		if s.ParentCode != "" {
			byParent[s.ParentCode] = append(byParent[s.ParentCode], s.Code)
		}
	}
	for _, s := range sm.standards {
		codes := byParent[s.Code]
		if codes == nil {
			codes = []string{}
		}
		SortCodes(codes)
		s.Children = codes
	}
}

func (sm *StandardManager) renameCollapseEntry(oldCode, newCode string) {
	if sm.collapsed[oldCode] {
		delete(sm.collapsed, oldCode)
		sm.collapsed[newCode] = true
	}
}

func (sm *StandardManager) publishCodesRewritten(pairs []event.CodeRewrite) {
	if len(pairs) == 0 {
		return
	}
	sm.eventManager.Publish(event.Event{
		Type: event.StandardCodesRewritten,
		Data: pairs,
	})
}

// rewriteSubtreeCodes rewrites the code of every descendant after their
// ancestor's code changed from oldPrefix to newPrefix. Each rewritten node
// gets its prefix replaced, its level recomputed, its group set to the
// ancestor's group and its collapse entry carried over. The node whose own
// code changed becomes the next prefix for its children, so the rewrite runs
// through the whole subtree. Returns the old and new code of every rewritten
// node.
func (sm *StandardManager) rewriteSubtreeCodes(oldPrefix, newPrefix, group string) []event.CodeRewrite {
	var pairs []event.CodeRewrite
	for _, s := range sm.standards {
		if s.ParentCode != oldPrefix {
			continue
		}
		oldCode := s.Code
		newCode := newPrefix + strings.TrimPrefix(oldCode, oldPrefix)
		s.ParentCode = newPrefix
		s.Code = newCode
		s.Level = LevelOf(newCode)
		s.Group = group
		sm.renameCollapseEntry(oldCode, newCode)
		pairs = append(pairs, event.CodeRewrite{OldCode: oldCode, NewCode: newCode})
		pairs = append(pairs, sm.rewriteSubtreeCodes(oldCode, newCode, group)...)
	}
	return pairs
}

// StandardGet retrieves a standard by its code.
func (sm *StandardManager) StandardGet(code string) (*model.Standard, error) {
	standard, _ := sm.findStandard(code)
	if standard == nil {
		return nil, fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	return standard, nil
}

// StandardList returns all standards ordered by code.
func (sm *StandardManager) StandardList() []*model.Standard {
	standards := make([]*model.Standard, len(sm.standards))
	copy(standards, sm.standards)
	sortStandardsByCode(standards)
	return standards
}

// StandardsInGroup returns every standard whose group field matches the
// given group name, at any depth.
func (sm *StandardManager) StandardsInGroup(groupName string) []*model.Standard {
	var members []*model.Standard
	for _, s := range sm.standards {
		if s.Group == groupName {
			members = append(members, s)
		}
	}
	sortStandardsByCode(members)
	return members
}

// TopLevel returns the standards with no parent belonging to the given group.
// An empty group name selects the ungrouped top-level standards.
func (sm *StandardManager) TopLevel(groupName string) []*model.Standard {
	var tops []*model.Standard
	for _, s := range sm.standards {
		if s.ParentCode == "" && s.Group == groupName {
			tops = append(tops, s)
		}
	}
	sortStandardsByCode(tops)
	return tops
}

// IsDescendantOf reports whether the standard with the given code sits below
// candidateAncestorCode. It walks the parent references upward iteratively
// with a hop limit of the forest size, so malformed data with a cycle ends
// the walk instead of hanging it.
func (sm *StandardManager) IsDescendantOf(candidateAncestorCode, code string) bool {
	ctx := context.Background()

	node, _ := sm.findStandard(code)
	if node == nil {
		return false
	}
	guard := len(sm.standards)
	current := node.ParentCode
	for hops := 0; current != ""; hops++ {
		if hops >= guard {
			sm.logger.Error(ctx, "Parent chain longer than the forest, treating as cycle", log.Fields{"code": code, "stuckAt": current})
			return false
		}
		if current == candidateAncestorCode {
			return true
		}
		parent, _ := sm.findStandard(current)
		if parent == nil {
			sm.logger.Warn(ctx, "Dangling parent reference", log.Fields{"code": code, "parentCode": current})
			return false
		}
		current = parent.ParentCode
	}
	return false
}

// DescendantsInOrder returns every descendant of the given standard in
// depth-first order with children sorted by code, the order a flattened
// hierarchy view displays them in. When a cached children list disagrees
// with the parent references the derived membership wins and the mismatch is
// logged and repaired.
func (sm *StandardManager) DescendantsInOrder(code string) ([]*model.Standard, error) {
	ctx := context.Background()

	root, _ := sm.findStandard(code)
	if root == nil {
		return nil, fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	ordered := []*model.Standard{}
	visited := make(map[string]bool)
	sm.collectDescendants(ctx, root, &ordered, visited)
	return ordered, nil
}

func (sm *StandardManager) collectDescendants(ctx context.Context, node *model.Standard, ordered *[]*model.Standard, visited map[string]bool) {
	if visited[node.Code] {
		sm.logger.Warn(ctx, "Standard visited twice during traversal, skipping", log.Fields{"code": node.Code})
		return
	}
	visited[node.Code] = true

	derived := sm.childCodesOf(node.Code)
	if !equalStringSlices(node.Children, derived) {
		sm.logger.Warn(ctx, "Children cache disagrees with parent references, repairing", log.Fields{"code": node.Code, "cached": node.Children, "derived": derived})
		node.Children = derived
	}
	for _, childCode := range derived {
		child, _ := sm.findStandard(childCode)
		if child == nil {
			continue
		}
		*ordered = append(*ordered, child)
		sm.collectDescendants(ctx, child, ordered, visited)
	}
}

// StandardAdd creates a new standard. The code is generated from the parent
// when a parent code is given, otherwise from the group, and the new node
// inherits the parent's group. With neither a parent nor a group the input
// is rejected.
func (sm *StandardManager) StandardAdd(newStandardInfo model.StandardInfo) (*model.Standard, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Adding new standard", log.Fields{"name": newStandardInfo.Name, "parentCode": newStandardInfo.ParentCode, "group": newStandardInfo.Group})

	if newStandardInfo.Name == "" {
		sm.logger.Warn(ctx, "Standard name is empty", nil)
		return nil, fmt.Errorf("standard name: %w", ErrMissingRequiredField)
	}

	// Resolve the namespace the code is generated in
	var code, group, parentCode string
	switch {
	case newStandardInfo.ParentCode != "":
		parent, _ := sm.findStandard(newStandardInfo.ParentCode)
		if parent == nil {
			sm.logger.Warn(ctx, "Parent standard not found", log.Fields{"parentCode": newStandardInfo.ParentCode})
			return nil, fmt.Errorf("parent standard %q: %w", newStandardInfo.ParentCode, ErrNotFound)
		}
		code = GenerateNewCode(sm.standards, parent.Code, "")
		group = parent.Group
		parentCode = parent.Code
	case newStandardInfo.Group != "":
		if err := sm.ensureGroupsView(); err != nil {
			return nil, err
		}
		grp, err := sm.groups.GroupGet(newStandardInfo.Group)
		if err != nil {
			sm.logger.Warn(ctx, "Group not found", log.Fields{"group": newStandardInfo.Group})
			return nil, err
		}
		code = GenerateNewCode(sm.standards, "", grp.Code)
		group = grp.Name
	default:
		sm.logger.Warn(ctx, "Neither parent code nor group given", nil)
		return nil, fmt.Errorf("parent code or group: %w", ErrMissingRequiredField)
	}

	// Generated codes are unique by construction, re-check before inserting
	if existing, _ := sm.findStandard(code); existing != nil {
		sm.logger.Error(ctx, "Generated code collides with an existing standard", log.Fields{"code": code})
		return nil, fmt.Errorf("generated code %q: %w", code, ErrDuplicateCode)
	}

	now := time.Now()
	standard := &model.Standard{
		Code:        code,
		Name:        newStandardInfo.Name,
		Description: newStandardInfo.Description,
		Group:       group,
		ParentCode:  parentCode,
		Children:    []string{},
		Level:       LevelOf(code),
		Created:     now,
		Updated:     now,
	}

	sm.standards = append(sm.standards, standard)
	sm.rebuildChildren()
	if err := sm.saveTreeState(); err != nil {
		sm.standards = sm.standards[:len(sm.standards)-1]
		sm.rebuildChildren()
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "code": code})
		return nil, fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardAdded event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardAdded,
		Data: standard,
	})

	sm.logger.Info(ctx, "Standard added successfully", log.Fields{"code": code, "name": standard.Name})
	return standard, nil
}

// StandardUpdate updates a standard's fields. A parent change moves the node
// under the new parent, a group change moves a top-level node into another
// group, and an explicit code change re-validates the code against the
// grammar and its required prefix. Whenever the code ends up different the
// change cascades through every descendant. For a node with a parent the
// group field is ignored since the group is inherited.
func (sm *StandardManager) StandardUpdate(code string, standardUpdateInfo model.StandardInfo, standardFilter model.StandardFilter) (*model.Standard, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Updating standard", log.Fields{"code": code, "filter": standardFilter})

	standard, _ := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return nil, fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	if standardFilter.Name && standardUpdateInfo.Name == "" {
		sm.logger.Warn(ctx, "Standard name is empty", log.Fields{"code": code})
		return nil, fmt.Errorf("standard name: %w", ErrMissingRequiredField)
	}

	parentChange := standardFilter.ParentCode && standardUpdateInfo.ParentCode != standard.ParentCode
	groupChange := !parentChange && standardFilter.Group && standardUpdateInfo.Group != standard.Group
	codeChange := !parentChange && !groupChange && standardFilter.Code && standardUpdateInfo.Code != standard.Code

	if groupChange && standard.ParentCode != "" {
		// The group of a child node is inherited from its parent
		sm.logger.Debug(ctx, "Group field ignored, group is inherited from the parent", log.Fields{"code": code})
		groupChange = false
	}

	var pairs []event.CodeRewrite
	var err error
	switch {
	case parentChange:
		pairs, err = sm.moveToParentInternal(ctx, standard, standardUpdateInfo.ParentCode)
	case groupChange:
		pairs, err = sm.moveToGroupInternal(ctx, standard, standardUpdateInfo.Group)
	case codeChange:
		pairs, err = sm.applyExplicitCode(ctx, standard, standardUpdateInfo.Code)
	}
	if err != nil {
		sm.logger.Warn(ctx, "Standard update rejected", log.Fields{"error": err, "code": code})
		return nil, err
	}

	if standardFilter.Name && standardUpdateInfo.Name != "" {
		standard.Name = standardUpdateInfo.Name
	}
	if standardFilter.Description {
		standard.Description = standardUpdateInfo.Description
	}
	standard.Updated = time.Now()

	if err := sm.saveTreeState(); err != nil {
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "code": standard.Code})
		return nil, fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardUpdated event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardUpdated,
		Data: standard,
	})
	sm.publishCodesRewritten(pairs)

	sm.logger.Info(ctx, "Standard updated successfully", log.Fields{"code": standard.Code})
	return standard, nil
}

// moveToParentInternal validates and applies a reparent: the node goes under
// newParentCode with a regenerated code, inherits the parent's group and the
// change cascades through its descendants. An empty newParentCode turns the
// node into a top-level standard of its current group. No saving or event
// publishing happens here.
func (sm *StandardManager) moveToParentInternal(ctx context.Context, standard *model.Standard, newParentCode string) ([]event.CodeRewrite, error) {
	if newParentCode == "" {
		return sm.moveToGroupInternal(ctx, standard, standard.Group)
	}
	if newParentCode == standard.Code {
		return nil, fmt.Errorf("standard %q cannot be its own parent: %w", standard.Code, ErrCycle)
	}
	parent, _ := sm.findStandard(newParentCode)
	if parent == nil {
		return nil, fmt.Errorf("parent standard %q: %w", newParentCode, ErrNotFound)
	}
	if sm.IsDescendantOf(standard.Code, newParentCode) {
		return nil, fmt.Errorf("standard %q is inside the subtree of %q: %w", newParentCode, standard.Code, ErrCycle)
	}

	newCode := GenerateNewCode(sm.standards, newParentCode, "")
	if existing, _ := sm.findStandard(newCode); existing != nil {
		return nil, fmt.Errorf("generated code %q: %w", newCode, ErrDuplicateCode)
	}

	oldCode := standard.Code
	standard.ParentCode = newParentCode
	standard.Code = newCode
	standard.Level = LevelOf(newCode)
	standard.Group = parent.Group
	sm.renameCollapseEntry(oldCode, newCode)

	pairs := []event.CodeRewrite{{OldCode: oldCode, NewCode: newCode}}
	pairs = append(pairs, sm.rewriteSubtreeCodes(oldCode, newCode, parent.Group)...)
	sm.rebuildChildren()
	return pairs, nil
}

// moveToGroupInternal validates and applies a move to the top level of a
// group: the node loses its parent, gets a regenerated code under the group
// letter and the change cascades through its descendants. No saving or event
// publishing happens here.
func (sm *StandardManager) moveToGroupInternal(ctx context.Context, standard *model.Standard, groupName string) ([]event.CodeRewrite, error) {
	if groupName == "" {
		return nil, fmt.Errorf("a top-level standard needs a group: %w", ErrMissingRequiredField)
	}
	if err := sm.ensureGroupsView(); err != nil {
		return nil, err
	}
	group, err := sm.groups.GroupGet(groupName)
	if err != nil {
		return nil, err
	}

	newCode := GenerateNewCode(sm.standards, "", group.Code)
	if existing, _ := sm.findStandard(newCode); existing != nil {
		return nil, fmt.Errorf("generated code %q: %w", newCode, ErrDuplicateCode)
	}

	oldCode := standard.Code
	standard.ParentCode = ""
	standard.Code = newCode
	standard.Level = LevelOf(newCode)
	standard.Group = group.Name
	sm.renameCollapseEntry(oldCode, newCode)

	pairs := []event.CodeRewrite{{OldCode: oldCode, NewCode: newCode}}
	pairs = append(pairs, sm.rewriteSubtreeCodes(oldCode, newCode, group.Name)...)
	sm.rebuildChildren()
	return pairs, nil
}

// applyExplicitCode validates and applies a hand-edited code. The code must
// match the grammar, extend the parent code for a child node or sit at the
// top level of the node's group, and be unused. The change cascades through
// the descendants. No saving or event publishing happens here.
func (sm *StandardManager) applyExplicitCode(ctx context.Context, standard *model.Standard, newCode string) ([]event.CodeRewrite, error) {
	if err := ValidateCode(newCode); err != nil {
		return nil, err
	}
	if standard.ParentCode != "" {
		if ParentCodeOf(newCode) != standard.ParentCode {
			return nil, fmt.Errorf("code %q does not extend parent code %q: %w", newCode, standard.ParentCode, ErrMalformedCode)
		}
	} else if standard.Group != "" {
		if err := sm.ensureGroupsView(); err != nil {
			return nil, err
		}
		group, err := sm.groups.GroupGet(standard.Group)
		if err != nil {
			return nil, err
		}
		if LevelOf(newCode) != 1 || !strings.HasPrefix(newCode, group.Code+".") {
			return nil, fmt.Errorf("code %q does not sit at the top level of group %q: %w", newCode, group.Code, ErrMalformedCode)
		}
	}
	if existing, _ := sm.findStandard(newCode); existing != nil {
		return nil, fmt.Errorf("code %q: %w", newCode, ErrDuplicateCode)
	}

	oldCode := standard.Code
	standard.Code = newCode
	standard.Level = LevelOf(newCode)
	sm.renameCollapseEntry(oldCode, newCode)

	pairs := []event.CodeRewrite{{OldCode: oldCode, NewCode: newCode}}
	pairs = append(pairs, sm.rewriteSubtreeCodes(oldCode, newCode, standard.Group)...)
	sm.rebuildChildren()
	return pairs, nil
}

// StandardDelete removes a standard without children. Deleting a standard
// that still has children is rejected, the caller chooses a cascade delete
// instead.
func (sm *StandardManager) StandardDelete(code string) error {
	ctx := context.Background()
	sm.logger.Info(ctx, "Deleting standard", log.Fields{"code": code})

	standard, idx := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	children := sm.childCodesOf(code)
	if len(children) > 0 {
		sm.logger.Warn(ctx, "Standard still has children", log.Fields{"code": code, "count": len(children)})
		return fmt.Errorf("standard %q has %d children: %w", code, len(children), ErrReferentialIntegrity)
	}

	wasCollapsed := sm.collapsed[code]
	delete(sm.collapsed, code)
	sm.standards = append(sm.standards[:idx], sm.standards[idx+1:]...)
	sm.rebuildChildren()

	if err := sm.saveTreeState(); err != nil {
		sm.standards = append(sm.standards[:idx], append([]*model.Standard{standard}, sm.standards[idx:]...)...)
		if wasCollapsed {
			sm.collapsed[code] = true
		}
		sm.rebuildChildren()
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "code": code})
		return fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardsDeleted event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardsDeleted,
		Data: []string{code},
	})

	sm.logger.Info(ctx, "Standard deleted successfully", log.Fields{"code": code})
	return nil
}

// StandardDeleteCascade removes a standard and every descendant, children
// first so no intermediate state references a deleted node.
func (sm *StandardManager) StandardDeleteCascade(code string) error {
	ctx := context.Background()
	sm.logger.Info(ctx, "Deleting standard with descendants", log.Fields{"code": code})

	standard, _ := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}

	var deleted []string
	var deleteRec func(node *model.Standard)
	deleteRec = func(node *model.Standard) {
		for _, childCode := range sm.childCodesOf(node.Code) {
			if child, _ := sm.findStandard(childCode); child != nil {
				deleteRec(child)
			}
		}
		if _, idx := sm.findStandard(node.Code); idx >= 0 {
			sm.standards = append(sm.standards[:idx], sm.standards[idx+1:]...)
		}
		delete(sm.collapsed, node.Code)
		deleted = append(deleted, node.Code)
	}
	deleteRec(standard)
	sm.rebuildChildren()

	if err := sm.saveTreeState(); err != nil {
		sm.logger.Error(ctx, "Failed to save standards after cascade delete", log.Fields{"error": err, "code": code, "deleted": len(deleted)})
		return fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardsDeleted event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardsDeleted,
		Data: deleted,
	})

	sm.logger.Info(ctx, "Standard and descendants deleted successfully", log.Fields{"code": code, "deleted": len(deleted)})
	return nil
}

// StandardMoveToGroup makes a standard a top-level member of the given group,
// detaching it from any parent and cascading the code change through its
// descendants.
func (sm *StandardManager) StandardMoveToGroup(code string, groupName string) (*model.Standard, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Moving standard to group", log.Fields{"code": code, "group": groupName})

	standard, _ := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return nil, fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	if standard.ParentCode == "" && standard.Group == groupName {
		return standard, nil
	}

	pairs, err := sm.moveToGroupInternal(ctx, standard, groupName)
	if err != nil {
		sm.logger.Warn(ctx, "Move to group rejected", log.Fields{"error": err, "code": code, "group": groupName})
		return nil, err
	}
	standard.Updated = time.Now()

	if err := sm.saveTreeState(); err != nil {
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "code": standard.Code})
		return nil, fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardUpdated event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardUpdated,
		Data: standard,
	})
	sm.publishCodesRewritten(pairs)

	sm.logger.Info(ctx, "Standard moved to group successfully", log.Fields{"code": standard.Code, "group": groupName})
	return standard, nil
}

// StandardMoveToParent moves a standard under a new parent, cascading the
// code change through its descendants. Moves that would make the standard
// its own ancestor are rejected.
func (sm *StandardManager) StandardMoveToParent(code string, newParentCode string) (*model.Standard, error) {
	ctx := context.Background()
	sm.logger.Info(ctx, "Moving standard to parent", log.Fields{"code": code, "newParentCode": newParentCode})

	standard, _ := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return nil, fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}
	if standard.ParentCode == newParentCode {
		return standard, nil
	}

	pairs, err := sm.moveToParentInternal(ctx, standard, newParentCode)
	if err != nil {
		sm.logger.Warn(ctx, "Move to parent rejected", log.Fields{"error": err, "code": code, "newParentCode": newParentCode})
		return nil, err
	}
	standard.Updated = time.Now()

	if err := sm.saveTreeState(); err != nil {
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "code": standard.Code})
		return nil, fmt.Errorf("failed to save standards: %w", err)
	}

	// Publish StandardUpdated event
	sm.eventManager.Publish(event.Event{
		Type: event.StandardUpdated,
		Data: standard,
	})
	sm.publishCodesRewritten(pairs)

	sm.logger.Info(ctx, "Standard moved to parent successfully", log.Fields{"code": standard.Code, "newParentCode": newParentCode})
	return standard, nil
}

// RenameGroupRefs rewrites the group field of every standard in a renamed
// group. Called by the group manager as part of a group rename.
func (sm *StandardManager) RenameGroupRefs(oldName, newName string) error {
	ctx := context.Background()
	sm.logger.Info(ctx, "Renaming group references", log.Fields{"oldName": oldName, "newName": newName})

	changed := 0
	for _, s := range sm.standards {
		if s.Group == oldName {
			s.Group = newName
			changed++
		}
	}
	if changed == 0 {
		return nil
	}

	if err := sm.saveStandards(); err != nil {
		for _, s := range sm.standards {
			if s.Group == newName {
				s.Group = oldName
			}
		}
		sm.logger.Error(ctx, "Failed to save standards", log.Fields{"error": err, "oldName": oldName})
		return fmt.Errorf("failed to save standards: %w", err)
	}

	sm.logger.Info(ctx, "Group references renamed", log.Fields{"oldName": oldName, "newName": newName, "count": changed})
	return nil
}

// RecodeGroup rewrites the codes of every standard in a group after the
// group's letter changed, cascading through all descendants. The rewrite is
// rejected when a standard outside the group already occupies the new letter
// namespace. Called by the group manager as part of a group recode.
func (sm *StandardManager) RecodeGroup(groupName, oldLetter, newLetter string) error {
	ctx := context.Background()
	sm.logger.Info(ctx, "Recoding group standards", log.Fields{"group": groupName, "oldLetter": oldLetter, "newLetter": newLetter})

	// Check the new letter namespace is free outside the group
	for _, s := range sm.standards {
		if s.Group != groupName && strings.HasPrefix(s.Code, newLetter+".") {
			sm.logger.Warn(ctx, "New letter namespace is occupied", log.Fields{"newLetter": newLetter, "occupiedBy": s.Code})
			return fmt.Errorf("code namespace %q is occupied by %q: %w", newLetter, s.Code, ErrDuplicateCode)
		}
	}

	now := time.Now()
	var pairs []event.CodeRewrite
	for _, s := range sm.standards {
		if s.Group != groupName || s.ParentCode != "" || !strings.HasPrefix(s.Code, oldLetter+".") {
			continue
		}
		oldCode := s.Code
		newCode := newLetter + strings.TrimPrefix(oldCode, oldLetter)
		s.Code = newCode
		s.Level = LevelOf(newCode)
		s.Updated = now
		sm.renameCollapseEntry(oldCode, newCode)
		pairs = append(pairs, event.CodeRewrite{OldCode: oldCode, NewCode: newCode})
		pairs = append(pairs, sm.rewriteSubtreeCodes(oldCode, newCode, s.Group)...)
	}
	if len(pairs) == 0 {
		return nil
	}
	sm.rebuildChildren()

	if err := sm.saveTreeState(); err != nil {
		sm.logger.Error(ctx, "Failed to save standards after recode", log.Fields{"error": err, "group": groupName})
		return fmt.Errorf("failed to save standards: %w", err)
	}
	sm.publishCodesRewritten(pairs)

	sm.logger.Info(ctx, "Group standards recoded", log.Fields{"group": groupName, "count": len(pairs)})
	return nil
}

// replaceAll swaps in a new forest, used by catalogue import. Collapse
// entries whose code no longer resolves are dropped.
func (sm *StandardManager) replaceAll(standards []*model.Standard) error {
	if standards == nil {
		standards = []*model.Standard{}
	}
	oldStandards := sm.standards
	oldCollapsed := sm.collapsed
	sm.standards = standards
	collapsed := make(map[string]bool)
	for code := range oldCollapsed {
		if existing, _ := sm.findStandard(code); existing != nil {
			collapsed[code] = true
		}
	}
	sm.collapsed = collapsed
	sm.rebuildChildren()
	if err := sm.saveTreeState(); err != nil {
		sm.standards = oldStandards
		sm.collapsed = oldCollapsed
		sm.rebuildChildren()
		return fmt.Errorf("failed to save standards: %w", err)
	}
	return nil
}

// CollapseSet marks a standard as collapsed or expanded in the hierarchy
// view.
func (sm *StandardManager) CollapseSet(code string, collapsed bool) error {
	ctx := context.Background()

	standard, _ := sm.findStandard(code)
	if standard == nil {
		sm.logger.Warn(ctx, "Standard not found", log.Fields{"code": code})
		return fmt.Errorf("standard %q: %w", code, ErrNotFound)
	}

	if collapsed {
		sm.collapsed[code] = true
	} else {
		delete(sm.collapsed, code)
	}
	if err := sm.saveCollapsed(); err != nil {
		sm.logger.Error(ctx, "Failed to save collapse state", log.Fields{"error": err, "code": code})
		return fmt.Errorf("failed to save collapse state: %w", err)
	}
	return nil
}

// IsCollapsed reports whether a standard is collapsed in the hierarchy view.
func (sm *StandardManager) IsCollapsed(code string) bool {
	return sm.collapsed[code]
}

// CollapseList returns the collapsed codes in display order.
func (sm *StandardManager) CollapseList() []string {
	codes := make([]string, 0, len(sm.collapsed))
	for code := range sm.collapsed {
		codes = append(codes, code)
	}
	SortCodes(codes)
	return codes
}

// StandardToInfo extracts StandardInfo from a Standard instance
func (sm *StandardManager) StandardToInfo(standard *model.Standard) model.StandardInfo {
	return model.StandardInfo{
		Code:        standard.Code,
		Name:        standard.Name,
		Description: standard.Description,
		Group:       standard.Group,
		ParentCode:  standard.ParentCode,
	}
}

func sortStandardsByCode(standards []*model.Standard) {
	sort.Slice(standards, func(i, j int) bool {
		return CompareCodes(standards[i].Code, standards[j].Code) < 0
	})
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
