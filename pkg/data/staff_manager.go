// Package data provides data management functionality for the Skillscape application.
// This file contains operations related to staff members and their
// assessments against standards.
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

// StaffOperations defines the interface for staff-related operations
type StaffOperations interface {
	StaffAdd(newStaffInfo model.StaffInfo) (*model.Staff, error)
	StaffGet(name string) (*model.Staff, error)
	StaffList() []*model.Staff
	StaffToInfo(member *model.Staff) model.StaffInfo
	StaffUpdate(name string, staffUpdateInfo model.StaffInfo, staffFilter model.StaffFilter) error
	StaffDelete(name string) error
	AssessmentSet(staffName, code string, score int, note string) (*model.Assessment, error)
	AssessmentDelete(staffName, code string) error
	AssessmentList(staffName string) ([]*model.Assessment, error)
}

// StandardsIndex is the subset of standard tree operations the staff manager
// needs to validate assessment targets. It is implemented by StandardManager
// and wired in by DataManager after both managers exist.
type StandardsIndex interface {
	StandardGet(code string) (*model.Standard, error)
}

// StaffManager handles all staff-related operations and keeps assessments
// aligned with the standard tree: when standard codes are rewritten by a
// move or recode the matching assessment codes are rewritten too, and
// assessments pointing at deleted standards are dropped.
type StaffManager struct {
	staff        []*model.Staff
	store        storage.Store
	eventManager *event.EventManager
	logger       *log.Logger
	standards    StandardsIndex
}

// NewStaffManager creates a new StaffManager instance, loads the staff roster
// from storage and subscribes to the standard tree events it has to track.
func NewStaffManager(store storage.Store, eventManager *event.EventManager, logger *log.Logger) (*StaffManager, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new StaffManager", nil)

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

	stm := &StaffManager{
		staff:        []*model.Staff{},
		store:        store,
		eventManager: eventManager,
		logger:       logger,
	}
	if err := stm.load(); err != nil {
		logger.Error(ctx, "Failed to load staff", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	eventManager.Subscribe(event.StandardCodesRewritten, stm.handleStandardCodesRewritten)
	eventManager.Subscribe(event.StandardsDeleted, stm.handleStandardsDeleted)

	logger.Info(ctx, "StaffManager created successfully", log.Fields{"count": len(stm.staff)})
	return stm, nil
}

// SetStandardsIndex wires in the standard tree view used to validate
// assessment targets. It must be called before assessments are recorded.
func (stm *StaffManager) SetStandardsIndex(standards StandardsIndex) {
	stm.standards = standards
}

func (stm *StaffManager) load() error {
	var staff []*model.Staff
	found, err := stm.store.Load(storageKeyStaff, &staff)
	if err != nil {
		return err
	}
	if found {
		stm.staff = staff
	}
	return nil
}

func (stm *StaffManager) saveStaff() error {
	return stm.store.Save(storageKeyStaff, stm.staff)
}

func (stm *StaffManager) findStaff(name string) (*model.Staff, int) {
	for i, member := range stm.staff {
		if member.Name == name {
			return member, i
		}
	}
	return nil, -1
}

func (stm *StaffManager) ensureStandardsIndex() error {
	if stm.standards == nil {
		return fmt.Errorf("standards index not initialized")
	}
	return nil
}

// StaffAdd creates a new staff member.
func (stm *StaffManager) StaffAdd(newStaffInfo model.StaffInfo) (*model.Staff, error) {
	ctx := context.Background()
	stm.logger.Info(ctx, "Adding new staff member", log.Fields{"name": newStaffInfo.Name})

	if newStaffInfo.Name == "" {
		stm.logger.Warn(ctx, "Staff name is empty", nil)
		return nil, fmt.Errorf("staff name: %w", ErrMissingRequiredField)
	}
	if existing, _ := stm.findStaff(newStaffInfo.Name); existing != nil {
		stm.logger.Warn(ctx, "Staff member already exists", log.Fields{"name": newStaffInfo.Name})
		return nil, fmt.Errorf("staff member %q: %w", newStaffInfo.Name, ErrDuplicateName)
	}

	now := time.Now()
	member := &model.Staff{
		Name:        newStaffInfo.Name,
		Role:        newStaffInfo.Role,
		Email:       newStaffInfo.Email,
		Assessments: []*model.Assessment{},
		Created:     now,
		Updated:     now,
	}

	stm.staff = append(stm.staff, member)
	if err := stm.saveStaff(); err != nil {
		stm.staff = stm.staff[:len(stm.staff)-1]
		stm.logger.Error(ctx, "Failed to save staff", log.Fields{"error": err, "name": member.Name})
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}

	stm.logger.Info(ctx, "Staff member added successfully", log.Fields{"name": member.Name})
	return member, nil
}

// StaffGet retrieves a staff member by exact name.
func (stm *StaffManager) StaffGet(name string) (*model.Staff, error) {
	member, _ := stm.findStaff(name)
	if member == nil {
		return nil, fmt.Errorf("staff member %q: %w", name, ErrNotFound)
	}
	return member, nil
}

// StaffList returns all staff members ordered by name.
func (stm *StaffManager) StaffList() []*model.Staff {
	staff := make([]*model.Staff, len(stm.staff))
	copy(staff, stm.staff)
	sort.Slice(staff, func(i, j int) bool {
		return staff[i].Name < staff[j].Name
	})
	return staff
}

// StaffToInfo extracts StaffInfo from a Staff instance
func (stm *StaffManager) StaffToInfo(member *model.Staff) model.StaffInfo {
	count := len(member.Assessments)
	return model.StaffInfo{
		Name:            member.Name,
		Role:            member.Role,
		Email:           member.Email,
		AssessmentCount: &count,
	}
}

// StaffUpdate updates a staff member's name, role or email.
func (stm *StaffManager) StaffUpdate(name string, staffUpdateInfo model.StaffInfo, staffFilter model.StaffFilter) error {
	ctx := context.Background()
	stm.logger.Info(ctx, "Updating staff member", log.Fields{"name": name, "filter": staffFilter})

	member, _ := stm.findStaff(name)
	if member == nil {
		stm.logger.Warn(ctx, "Staff member not found", log.Fields{"name": name})
		return fmt.Errorf("staff member %q: %w", name, ErrNotFound)
	}
	if staffFilter.Name && staffUpdateInfo.Name == "" {
		stm.logger.Warn(ctx, "Staff name is empty", log.Fields{"name": name})
		return fmt.Errorf("staff name: %w", ErrMissingRequiredField)
	}
	if staffFilter.Name && staffUpdateInfo.Name != member.Name {
		if existing, _ := stm.findStaff(staffUpdateInfo.Name); existing != nil {
			stm.logger.Warn(ctx, "Staff name already taken", log.Fields{"name": staffUpdateInfo.Name})
			return fmt.Errorf("staff member %q: %w", staffUpdateInfo.Name, ErrDuplicateName)
		}
	}

	// Store old values for potential rollback
	old := *member

	if staffFilter.Name {
		member.Name = staffUpdateInfo.Name
	}
	if staffFilter.Role {
		member.Role = staffUpdateInfo.Role
	}
	if staffFilter.Email {
		member.Email = staffUpdateInfo.Email
	}
	member.Updated = time.Now()

	if err := stm.saveStaff(); err != nil {
		*member = old
		stm.logger.Error(ctx, "Failed to save staff", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to save staff: %w", err)
	}

	stm.logger.Info(ctx, "Staff member updated successfully", log.Fields{"name": member.Name})
	return nil
}

// StaffDelete removes a staff member and their assessments.
func (stm *StaffManager) StaffDelete(name string) error {
	ctx := context.Background()
	stm.logger.Info(ctx, "Deleting staff member", log.Fields{"name": name})

	member, idx := stm.findStaff(name)
	if member == nil {
		stm.logger.Warn(ctx, "Staff member not found", log.Fields{"name": name})
		return fmt.Errorf("staff member %q: %w", name, ErrNotFound)
	}

	stm.staff = append(stm.staff[:idx], stm.staff[idx+1:]...)
	if err := stm.saveStaff(); err != nil {
		stm.staff = append(stm.staff[:idx], append([]*model.Staff{member}, stm.staff[idx:]...)...)
		stm.logger.Error(ctx, "Failed to save staff", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to save staff: %w", err)
	}

	stm.logger.Info(ctx, "Staff member deleted successfully", log.Fields{"name": name})
	return nil
}

// AssessmentSet records or updates the assessment of a staff member against
// a standard. The standard must exist and the score must sit in the 1 to 5
// range.
func (stm *StaffManager) AssessmentSet(staffName, code string, score int, note string) (*model.Assessment, error) {
	ctx := context.Background()
	stm.logger.Info(ctx, "Setting assessment", log.Fields{"staff": staffName, "code": code, "score": score})

	member, _ := stm.findStaff(staffName)
	if member == nil {
		stm.logger.Warn(ctx, "Staff member not found", log.Fields{"name": staffName})
		return nil, fmt.Errorf("staff member %q: %w", staffName, ErrNotFound)
	}
	if err := stm.ensureStandardsIndex(); err != nil {
		return nil, err
	}
	if _, err := stm.standards.StandardGet(code); err != nil {
		stm.logger.Warn(ctx, "Assessed standard not found", log.Fields{"code": code})
		return nil, err
	}
	if score < 1 || score > 5 {
		stm.logger.Warn(ctx, "Assessment score out of range", log.Fields{"score": score})
		return nil, fmt.Errorf("score %d: %w", score, ErrInvalidScore)
	}

	// Update the existing assessment or record a new one
	now := time.Now()
	var old model.Assessment
	appended := false
	assessment := member.AssessmentFor(code)
	if assessment == nil {
		assessment = &model.Assessment{StandardCode: code}
		member.Assessments = append(member.Assessments, assessment)
		appended = true
	} else {
		old = *assessment
	}
	oldUpdated := member.Updated
	assessment.Score = score
	assessment.Note = note
	assessment.Assessed = now
	member.Updated = now

	if err := stm.saveStaff(); err != nil {
		if appended {
			member.Assessments = member.Assessments[:len(member.Assessments)-1]
		} else {
			*assessment = old
		}
		member.Updated = oldUpdated
		stm.logger.Error(ctx, "Failed to save staff", log.Fields{"error": err, "staff": staffName})
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}

	stm.logger.Info(ctx, "Assessment set successfully", log.Fields{"staff": staffName, "code": code, "score": score})
	return assessment, nil
}

// AssessmentDelete removes a staff member's assessment against a standard.
func (stm *StaffManager) AssessmentDelete(staffName, code string) error {
	ctx := context.Background()
	stm.logger.Info(ctx, "Deleting assessment", log.Fields{"staff": staffName, "code": code})

	member, _ := stm.findStaff(staffName)
	if member == nil {
		stm.logger.Warn(ctx, "Staff member not found", log.Fields{"name": staffName})
		return fmt.Errorf("staff member %q: %w", staffName, ErrNotFound)
	}

	for i, assessment := range member.Assessments {
		if assessment.StandardCode == code {
			member.Assessments = append(member.Assessments[:i], member.Assessments[i+1:]...)
			member.Updated = time.Now()
			if err := stm.saveStaff(); err != nil {
				member.Assessments = append(member.Assessments[:i], append([]*model.Assessment{assessment}, member.Assessments[i:]...)...)
				stm.logger.Error(ctx, "Failed to save staff", log.Fields{"error": err, "staff": staffName})
				return fmt.Errorf("failed to save staff: %w", err)
			}
			stm.logger.Info(ctx, "Assessment deleted successfully", log.Fields{"staff": staffName, "code": code})
			return nil
		}
	}

	stm.logger.Warn(ctx, "Assessment not found", log.Fields{"staff": staffName, "code": code})
	return fmt.Errorf("assessment of %q for %q: %w", code, staffName, ErrNotFound)
}

// AssessmentList returns a staff member's assessments ordered by standard
// code.
func (stm *StaffManager) AssessmentList(staffName string) ([]*model.Assessment, error) {
	member, _ := stm.findStaff(staffName)
	if member == nil {
		return nil, fmt.Errorf("staff member %q: %w", staffName, ErrNotFound)
	}

	assessments := make([]*model.Assessment, len(member.Assessments))
	copy(assessments, member.Assessments)
	sort.Slice(assessments, func(i, j int) bool {
		return CompareCodes(assessments[i].StandardCode, assessments[j].StandardCode) < 0
	})
	return assessments, nil
}

// replaceAll swaps in a new staff roster, used by catalogue import.
func (stm *StaffManager) replaceAll(staff []*model.Staff) error {
	if staff == nil {
		staff = []*model.Staff{}
	}
	old := stm.staff
	stm.staff = staff
	if err := stm.saveStaff(); err != nil {
		stm.staff = old
		return fmt.Errorf("failed to save staff: %w", err)
	}
	return nil
}

// handleStandardCodesRewritten rewrites assessment codes after standard codes
// changed through a move or recode.
func (stm *StaffManager) handleStandardCodesRewritten(e event.Event) {
	ctx := context.Background()
	stm.logger.Info(ctx, "Handling StandardCodesRewritten event", nil)

	pairs, ok := e.Data.([]event.CodeRewrite)
	if !ok {
		stm.logger.Error(ctx, "Invalid event data for code rewrite event", nil)
		return
	}
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		mapping[pair.OldCode] = pair.NewCode
	}

	changed := 0
	for _, member := range stm.staff {
		for _, assessment := range member.Assessments {
			if newCode, ok := mapping[assessment.StandardCode]; ok {
				assessment.StandardCode = newCode
				changed++
			}
		}
	}
	if changed == 0 {
		return
	}

	if err := stm.saveStaff(); err != nil {
		stm.logger.Error(ctx, "Failed to save staff after code rewrite", log.Fields{"error": err, "changed": changed})
		return
	}
	stm.logger.Info(ctx, "Assessment codes rewritten", log.Fields{"count": changed})
}

// handleStandardsDeleted drops assessments pointing at deleted standards.
func (stm *StaffManager) handleStandardsDeleted(e event.Event) {
	ctx := context.Background()
	stm.logger.Info(ctx, "Handling StandardsDeleted event", nil)

	codes, ok := e.Data.([]string)
	if !ok {
		stm.logger.Error(ctx, "Invalid event data for standards delete event", nil)
		return
	}
	deleted := make(map[string]bool, len(codes))
	for _, code := range codes {
		deleted[code] = true
	}

	changed := 0
	for _, member := range stm.staff {
		var kept []*model.Assessment
		for _, assessment := range member.Assessments {
			if deleted[assessment.StandardCode] {
				changed++
				continue
			}
			kept = append(kept, assessment)
		}
		if kept == nil {
			kept = []*model.Assessment{}
		}
		member.Assessments = kept
	}
	if changed == 0 {
		return
	}

	if err := stm.saveStaff(); err != nil {
		stm.logger.Error(ctx, "Failed to save staff after standard deletion", log.Fields{"error": err, "dropped": changed})
		return
	}
	stm.logger.Info(ctx, "Orphaned assessments dropped", log.Fields{"count": changed})
}
