// Package data provides data management functionality for the Skillscape application.
// It coordinates operations between the user, group, standard and staff managers.
package data

import (
	"context"
	"fmt"
	"strings"

	"skillscape/local-app/pkg/event"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
	"skillscape/local-app/pkg/storage"
)

// Storage keys the managers persist their arrays under.
const (
	storageKeyGroups    = "groups"
	storageKeyStandards = "standards"
	storageKeyCollapsed = "collapsed"
	storageKeyStaff     = "staff"
	storageKeyUsers     = "users"
)

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	UserManager     *UserManager
	GroupManager    *GroupManager
	StandardManager *StandardManager
	StaffManager    *StaffManager
	EventManager    *event.EventManager
	Config          *model.Config
	Logger          *log.Logger
}

// NewDataManager creates a new DataManager instance backed by the given
// store. Every manager hydrates its state from storage, the cross-manager
// views are wired both ways and the default user is created when missing.
func NewDataManager(store storage.Store, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	// Initialize UserManager
	var err error
	m.UserManager, err = NewUserManager(store, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create UserManager: %w", err)
	}

	// Initialize GroupManager
	m.GroupManager, err = NewGroupManager(store, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GroupManager: %w", err)
	}

	// Initialize StandardManager
	m.StandardManager, err = NewStandardManager(store, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create StandardManager: %w", err)
	}

	// Initialize StaffManager
	m.StaffManager, err = NewStaffManager(store, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create StaffManager: %w", err)
	}

	// Wire the cross-manager views
	m.GroupManager.SetStandardsView(m.StandardManager)
	m.StandardManager.SetGroupsView(m.GroupManager)
	m.StaffManager.SetStandardsIndex(m.StandardManager)
	m.GroupManager.SetDefaultColor(cfg.DefaultGroupColor)

	// Handle default user logic
	if cfg.DefaultUser != "" {
		if _, err := m.UserManager.UserGet(cfg.DefaultUser); err != nil {
			_, err = m.UserManager.UserAdd(model.UserInfo{
				Username: cfg.DefaultUser,
				Password: cfg.DefaultUserPassword,
				Active:   cfg.DefaultUserActive,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create default user: %w", err)
			}
		}
	}

	return m, nil
}

// CatalogueSnapshot assembles the current groups, standards and staff into
// one exportable catalogue. Users are not part of exports.
func (m *DataManager) CatalogueSnapshot() *model.Catalogue {
	return &model.Catalogue{
		Groups:    m.GroupManager.GroupList(),
		Standards: m.StandardManager.StandardList(),
		Staff:     m.StaffManager.StaffList(),
	}
}

// CatalogueExport exports the whole catalogue to a file in the specified format.
func (m *DataManager) CatalogueExport(filename, format string) error {
	ctx := context.Background()
	m.Logger.Info(ctx, "Exporting catalogue", log.Fields{"filename": filename, "format": format})

	if err := storage.FileExport(m.CatalogueSnapshot(), filename, format); err != nil {
		m.Logger.Error(ctx, "Failed to export catalogue", log.Fields{"error": err, "filename": filename})
		return fmt.Errorf("failed to export catalogue: %w", err)
	}

	m.Logger.Info(ctx, "Catalogue exported successfully", log.Fields{"filename": filename})
	return nil
}

// CatalogueImport imports a catalogue from a file in the specified format,
// replacing the current groups, standards and staff wholesale. The imported
// catalogue is validated fully before anything is replaced, so a rejected
// import leaves the current state untouched.
func (m *DataManager) CatalogueImport(filename, format string) (*model.Catalogue, error) {
	ctx := context.Background()
	m.Logger.Info(ctx, "Importing catalogue", log.Fields{"filename": filename, "format": format})

	imported, err := storage.FileImport(filename, format)
	if err != nil {
		m.Logger.Error(ctx, "Failed to read catalogue file", log.Fields{"error": err, "filename": filename})
		return nil, fmt.Errorf("failed to import catalogue: %w", err)
	}

	// Validate the imported catalogue structure
	if err := m.validateCatalogue(imported); err != nil {
		m.Logger.Warn(ctx, "Imported catalogue rejected", log.Fields{"error": err, "filename": filename})
		return nil, fmt.Errorf("invalid catalogue structure: %w", err)
	}
	m.normalizeCatalogue(imported)

	// Replace the in-memory state wholesale
	if err := m.GroupManager.replaceAll(imported.Groups); err != nil {
		return nil, fmt.Errorf("failed to replace groups: %w", err)
	}
	if err := m.StandardManager.replaceAll(imported.Standards); err != nil {
		return nil, fmt.Errorf("failed to replace standards: %w", err)
	}
	if err := m.StaffManager.replaceAll(imported.Staff); err != nil {
		return nil, fmt.Errorf("failed to replace staff: %w", err)
	}

	// Publish CatalogueImported event
	m.EventManager.Publish(event.Event{
		Type: event.CatalogueImported,
		Data: imported,
	})

	m.Logger.Info(ctx, "Catalogue imported successfully", log.Fields{"filename": filename, "groups": len(imported.Groups), "standards": len(imported.Standards), "staff": len(imported.Staff)})
	return imported, nil
}

// validateCatalogue checks an imported catalogue against the same invariants
// the mutation operations maintain: unique names, letters and codes, valid
// grammar, resolvable parent and group references, consistent prefixes and
// groups along each lineage, acyclic parent chains and scores in range.
func (m *DataManager) validateCatalogue(catalogue *model.Catalogue) error {
	// Groups: names and letters unique, letters well formed
	groupsByName := make(map[string]*model.Group, len(catalogue.Groups))
	groupCodes := make(map[string]bool, len(catalogue.Groups))
	for _, group := range catalogue.Groups {
		if group.Name == "" {
			return fmt.Errorf("group name: %w", ErrMissingRequiredField)
		}
		if err := ValidateGroupCode(group.Code); err != nil {
			return err
		}
		if groupsByName[group.Name] != nil {
			return fmt.Errorf("group %q: %w", group.Name, ErrDuplicateGroup)
		}
		if groupCodes[group.Code] {
			return fmt.Errorf("group code %q: %w", group.Code, ErrDuplicateGroup)
		}
		groupsByName[group.Name] = group
		groupCodes[group.Code] = true
	}

	// Standards: codes unique and well formed
	byCode := make(map[string]*model.Standard, len(catalogue.Standards))
	for _, standard := range catalogue.Standards {
		if standard.Name == "" {
			return fmt.Errorf("standard %q name: %w", standard.Code, ErrMissingRequiredField)
		}
		if err := ValidateCode(standard.Code); err != nil {
			return err
		}
		if byCode[standard.Code] != nil {
			return fmt.Errorf("standard code %q: %w", standard.Code, ErrDuplicateCode)
		}
		byCode[standard.Code] = standard
	}

	// Standards: references resolve, prefixes and groups line up
	for _, standard := range catalogue.Standards {
		if standard.ParentCode != "" {
			parent := byCode[standard.ParentCode]
			if parent == nil {
				return fmt.Errorf("standard %q references missing parent %q: %w", standard.Code, standard.ParentCode, ErrReferentialIntegrity)
			}
			if !strings.HasPrefix(standard.Code, standard.ParentCode+".") {
				return fmt.Errorf("standard %q does not extend parent code %q: %w", standard.Code, standard.ParentCode, ErrMalformedCode)
			}
			if standard.Group != parent.Group {
				return fmt.Errorf("standard %q group %q differs from parent group %q: %w", standard.Code, standard.Group, parent.Group, ErrMalformedCode)
			}
		} else if standard.Group != "" {
			group := groupsByName[standard.Group]
			if group == nil {
				return fmt.Errorf("standard %q references missing group %q: %w", standard.Code, standard.Group, ErrReferentialIntegrity)
			}
			if !strings.HasPrefix(standard.Code, group.Code+".") {
				return fmt.Errorf("standard %q does not start with group letter %q: %w", standard.Code, group.Code, ErrMalformedCode)
			}
		}
	}

	// Standards: parent chains terminate
	for _, standard := range catalogue.Standards {
		hops := 0
		current := standard.ParentCode
		for current != "" {
			if current == standard.Code {
				return fmt.Errorf("standard %q is its own ancestor: %w", standard.Code, ErrCycle)
			}
			hops++
			if hops > len(catalogue.Standards) {
				return fmt.Errorf("parent chain of %q never terminates: %w", standard.Code, ErrCycle)
			}
			parent := byCode[current]
			if parent == nil {
				break
			}
			current = parent.ParentCode
		}
	}

	// Staff: names unique, scores in range
	staffNames := make(map[string]bool, len(catalogue.Staff))
	for _, member := range catalogue.Staff {
		if member.Name == "" {
			return fmt.Errorf("staff name: %w", ErrMissingRequiredField)
		}
		if staffNames[member.Name] {
			return fmt.Errorf("staff member %q: %w", member.Name, ErrDuplicateName)
		}
		staffNames[member.Name] = true
		for _, assessment := range member.Assessments {
			if assessment.Score < 1 || assessment.Score > 5 {
				return fmt.Errorf("assessment of %q for %q has score %d: %w", assessment.StandardCode, member.Name, assessment.Score, ErrInvalidScore)
			}
		}
	}

	return nil
}

// normalizeCatalogue recomputes the derived fields of a validated catalogue:
// levels follow from the codes, children lists are rebuilt by the standard
// manager on replace, and assessments referencing standards absent from the
// import are dropped with a warning rather than failing the whole import.
func (m *DataManager) normalizeCatalogue(catalogue *model.Catalogue) {
	ctx := context.Background()

	byCode := make(map[string]bool, len(catalogue.Standards))
	for _, standard := range catalogue.Standards {
		standard.Level = LevelOf(standard.Code)
		byCode[standard.Code] = true
	}

	for _, member := range catalogue.Staff {
		kept := make([]*model.Assessment, 0, len(member.Assessments))
		for _, assessment := range member.Assessments {
			if !byCode[assessment.StandardCode] {
				m.Logger.Warn(ctx, "Dropping assessment of a standard absent from the import", log.Fields{"staff": member.Name, "code": assessment.StandardCode})
				continue
			}
			kept = append(kept, assessment)
		}
		member.Assessments = kept
	}
}
