package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// handleSystemExport handles the system export command
func handleSystemExport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling system export command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for system export", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("system export command requires 1 or 2 arguments: <filename> [json|xml|yaml]")
	}

	filename := cmd.Args[0]
	format := formatForFilename(filename)
	if len(cmd.Args) == 2 {
		format = strings.ToLower(cmd.Args[1])
	}
	if format != "json" && format != "xml" && format != "yaml" {
		s.logger.Error(ctx, "Invalid export format", log.Fields{"format": format})
		return nil, errors.New("invalid format: use 'json', 'xml' or 'yaml'")
	}

	if err := s.DataManager.CatalogueExport(filename, format); err != nil {
		s.logger.Error(ctx, "Failed to export catalogue", log.Fields{"error": err, "filename": filename})
		return nil, fmt.Errorf("failed to export catalogue: %w", err)
	}

	s.logger.Info(ctx, "Catalogue exported successfully", log.Fields{"filename": filename, "format": format})
	return fmt.Sprintf("Catalogue exported to %s", filename), nil
}

// handleSystemImport handles the system import command
func handleSystemImport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling system import command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 1 || len(cmd.Args) > 2 {
		s.logger.Error(ctx, "Invalid number of arguments for system import", log.Fields{"argCount": len(cmd.Args)})
		return nil, errors.New("system import command requires 1 or 2 arguments: <filename> [json|xml|yaml]")
	}

	filename := cmd.Args[0]
	format := formatForFilename(filename)
	if len(cmd.Args) == 2 {
		format = strings.ToLower(cmd.Args[1])
	}
	if format != "json" && format != "xml" && format != "yaml" {
		s.logger.Error(ctx, "Invalid import format", log.Fields{"format": format})
		return nil, errors.New("invalid format: use 'json', 'xml' or 'yaml'")
	}

	catalogue, err := s.DataManager.CatalogueImport(filename, format)
	if err != nil {
		s.logger.Error(ctx, "Failed to import catalogue", log.Fields{"error": err, "filename": filename})
		return nil, fmt.Errorf("failed to import catalogue: %w", err)
	}

	s.logger.Info(ctx, "Catalogue imported successfully", log.Fields{"filename": filename, "format": format})
	return fmt.Sprintf("Imported %d groups, %d standards and %d staff members from %s",
		len(catalogue.Groups), len(catalogue.Standards), len(catalogue.Staff), filename), nil
}

// handleSystemExit handles the system exit and quit commands
func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling system exit command", nil)

	if len(cmd.Args) != 0 {
		s.logger.Error(ctx, "Invalid number of arguments for system exit", log.Fields{"argCount": len(cmd.Args)})
		return nil, fmt.Errorf("system %s command does not accept any arguments", cmd.Operation)
	}

	return nil, fmt.Errorf("exit requested: %w", io.EOF)
}

// formatForFilename infers the exchange format from the file extension
func formatForFilename(filename string) string {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".") {
	case "xml":
		return "xml"
	case "yaml", "yml":
		return "yaml"
	default:
		return "json"
	}
}
