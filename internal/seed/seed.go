// Package seed fills an empty store with reference departments and a few
// unowned employees.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/officeplan/internal/models"
	"github.com/mmynk/officeplan/internal/storage"
)

//go:embed defaults.yaml
var defaultData []byte

type Data struct {
	Departments []Department `yaml:"departments"`
	Employees   []Employee   `yaml:"employees"`
}

type Department struct {
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Employee struct {
	ID         string `yaml:"id,omitempty"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
}

// Default returns the built-in seed data.
func Default() (*Data, error) {
	return parse(defaultData)
}

// Load reads seed data from path, or returns Default when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for i, e := range d.Employees {
		if e.Name == "" {
			return nil, fmt.Errorf("seed employee %d has no name", i)
		}
	}
	return &d, nil
}

// Apply writes d into store when the store has neither departments nor
// employees. It reports whether anything was written. Seeded employees are
// unowned so every device may edit them.
func Apply(ctx context.Context, store storage.Store, d *Data) (bool, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check employees: %w", err)
	}
	departments, err := store.ListDepartments(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check departments: %w", err)
	}
	if len(employees) > 0 || len(departments) > 0 {
		return false, nil
	}

	for _, dep := range d.Departments {
		m := &models.Department{ID: dep.ID, Name: dep.Name, Color: dep.Color}
		if err := store.CreateDepartment(ctx, m); err != nil {
			return false, fmt.Errorf("failed to seed department %s: %w", dep.Name, err)
		}
	}
	for _, e := range d.Employees {
		m := &models.Employee{ID: e.ID, Name: e.Name, Department: e.Department}
		if err := store.CreateEmployee(ctx, m); err != nil {
			return false, fmt.Errorf("failed to seed employee %s: %w", e.Name, err)
		}
	}

	slog.Info("Seeded empty store",
		"departments", len(d.Departments),
		"employees", len(d.Employees),
	)
	return true, nil
}
