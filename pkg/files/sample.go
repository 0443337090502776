package files

import (
	"os"
	"path/filepath"
	"time"

	"github.com/tabledeck/tabledeck-cli/pkg/models"
)

// WriteSampleDataset scaffolds a users dataset so a fresh project has
// something to open. It refuses to overwrite an existing file.
func WriteSampleDataset() error {
	path := filepath.Join(TabledeckDir, DataDir, "users.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return WriteDataset(sampleUsers())
}

func sampleUsers() *models.Dataset {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return &models.Dataset{
		Name: "users",
		Columns: []models.ColumnSpec{
			{ID: "name", Label: "Name", Type: "text", Role: "name", Sortable: true, Filterable: true, Resizable: true, Editable: true, MinWidth: 10, Width: 24, MaxWidth: 40},
			{ID: "email", Label: "Email", Type: "email", Role: "email", Sortable: true, Filterable: true, Resizable: true, Editable: true, MinWidth: 12, Width: 28, MaxWidth: 48},
			{ID: "phone", Label: "Phone", Type: "phone", Role: "phone", Filterable: true, Resizable: true, Editable: true, MinWidth: 10, Width: 16, MaxWidth: 24},
			{ID: "role", Label: "Role", Type: "select", Role: "role", Options: []string{"Admin", "Manager", "Member", "Guest"}, Sortable: true, Filterable: true, Groupable: true, Editable: true, Resizable: true, MinWidth: 8, Width: 12, MaxWidth: 20},
			{ID: "status", Label: "Status", Type: "select", Role: "status", Options: []string{"Active", "Inactive", "Pending"}, Sortable: true, Filterable: true, Groupable: true, Editable: true, Resizable: true, MinWidth: 8, Width: 12, MaxWidth: 20},
			{ID: "teams", Label: "Teams", Type: "multi-select", Options: []string{"Core", "Support", "Ops", "Design"}, Filterable: true, Editable: true, Resizable: true, MinWidth: 10, Width: 20, MaxWidth: 36},
			{ID: "joined", Label: "Joined", Type: "date", Role: "date", Sortable: true, Filterable: true, Resizable: true, Editable: true, MinWidth: 10, Width: 14, MaxWidth: 20},
		},
		Records: []models.Record{
			{ID: "u1", Fields: map[string]any{"name": "Ada Lovell", "email": "ada@example.com", "phone": "555-0101", "role": "Admin", "status": "Active", "teams": []string{"Core"}, "joined": day(2022, time.March, 14)}},
			{ID: "u2", Fields: map[string]any{"name": "Booker Smith", "email": "booker@example.com", "phone": "555-0102", "role": "Member", "status": "Active", "teams": []string{"Support", "Ops"}, "joined": day(2023, time.January, 9)}},
			{ID: "u3", Fields: map[string]any{"name": "Carmen Diaz", "email": "carmen@example.com", "role": "Manager", "status": "Pending", "teams": []string{"Design"}, "joined": day(2023, time.July, 2)}},
			{ID: "u4", Fields: map[string]any{"name": "Devi Kapoor", "email": "devi@example.com", "phone": "555-0104", "role": "Member", "status": "Inactive", "joined": day(2021, time.November, 30)}},
			{ID: "u5", Fields: map[string]any{"name": "Elio Smithson", "email": "elio@example.com", "role": "Guest", "status": "Active", "teams": []string{"Support"}, "joined": day(2024, time.May, 21)}},
		},
	}
}
