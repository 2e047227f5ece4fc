package permissions

import (
	"fmt"

	"github.com/tdeslauriers/tales/pkg/data"
	"github.com/tdeslauriers/tales/pkg/validate"
)

// PermissionRecord is a model struct for the permission table: a fine
// grained permission scoped to a single service, identified externally
// by Slug/SlugIndex rather than its Id.
type PermissionRecord struct {
	Id          string          `db:"uuid" json:"uuid"`
	ServiceName string          `db:"service_name" json:"service_name"`
	Permission  string          `db:"permission" json:"permission"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	CreatedAt   data.CustomTime `db:"created_at" json:"created_at"`
	Active      bool            `db:"active" json:"active"`
	Slug        string          `db:"slug" json:"slug"`
	SlugIndex   string          `db:"slug_index" json:"-"`
}

// Validate performs field validation on a PermissionRecord prior to
// insert or update.
func (p *PermissionRecord) Validate() error {

	if _, err := validate.IsValidServiceName(p.ServiceName); err != nil {
		return fmt.Errorf("invalid service name: %v", err)
	}

	if _, err := validate.IsValidPermission(p.Permission); err != nil {
		return fmt.Errorf("invalid permission: %v", err)
	}

	if _, err := validate.IsValidPermissionName(p.Name); err != nil {
		return fmt.Errorf("invalid name: %v", err)
	}

	if validate.TooShort(p.Description, 2) || validate.TooLong(p.Description, 256) {
		return fmt.Errorf("invalid description: must be between %d and %d characters", 2, 256)
	}

	return nil
}
