package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(organizationID string) ([]UserRoleRow, error)
	GetRolePermissions(organizationID string) ([]RolePermissionRow, error)

	ListRoles(organizationID string) ([]RoleRow, error)
	GetRoleByID(id string) (*RoleRow, error)
	ListPermissions() ([]PermissionRow, error)
	GetPermissionsByRoleID(roleID string) ([]PermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type RoleRow struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrganizationID string `gorm:"type:uuid"`
	Name           string
	Description    string
	CreatedAt      string
	UpdatedAt      string
}

func (RoleRow) TableName() string { return "roles" }

type PermissionRow struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (PermissionRow) TableName() string { return "permissions" }

type UserRoleRow struct {
	UserID string
	RoleID string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetUserRoles(organizationID string) ([]UserRoleRow, error) {
	var result []UserRoleRow

	err := r.db.
		Table("user_roles").
		Select("user_roles.user_id, user_roles.role_id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.organization_id = ?", organizationID).
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions(organizationID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("roles.organization_id = ?", organizationID).
		Scan(&result).Error

	return result, err
}

func (r *repository) ListRoles(organizationID string) ([]RoleRow, error) {
	var result []RoleRow
	err := r.db.Where("organization_id = ?", organizationID).Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByID(id string) (*RoleRow, error) {
	var result RoleRow
	err := r.db.First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) ListPermissions() ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.Order("category, label").Find(&result).Error
	return result, err
}

func (r *repository) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	var result []PermissionRow
	err := r.db.
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Scan(&result).Error
	return result, err
}
