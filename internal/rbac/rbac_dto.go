package rbac

type EnforceRequest struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Resource       string `json:"resource"`
	Action         string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
