package rbac

type ContextKey string

const (
	ContextUserID         ContextKey = "user_id_validated"
	ContextOrganizationID ContextKey = "organization_id"
)
