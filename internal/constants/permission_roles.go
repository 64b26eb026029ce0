package constants

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:        {Admin, Agent, Client, Developer},
	CreateProperty:  {Agent},
	EditProperty:    {Agent},
	DeleteProperty:  {Agent},
	CreateOffer:     {Client},
	DecideOffer:     {Agent},
	ViewOffers:      {Agent, Client},
	SendMessage:     {Agent, Client},
	ManageFavorites: {Client},
	ManageCatalog:   {Admin},
	ManageUsers:     {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
