package constants

const (
	ViewData        = "view_data"
	CreateProperty  = "create_property"
	EditProperty    = "edit_property"
	DeleteProperty  = "delete_property"
	CreateOffer     = "create_offer"
	DecideOffer     = "decide_offer"
	ViewOffers      = "view_offers"
	SendMessage     = "send_message"
	ManageFavorites = "manage_favorites"
	ManageCatalog   = "manage_catalog"
	ManageUsers     = "manage_users"
)
