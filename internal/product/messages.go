package product

// User-visible notification texts.
const (
	MsgAdded         = "Product added!"
	MsgUpdated       = "Product updated!"
	MsgDeleted       = "Product deleted!"
	MsgSaveFailed    = "Error saving product."
	MsgDeleteFailed  = "Error deleting product."
	MsgFetchFailed   = "Failed to fetch products from backend."
	MsgFetchErrState = "Failed to fetch products."

	ConfirmDeletePrompt = "Are you sure you want to delete this product?"
)
