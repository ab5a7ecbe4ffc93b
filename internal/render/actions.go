package render

// ItemAction is the list button shown on a carousel item.
type ItemAction struct {
	Kind  string // "add" or "remove"
	Icon  string
	Label string
}

var (
	ActionAdd = ItemAction{
		Kind:  "add",
		Icon:  "/assets/static/plus-icon.png",
		Label: "Agregar a mi lista",
	}
	ActionRemove = ItemAction{
		Kind:  "remove",
		Icon:  "/assets/static/remove-icon.png",
		Label: "Quitar de mi lista",
	}
)

// ItemActionFor picks the button for an item: items already on the list can only be removed.
func ItemActionFor(isList bool) ItemAction {
	if isList {
		return ActionRemove
	}
	return ActionAdd
}
