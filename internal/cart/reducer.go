package cart

type ActionType int

const (
	ActionAdd ActionType = iota
	ActionIncrement
	ActionDecrement
	ActionRemove
	ActionClear
)

func (t ActionType) String() string {
	switch t {
	case ActionAdd:
		return "add"
	case ActionIncrement:
		return "increment"
	case ActionDecrement:
		return "decrement"
	case ActionRemove:
		return "remove"
	case ActionClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Action is a request to change the cart. Product is used by ActionAdd, ID by
// the per-item actions.
type Action struct {
	Type    ActionType
	Product Product
	ID      string
}

func Add(p Product) Action { return Action{Type: ActionAdd, Product: p} }
func Increment(id string) Action { return Action{Type: ActionIncrement, ID: id} }
func Decrement(id string) Action { return Action{Type: ActionDecrement, ID: id} }
func Remove(id string) Action { return Action{Type: ActionRemove, ID: id} }
func Clear() Action { return Action{Type: ActionClear} }

// Reduce returns the state that results from applying action to state and the
// notification describing it. The notification is nil when nothing changed.
// The input state is never modified.
func Reduce(state State, action Action) (State, *Notification) {
	switch action.Type {
	case ActionAdd:
		next := state.clone()
		if i := next.find(action.Product.ID); i >= 0 {
			next.Items[i].Quantity++
			return next, success(next.Items[i].Name + " quantity increased!")
		}
		p := action.Product
		next.Items = append(next.Items, LineItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			Quantity: 1,
		})
		return next, success(p.Name + " added to cart!")

	case ActionIncrement:
		i := state.find(action.ID)
		if i < 0 {
			return state, nil
		}
		next := state.clone()
		next.Items[i].Quantity++
		return next, success(next.Items[i].Name + " quantity increased!")

	case ActionDecrement:
		i := state.find(action.ID)
		if i < 0 || state.Items[i].Quantity <= 1 {
			return state, nil
		}
		next := state.clone()
		next.Items[i].Quantity--
		return next, info(next.Items[i].Name + " quantity decreased!")

	case ActionRemove:
		i := state.find(action.ID)
		if i < 0 {
			return state, nil
		}
		name := state.Items[i].Name
		items := make([]LineItem, 0, len(state.Items)-1)
		items = append(items, state.Items[:i]...)
		items = append(items, state.Items[i+1:]...)
		return State{Items: items}, failure(name + " removed from cart!")

	case ActionClear:
		if len(state.Items) == 0 {
			return state, nil
		}
		return State{Items: []LineItem{}}, failure("Cart cleared!")
	}

	return state, nil
}
