package events

type Category int

const (
	TECHNICAL Category = iota
	NON_TECHNICAL
)

func (c Category) String() string {
	switch c {
	case TECHNICAL:
		return "Technical Events"
	case NON_TECHNICAL:
		return "Non-Technical Events"
	default:
		return "Category(unknown)"
	}
}
