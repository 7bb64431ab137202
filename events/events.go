package events

import "slices"

const PaperPresentation = "Paper Presentation"

type Event struct {
	Name     string
	Category Category
	// Topic events require a free-text topic when selected.
	RequiresTopic bool
}

var catalogue = []Event{
	{Name: PaperPresentation, Category: TECHNICAL, RequiresTopic: true},
	{Name: "Technical Quiz", Category: TECHNICAL},
	{Name: "Code-a-Thon", Category: TECHNICAL},
	{Name: "Project Expo", Category: TECHNICAL},
	{Name: "Photography / Short Film", Category: NON_TECHNICAL},
	{Name: "Treasure Hunt", Category: NON_TECHNICAL},
	{Name: "Gaming (E-Sports)", Category: NON_TECHNICAL},
}

// All returns every event in display order.
func All() []Event {
	return slices.Clone(catalogue)
}

func ByCategory(category Category) []Event {
	var result []Event
	for _, e := range catalogue {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result
}

func Names(evts []Event) []string {
	names := make([]string, len(evts))
	for i, e := range evts {
		names[i] = e.Name
	}
	return names
}

func Lookup(name string) (Event, error) {
	idx := slices.IndexFunc(catalogue, func(e Event) bool { return e.Name == name })
	if idx < 0 {
		return Event{}, NewUnknownEventError(name)
	}
	return catalogue[idx], nil
}
