package goal

// Filter selects active goals by category and/or priority. Zero fields match anything.
type Filter struct {
	Category Category
	Priority Priority
}

func (f Filter) Empty() bool {
	return f.Category == "" && f.Priority == ""
}

func (f Filter) Match(g Goal) bool {
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	if f.Priority != "" && g.Priority != f.Priority {
		return false
	}
	return true
}
