package task

// Collection is the full set of tasks, persisted as one blob.
// Its order carries no meaning; presentation order comes from the query package.
type Collection []Task

// Clone returns a deep copy, so callers cannot reach into the owner's records
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	for i, t := range c {
		if t.CompletedAt != nil {
			at := *t.CompletedAt
			t.CompletedAt = &at
		}
		out[i] = t
	}
	return out
}

// Index returns the position of the task with the given ID, or -1
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find finds a task by ID
func (c Collection) Find(id string) *Task {
	if i := c.Index(id); i >= 0 {
		return &c[i]
	}
	return nil
}

// Remove returns the collection without the task with the given ID
// and whether anything was removed
func (c Collection) Remove(id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, true
}

// ByStatus returns tasks with the given status
func (c Collection) ByStatus(status Status) Collection {
	var result Collection
	for _, t := range c {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}

// IDs returns every task ID in collection order
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}
