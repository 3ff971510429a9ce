package store

import "github.com/taskhub/taskhub/internal/model"

// StatusConfigs returns a copy of the ordered status palette.
func (s *Store) StatusConfigs() []model.StatusConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusConfig(nil), s.doc.StatusConfigs...)
}

// AddStatus appends a status config. Names are unique across the document;
// a duplicate or empty name is refused.
func (s *Store) AddStatus(name, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return false
	}
	for _, c := range s.doc.StatusConfigs {
		if c.Name == name {
			return false
		}
	}
	s.doc.StatusConfigs = append(append([]model.StatusConfig(nil), s.doc.StatusConfigs...), model.StatusConfig{Name: name, Color: color})
	s.doc.Statuses = model.StatusNames(s.doc.StatusConfigs)
	s.persistLocked()
	return true
}

// RenameStatus renames the config entry and rewrites the status on every
// task and subtask holding the old name, across all boards and workspaces,
// atomically with the config rename. Renaming onto an existing different
// name is refused; renaming only the color (oldName == newName) is allowed.
func (s *Store) RenameStatus(oldName, newName, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" {
		return false
	}
	exists := false
	for _, c := range s.doc.StatusConfigs {
		if c.Name == oldName {
			exists = true
		}
		if c.Name == newName && oldName != newName {
			return false
		}
	}
	if !exists {
		return false
	}

	configs := make([]model.StatusConfig, len(s.doc.StatusConfigs))
	for i, c := range s.doc.StatusConfigs {
		if c.Name == oldName {
			c = model.StatusConfig{Name: newName, Color: color}
		}
		configs[i] = c
	}
	s.doc.StatusConfigs = configs
	s.doc.Statuses = model.StatusNames(configs)

	s.doc.Workspaces = model.UpdateEachBoard(s.doc.Workspaces, func(b model.Board) model.Board {
		tasks := make([]model.Task, len(b.Tasks))
		for i, t := range b.Tasks {
			if t.Status == oldName {
				t.Status = newName
			}
			subtasks := make([]model.Subtask, len(t.Subtasks))
			for j, st := range t.Subtasks {
				if st.Status == oldName {
					st.Status = newName
				}
				subtasks[j] = st
			}
			t.Subtasks = subtasks
			tasks[i] = t
		}
		b.Tasks = tasks
		return b
	})

	s.persistLocked()
	return true
}

// DeleteStatus removes the config entry only. Tasks holding the deleted
// name keep it; orphaned status strings are tolerated rather than silently
// rewritten.
func (s *Store) DeleteStatus(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs := make([]model.StatusConfig, 0, len(s.doc.StatusConfigs))
	found := false
	for _, c := range s.doc.StatusConfigs {
		if c.Name == name {
			found = true
			continue
		}
		configs = append(configs, c)
	}
	if !found {
		return
	}
	s.doc.StatusConfigs = configs
	s.doc.Statuses = model.StatusNames(configs)
	s.persistLocked()
}

// ReorderStatuses replaces the config list wholesale with the caller's
// order. The caller is responsible for passing a permutation of the same
// set; the store does not diff.
func (s *Store) ReorderStatuses(configs []model.StatusConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.StatusConfigs = append([]model.StatusConfig(nil), configs...)
	s.doc.Statuses = model.StatusNames(s.doc.StatusConfigs)
	s.persistLocked()
}

// StatusColor returns the configured color for a status name, or the
// default gray when no config matches.
func (s *Store) StatusColor(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.doc.StatusConfigs {
		if c.Name == name {
			return c.Color
		}
	}
	return model.DefaultGray
}
