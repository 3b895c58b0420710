package domain

// FileEdit replaces the whole content of a project-relative file.
type FileEdit struct {
	Path    string `json:"path"`
	Content []byte `json:"-"`
}

// Changeset is the complete set of edits for one fix, computed before any
// file is touched and committed as a unit.
type Changeset struct {
	Description string     `json:"description"`
	Edits       []FileEdit `json:"edits"`
}

func NewChangeset(description string) *Changeset {
	return &Changeset{Description: description}
}

// Set stages content for path, replacing any earlier edit of the same path.
func (c *Changeset) Set(path string, content []byte) {
	for i := range c.Edits {
		if c.Edits[i].Path == path {
			c.Edits[i].Content = content
			return
		}
	}
	c.Edits = append(c.Edits, FileEdit{Path: path, Content: content})
}

func (c *Changeset) Empty() bool { return c == nil || len(c.Edits) == 0 }

// Paths lists the files touched by the changeset.
func (c *Changeset) Paths() []string {
	paths := make([]string, 0, len(c.Edits))
	for _, e := range c.Edits {
		paths = append(paths, e.Path)
	}
	return paths
}
