package domain

// Route is one <Route> declaration in the routes file.
type Route struct {
	Path      string `json:"path"`
	Component string `json:"component"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Raw       string `json:"raw"`
}

// Link is a navigation target (to= or internal href=) in a source file.
type Link struct {
	Target string `json:"target"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	// Cloneable marks a single-line <Link>/<NavLink> element that can serve
	// as a template for a new navigation entry.
	Cloneable bool `json:"cloneable"`
}

// Import is one module import statement.
type Import struct {
	Names []string `json:"names,omitempty"`
	Spec  string   `json:"spec"`
	File  string   `json:"file"`
	Line  int      `json:"line"`
}

// Handler is one HTTP handler registration in a server file.
type Handler struct {
	Receiver string `json:"receiver"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Raw      string `json:"raw"`
}
