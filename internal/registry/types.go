package registry

// ContentItem is one template file found during a discovery pass.
type ContentItem struct {
	SourcePath   string // absolute path to the template file
	Basename     string // filename without extension, e.g. "code-reviewer"
	Extension    string // extension including the dot, e.g. ".md"
	Subdirectory string // slash-separated path relative to the root; "" at top level
}

// ResolvedDestination is the filename a ContentItem is installed under.
type ResolvedDestination struct {
	DestFilename string // e.g. "foo.md" or "foo-bar.md" on collision
	OriginalName string // basename before collision suffixing
	Subdirectory string
	Item         ContentItem
}

// Stem returns DestFilename without its extension.
func (d ResolvedDestination) Stem() string {
	return trimExt(d.DestFilename)
}

// Frontmatter holds the optional YAML header of a template file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
