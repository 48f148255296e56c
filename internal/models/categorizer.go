package models

// CategoryRule associates a category with the lowercase substrings that identify it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the layout of categories.yaml.
type CategoriesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}

// KeywordIndexEntry is one flattened (keyword, category) pair of the compiled index.
type KeywordIndexEntry struct {
	Keyword  string
	Category string
}
