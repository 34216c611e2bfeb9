package entities

// Repository identifies one repository of the organization under survey.
type Repository struct {
	Name     string // Short name, used in progress output
	FullName string // "org/name", used for repo: query scoping
	HTMLURL  string // Web URL, used as the key in the final report
}
