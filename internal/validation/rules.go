package validation

// MaxTitleLength is the maximum length for a todo title.
const MaxTitleLength = 100

// RegisterRules validates user registration input.
func RegisterRules() RuleSet {
	return RuleSet{Fields: []Field{
		{Name: "name", Checks: []Check{Required("name")}},
		{Name: "email", Checks: []Check{Required("email"), Email("email")}},
		{Name: "password", Checks: []Check{Required("password")}},
	}}
}

// LoginRules validates login input.
func LoginRules() RuleSet {
	return RuleSet{Fields: []Field{
		{Name: "email", Checks: []Check{Required("email")}},
		{Name: "password", Checks: []Check{Required("password")}},
	}}
}

// TodoStoreRules validates todo creation input.
// Title uniqueness is enforced by the service against the store.
func TodoStoreRules() RuleSet {
	return RuleSet{Fields: []Field{
		{Name: "title", Checks: []Check{Required("title"), MaxLen("title", MaxTitleLength)}},
	}}
}

// TodoUpdateRules validates todo update input.
func TodoUpdateRules() RuleSet {
	return RuleSet{Fields: []Field{
		{Name: "has_completed", Checks: []Check{Required("has_completed"), Boolean("has_completed")}},
	}}
}
