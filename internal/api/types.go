package api

// Token is the payload returned by the login and register endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserProfile mirrors GET /api/auth/me. The server's timestamp fields are
// deliberately not decoded; nothing in the client renders them.
type UserProfile struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	PreferredLanguages  []string `json:"preferred_languages"`
	SkillLevel          string   `json:"skill_level"`
	ExplanationLanguage string   `json:"explanation_language"`
	TotalXP             int      `json:"total_xp"`
	StreakDays          int      `json:"streak_days"`
}

// DashboardStats mirrors GET /api/dashboard/stats.
type DashboardStats struct {
	User     UserSummary   `json:"user"`
	Activity ActivityStats `json:"activity"`
	Progress ProgressStats `json:"progress"`
}

type UserSummary struct {
	Username   string `json:"username"`
	TotalXP    int    `json:"total_xp"`
	StreakDays int    `json:"streak_days"`
	SkillLevel string `json:"skill_level"`
}

type ActivityStats struct {
	SnippetsCreated    int `json:"snippets_created"`
	QuestionsSolved    int `json:"questions_solved"`
	ExplanationsViewed int `json:"explanations_viewed"`
}

type ProgressStats struct {
	ConceptsMastered int `json:"concepts_mastered"`
	CurrentLevel     int `json:"current_level"`
	NextLevelXP      int `json:"next_level_xp"`
}

// Snippet mirrors an entry of GET /api/code/snippets.
type Snippet struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

// RegisterRequest is the body of POST /api/auth/register. The preference
// fields are policy defaults supplied by the caller, not user input.
type RegisterRequest struct {
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	Password            string   `json:"password"`
	PreferredLanguages  []string `json:"preferred_languages"`
	SkillLevel          string   `json:"skill_level"`
	ExplanationLanguage string   `json:"explanation_language"`
}
