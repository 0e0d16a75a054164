package message

// Level is the seniority an interview is pitched at.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelJunior, LevelMid, LevelSenior:
		return true
	}
	return false
}

// QuestionsRequest asks for a set of interview questions.
type QuestionsRequest struct {
	// Role is the job title questions are tailored to. Unknown roles get a
	// general question set.
	Role string `json:"role"`

	// Level defaults to "mid".
	Level Level `json:"level,omitempty"`

	// Count defaults to 10 and is capped at 20.
	Count int `json:"count,omitempty"`

	// Goal describes the interview (e.g., "technical screening"). Used in
	// service prompts only.
	Goal string `json:"goal,omitempty"`

	// Language is the code questions should be written in. Defaults to "en".
	Language string `json:"language,omitempty"`
}

// Question is one generated interview question.
type Question struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	Difficulty Level  `json:"difficulty"`
}

// QuestionsResult is the generated question set.
type QuestionsResult struct {
	Questions []Question `json:"questions"`
	Language  string     `json:"language"`
	Mode      Mode       `json:"mode"`
}

// FollowUpRequest asks for the next question given the candidate's answer.
type FollowUpRequest struct {
	Role     string `json:"role"`
	Question string `json:"question"`
	Answer   string `json:"answer"`

	// QuestionIndex is the zero-based position of the answered question in
	// the interview; later questions get harder follow-ups.
	QuestionIndex int `json:"questionIndex"`

	// Level, when set, is the lowest difficulty the follow-up is pitched at.
	Level Level `json:"level,omitempty"`

	// Language is the code the follow-up should be written in. Defaults to "en".
	Language string `json:"language,omitempty"`
}

// FollowUpResult is the chosen follow-up question.
type FollowUpResult struct {
	FollowUp string `json:"followUp"`
	Language string `json:"language"`

	// Difficulty is the stage the follow-up was chosen for.
	Difficulty Level `json:"difficulty"`
}

// InterviewAnswer is one answered question of a finished interview.
type InterviewAnswer struct {
	QuestionID string `json:"questionId,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category,omitempty"`

	// DurationSeconds is how long the answer took, when recorded.
	DurationSeconds int `json:"durationSeconds,omitempty"`
}

// InterviewRequest asks for an assessment of a whole interview.
type InterviewRequest struct {
	Answers    []InterviewAnswer `json:"answers"`
	Role       string            `json:"role"`
	Experience string            `json:"experience,omitempty"`
	Language   string            `json:"language,omitempty"`
}

// Breakdown scores an interview along fixed dimensions, each within [0,100].
type Breakdown struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
	Completeness  int `json:"completeness"`
	Confidence    int `json:"confidence"`
}

// AnswerAssessment is the per-question part of an interview summary.
type AnswerAssessment struct {
	QuestionID  string   `json:"questionId,omitempty"`
	Question    string   `json:"question"`
	Score       int      `json:"score"`
	Keywords    []string `json:"keywords"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// InterviewStatistics are counts over the whole interview.
type InterviewStatistics struct {
	TotalQuestions        int    `json:"totalQuestions"`
	AverageResponseLength int    `json:"averageResponseLength"`
	TotalDurationSeconds  int    `json:"totalDurationSeconds"`
	KeywordsUsed          int    `json:"keywordsUsed"`
	ExpectedKeywords      int    `json:"expectedKeywords"`
	ConfidenceLevel       string `json:"confidenceLevel"`
}

// InterviewSummary is the assessment of a whole interview.
type InterviewSummary struct {
	// OverallScore is always within [0,100].
	OverallScore    int                 `json:"overallScore"`
	Breakdown       Breakdown           `json:"breakdown"`
	Answers         []AnswerAssessment  `json:"answers"`
	Strengths       []string            `json:"strengths"`
	Improvements    []string            `json:"improvements"`
	Recommendations []string            `json:"recommendations"`
	Statistics      InterviewStatistics `json:"statistics"`
	Language        string              `json:"language"`
	Mode            Mode                `json:"mode"`
}

// DetectRequest asks which language a text is written in.
type DetectRequest struct {
	Text string `json:"text"`
}

// DetectResult is the detected catalog language.
type DetectResult struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}
