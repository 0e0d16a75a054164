// Package message defines the core data types flowing through the coachd pipeline.
package message

// Mode identifies which backend produced a result.
type Mode string

const (
	// ModeService means the external completion service wrote the feedback.
	ModeService Mode = "service"

	// ModeLocal means the deterministic local rules wrote the feedback.
	ModeLocal Mode = "local"
)

// AnalyzeRequest is an incoming answer to be scored and critiqued.
type AnalyzeRequest struct {
	// Transcript is the candidate's answer. May be empty.
	Transcript string `json:"transcript"`

	// Question is the interview question that was asked.
	Question string `json:"question"`

	// Role is the job title the candidate is interviewing for (e.g., "Data Scientist").
	Role string `json:"role"`

	// Keywords overrides keyword extraction when non-empty.
	Keywords []string `json:"keywords,omitempty"`

	// Emotion is the optional pre-computed affect signal for the answer.
	Emotion *EmotionSignal `json:"emotion,omitempty"`

	// Language is the code of the language feedback should be written in. Defaults to "en".
	Language string `json:"language,omitempty"`
}

// EmotionSignal is an affect estimate produced by an upstream detector.
// Every scalar is optional and expected in [0,1].
type EmotionSignal struct {
	Confidence        *float64           `json:"confidence,omitempty"`
	Engagement        *float64           `json:"engagement,omitempty"`
	EyeContact        *float64           `json:"eye_contact,omitempty"`
	Stress            *float64           `json:"stress,omitempty"`
	DominantEmotion   string             `json:"dominant_emotion,omitempty"`
	FacialExpressions map[string]float64 `json:"facial_expressions,omitempty"`
}

// Metrics holds the derived statistics reported alongside a score.
type Metrics struct {
	WordCount         int  `json:"wordCount"`
	EstimatedDuration int  `json:"estimatedDuration"`
	HasExamples       bool `json:"hasExamples"`
	Clarity           int  `json:"clarity"`
	Confidence        int  `json:"confidence"`
	Relevance         int  `json:"relevance"`
}

// AnalysisResult is the outcome of analyzing one answer.
type AnalysisResult struct {
	// Score is the overall rating, always within [0,100].
	Score int `json:"score"`

	// Feedback is the natural-language critique in the requested language.
	Feedback string `json:"feedback"`

	Metrics Metrics `json:"metrics"`

	// Suggestions are short, actionable improvement tips.
	Suggestions []string `json:"suggestions"`

	// Keywords are at most five salient terms found in the answer.
	Keywords []string `json:"keywords"`

	// Language is the resolved code the feedback was produced for.
	Language string `json:"language"`

	Mode Mode `json:"mode"`
}

// TranslateRequest asks for text to be rendered in another language.
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`

	// SourceLanguage is detected when omitted.
	SourceLanguage string `json:"sourceLanguage,omitempty"`
}

// TranslateResult is the outcome of a translation request.
type TranslateResult struct {
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Language describes one entry of the supported language catalog.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Category   string `json:"category"`
	RTL        bool   `json:"rtl,omitempty"`
}

// LanguageGroup is one category of the catalog.
type LanguageGroup struct {
	Category  string     `json:"category"`
	Languages []Language `json:"languages"`
}

// LanguagesResult is the catalog grouped by category.
type LanguagesResult struct {
	Groups []LanguageGroup `json:"groups"`
}
