package audit

const (
	// NumConcepts is how many core concepts one audit extracts.
	NumConcepts = 5
	// NumQuestions is the fixed size of a quiz bank.
	NumQuestions = 20
	// NumChoices is the number of options per question.
	NumChoices = 4
)

// Question is a single multiple-choice item of a quiz bank. Immutable once
// generated.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectChoice int      `json:"correct_choice"`
}

// Result is the outcome of one audit: the direct answer (or document
// summary), the extracted core concepts and the derived quiz bank. It is
// handed to the caller only after the shape has been fully validated.
type Result struct {
	Title    string     `json:"title"`
	Answer   string     `json:"answer"`
	Concepts []string   `json:"concepts"`
	QuizBank []Question `json:"quiz_bank"`
}

// RawAudit mirrors the JSON shape the model is asked to produce.
type RawAudit struct {
	Title             string        `json:"title"`
	EducationalAnswer string        `json:"educational_answer"`
	CoreConcepts      []string      `json:"core_concepts"`
	QuizBank          []RawQuestion `json:"quiz_bank"`
}

// RawQuestion is a question as the model emits it: the correct answer is
// given as text and must match exactly one of the options.
type RawQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}
