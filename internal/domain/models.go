package domain

// PointsPerCorrectAnswer is the score awarded for each correct submission.
const PointsPerCorrectAnswer = 10

// Question models a multiple-choice question with one correct option.
// Questions are never mutated once loaded into a bank.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // 0-based index into Options
	TimeLimit     int      `json:"timeLimit"`     // seconds, advisory
}

// IsCorrect reports whether selected matches the correct option index.
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectAnswer
}

// Clone returns a copy that shares no backing arrays with q.
func (q Question) Clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// AnswerDetail describes one recorded submission.
type AnswerDetail struct {
	QuestionID     int    `json:"questionId"`
	Question       string `json:"question"`
	SelectedAnswer int    `json:"selectedAnswer"`
	CorrectAnswer  int    `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// SessionStats is a point-in-time view of a session in progress.
type SessionStats struct {
	SessionID            string `json:"sessionId"`
	CurrentQuestionIndex int    `json:"currentQuestionIndex"`
	TotalQuestions       int    `json:"totalQuestions"`
	AnsweredQuestions    int    `json:"answeredQuestions"`
	Score                int    `json:"score"`
	ProgressPercentage   int    `json:"progressPercentage"`
	AccuracyPercentage   int    `json:"accuracyPercentage"`
	IsCompleted          bool   `json:"isCompleted"`
	DurationSeconds      int64  `json:"durationSeconds"`
}

// Results summarizes a session for the end-of-quiz screen.
type Results struct {
	SessionID          string         `json:"sessionId"`
	TotalQuestions     int            `json:"totalQuestions"`
	AnsweredQuestions  int            `json:"answeredQuestions"`
	CorrectAnswers     int            `json:"correctAnswers"`
	Score              int            `json:"score"`
	AccuracyPercentage int            `json:"accuracyPercentage"`
	DurationSeconds    int64          `json:"durationSeconds"`
	IsCompleted        bool           `json:"isCompleted"`
	AnswerDetails      []AnswerDetail `json:"answerDetails"`
}

// AnswerOutcome is what a single submission produced.
type AnswerOutcome struct {
	IsCorrect    bool      `json:"isCorrect"`
	NextQuestion *Question `json:"nextQuestion"`
	IsCompleted  bool      `json:"isCompleted"`
	Score        int       `json:"score"`
	Progress     int       `json:"progress"`
}
